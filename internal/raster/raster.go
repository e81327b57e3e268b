// Package raster holds the pixel-level core of xbgdump: normalizing the
// server-native pixmap payload into an RGB/RGBA raster and masking out
// regions of the virtual desktop not covered by any physical display.
package raster

import (
	"fmt"
	"image"
)

// Supported pixmap depths. Anything else is rejected.
const (
	DepthRGB  = 24
	DepthRGBA = 32
)

// Rect is a display rectangle on the virtual desktop. X and Y are signed:
// a monitor can be positioned partly outside the desktop origin.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// RawImage is the untranslated GetImage payload: 4 bytes per pixel in the
// server's BGRx order (byte 0 blue, 1 green, 2 red, 3 padding or alpha),
// row-major with no inter-row padding. It is consumed once by Normalize
// and never retained.
type RawImage struct {
	Width  int
	Height int
	Depth  byte
	Data   []byte
}

// Raster is the canonical output raster. Pix is row-major with 3 channels
// (RGB) or 4 channels (RGBA) per pixel depending on HasAlpha.
type Raster struct {
	Width    int
	Height   int
	HasAlpha bool
	Pix      []byte
}

// Stride returns the number of bytes per pixel.
func (r *Raster) Stride() int {
	if r.HasAlpha {
		return 4
	}
	return 3
}

// UnsupportedDepthError reports a pixmap depth Normalize cannot translate.
type UnsupportedDepthError struct {
	Depth byte
}

func (e *UnsupportedDepthError) Error() string {
	return fmt.Sprintf("unsupported pixel depth: %d", e.Depth)
}

// SizeMismatchError reports a pixel payload whose length disagrees with the
// reported geometry.
type SizeMismatchError struct {
	Want int
	Got  int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("pixel buffer size mismatch: want %d bytes, got %d", e.Want, e.Got)
}

// Validate checks the 4-byte-per-pixel invariant on the raw payload.
func (ri RawImage) Validate() error {
	want := ri.Width * ri.Height * 4
	if len(ri.Data) != want {
		return &SizeMismatchError{Want: want, Got: len(ri.Data)}
	}
	return nil
}

// Normalize translates the BGRx payload into a canonical raster, dispatched
// on the reported depth. Depth 24 drops the padding byte and emits RGB;
// depth 32 keeps byte 3 as alpha and emits RGBA. The alpha pass-through at
// depth 32 is conjecture from 24-bit being BGR0 and has not been verified
// against a real compositor-set background.
func Normalize(ri RawImage) (*Raster, error) {
	if err := ri.Validate(); err != nil {
		return nil, err
	}

	switch ri.Depth {
	case DepthRGB:
		pix := make([]byte, ri.Width*ri.Height*3)
		for i, j := 0, 0; i < len(ri.Data); i, j = i+4, j+3 {
			pix[j+0] = ri.Data[i+2]
			pix[j+1] = ri.Data[i+1]
			pix[j+2] = ri.Data[i+0]
		}
		return &Raster{Width: ri.Width, Height: ri.Height, HasAlpha: false, Pix: pix}, nil

	case DepthRGBA:
		pix := make([]byte, ri.Width*ri.Height*4)
		for i := 0; i < len(ri.Data); i += 4 {
			pix[i+0] = ri.Data[i+2]
			pix[i+1] = ri.Data[i+1]
			pix[i+2] = ri.Data[i+0]
			pix[i+3] = ri.Data[i+3]
		}
		return &Raster{Width: ri.Width, Height: ri.Height, HasAlpha: true, Pix: pix}, nil

	default:
		return nil, &UnsupportedDepthError{Depth: ri.Depth}
	}
}

// Image converts the raster to a stdlib image for encoding. Alpha rasters
// map channel-for-channel onto NRGBA; RGB rasters get an opaque alpha.
func (r *Raster) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	stride := r.Stride()
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			src := (y*r.Width + x) * stride
			dst := y*img.Stride + x*4
			img.Pix[dst+0] = r.Pix[src+0]
			img.Pix[dst+1] = r.Pix[src+1]
			img.Pix[dst+2] = r.Pix[src+2]
			if r.HasAlpha {
				img.Pix[dst+3] = r.Pix[src+3]
			} else {
				img.Pix[dst+3] = 0xff
			}
		}
	}
	return img
}
