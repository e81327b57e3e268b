// Package encode serializes a canonical raster to an image container.
package encode

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/1broseidon/xbgdump/internal/raster"
)

// Format is an output image container.
type Format string

const (
	FormatPNG Format = "png"
	FormatPPM Format = "ppm"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatPNG:
		return FormatPNG, nil
	case FormatPPM:
		return FormatPPM, nil
	default:
		return "", fmt.Errorf("unknown output format %q (supported: png, ppm)", s)
	}
}

// FormatForPath picks a format from the output filename extension,
// defaulting to PNG.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ppm", ".pnm":
		return FormatPPM
	default:
		return FormatPNG
	}
}

// Options controls encoding of one raster.
type Options struct {
	Format Format
	// MaxWidth downscales the image to at most this many pixels wide,
	// preserving aspect ratio. Zero means no limit.
	MaxWidth int
}

// Encode writes r to w in the requested container. PPM (binary P6) has no
// alpha channel, so any transparency from masking is dropped there; use
// PNG when the mask matters.
func Encode(w io.Writer, r *raster.Raster, opts Options) error {
	img := r.Image()
	if opts.MaxWidth > 0 && r.Width > opts.MaxWidth {
		img = downscale(img, opts.MaxWidth)
	}

	switch opts.Format {
	case FormatPPM:
		return encodePPM(w, img)
	case FormatPNG, "":
		return png.Encode(w, img)
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}

// downscale resizes img to maxWidth, preserving aspect ratio.
func downscale(img *image.NRGBA, maxWidth int) *image.NRGBA {
	b := img.Bounds()
	height := b.Dy() * maxWidth / b.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// encodePPM writes a binary P6 portable pixmap.
func encodePPM(w io.Writer, img *image.NRGBA) error {
	b := img.Bounds()
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", b.Dx(), b.Dy()); err != nil {
		return err
	}
	row := make([]byte, b.Dx()*3)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			src := y*img.Stride + x*4
			dst := x * 3
			row[dst+0] = img.Pix[src+0]
			row[dst+1] = img.Pix[src+1]
			row[dst+2] = img.Pix[src+2]
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}
