package mcp

import (
	"context"
	"encoding/base64"
	"errors"
	"image/png"
	"strings"
	"testing"

	"github.com/1broseidon/xbgdump/internal/capture"
	"github.com/1broseidon/xbgdump/internal/config"
	"github.com/1broseidon/xbgdump/internal/raster"
	"github.com/1broseidon/xbgdump/internal/x11"
)

type fakeSource struct {
	raw    raster.RawImage
	layout []raster.Rect
}

func (f fakeSource) BackgroundPixmap() (uint32, error) { return 7, nil }

func (f fakeSource) FetchImage(uint32) (raster.RawImage, error) { return f.raw, nil }

func (f fakeSource) DisplayLayout() ([]raster.Rect, error) { return f.layout, nil }

func testServer(src capture.Source) *Server {
	s := NewServer(config.Default())
	s.connect = func() (capture.Source, func(), error) {
		return src, func() {}, nil
	}
	return s
}

func depth24Raw(w, h int) raster.RawImage {
	data := make([]byte, w*h*4)
	for i := 0; i < len(data); i += 4 {
		data[i], data[i+1], data[i+2] = 0x30, 0x20, 0x10
	}
	return raster.RawImage{Width: w, Height: h, Depth: raster.DepthRGB, Data: data}
}

func TestCaptureBackground_ReturnsDecodablePNG(t *testing.T) {
	src := fakeSource{
		raw:    depth24Raw(4, 2),
		layout: []raster.Rect{{Width: 4, Height: 2}},
	}
	s := testServer(src)

	_, out, err := s.handleCaptureBackground(context.Background(), nil, CaptureBackgroundInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Width != 4 || out.Height != 2 || out.Format != "png" {
		t.Fatalf("unexpected metadata: %+v", out)
	}

	data, err := base64.StdEncoding.DecodeString(out.DataBase64)
	if err != nil {
		t.Fatalf("payload is not valid base64: %v", err)
	}
	img, err := png.Decode(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("payload is not a valid PNG: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 2 {
		t.Fatalf("expected 4x2 PNG, got %v", img.Bounds())
	}
}

func TestCaptureBackground_MaxWidthOverride(t *testing.T) {
	src := fakeSource{
		raw:    depth24Raw(8, 4),
		layout: []raster.Rect{{Width: 8, Height: 4}},
	}
	s := testServer(src)

	_, out, err := s.handleCaptureBackground(context.Background(), nil, CaptureBackgroundInput{MaxWidth: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, _ := base64.StdEncoding.DecodeString(out.DataBase64)
	img, err := png.Decode(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("payload is not a valid PNG: %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Fatalf("expected downscaled width 4, got %d", img.Bounds().Dx())
	}
	// Metadata reports the capture size, not the encoded size.
	if out.Width != 8 {
		t.Fatalf("expected reported capture width 8, got %d", out.Width)
	}
}

func TestCaptureBackground_CaptureErrorsPropagate(t *testing.T) {
	s := NewServer(config.Default())
	s.connect = func() (capture.Source, func(), error) {
		return failingSource{}, func() {}, nil
	}

	_, _, err := s.handleCaptureBackground(context.Background(), nil, CaptureBackgroundInput{})
	if !errors.Is(err, x11.ErrNoBackgroundSet) {
		t.Fatalf("expected ErrNoBackgroundSet, got %v", err)
	}
}

type failingSource struct{}

func (failingSource) BackgroundPixmap() (uint32, error) { return 0, x11.ErrNoBackgroundSet }
func (failingSource) FetchImage(uint32) (raster.RawImage, error) {
	return raster.RawImage{}, errors.New("unreachable")
}
func (failingSource) DisplayLayout() ([]raster.Rect, error) { return nil, errors.New("unreachable") }
