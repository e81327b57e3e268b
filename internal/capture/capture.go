// Package capture runs the background acquisition pipeline: resolve the
// background pixmap, fetch its raw contents, normalize the pixels, and
// optionally mask out regions not covered by any monitor.
package capture

import (
	"errors"
	"fmt"

	"github.com/1broseidon/xbgdump/internal/raster"
	"github.com/1broseidon/xbgdump/internal/x11"
)

// Source is the display-server surface the pipeline runs against.
// x11.Connection implements it.
type Source interface {
	// BackgroundPixmap resolves the drawable holding the background image.
	BackgroundPixmap() (uint32, error)
	// FetchImage retrieves a drawable's geometry and raw pixel payload.
	FetchImage(id uint32) (raster.RawImage, error)
	// DisplayLayout enumerates the rectangles of all enabled monitors.
	DisplayLayout() ([]raster.Rect, error)
}

// Options controls one capture attempt.
type Options struct {
	// Mask hides regions of the virtual desktop outside every monitor.
	Mask bool
	// KeepGoingWithoutLayout returns the unmasked raster when the monitor
	// layout cannot be resolved (x11.ErrLayoutUnavailable), instead of
	// failing the capture. Every other layout error still fails.
	KeepGoingWithoutLayout bool
}

// NewX11Source wraps a live X11 connection as a pipeline source, binding
// the root-window property the background pixmap is resolved through.
func NewX11Source(conn *x11.Connection, property string) Source {
	if property == "" {
		property = x11.DefaultBackgroundProperty
	}
	return x11Source{conn: conn, property: property}
}

type x11Source struct {
	conn     *x11.Connection
	property string
}

func (s x11Source) BackgroundPixmap() (uint32, error) {
	return s.conn.BackgroundPixmapNamed(s.property)
}

func (s x11Source) FetchImage(id uint32) (raster.RawImage, error) {
	return s.conn.FetchImage(id)
}

func (s x11Source) DisplayLayout() ([]raster.Rect, error) {
	return s.conn.DisplayLayout()
}

// Capture performs a single synchronous capture attempt. There is no retry
// and no partial success: it returns either a complete canonical raster or
// an error.
func Capture(src Source, opts Options) (*raster.Raster, error) {
	pixmap, err := src.BackgroundPixmap()
	if err != nil {
		return nil, fmt.Errorf("resolve background: %w", err)
	}

	raw, err := src.FetchImage(pixmap)
	if err != nil {
		return nil, fmt.Errorf("fetch background contents: %w", err)
	}

	img, err := raster.Normalize(raw)
	if err != nil {
		return nil, err
	}

	if !opts.Mask {
		return img, nil
	}

	layout, err := src.DisplayLayout()
	if err != nil {
		if opts.KeepGoingWithoutLayout && errors.Is(err, x11.ErrLayoutUnavailable) {
			return img, nil
		}
		return nil, fmt.Errorf("resolve display layout: %w", err)
	}

	return raster.Mask(img, layout), nil
}
