package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"

	"github.com/1broseidon/xbgdump/internal/raster"
)

// DisplayLayout retrieves the rectangle of every enabled monitor using
// XRandR. All CRTC queries reuse the config timestamp from the screen
// resources reply, so the returned rectangles describe the layout at one
// point in time; if the layout changes underneath us the server rejects
// the stale timestamp and we report ErrLayoutUnavailable rather than a
// torn mix of old and new geometry. The layout is resolved fresh on every
// call.
func (c *Connection) DisplayLayout() ([]raster.Rect, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("%w: randr init: %v", ErrLayoutUnavailable, err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("%w: screen resources: %v", ErrLayoutUnavailable, err)
	}

	var layout []raster.Rect
	for _, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			return nil, fmt.Errorf("%w: crtc %d info: %v", ErrLayoutUnavailable, crtc, err)
		}

		// Skip disabled CRTCs.
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		layout = append(layout, raster.Rect{
			X:      int(info.X),
			Y:      int(info.Y),
			Width:  int(info.Width),
			Height: int(info.Height),
		})
	}

	if len(layout) == 0 {
		return nil, ErrNoActiveDisplays
	}
	return layout, nil
}
