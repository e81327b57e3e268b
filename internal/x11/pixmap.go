package x11

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/xbgdump/internal/raster"
)

// FetchImage retrieves the full contents of a drawable: one geometry query
// for the bounding rectangle, then one GetImage in ZPixmap format across
// all planes. ZPixmap gives contiguous byte-per-channel pixels, so the
// reply is exactly width*height*4 bytes at the depths we support; anything
// else is reported as a size mismatch before any pixel work happens.
func (c *Connection) FetchImage(id uint32) (raster.RawImage, error) {
	drawable := xproto.Drawable(id)

	geom, err := xproto.GetGeometry(c.XUtil.Conn(), drawable).Reply()
	if err != nil {
		return raster.RawImage{}, &QueryError{Op: "get geometry", Err: err}
	}

	img, err := xproto.GetImage(c.XUtil.Conn(), xproto.ImageFormatZPixmap,
		drawable, geom.X, geom.Y, geom.Width, geom.Height, allPlanes).Reply()
	if err != nil {
		return raster.RawImage{}, &QueryError{Op: "get image", Err: err}
	}

	ri := raster.RawImage{
		Width:  int(geom.Width),
		Height: int(geom.Height),
		Depth:  img.Depth,
		Data:   img.Data,
	}
	if err := ri.Validate(); err != nil {
		return raster.RawImage{}, err
	}
	return ri, nil
}

// The server ignores plane-mask bits above the drawable's depth.
const allPlanes = 0xFFFFFFFF
