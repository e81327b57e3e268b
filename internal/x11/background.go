package x11

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xprop"
)

// DefaultBackgroundProperty is the root-window property conventionally set
// by wallpaper tools (feh, nitrogen, hsetroot) to the background pixmap ID.
const DefaultBackgroundProperty = "_XROOTPMAP_ID"

// BackgroundPixmap resolves the pixmap holding the current desktop
// background via DefaultBackgroundProperty.
func (c *Connection) BackgroundPixmap() (uint32, error) {
	return c.BackgroundPixmapNamed(DefaultBackgroundProperty)
}

// BackgroundPixmapNamed resolves the background pixmap through the given
// root-window property. The atom lookup is only-if-exists, so a desktop
// where no wallpaper tool ever ran reports ErrNoBackgroundSet rather than
// interning a new atom.
func (c *Connection) BackgroundPixmapNamed(property string) (uint32, error) {
	atom, err := xprop.Atom(c.XUtil, property, true)
	if err != nil {
		return 0, &QueryError{Op: "intern " + property, Err: err}
	}
	if atom == 0 {
		return 0, ErrNoBackgroundSet
	}

	reply, err := xproto.GetProperty(c.XUtil.Conn(), false, c.Root,
		atom, xproto.AtomPixmap, 0, 1).Reply()
	if err != nil {
		return 0, &QueryError{Op: "get " + property, Err: err}
	}

	if reply.Format == 0 || reply.ValueLen == 0 {
		return 0, ErrNoBackgroundSet
	}
	if reply.Format != 32 || reply.ValueLen != 1 {
		return 0, &MalformedPropertyError{
			Property: property,
			Format:   reply.Format,
			ValueLen: reply.ValueLen,
		}
	}

	return xgb.Get32(reply.Value), nil
}
