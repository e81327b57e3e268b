package raster

// Mask returns a copy of r where only pixels covered by at least one layout
// rectangle are visible; everything else is transparent black. The output
// always carries an alpha channel and always has r's dimensions. A
// single-rectangle layout needs no masking and returns r promoted to alpha
// form unchanged.
func Mask(r *Raster, layout []Rect) *Raster {
	if len(layout) == 1 {
		return promote(r)
	}

	dst := &Raster{
		Width:    r.Width,
		Height:   r.Height,
		HasAlpha: true,
		Pix:      make([]byte, r.Width*r.Height*4),
	}
	stride := r.Stride()

	for _, mon := range layout {
		vis, ok := clipToCanvas(mon, r.Width, r.Height)
		if !ok {
			continue
		}
		for y := vis.Y; y < vis.Y+vis.Height; y++ {
			for x := vis.X; x < vis.X+vis.Width; x++ {
				src := (y*r.Width + x) * stride
				out := (y*r.Width + x) * 4
				dst.Pix[out+0] = r.Pix[src+0]
				dst.Pix[out+1] = r.Pix[src+1]
				dst.Pix[out+2] = r.Pix[src+2]
				if r.HasAlpha {
					dst.Pix[out+3] = r.Pix[src+3]
				} else {
					dst.Pix[out+3] = 0xff
				}
			}
		}
	}
	return dst
}

// clipToCanvas clamps a display rectangle to the canvas, returning false
// when no part of it is visible. A negative origin is clamped to zero with
// the width/height shrunk by the same amount; the far edge is then bounded
// by the canvas dimensions. Keeping the signed arithmetic here keeps the
// copy loop in Mask free of it.
func clipToCanvas(r Rect, canvasW, canvasH int) (Rect, bool) {
	if r.X+r.Width <= 0 || r.Y+r.Height <= 0 {
		return Rect{}, false
	}
	if r.X >= canvasW || r.Y >= canvasH {
		return Rect{}, false
	}

	if r.X < 0 {
		r.Width += r.X
		r.X = 0
	}
	if r.Y < 0 {
		r.Height += r.Y
		r.Y = 0
	}
	if r.X+r.Width > canvasW {
		r.Width = canvasW - r.X
	}
	if r.Y+r.Height > canvasH {
		r.Height = canvasH - r.Y
	}
	if r.Width <= 0 || r.Height <= 0 {
		return Rect{}, false
	}
	return r, true
}

// promote returns r itself when it already has alpha, otherwise a fully
// opaque 4-channel copy.
func promote(r *Raster) *Raster {
	if r.HasAlpha {
		return r
	}
	out := &Raster{
		Width:    r.Width,
		Height:   r.Height,
		HasAlpha: true,
		Pix:      make([]byte, r.Width*r.Height*4),
	}
	for i, j := 0, 0; i < len(r.Pix); i, j = i+3, j+4 {
		out.Pix[j+0] = r.Pix[i+0]
		out.Pix[j+1] = r.Pix[i+1]
		out.Pix[j+2] = r.Pix[i+2]
		out.Pix[j+3] = 0xff
	}
	return out
}
