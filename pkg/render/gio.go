package render

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
)

// GioCanvas records drawing calls as Gio operations. The caller owns the
// op list and is responsible for any transform pushed around the draw.
type GioCanvas struct {
	ops     *op.Ops
	clip    image.Rectangle
	clipped bool
	color   color.NRGBA
	stroke  *Stroke
}

// NewGioCanvas wraps ops. A non-empty clip restricts painting and is
// reported to components for their cheap reject.
func NewGioCanvas(ops *op.Ops, clipRect image.Rectangle) *GioCanvas {
	return &GioCanvas{
		ops:     ops,
		clip:    clipRect,
		clipped: !clipRect.Empty(),
		color:   color.NRGBA{A: 255},
	}
}

func (g *GioCanvas) SetColor(c color.NRGBA) { g.color = c }

func (g *GioCanvas) SetStroke(s *Stroke) { g.stroke = s }

func (g *GioCanvas) Clip() (image.Rectangle, bool) { return g.clip, g.clipped }

func (g *GioCanvas) FillRect(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if g.clipped {
		defer clip.Rect(g.clip).Push(g.ops).Pop()
	}
	paint.FillShape(g.ops, g.color, clip.Rect{Min: image.Pt(x, y), Max: image.Pt(x+w, y+h)}.Op())
}

// DrawRect strokes along pixel centres so a one pixel pen covers the same
// pixels as RasterCanvas.DrawRect.
func (g *GioCanvas) DrawRect(x, y, w, h int) {
	if w < 0 || h < 0 {
		return
	}
	if g.clipped {
		defer clip.Rect(g.clip).Push(g.ops).Pop()
	}

	x0, y0 := float32(x)+0.5, float32(y)+0.5
	x1, y1 := x0+float32(w), y0+float32(h)

	var path clip.Path
	path.Begin(g.ops)
	path.MoveTo(f32.Pt(x0, y0))
	path.LineTo(f32.Pt(x1, y0))
	path.LineTo(f32.Pt(x1, y1))
	path.LineTo(f32.Pt(x0, y1))
	path.Close()

	stroke := clip.Stroke{
		Path:  path.End(),
		Width: g.stroke.Width(),
	}.Op()
	paint.FillShape(g.ops, g.color, stroke)
}

func (g *GioCanvas) FillOval(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if g.clipped {
		defer clip.Rect(g.clip).Push(g.ops).Pop()
	}
	rect := image.Rect(x, y, x+w, y+h)
	paint.FillShape(g.ops, g.color, clip.Ellipse(rect).Op(g.ops))
}
