package render

import (
	"image"
	"image/color"
)

// Offset is a Canvas that moves every primitive by Delta before passing it
// on, so world coordinates can be drawn onto an image whose origin is
// elsewhere.
type Offset struct {
	Canvas Canvas
	Delta  image.Point
}

func (o Offset) SetColor(c color.NRGBA) { o.Canvas.SetColor(c) }

func (o Offset) SetStroke(s *Stroke) { o.Canvas.SetStroke(s) }

func (o Offset) FillRect(x, y, w, h int) { o.Canvas.FillRect(x+o.Delta.X, y+o.Delta.Y, w, h) }

func (o Offset) DrawRect(x, y, w, h int) { o.Canvas.DrawRect(x+o.Delta.X, y+o.Delta.Y, w, h) }

func (o Offset) FillOval(x, y, w, h int) { o.Canvas.FillOval(x+o.Delta.X, y+o.Delta.Y, w, h) }

// Clip reports the underlying clip in untranslated coordinates.
func (o Offset) Clip() (image.Rectangle, bool) {
	r, ok := o.Canvas.Clip()
	return r.Sub(o.Delta), ok
}
