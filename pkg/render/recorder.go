package render

import (
	"fmt"
	"image"
	"image/color"
)

// OpKind identifies a recorded drawing primitive.
type OpKind int

const (
	OpFillRect OpKind = iota
	OpDrawRect
	OpFillOval
)

func (k OpKind) String() string {
	switch k {
	case OpFillRect:
		return "fillRect"
	case OpDrawRect:
		return "drawRect"
	case OpFillOval:
		return "fillOval"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// Op is one recorded primitive. Rect holds the raw x, y, x+w, y+h values as
// passed by the caller, without canonicalisation.
type Op struct {
	Kind        OpKind
	Rect        image.Rectangle
	Color       color.NRGBA
	StrokeWidth float32 // only for OpDrawRect
}

// Recorder is a Canvas that keeps a display list instead of painting.
type Recorder struct {
	Ops []Op

	clip    image.Rectangle
	clipped bool
	color   color.NRGBA
	stroke  *Stroke
}

// NewRecorder creates a recorder without a clip region.
func NewRecorder() *Recorder {
	return &Recorder{color: color.NRGBA{A: 255}}
}

// NewClippedRecorder creates a recorder that reports r as its clip region.
func NewClippedRecorder(r image.Rectangle) *Recorder {
	rec := NewRecorder()
	rec.clip = r
	rec.clipped = true
	return rec
}

func (r *Recorder) SetColor(c color.NRGBA) { r.color = c }

func (r *Recorder) SetStroke(s *Stroke) { r.stroke = s }

func (r *Recorder) FillRect(x, y, w, h int) { r.add(OpFillRect, x, y, w, h) }

func (r *Recorder) DrawRect(x, y, w, h int) { r.add(OpDrawRect, x, y, w, h) }

func (r *Recorder) FillOval(x, y, w, h int) { r.add(OpFillOval, x, y, w, h) }

func (r *Recorder) Clip() (image.Rectangle, bool) { return r.clip, r.clipped }

func (r *Recorder) add(kind OpKind, x, y, w, h int) {
	op := Op{
		Kind:  kind,
		Rect:  image.Rectangle{Min: image.Pt(x, y), Max: image.Pt(x+w, y+h)},
		Color: r.color,
	}
	if kind == OpDrawRect {
		op.StrokeWidth = r.stroke.Width()
	}
	r.Ops = append(r.Ops, op)
}

// Count returns how many primitives of the given kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Reset drops the recorded primitives but keeps the clip region.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// Replay paints the recorded primitives onto another canvas.
func (r *Recorder) Replay(dst Canvas) {
	for _, op := range r.Ops {
		dst.SetColor(op.Color)
		x, y := op.Rect.Min.X, op.Rect.Min.Y
		w, h := op.Rect.Max.X-x, op.Rect.Max.Y-y
		switch op.Kind {
		case OpFillRect:
			dst.FillRect(x, y, w, h)
		case OpDrawRect:
			dst.SetStroke(FetchStroke(op.StrokeWidth))
			dst.DrawRect(x, y, w, h)
		case OpFillOval:
			dst.FillOval(x, y, w, h)
		}
	}
}
