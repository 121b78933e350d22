// Package render provides the drawing surface components paint on, together
// with its backends: a display-list recorder, a Gio backend for the viewer and
// a raster backend for PNG export.
package render

import (
	"image"
	"image/color"
	"sync"
)

// Canvas is the drawing surface handed to components. Coordinates are in
// render space (pixels). Rectangles follow the x, y, width, height
// convention; an outlined rectangle covers width+1 by height+1 pixels.
type Canvas interface {
	SetColor(c color.NRGBA)
	SetStroke(s *Stroke)
	FillRect(x, y, w, h int)
	DrawRect(x, y, w, h int)
	FillOval(x, y, w, h int)
	// Clip returns the region being repainted. ok is false when the whole
	// canvas is being painted.
	Clip() (r image.Rectangle, ok bool)
}

// Stroke describes an outline pen. Strokes are immutable once created and
// are shared between draw calls through a StrokeCache.
type Stroke struct {
	width float32
}

// Width returns the pen width in pixels.
func (s *Stroke) Width() float32 {
	if s == nil {
		return 1
	}
	return s.width
}

// StrokeCache hands out one shared Stroke per width.
type StrokeCache struct {
	mu      sync.Mutex
	strokes map[float32]*Stroke
}

// NewStrokeCache creates an empty cache.
func NewStrokeCache() *StrokeCache {
	return &StrokeCache{strokes: make(map[float32]*Stroke)}
}

// Fetch returns the stroke for width, creating it on first use.
func (sc *StrokeCache) Fetch(width float32) *Stroke {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if s, ok := sc.strokes[width]; ok {
		return s
	}
	s := &Stroke{width: width}
	sc.strokes[width] = s
	return s
}

// Len returns the number of distinct strokes held.
func (sc *StrokeCache) Len() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return len(sc.strokes)
}

// Strokes is the process-wide stroke cache.
var Strokes = NewStrokeCache()

// FetchStroke returns the shared stroke of the given width.
func FetchStroke(width float32) *Stroke {
	return Strokes.Fetch(width)
}

// Visible reports whether r overlaps the canvas clip region.
func Visible(c Canvas, r image.Rectangle) bool {
	clip, ok := c.Clip()
	if !ok {
		return true
	}
	return r.Overlaps(clip)
}
