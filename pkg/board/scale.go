package board

import (
	"image"
	"math"
)

// ScalePoint converts a render-space point drawn at one pixels-per-inch
// setting to another.
func ScalePoint(p image.Point, from, to float64) image.Point {
	k := to / from
	return image.Pt(int(math.Round(float64(p.X)*k)), int(math.Round(float64(p.Y)*k)))
}

// Rescale moves the board from render scale from to render scale to. The
// returned function maps a point on the old board onto the new one through
// the hole grid, so a point on a hole centre lands on the same hole.
func (b *Board) Rescale(from, to float64) func(image.Point) image.Point {
	sp0, sp1 := b.pitchAt(from), b.pitchAt(to)
	old := b.Bounds
	b.Bounds = image.Rectangle{Min: ScalePoint(old.Min, from, to), Max: ScalePoint(old.Max, from, to)}
	if sp0 <= 1 || sp1 <= 1 {
		return func(p image.Point) image.Point { return ScalePoint(p, from, to) }
	}

	o0 := old.Min.Add(image.Pt(sp0/2, sp0/2))
	o1 := b.Bounds.Min.Add(image.Pt(sp1/2, sp1/2))
	along := func(d int) int {
		return int(math.Round(float64(d) * float64(sp1) / float64(sp0)))
	}
	return func(p image.Point) image.Point {
		d := p.Sub(o0)
		return o1.Add(image.Pt(along(d.X), along(d.Y)))
	}
}
