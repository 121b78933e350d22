package board

import (
	"image"
	"image/color"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/measure"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/render"
)

var (
	CopperColor = color.NRGBA{R: 0xda, G: 0x8a, B: 0x67, A: 0xff}
	HoleColor   = render.White
)

// pitch is the hole spacing in whole pixels, odd so holes have a centre pixel.
func (b *Board) pitch() int { return b.pitchAt(measure.PixelsPerInch()) }

func (b *Board) pitchAt(ppi float64) int {
	return measure.NearestOdd(int(b.Spacing.ToPixelsAt(ppi)))
}

// Holes returns the centres of the hole grid. The first hole sits half a
// spacing in from the top-left corner.
func (b *Board) Holes() (xs, ys []int) {
	sp := b.pitch()
	if sp <= 1 {
		return nil, nil
	}
	for x := b.Bounds.Min.X + sp/2; x < b.Bounds.Max.X; x += sp {
		xs = append(xs, x)
	}
	for y := b.Bounds.Min.Y + sp/2; y < b.Bounds.Max.Y; y += sp {
		ys = append(ys, y)
	}
	return xs, ys
}

// Draw paints the substrate, the copper pattern and the holes.
func (b *Board) Draw(c render.Canvas) {
	if !render.Visible(c, b.Bounds) {
		return
	}
	r := b.Bounds
	c.SetColor(b.Color)
	c.FillRect(r.Min.X, r.Min.Y, r.Dx(), r.Dy())

	xs, ys := b.Holes()
	if len(xs) == 0 || len(ys) == 0 {
		return
	}
	sp := b.pitch()
	copper := measure.NearestOdd(sp * 4 / 5)
	hole := measure.NearestOdd(sp / 4)

	c.SetColor(CopperColor)
	for _, y := range ys {
		switch b.Kind {
		case KindVero:
			c.FillRect(r.Min.X, y-copper/2, r.Dx(), copper)
		case KindTriPad:
			for i := 0; i < len(xs); i += 3 {
				last := min(i+2, len(xs)-1)
				c.FillRect(xs[i]-copper/2, y-copper/2, xs[last]-xs[i]+copper, copper)
			}
		case KindPerf:
			for _, x := range xs {
				c.FillOval(x-copper/2, y-copper/2, copper, copper)
			}
		}
	}

	c.SetColor(HoleColor)
	for _, y := range ys {
		for _, x := range xs {
			c.FillOval(x-hole/2, y-hole/2, hole, hole)
		}
	}
}

// Snap returns the hole centre nearest to p. Points off the grid, or on a
// board without holes, are returned unchanged.
func (b *Board) Snap(p image.Point) image.Point {
	if !b.Contains(p) {
		return p
	}
	sp := b.pitch()
	if sp <= 1 {
		return p
	}
	origin := b.Bounds.Min.Add(image.Pt(sp/2, sp/2))
	snap := func(v, o, hi int) int {
		i := (v - o + sp/2) / sp
		if v < o {
			i = 0
		}
		s := o + i*sp
		if s >= hi {
			s -= sp
		}
		return s
	}
	return image.Pt(snap(p.X, origin.X, b.Bounds.Max.X), snap(p.Y, origin.Y, b.Bounds.Max.Y))
}
