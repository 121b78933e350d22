package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// kappa places cubic Bézier control points on a quarter ellipse.
const kappa = 0.5522847498

// RasterCanvas paints into an RGBA image. It backs PNG export.
type RasterCanvas struct {
	img     *image.RGBA
	clip    image.Rectangle
	clipped bool
	color   color.NRGBA
	stroke  *Stroke
}

// NewRasterCanvas creates a canvas of the given pixel size filled with bg.
func NewRasterCanvas(width, height int, bg color.NRGBA) (*RasterCanvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, xdraw.Src)
	return &RasterCanvas{
		img:   img,
		color: color.NRGBA{A: 255},
	}, nil
}

// SetClip restricts painting to r.
func (c *RasterCanvas) SetClip(r image.Rectangle) {
	c.clip = r
	c.clipped = true
}

// Image returns the painted image.
func (c *RasterCanvas) Image() *image.RGBA { return c.img }

func (c *RasterCanvas) SetColor(col color.NRGBA) { c.color = col }

func (c *RasterCanvas) SetStroke(s *Stroke) { c.stroke = s }

func (c *RasterCanvas) Clip() (image.Rectangle, bool) { return c.clip, c.clipped }

func (c *RasterCanvas) FillRect(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.fill(image.Rect(x, y, x+w, y+h))
}

// DrawRect outlines the rectangle spanning x..x+w and y..y+h inclusive.
func (c *RasterCanvas) DrawRect(x, y, w, h int) {
	if w < 0 || h < 0 {
		return
	}
	t := int(math.Ceil(float64(c.stroke.Width())))
	if t < 1 {
		t = 1
	}
	c.fill(image.Rect(x, y, x+w+1, y+t))         // top
	c.fill(image.Rect(x, y+h+1-t, x+w+1, y+h+1)) // bottom
	c.fill(image.Rect(x, y, x+t, y+h+1))         // left
	c.fill(image.Rect(x+w+1-t, y, x+w+1, y+h+1)) // right
}

func (c *RasterCanvas) FillOval(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	box := image.Rect(x, y, x+w, y+h)
	target := c.bounds().Intersect(box)
	if target.Empty() {
		return
	}

	rx, ry := float32(w)/2, float32(h)/2
	kx, ky := rx*kappa, ry*kappa
	z := vector.NewRasterizer(w, h)
	z.MoveTo(2*rx, ry)
	z.CubeTo(2*rx, ry+ky, rx+kx, 2*ry, rx, 2*ry)
	z.CubeTo(rx-kx, 2*ry, 0, ry+ky, 0, ry)
	z.CubeTo(0, ry-ky, rx-kx, 0, rx, 0)
	z.CubeTo(rx+kx, 0, 2*rx, ry-ky, 2*rx, ry)
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	xdraw.DrawMask(c.img, target, image.NewUniform(c.color), image.Point{},
		mask, target.Min.Sub(box.Min), xdraw.Over)
}

func (c *RasterCanvas) fill(r image.Rectangle) {
	r = c.bounds().Intersect(r)
	if r.Empty() {
		return
	}
	xdraw.Draw(c.img, r, image.NewUniform(c.color), image.Point{}, xdraw.Over)
}

func (c *RasterCanvas) bounds() image.Rectangle {
	b := c.img.Bounds()
	if c.clipped {
		b = b.Intersect(c.clip)
	}
	return b
}

// WritePNG encodes the painted image as PNG.
func (c *RasterCanvas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
