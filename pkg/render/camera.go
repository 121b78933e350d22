package render

import (
	"image"

	"gioui.org/f32"
)

// Camera maps render space onto the viewer window. Render space is the
// pixel space components draw in; the camera adds pan and zoom on top.
type Camera struct {
	// Center position in render space
	CenterX float64
	CenterY float64

	// Zoom level (screen pixels per render pixel)
	Zoom float64

	// Screen dimensions (pixels)
	ScreenWidth  int
	ScreenHeight int
}

// NewCamera creates a camera with default settings
func NewCamera(screenWidth, screenHeight int) *Camera {
	return &Camera{
		Zoom:         1.0,
		CenterX:      float64(screenWidth) / 2,
		CenterY:      float64(screenHeight) / 2,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

// WorldToScreen converts render-space coordinates to screen coordinates
func (c *Camera) WorldToScreen(x, y float64) (float64, float64) {
	sx := (x-c.CenterX)*c.Zoom + float64(c.ScreenWidth)/2.0
	sy := (y-c.CenterY)*c.Zoom + float64(c.ScreenHeight)/2.0
	return sx, sy
}

// ScreenToWorld converts screen coordinates to render-space coordinates
func (c *Camera) ScreenToWorld(screenX, screenY float64) (float64, float64) {
	x := (screenX-float64(c.ScreenWidth)/2.0)/c.Zoom + c.CenterX
	y := (screenY-float64(c.ScreenHeight)/2.0)/c.Zoom + c.CenterY
	return x, y
}

// ScreenToPoint converts a screen position to the nearest render-space pixel.
func (c *Camera) ScreenToPoint(screenX, screenY float64) image.Point {
	x, y := c.ScreenToWorld(screenX, screenY)
	return image.Pt(int(x+0.5), int(y+0.5))
}

// Pan moves the camera by screen pixel offsets
func (c *Camera) Pan(deltaX, deltaY float64) {
	c.CenterX -= deltaX / c.Zoom
	c.CenterY -= deltaY / c.Zoom
}

// ZoomAt zooms in/out at a specific screen position
// factor > 1 zooms in, factor < 1 zooms out
func (c *Camera) ZoomAt(screenX, screenY, factor float64) {
	wx, wy := c.ScreenToWorld(screenX, screenY)

	c.Zoom *= factor
	if c.Zoom < 0.1 {
		c.Zoom = 0.1
	}
	if c.Zoom > 50.0 {
		c.Zoom = 50.0
	}

	// Keep the point under the cursor stationary
	nx, ny := c.ScreenToWorld(screenX, screenY)
	c.CenterX += wx - nx
	c.CenterY += wy - ny
}

// Fit adjusts camera to fit the rectangle in view with some padding
func (c *Camera) Fit(r image.Rectangle) {
	if r.Empty() {
		return
	}
	c.CenterX = float64(r.Min.X+r.Max.X) / 2.0
	c.CenterY = float64(r.Min.Y+r.Max.Y) / 2.0

	zoomX := float64(c.ScreenWidth) * 0.9 / float64(r.Dx())
	zoomY := float64(c.ScreenHeight) * 0.9 / float64(r.Dy())
	if zoomX < zoomY {
		c.Zoom = zoomX
	} else {
		c.Zoom = zoomY
	}
}

// UpdateScreenSize updates camera when window is resized
func (c *Camera) UpdateScreenSize(width, height int) {
	c.ScreenWidth = width
	c.ScreenHeight = height
}

// VisibleBounds returns the render-space area currently on screen.
func (c *Camera) VisibleBounds() image.Rectangle {
	x0, y0 := c.ScreenToWorld(0, 0)
	x1, y1 := c.ScreenToWorld(float64(c.ScreenWidth), float64(c.ScreenHeight))
	return image.Rect(int(x0)-1, int(y0)-1, int(x1)+1, int(y1)+1)
}

// Affine returns the render-space to screen transform for Gio.
func (c *Camera) Affine() f32.Affine2D {
	return f32.Affine2D{}.
		Offset(f32.Pt(float32(-c.CenterX), float32(-c.CenterY))).
		Scale(f32.Point{}, f32.Pt(float32(c.Zoom), float32(c.Zoom))).
		Offset(f32.Pt(float32(c.ScreenWidth)/2, float32(c.ScreenHeight)/2))
}
