package measure

import (
	"fmt"
	"strconv"
)

// DefaultPixelsPerInch is the render scale used unless SetPixelsPerInch
// is called.
const DefaultPixelsPerInch = 200.0

// pixelsPerInch is read and written from the UI goroutine only.
var pixelsPerInch = DefaultPixelsPerInch

// PixelsPerInch returns the current render scale.
func PixelsPerInch() float64 {
	return pixelsPerInch
}

// SetPixelsPerInch changes the render scale. Non-positive values are
// rejected.
func SetPixelsPerInch(ppi float64) error {
	if ppi <= 0 {
		return fmt.Errorf("pixels per inch must be positive, got %g", ppi)
	}
	pixelsPerInch = ppi
	return nil
}

// Size is a physical magnitude paired with a unit.
type Size struct {
	Value float64
	Unit  Unit
}

// NewSize creates a Size.
func NewSize(value float64, unit Unit) Size {
	return Size{Value: value, Unit: unit}
}

// ToPixels converts the size to render space at the current scale.
func (s Size) ToPixels() float64 {
	return s.ToPixelsAt(pixelsPerInch)
}

// ToPixelsAt converts the size to render space at the given scale.
func (s Size) ToPixelsAt(ppi float64) float64 {
	if s.Unit == Pixel {
		return s.Value
	}
	return s.Value * s.Unit.inchesPer() * ppi
}

// PixelsInt converts the size to render space and truncates toward zero.
func (s Size) PixelsInt() int {
	return int(s.ToPixels())
}

// Convert expresses the size in another unit. Conversions to or from
// Pixel use the current scale.
func (s Size) Convert(to Unit) Size {
	if s.Unit == to {
		return s
	}
	if to == Pixel {
		return Size{Value: s.ToPixels(), Unit: Pixel}
	}
	inches := s.Value * s.Unit.inchesPer()
	if s.Unit == Pixel {
		inches = s.Value / pixelsPerInch
	}
	return Size{Value: inches / to.inchesPer(), Unit: to}
}

// IsZero reports whether the magnitude is zero.
func (s Size) IsZero() bool {
	return s.Value == 0
}

// String formats the size compactly, e.g. "0.07in".
func (s Size) String() string {
	return strconv.FormatFloat(s.Value, 'g', -1, 64) + s.Unit.String()
}

// NearestOdd returns n when it is odd and n+1 otherwise, so a shape of
// that extent can be centred on a single pixel.
func NearestOdd(n int) int {
	if n%2 != 0 {
		return n
	}
	return n + 1
}
