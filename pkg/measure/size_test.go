package measure

import (
	"math"
	"testing"
)

func withScale(t *testing.T, ppi float64) {
	t.Helper()
	old := PixelsPerInch()
	if err := SetPixelsPerInch(ppi); err != nil {
		t.Fatalf("SetPixelsPerInch(%g): %v", ppi, err)
	}
	t.Cleanup(func() { pixelsPerInch = old })
}

func TestToPixelsDefaultScale(t *testing.T) {
	withScale(t, DefaultPixelsPerInch)

	tests := []struct {
		size Size
		want int
	}{
		{NewSize(0.07, Inch), 14},
		{NewSize(0.1, Inch), 20},
		{NewSize(0.5, Millimeter), 3},
		{NewSize(10, Millimeter), 78},
		{NewSize(123, Mil), 24},
		{NewSize(7, Pixel), 7},
		{NewSize(0, Inch), 0},
	}
	for _, tt := range tests {
		if got := tt.size.PixelsInt(); got != tt.want {
			t.Errorf("%v.PixelsInt() = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestToPixelsDeterministic(t *testing.T) {
	withScale(t, 300)
	for _, u := range []Unit{Pixel, Millimeter, Centimeter, Meter, Inch, Mil} {
		for _, v := range []float64{0, 0.07, 0.5, 1, 13.37, -2.5} {
			s := NewSize(v, u)
			a, b := s.ToPixels(), s.ToPixels()
			if a != b {
				t.Errorf("%v converted to %g then %g", s, a, b)
			}
		}
	}
}

func TestScaleChangesConversion(t *testing.T) {
	withScale(t, 100)
	if got := NewSize(1, Inch).ToPixels(); got != 100 {
		t.Fatalf("1in at 100ppi = %g, want 100", got)
	}
	if err := SetPixelsPerInch(0); err == nil {
		t.Fatal("expected error for zero scale")
	}
	if PixelsPerInch() != 100 {
		t.Errorf("rejected scale must not be applied, got %g", PixelsPerInch())
	}
}

func TestToPixelsAtIgnoresGlobalScale(t *testing.T) {
	withScale(t, 100)
	if got := NewSize(2, Inch).ToPixelsAt(300); got != 600 {
		t.Errorf("2in at 300ppi = %g, want 600", got)
	}
	if got := NewSize(7, Pixel).ToPixelsAt(300); got != 7 {
		t.Errorf("7px at 300ppi = %g, want 7", got)
	}
}

func TestNearestOdd(t *testing.T) {
	for n := -50; n <= 50; n++ {
		got := NearestOdd(n)
		if got%2 == 0 {
			t.Errorf("NearestOdd(%d) = %d is even", n, got)
		}
		if d := got - n; d < -1 || d > 1 {
			t.Errorf("NearestOdd(%d) = %d is too far away", n, got)
		}
	}
	if NearestOdd(14) != 15 || NearestOdd(15) != 15 || NearestOdd(0) != 1 {
		t.Error("unexpected rounding for 14, 15 or 0")
	}
}

func TestConvert(t *testing.T) {
	withScale(t, DefaultPixelsPerInch)

	mm := NewSize(1, Inch).Convert(Millimeter)
	if math.Abs(mm.Value-25.4) > 1e-9 || mm.Unit != Millimeter {
		t.Errorf("1in in mm = %v", mm)
	}
	px := NewSize(0.5, Inch).Convert(Pixel)
	if px.Value != 100 {
		t.Errorf("0.5in in px = %v", px)
	}
	back := px.Convert(Inch)
	if math.Abs(back.Value-0.5) > 1e-9 {
		t.Errorf("100px in inches = %v", back)
	}
	same := NewSize(3, Mil)
	if same.Convert(Mil) != same {
		t.Error("converting to the same unit must be the identity")
	}
}

func TestSizeString(t *testing.T) {
	if got := NewSize(0.07, Inch).String(); got != "0.07in" {
		t.Errorf("String() = %q", got)
	}
	if got := NewSize(0.5, Millimeter).String(); got != "0.5mm" {
		t.Errorf("String() = %q", got)
	}
}
