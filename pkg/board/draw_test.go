package board

import (
	"image"
	"testing"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/render"
)

func TestHoles(t *testing.T) {
	b, err := VeroBoard().New(image.Rect(0, 0, 63, 42))
	if err != nil {
		t.Fatal(err)
	}
	// 0.1in at 200 ppi -> 21px grid
	xs, ys := b.Holes()
	wantX, wantY := []int{10, 31, 52}, []int{10, 31}
	if len(xs) != 3 || len(ys) != 2 {
		t.Fatalf("Holes() = %v, %v", xs, ys)
	}
	for i := range wantX {
		if xs[i] != wantX[i] {
			t.Errorf("xs = %v, want %v", xs, wantX)
		}
	}
	for i := range wantY {
		if ys[i] != wantY[i] {
			t.Errorf("ys = %v, want %v", ys, wantY)
		}
	}
}

func TestDrawPatterns(t *testing.T) {
	tests := []struct {
		preset Preset
		rects  int
		ovals  int
	}{
		{VeroBoard(), 1 + 2, 6},
		{TriPadBoard(), 1 + 2, 6},
		{PerfBoard(), 1, 6 + 6},
	}
	for _, tt := range tests {
		b, err := tt.preset.New(image.Rect(0, 0, 63, 42))
		if err != nil {
			t.Fatal(err)
		}
		rec := render.NewRecorder()
		b.Draw(rec)
		if got := rec.Count(render.OpFillRect); got != tt.rects {
			t.Errorf("%s: %d rects, want %d", tt.preset.Name, got, tt.rects)
		}
		if got := rec.Count(render.OpFillOval); got != tt.ovals {
			t.Errorf("%s: %d ovals, want %d", tt.preset.Name, got, tt.ovals)
		}
		if rec.Ops[0].Color != DefaultColor || rec.Ops[0].Rect != b.Bounds {
			t.Errorf("%s: substrate op = %+v", tt.preset.Name, rec.Ops[0])
		}
	}
}

func TestDrawStripCoversRow(t *testing.T) {
	b, _ := VeroBoard().New(image.Rect(0, 0, 63, 42))
	rec := render.NewRecorder()
	b.Draw(rec)
	strip := rec.Ops[1]
	// copper 21*4/5 = 16 -> 17
	if strip.Color != CopperColor || strip.Rect != image.Rect(0, 2, 63, 19) {
		t.Errorf("first strip = %+v", strip)
	}
}

func TestDrawClipped(t *testing.T) {
	b, _ := VeroBoard().New(image.Rect(0, 0, 63, 42))
	rec := render.NewClippedRecorder(image.Rect(100, 100, 200, 200))
	b.Draw(rec)
	if len(rec.Ops) != 0 {
		t.Errorf("drew %d ops outside the clip", len(rec.Ops))
	}
}

func TestSnap(t *testing.T) {
	b, _ := VeroBoard().New(image.Rect(0, 0, 63, 42))
	tests := []struct{ in, want image.Point }{
		{image.Pt(10, 10), image.Pt(10, 10)},
		{image.Pt(20, 20), image.Pt(10, 10)},
		{image.Pt(21, 21), image.Pt(31, 31)},
		{image.Pt(0, 0), image.Pt(10, 10)},
		{image.Pt(62, 41), image.Pt(52, 31)},
		{image.Pt(100, 100), image.Pt(100, 100)},
	}
	for _, tt := range tests {
		if got := b.Snap(tt.in); got != tt.want {
			t.Errorf("Snap(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
