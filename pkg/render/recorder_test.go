package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRecorderKeepsOrderAndState(t *testing.T) {
	rec := NewRecorder()
	rec.SetColor(Red)
	rec.FillRect(1, 2, 3, 4)
	rec.SetColor(Blue)
	rec.SetStroke(FetchStroke(2))
	rec.DrawRect(0, 0, 10, 10)
	rec.FillOval(5, 5, 0, 0)

	want := []Op{
		{Kind: OpFillRect, Rect: image.Rect(1, 2, 4, 6), Color: Red},
		{Kind: OpDrawRect, Rect: image.Rect(0, 0, 10, 10), Color: Blue, StrokeWidth: 2},
		{Kind: OpFillOval, Rect: image.Rectangle{Min: image.Pt(5, 5), Max: image.Pt(5, 5)}, Color: Blue},
	}
	if d := cmp.Diff(want, rec.Ops); d != "" {
		t.Errorf("recorded ops mismatch (-want +got):\n%s", d)
	}
	if rec.Count(OpFillRect) != 1 || rec.Count(OpDrawRect) != 1 || rec.Count(OpFillOval) != 1 {
		t.Errorf("unexpected counts in %v", rec.Ops)
	}
}

func TestRecorderKeepsNegativeExtents(t *testing.T) {
	rec := NewRecorder()
	rec.FillOval(10, 10, -4, -4)
	if got := rec.Ops[0].Rect; got.Max.X-got.Min.X != -4 {
		t.Errorf("rect was canonicalised: %v", got)
	}
}

func TestRecorderClip(t *testing.T) {
	if _, ok := NewRecorder().Clip(); ok {
		t.Error("plain recorder must not report a clip")
	}
	r := image.Rect(0, 0, 50, 50)
	rec := NewClippedRecorder(r)
	got, ok := rec.Clip()
	if !ok || got != r {
		t.Errorf("Clip() = %v, %v", got, ok)
	}
	if !Visible(rec, image.Rect(40, 40, 60, 60)) {
		t.Error("overlapping rect reported invisible")
	}
	if Visible(rec, image.Rect(60, 60, 70, 70)) {
		t.Error("disjoint rect reported visible")
	}
}

func TestRecorderReplay(t *testing.T) {
	src := NewRecorder()
	src.SetColor(color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	src.FillRect(0, 0, 2, 2)
	src.SetStroke(FetchStroke(1))
	src.DrawRect(1, 1, 3, 3)
	src.FillOval(2, 2, 4, 4)

	dst := NewRecorder()
	src.Replay(dst)
	if d := cmp.Diff(src.Ops, dst.Ops); d != "" {
		t.Errorf("replay mismatch (-src +dst):\n%s", d)
	}

	src.Reset()
	if len(src.Ops) != 0 {
		t.Error("Reset kept ops")
	}
}

func TestStrokeCacheSharesStrokes(t *testing.T) {
	sc := NewStrokeCache()
	a := sc.Fetch(1)
	b := sc.Fetch(1)
	c := sc.Fetch(2)
	if a != b {
		t.Error("same width returned different strokes")
	}
	if a == c {
		t.Error("different widths share a stroke")
	}
	if sc.Len() != 2 {
		t.Errorf("Len() = %d, want 2", sc.Len())
	}
	if c.Width() != 2 {
		t.Errorf("Width() = %g", c.Width())
	}
	var nilStroke *Stroke
	if nilStroke.Width() != 1 {
		t.Error("nil stroke should default to one pixel")
	}
}
