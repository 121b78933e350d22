package board

import (
	"image"
	"testing"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/component"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/measure"
)

var _ component.BoardContext = (*Board)(nil)

func TestPresetsRegistered(t *testing.T) {
	names := Names()
	want := []string{"Perf Board", "TriPad Board", "Vero Board"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
	p, ok := Lookup("Vero Board")
	if !ok {
		t.Fatal("Vero Board preset missing")
	}
	if p.Kind != KindVero || p.Spacing != DefaultSpacing || p.Color != DefaultColor {
		t.Errorf("Vero Board preset = %+v", p)
	}
}

func TestNewBoard(t *testing.T) {
	b, err := VeroBoard().New(image.Rect(200, 100, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if b.Bounds != image.Rect(0, 0, 200, 100) {
		t.Errorf("bounds not canonical: %v", b.Bounds)
	}
	if !b.Contains(image.Pt(10, 10)) || b.Contains(image.Pt(200, 50)) {
		t.Error("Contains mismatch")
	}
	if b.BoardColor() != DefaultColor || b.HoleSpacing() != DefaultSpacing {
		t.Errorf("context = %v %v", b.BoardColor(), b.HoleSpacing())
	}
}

func TestNewBoardRejectsInvalid(t *testing.T) {
	if _, err := PerfBoard().New(image.Rectangle{}); err == nil {
		t.Error("expected error for empty area")
	}
	p := PerfBoard()
	p.Spacing = measure.NewSize(0, measure.Millimeter)
	if _, err := p.New(image.Rect(0, 0, 10, 10)); err == nil {
		t.Error("expected error for zero spacing")
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindVero, KindPerf, KindTriPad} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("breadboard"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
