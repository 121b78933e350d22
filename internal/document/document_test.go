package document

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/board"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/component"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/component/connectivity"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/render"
)

// fake is a component that logs its draw calls.
type fake struct {
	name  string
	point image.Point
	desc  *component.TypeDescriptor
	log   *[]string
	panic bool
}

var fakeProps = component.NewPropertyTable()

func newFake(name string, z float64, log *[]string) *fake {
	return &fake{
		name: name,
		desc: &component.TypeDescriptor{Name: "Fake", InstanceNamePrefix: "P", ZOrder: z},
		log:  log,
	}
}

func (p *fake) ControlPointCount() int { return 1 }
func (p *fake) ControlPoint(i int) (image.Point, error) {
	return p.point, component.CheckIndex(i, 1)
}
func (p *fake) SetControlPoint(i int, pt image.Point) error {
	if err := component.CheckIndex(i, 1); err != nil {
		return err
	}
	p.point = pt
	return nil
}
func (p *fake) IsControlPointSticky(int) bool { return false }
func (p *fake) ControlPointVisibility(int) component.VisibilityPolicy {
	return component.VisibilityAlways
}
func (p *fake) Draw(c render.Canvas, s component.State, obs component.DrawingObserver) {
	if p.panic {
		panic("broken fake")
	}
	*p.log = append(*p.log, p.name+":"+s.String())
}
func (p *fake) DrawIcon(render.Canvas, int, int)      {}
func (p *fake) Descriptor() *component.TypeDescriptor { return p.desc }
func (p *fake) Properties() *component.PropertyTable  { return fakeProps }
func (p *fake) Name() string                          { return p.name }
func (p *fake) SetName(name string)                   { p.name = name }

func veroDoc(t *testing.T) *Document {
	t.Helper()
	d := New()
	b, err := board.VeroBoard().New(image.Rect(0, 0, 400, 300))
	if err != nil {
		t.Fatal(err)
	}
	if err := d.AddBoard(b); err != nil {
		t.Fatal(err)
	}
	return d
}

func TestPlaceNamesInstances(t *testing.T) {
	d := veroDoc(t)
	var names []string
	for i := 0; i < 3; i++ {
		c, err := d.Place("Trace Cut", image.Pt(10*i, 10))
		if err != nil {
			t.Fatal(err)
		}
		names = append(names, c.Name())
	}
	if names[0] != "Cut1" || names[1] != "Cut2" || names[2] != "Cut3" {
		t.Errorf("names = %v", names)
	}

	first, _ := d.Find("Cut1")
	if err := d.Remove(first); err != nil {
		t.Fatal(err)
	}
	c, err := d.Place("Trace Cut", image.Pt(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if c.Name() != "Cut1" {
		t.Errorf("reused name = %q, want Cut1", c.Name())
	}
	if err := d.Remove(first); !errors.Is(err, ErrNotInDocument) {
		t.Errorf("second Remove err = %v", err)
	}
	if err := d.Add(c); !errors.Is(err, ErrDuplicate) {
		t.Errorf("re-Add err = %v", err)
	}
	if _, err := d.Place("Flux Capacitor", image.Pt(0, 0)); !errors.Is(err, ErrUnknownType) {
		t.Errorf("unknown type err = %v", err)
	}
}

func TestPlaceAdoptsBoard(t *testing.T) {
	d := New()
	custom := board.PerfBoard()
	custom.Color = color.NRGBA{R: 30, G: 90, B: 40, A: 255}
	b, err := custom.New(image.Rect(0, 0, 100, 100))
	if err != nil {
		t.Fatal(err)
	}
	if err := d.AddBoard(b); err != nil {
		t.Fatal(err)
	}

	on, _ := d.Place("Trace Cut", image.Pt(50, 50))
	if got := on.(*connectivity.TraceCut).BoardColor(); got != custom.Color {
		t.Errorf("cut on board has colour %v", got)
	}
	off, _ := d.Place("Trace Cut", image.Pt(500, 500))
	tc := off.(*connectivity.TraceCut)
	if tc.IsPropertySet("boardColor") || tc.BoardColor() != render.ColorBoard {
		t.Errorf("cut off board has colour %v", tc.BoardColor())
	}
}

func TestBoardAtPrefersTopmost(t *testing.T) {
	d := veroDoc(t)
	top, _ := board.PerfBoard().New(image.Rect(50, 50, 100, 100))
	if err := d.AddBoard(top); err != nil {
		t.Fatal(err)
	}
	if b, ok := d.BoardAt(image.Pt(60, 60)); !ok || b != top {
		t.Errorf("BoardAt(60,60) = %v", b)
	}
	if b, ok := d.BoardAt(image.Pt(10, 10)); !ok || b.Kind != board.KindVero {
		t.Errorf("BoardAt(10,10) = %v", b)
	}
	if _, ok := d.BoardAt(image.Pt(-1, 0)); ok {
		t.Error("found board outside every area")
	}
	if err := d.AddBoard(&board.Board{Name: "empty"}); err == nil {
		t.Error("AddBoard accepted an empty board")
	}
}

func TestDrawOrderAndIsolation(t *testing.T) {
	var log []string
	d := New()
	high := newFake("high", component.ZOrderText, &log)
	broken := newFake("broken", component.ZOrderComponent, &log)
	broken.panic = true
	low := newFake("low", component.ZOrderBoard, &log)
	for _, c := range []component.Component{high, broken, low} {
		if err := d.Add(c); err != nil {
			t.Fatal(err)
		}
	}
	if err := d.SetState(high, component.StateDragging); err != nil {
		t.Fatal(err)
	}

	err := d.Draw(render.NewRecorder())
	var de *DrawError
	if !errors.As(err, &de) {
		t.Fatalf("Draw err = %v, want DrawError", err)
	}
	if de.Name != "broken" || de.Type != "Fake" {
		t.Errorf("DrawError = %+v", de)
	}
	want := []string{"low:normal", "high:dragging"}
	if len(log) != len(want) || log[0] != want[0] || log[1] != want[1] {
		t.Errorf("draw log = %v, want %v", log, want)
	}
}

func TestDrawPassesSelection(t *testing.T) {
	d := veroDoc(t)
	c, _ := d.Place("Trace Cut", image.Pt(100, 100))
	if err := d.Select(c); err != nil {
		t.Fatal(err)
	}
	rec := render.NewRecorder()
	if err := d.Draw(rec); err != nil {
		t.Fatal(err)
	}
	last := rec.Ops[len(rec.Ops)-1]
	if last.Color != render.Blue {
		t.Errorf("selected cut painted %v", last.Color)
	}
	if sel := d.Selection(); len(sel) != 1 || sel[0] != c {
		t.Errorf("Selection() = %v", sel)
	}

	if err := d.Select(); err != nil {
		t.Fatal(err)
	}
	if d.State(c) != component.StateNormal {
		t.Errorf("state after clearing = %v", d.State(c))
	}
	if err := d.Select(connectivity.NewTraceCut()); !errors.Is(err, ErrNotInDocument) {
		t.Errorf("selecting a foreign component: %v", err)
	}
}

func TestHitTest(t *testing.T) {
	var log []string
	d := veroDoc(t)
	c, _ := d.Place("Trace Cut", image.Pt(100, 100))
	c.(*connectivity.TraceCut).SetCutBetweenHoles(false)

	p := newFake("", component.ZOrderText, &log)
	p.point = image.Pt(200, 200)
	if err := d.Add(p); err != nil {
		t.Fatal(err)
	}
	if p.Name() != "P1" {
		t.Errorf("fake named %q", p.Name())
	}

	if got, ok := d.HitTest(image.Pt(100, 100)); !ok || got != c {
		t.Errorf("HitTest(100,100) = %v", got)
	}
	if got, ok := d.HitTest(image.Pt(202, 201)); !ok || got != p {
		t.Errorf("HitTest near fake = %v", got)
	}
	if _, ok := d.HitTest(image.Pt(300, 10)); ok {
		t.Error("hit on empty board")
	}
}

func TestSetPalette(t *testing.T) {
	d := veroDoc(t)
	c, _ := d.Place("Trace Cut", image.Pt(500, 500))
	tc := c.(*connectivity.TraceCut)
	tc.SetFillColor(render.Red)

	nord := render.PaletteFor(render.ThemeNord)
	d.SetPalette(nord)
	if tc.BorderColor() != nord.Border {
		t.Errorf("border = %v", tc.BorderColor())
	}
	if tc.FillColor() != render.Red {
		t.Errorf("explicit fill changed to %v", tc.FillColor())
	}

	late := connectivity.NewTraceCut()
	if err := d.Add(late); err != nil {
		t.Fatal(err)
	}
	if late.BorderColor() != nord.Border {
		t.Error("component added later did not get the palette")
	}
}

func TestBounds(t *testing.T) {
	d := veroDoc(t)
	if _, err := d.Place("Trace Cut", image.Pt(500, 500)); err != nil {
		t.Fatal(err)
	}
	r := d.Bounds()
	if r.Min != image.Pt(0, 0) || r.Max.X < 490 || r.Max.Y < 500 {
		t.Errorf("Bounds() = %v", r)
	}
}
