// Package connectivity holds components that change how copper on a board is
// connected, such as trace cuts.
package connectivity

import (
	"image"
	"image/color"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/component"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/measure"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/render"
)

// Defaults for trace cuts.
var (
	DefaultCutSize     = measure.NewSize(0.07, measure.Inch)
	CutWidth           = measure.NewSize(0.5, measure.Millimeter)
	DefaultHoleSpacing = measure.NewSize(0.1, measure.Inch)
)

const (
	// iconSize is the side of the catalog glyph in pixels.
	iconSize = 16
	// dotInset is how much smaller than the square the inner dot is.
	dotInset = 6
)

// TraceCutDescriptor is the type metadata shared by all trace cuts.
var TraceCutDescriptor = &component.TypeDescriptor{
	Name:               "Trace Cut",
	Category:           "Connectivity",
	Author:             "Branislav Stojkovic",
	Description:        "Designates the place where a trace on the vero board needs to be cut",
	InstanceNamePrefix: "Cut",
	Stretchable:        false,
	ZOrder:             component.ZOrderBoard + 1,
	BOMPolicy:          component.BOMNeverShow,
	AutoEdit:           false,
}

var traceCutProperties = component.NewPropertyTable(
	component.NewProperty("size", "Size", (*TraceCut).Size, (*TraceCut).SetSize),
	component.NewProperty("fillColor", "Fill", (*TraceCut).FillColor, (*TraceCut).SetFillColor),
	component.NewProperty("borderColor", "Border", (*TraceCut).BorderColor, (*TraceCut).SetBorderColor),
	component.NewProperty("cutBetweenHoles", "Cut between holes", (*TraceCut).CutBetweenHoles, (*TraceCut).SetCutBetweenHoles),
	component.NewProperty("boardColor", "Board", (*TraceCut).BoardColor, (*TraceCut).SetBoardColor),
	component.NewProperty("holeSpacing", "Hole spacing", (*TraceCut).HoleSpacing, (*TraceCut).SetHoleSpacing),
)

func init() {
	component.Register(component.Type{
		Descriptor: TraceCutDescriptor,
		New:        func() component.Component { return NewTraceCut() },
		Restore:    func() component.Component { return RestoreTraceCut() },
	})
}

// TraceCut marks a spot where a strip board trace must be severed. It is
// drawn either as a bar between two holes or as a dot-in-box glyph on a hole.
//
// Every attribute may be unset; reads resolve unset attributes against the
// palette and the package defaults without storing the result.
type TraceCut struct {
	name  string
	point image.Point

	size            component.Optional[measure.Size]
	fillColor       component.Optional[color.NRGBA]
	borderColor     component.Optional[color.NRGBA]
	boardColor      component.Optional[color.NRGBA]
	cutBetweenHoles component.Optional[bool]
	holeSpacing     component.Optional[measure.Size]

	palette render.Palette
}

// NewTraceCut creates a cut as placed by the user: between holes.
func NewTraceCut() *TraceCut {
	tc := RestoreTraceCut()
	tc.cutBetweenHoles = component.Some(true)
	return tc
}

// RestoreTraceCut creates a cut with every attribute unset, as read from a
// document that carries none of them.
func RestoreTraceCut() *TraceCut {
	return &TraceCut{palette: render.DefaultPalette()}
}

func (tc *TraceCut) Descriptor() *component.TypeDescriptor { return TraceCutDescriptor }

func (tc *TraceCut) Properties() *component.PropertyTable { return traceCutProperties }

func (tc *TraceCut) Name() string { return tc.name }

func (tc *TraceCut) SetName(name string) { tc.name = name }

// Point returns the anchor.
func (tc *TraceCut) Point() image.Point { return tc.point }

func (tc *TraceCut) Size() measure.Size { return tc.size.Resolve(DefaultCutSize) }

func (tc *TraceCut) SetSize(s measure.Size) { tc.size = component.Some(s) }

func (tc *TraceCut) FillColor() color.NRGBA { return tc.fillColor.Resolve(tc.palette.Fill) }

func (tc *TraceCut) SetFillColor(c color.NRGBA) { tc.fillColor = component.Some(c) }

func (tc *TraceCut) BorderColor() color.NRGBA { return tc.borderColor.Resolve(tc.palette.Border) }

func (tc *TraceCut) SetBorderColor(c color.NRGBA) { tc.borderColor = component.Some(c) }

// BoardColor is the colour of the board beneath, used to paint over the
// trace between holes.
func (tc *TraceCut) BoardColor() color.NRGBA { return tc.boardColor.Resolve(tc.palette.Board) }

func (tc *TraceCut) SetBoardColor(c color.NRGBA) { tc.boardColor = component.Some(c) }

// CutBetweenHoles reports the drawing mode. Unset means false.
func (tc *TraceCut) CutBetweenHoles() bool { return tc.cutBetweenHoles.Resolve(false) }

func (tc *TraceCut) SetCutBetweenHoles(b bool) { tc.cutBetweenHoles = component.Some(b) }

func (tc *TraceCut) HoleSpacing() measure.Size { return tc.holeSpacing.Resolve(DefaultHoleSpacing) }

func (tc *TraceCut) SetHoleSpacing(s measure.Size) { tc.holeSpacing = component.Some(s) }

// AdoptBoard takes board colour and hole spacing from b unless they are
// already set.
func (tc *TraceCut) AdoptBoard(b component.BoardContext) {
	if !tc.boardColor.IsSet() {
		tc.boardColor = component.Some(b.BoardColor())
	}
	if !tc.holeSpacing.IsSet() {
		tc.holeSpacing = component.Some(b.HoleSpacing())
	}
}

// IsPropertySet reports whether property id holds an explicit value.
func (tc *TraceCut) IsPropertySet(id string) bool {
	switch id {
	case "size":
		return tc.size.IsSet()
	case "fillColor":
		return tc.fillColor.IsSet()
	case "borderColor":
		return tc.borderColor.IsSet()
	case "cutBetweenHoles":
		return tc.cutBetweenHoles.IsSet()
	case "boardColor":
		return tc.boardColor.IsSet()
	case "holeSpacing":
		return tc.holeSpacing.IsSet()
	}
	return false
}

// SetPalette replaces the colours unset attributes resolve to.
func (tc *TraceCut) SetPalette(p render.Palette) { tc.palette = p }

func (tc *TraceCut) ControlPointCount() int { return 1 }

func (tc *TraceCut) ControlPoint(i int) (image.Point, error) {
	if err := component.CheckIndex(i, 1); err != nil {
		return image.Point{}, err
	}
	return tc.point, nil
}

func (tc *TraceCut) SetControlPoint(i int, p image.Point) error {
	if err := component.CheckIndex(i, 1); err != nil {
		return err
	}
	tc.point = p
	return nil
}

func (tc *TraceCut) IsControlPointSticky(int) bool { return false }

func (tc *TraceCut) ControlPointVisibility(int) component.VisibilityPolicy {
	return component.VisibilityNever
}

// geometry holds the odd pixel dimensions of one draw call. A dimension
// that is zero or negative in pixels is 0 and its primitives are not drawn.
type geometry struct {
	size, cut, spacing int
}

func (tc *TraceCut) geometry() geometry {
	g := geometry{
		size: oddPixels(tc.Size()),
		cut:  oddPixels(CutWidth),
	}
	if tc.CutBetweenHoles() {
		g.spacing = oddPixels(tc.HoleSpacing())
	}
	return g
}

func oddPixels(s measure.Size) int {
	px := s.PixelsInt()
	if px <= 0 {
		return 0
	}
	return measure.NearestOdd(px)
}

// barRect is the area painted over the trace between holes.
func (tc *TraceCut) barRect(g geometry) image.Rectangle {
	x := tc.point.X - g.spacing/2 - g.cut/2
	y := tc.point.Y - g.size/2 - 1
	return image.Rect(x, y, x+g.cut, y+g.size+2)
}

// boxRect is the dot-in-box square.
func (tc *TraceCut) boxRect(g geometry) image.Rectangle {
	x := tc.point.X - g.size/2
	y := tc.point.Y - g.size/2
	return image.Rect(x, y, x+g.size, y+g.size)
}

// Bounds returns the area Draw paints, including the one pixel the outline
// adds on the right and bottom.
func (tc *TraceCut) Bounds() image.Rectangle {
	g := tc.geometry()
	if tc.CutBetweenHoles() {
		return tc.barRect(g)
	}
	r := tc.boxRect(g)
	r.Max = r.Max.Add(image.Pt(1, 1))
	return r
}

func (tc *TraceCut) Draw(c render.Canvas, state component.State, obs component.DrawingObserver) {
	if !render.Visible(c, tc.Bounds()) {
		return
	}
	g := tc.geometry()

	if tc.CutBetweenHoles() {
		if state.Highlighted() {
			c.SetColor(tc.palette.Selection)
		} else {
			c.SetColor(tc.BoardColor())
		}
		if g.cut > 0 && g.size > 0 {
			r := tc.barRect(g)
			c.FillRect(r.Min.X, r.Min.Y, r.Dx(), r.Dy())
		}
		return
	}

	if g.size <= 0 {
		return
	}
	r := tc.boxRect(g)
	c.SetColor(tc.FillColor())
	c.FillRect(r.Min.X, r.Min.Y, g.size, g.size)
	if state.Highlighted() {
		c.SetColor(tc.palette.Selection)
	} else {
		c.SetColor(tc.BorderColor())
	}
	c.SetStroke(render.FetchStroke(1))
	c.DrawRect(r.Min.X, r.Min.Y, g.size, g.size)
	// The dot shares the outline colour.
	if dot := g.size - dotInset; dot > 0 {
		c.FillOval(tc.point.X-dot/2, tc.point.Y-dot/2, dot, dot)
	}
}

func (tc *TraceCut) DrawIcon(c render.Canvas, width, height int) {
	p := render.DefaultPalette()
	dot := iconSize / 4 * 2
	x, y := (width-iconSize)/2, (height-iconSize)/2

	c.SetColor(p.Fill)
	c.FillRect(x, y, iconSize, iconSize)
	c.SetColor(p.Border)
	c.SetStroke(render.FetchStroke(1))
	c.DrawRect(x, y, iconSize, iconSize)
	c.FillOval((width-dot)/2, (height-dot)/2, dot, dot)
}
