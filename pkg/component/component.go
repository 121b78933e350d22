// Package component defines the contract every drawable layout component
// satisfies: control points, state-dependent rendering, icon rendering and a
// descriptor-driven property surface for generic editors.
//
// Concrete components live in sub-packages (see package connectivity) and
// register themselves with [Register] so catalogs and document loaders can
// create them by type name.
package component

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/measure"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/render"
)

// State is the interaction status a component is painted in. It is supplied
// per draw call and never stored on the component.
type State int

const (
	StateNormal State = iota
	StateSelected
	StateDragging
)

func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateSelected:
		return "selected"
	case StateDragging:
		return "dragging"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Highlighted reports whether the state paints with the selection colour.
func (s State) Highlighted() bool {
	return s == StateSelected || s == StateDragging
}

// ParseState converts the name printed by State.String back to a State.
func ParseState(name string) (State, error) {
	for _, s := range []State{StateNormal, StateSelected, StateDragging} {
		if s.String() == name {
			return s, nil
		}
	}
	return StateNormal, fmt.Errorf("unknown component state %q", name)
}

// VisibilityPolicy tells the editor when to show a drag handle for a
// control point.
type VisibilityPolicy int

const (
	VisibilityAlways VisibilityPolicy = iota
	VisibilityWhenSelected
	VisibilityNever
)

func (v VisibilityPolicy) String() string {
	switch v {
	case VisibilityAlways:
		return "always"
	case VisibilityWhenSelected:
		return "when-selected"
	case VisibilityNever:
		return "never"
	default:
		return fmt.Sprintf("VisibilityPolicy(%d)", int(v))
	}
}

// ErrIndexOutOfRange is wrapped by every IndexError.
var ErrIndexOutOfRange = errors.New("control point index out of range")

// IndexError reports access to a control point the component does not have.
type IndexError struct {
	Index int
	Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("control point %d out of range [0,%d)", e.Index, e.Count)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// CheckIndex returns an *IndexError unless 0 <= i < count.
func CheckIndex(i, count int) error {
	if i < 0 || i >= count {
		return &IndexError{Index: i, Count: count}
	}
	return nil
}

// ControlPoints is the geometry the interactive editor manipulates.
// SetControlPoint only updates state; repainting after a batch of updates
// is up to the caller.
type ControlPoints interface {
	ControlPointCount() int
	ControlPoint(i int) (image.Point, error)
	SetControlPoint(i int, p image.Point) error
	IsControlPointSticky(i int) bool
	ControlPointVisibility(i int) VisibilityPolicy
}

// DrawingObserver receives notifications about areas a component wants
// tracked while it draws, for auxiliary annotations.
type DrawingObserver interface {
	StartTracking()
	StopTracking()
}

// NopObserver ignores all notifications.
type NopObserver struct{}

func (NopObserver) StartTracking() {}
func (NopObserver) StopTracking()  {}

// Drawable paints the component as placed on the board. Draw must not
// modify the component.
type Drawable interface {
	Draw(c render.Canvas, state State, obs DrawingObserver)
}

// IconDrawable paints a fixed representation for catalogs, independent of
// placement and state.
type IconDrawable interface {
	DrawIcon(c render.Canvas, width, height int)
}

// Component is the full capability set of a layout component.
type Component interface {
	ControlPoints
	Drawable
	IconDrawable

	// Descriptor returns the static metadata of the component type.
	Descriptor() *TypeDescriptor
	// Properties returns the descriptor table shared by all instances of
	// the type.
	Properties() *PropertyTable

	Name() string
	SetName(name string)
}

// BoardContext exposes the values a component may borrow from the board
// beneath it.
type BoardContext interface {
	BoardColor() color.NRGBA
	HoleSpacing() measure.Size
}

// BoardAware components fill unset contextual values from the board they
// are placed on.
type BoardAware interface {
	AdoptBoard(b BoardContext)
}

// PaletteAware components resolve unset colours against a palette that the
// document may replace at any time.
type PaletteAware interface {
	SetPalette(p render.Palette)
}

// Bounded components report the render-space area they paint, for hit
// testing and viewport fitting.
type Bounded interface {
	Bounds() image.Rectangle
}

// Persistent components report which properties hold an explicit value.
// Savers skip the others so they stay unset when read back.
type Persistent interface {
	IsPropertySet(id string) bool
}
