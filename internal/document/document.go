// Package document holds a layout: the boards, the components placed on them
// and the interaction state the editor paints them in.
package document

import (
	"errors"
	"fmt"
	"image"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/board"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/component"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/render"
)

var (
	ErrUnknownType   = errors.New("unknown component type")
	ErrDuplicate     = errors.New("component already in document")
	ErrNotInDocument = errors.New("component not in document")
)

// hitSlop is how far from a control point a click still selects a component
// that does not report its bounds.
const hitSlop = 3

// Document is a layout being edited. It is not safe for concurrent use.
type Document struct {
	boards     []*board.Board
	components []component.Component
	states     map[component.Component]component.State
	palette    render.Palette

	// Observer receives tracking notifications from drawing components.
	Observer component.DrawingObserver
}

// New creates an empty document using the default palette.
func New() *Document {
	return &Document{
		states:   make(map[component.Component]component.State),
		palette:  render.DefaultPalette(),
		Observer: component.NopObserver{},
	}
}

// AddBoard places a board on top of the existing ones.
func (d *Document) AddBoard(b *board.Board) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("board %q: %w", b.Name, err)
	}
	d.boards = append(d.boards, b)
	return nil
}

// Boards returns the boards from bottom to top.
func (d *Document) Boards() []*board.Board {
	return append([]*board.Board(nil), d.boards...)
}

// BoardAt returns the topmost board containing p.
func (d *Document) BoardAt(p image.Point) (*board.Board, bool) {
	for i := len(d.boards) - 1; i >= 0; i-- {
		if d.boards[i].Contains(p) {
			return d.boards[i], true
		}
	}
	return nil, false
}

// Place creates a component of the named type as the user would, moves its
// first control point to p and adds it.
func (d *Document) Place(typeName string, p image.Point) (component.Component, error) {
	typ, ok := component.Lookup(typeName)
	if !ok {
		return nil, fmt.Errorf("%q: %w", typeName, ErrUnknownType)
	}
	c := typ.New()
	if err := c.SetControlPoint(0, p); err != nil {
		return nil, err
	}
	if err := d.Add(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Add inserts a newly placed component. Unnamed components get the next
// free name for their type prefix, and board-aware components adopt the
// board under their first control point.
func (d *Document) Add(c component.Component) error {
	if err := d.insert(c); err != nil {
		return err
	}
	if ba, ok := c.(component.BoardAware); ok && c.ControlPointCount() > 0 {
		p, err := c.ControlPoint(0)
		if err == nil {
			if b, ok := d.BoardAt(p); ok {
				ba.AdoptBoard(b)
			}
		}
	}
	return nil
}

// insert adds c without consulting the board beneath, as done for
// components read from a file.
func (d *Document) insert(c component.Component) error {
	if d.indexOf(c) >= 0 {
		return ErrDuplicate
	}
	if c.Name() == "" {
		c.SetName(d.nextName(c.Descriptor().InstanceNamePrefix))
	}
	if pa, ok := c.(component.PaletteAware); ok {
		pa.SetPalette(d.palette)
	}
	d.components = append(d.components, c)
	return nil
}

func (d *Document) nextName(prefix string) string {
	used := make(map[int]bool)
	for _, c := range d.components {
		if n, ok := strings.CutPrefix(c.Name(), prefix); ok {
			if i, err := strconv.Atoi(n); err == nil {
				used[i] = true
			}
		}
	}
	i := 1
	for used[i] {
		i++
	}
	return prefix + strconv.Itoa(i)
}

func (d *Document) indexOf(c component.Component) int {
	for i, x := range d.components {
		if x == c {
			return i
		}
	}
	return -1
}

// Remove deletes c from the document.
func (d *Document) Remove(c component.Component) error {
	i := d.indexOf(c)
	if i < 0 {
		return ErrNotInDocument
	}
	d.components = append(d.components[:i], d.components[i+1:]...)
	delete(d.states, c)
	return nil
}

// Components returns the components in insertion order.
func (d *Document) Components() []component.Component {
	return append([]component.Component(nil), d.components...)
}

// Find returns the component with the given name.
func (d *Document) Find(name string) (component.Component, bool) {
	for _, c := range d.components {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// ordered returns the components sorted for painting: ascending z-order,
// insertion order within a layer.
func (d *Document) ordered() []component.Component {
	out := d.Components()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Descriptor().ZOrder < out[j].Descriptor().ZOrder
	})
	return out
}

// HitTest returns the topmost component at p.
func (d *Document) HitTest(p image.Point) (component.Component, bool) {
	cs := d.ordered()
	for i := len(cs) - 1; i >= 0; i-- {
		if hits(cs[i], p) {
			return cs[i], true
		}
	}
	return nil, false
}

func hits(c component.Component, p image.Point) bool {
	if b, ok := c.(component.Bounded); ok {
		return p.In(b.Bounds())
	}
	for i := 0; i < c.ControlPointCount(); i++ {
		cp, err := c.ControlPoint(i)
		if err != nil {
			continue
		}
		d := cp.Sub(p)
		if d.X*d.X+d.Y*d.Y <= hitSlop*hitSlop {
			return true
		}
	}
	return false
}

// State returns the paint state of c.
func (d *Document) State(c component.Component) component.State {
	return d.states[c]
}

// SetState changes the paint state of c.
func (d *Document) SetState(c component.Component, s component.State) error {
	if d.indexOf(c) < 0 {
		return ErrNotInDocument
	}
	if s == component.StateNormal {
		delete(d.states, c)
		return nil
	}
	d.states[c] = s
	return nil
}

// Select makes cs the selection, replacing the previous one.
func (d *Document) Select(cs ...component.Component) error {
	for _, c := range cs {
		if d.indexOf(c) < 0 {
			return ErrNotInDocument
		}
	}
	clear(d.states)
	for _, c := range cs {
		d.states[c] = component.StateSelected
	}
	return nil
}

// Selection returns the selected or dragged components in insertion order.
func (d *Document) Selection() []component.Component {
	var out []component.Component
	for _, c := range d.components {
		if d.states[c].Highlighted() {
			out = append(out, c)
		}
	}
	return out
}

// Palette returns the palette unset component colours resolve to.
func (d *Document) Palette() render.Palette { return d.palette }

// SetPalette switches the palette for every palette-aware component.
func (d *Document) SetPalette(p render.Palette) {
	d.palette = p
	for _, c := range d.components {
		if pa, ok := c.(component.PaletteAware); ok {
			pa.SetPalette(p)
		}
	}
}

// Bounds returns the area covered by boards and bounded components.
func (d *Document) Bounds() image.Rectangle {
	var r image.Rectangle
	for _, b := range d.boards {
		r = r.Union(b.Bounds)
	}
	for _, c := range d.components {
		if b, ok := c.(component.Bounded); ok {
			r = r.Union(b.Bounds())
		}
	}
	return r
}

// DrawError records a component that failed to draw.
type DrawError struct {
	Name  string
	Type  string
	Cause any
}

func (e *DrawError) Error() string {
	return fmt.Sprintf("draw %s (%s): %v", e.Name, e.Type, e.Cause)
}

func (e *DrawError) Unwrap() error {
	err, _ := e.Cause.(error)
	return err
}

// Draw paints the boards and then every component in z-order. A component
// that panics is skipped; the others still draw. The failures are logged
// and returned joined.
func (d *Document) Draw(c render.Canvas) error {
	for _, b := range d.boards {
		b.Draw(c)
	}

	var errs []error
	for _, comp := range d.ordered() {
		if err := d.drawComponent(c, comp); err != nil {
			log.Printf("document: %v", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (d *Document) drawComponent(c render.Canvas, comp component.Component) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &DrawError{Name: comp.Name(), Type: comp.Descriptor().Name, Cause: r}
		}
	}()
	comp.Draw(c, d.State(comp), d.Observer)
	return nil
}
