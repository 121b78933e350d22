package document

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/OpenTraceLab/OpenTraceLayout/internal/sexpr"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/board"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/component"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/measure"
)

// FormatVersion is the layout file version written by Save.
const FormatVersion = 1

var ErrFormat = errors.New("malformed layout")

// Save writes the document as an s-expression:
//
//	(layout
//	  (version 1)
//	  (ppi 200)
//	  (board "Vero Board" (kind vero) (color "#F8EBB3") (spacing "0.1in") (rect 0 0 400 300))
//	  (component "Trace Cut" (name "Cut1") (point 100 100) (property cutBetweenHoles "true")))
//
// Only properties holding an explicit value are written. Coordinates are
// render-space pixels at the scale recorded in the ppi entry.
func (d *Document) Save(w io.Writer) error {
	root := sexpr.L("layout",
		sexpr.L("version", sexpr.Int(FormatVersion)),
		sexpr.L("ppi", sexpr.Float(measure.PixelsPerInch())))
	for _, b := range d.boards {
		root = append(root, encodeBoard(b))
	}
	for _, c := range d.components {
		n, err := encodeComponent(c)
		if err != nil {
			return err
		}
		root = append(root, n)
	}
	return sexpr.Write(w, root)
}

func encodeBoard(b *board.Board) sexpr.List {
	r := b.Bounds
	return sexpr.L("board", sexpr.Str(b.Name),
		sexpr.L("kind", sexpr.Sym(b.Kind.String())),
		sexpr.L("color", sexpr.Str(component.FormatColor(b.Color))),
		sexpr.L("spacing", sexpr.Str(b.Spacing.String())),
		sexpr.L("rect", sexpr.Int(r.Min.X), sexpr.Int(r.Min.Y), sexpr.Int(r.Max.X), sexpr.Int(r.Max.Y)),
	)
}

func encodeComponent(c component.Component) (sexpr.List, error) {
	n := sexpr.L("component", sexpr.Str(c.Descriptor().Name),
		sexpr.L("name", sexpr.Str(c.Name())))
	for i := 0; i < c.ControlPointCount(); i++ {
		p, err := c.ControlPoint(i)
		if err != nil {
			return nil, err
		}
		n = append(n, sexpr.L("point", sexpr.Int(p.X), sexpr.Int(p.Y)))
	}

	persistent, _ := c.(component.Persistent)
	for _, prop := range c.Properties().All() {
		if persistent != nil && !persistent.IsPropertySet(prop.ID) {
			continue
		}
		text, err := prop.Text(c)
		if err != nil {
			return nil, fmt.Errorf("save %s: %w", c.Name(), err)
		}
		n = append(n, sexpr.L("property", sexpr.Sym(prop.ID), sexpr.Str(text)))
	}
	return n, nil
}

// SaveFile writes the document to path through a temporary file in the same
// directory, so a failed save leaves the old file intact. An existing file
// keeps its permissions; a new one is created 0644.
func (d *Document) SaveFile(path string) error {
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	f, err := os.CreateTemp(filepath.Dir(path), ".otl-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := f.Chmod(mode); err != nil {
		f.Close()
		return err
	}
	if err := d.Save(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// Load reads a document written by Save. Components are restored blank and
// only receive the properties present in the file. A file saved at another
// ppi is moved to the current scale: board rects scale and points on a board
// keep their place in its hole grid. Files without a ppi entry are taken as
// they are.
func Load(r io.Reader) (*Document, error) {
	root, err := sexpr.ParseList(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	if root.Key() != "layout" {
		return nil, fmt.Errorf("%w: top-level list is (%s)", ErrFormat, root.Key())
	}
	if v, ok := root.Find("version"); ok {
		n, err := v.IntAt(1)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFormat, err)
		}
		if n > FormatVersion {
			return nil, fmt.Errorf("%w: version %d is newer than %d", ErrFormat, n, FormatVersion)
		}
	}

	var rs *rescaler
	if v, ok := root.Find("ppi"); ok {
		ppi, err := v.FloatAt(1)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFormat, err)
		}
		if ppi <= 0 {
			return nil, fmt.Errorf("%w: ppi %g must be positive", ErrFormat, ppi)
		}
		if cur := measure.PixelsPerInch(); ppi != cur {
			rs = &rescaler{from: ppi, to: cur}
		}
	}

	d := New()
	for _, n := range root.FindAll("board") {
		b, err := decodeBoard(n)
		if err != nil {
			return nil, err
		}
		rs.board(b)
		if err := d.AddBoard(b); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFormat, err)
		}
	}
	for _, n := range root.FindAll("component") {
		c, err := decodeComponent(n, rs.point)
		if err != nil {
			return nil, err
		}
		if err := d.insert(c); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrFormat, c.Name(), err)
		}
	}
	return d, nil
}

func decodeBoard(n sexpr.List) (*board.Board, error) {
	name, err := n.Text(1)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	b := &board.Board{Name: name, Color: board.DefaultColor, Spacing: board.DefaultSpacing}

	if k, ok := n.Find("kind"); ok {
		s, err := k.Text(1)
		if err == nil {
			b.Kind, err = board.ParseKind(s)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: board %q: %w", ErrFormat, name, err)
		}
	}
	if c, ok := n.Find("color"); ok {
		s, err := c.Text(1)
		if err == nil {
			b.Color, err = component.ParseColor(s)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: board %q: %w", ErrFormat, name, err)
		}
	}
	if sp, ok := n.Find("spacing"); ok {
		s, err := sp.Text(1)
		if err == nil {
			b.Spacing, err = measure.ParseSize(s)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: board %q: %w", ErrFormat, name, err)
		}
	}
	rect, ok := n.Find("rect")
	if !ok {
		return nil, fmt.Errorf("%w: board %q has no rect", ErrFormat, name)
	}
	var v [4]int
	for i := range v {
		if v[i], err = rect.IntAt(i + 1); err != nil {
			return nil, fmt.Errorf("%w: board %q: %w", ErrFormat, name, err)
		}
	}
	b.Bounds = image.Rect(v[0], v[1], v[2], v[3])
	return b, nil
}

func decodeComponent(n sexpr.List, at func(image.Point) image.Point) (component.Component, error) {
	typeName, err := n.Text(1)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	typ, ok := component.Lookup(typeName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typeName)
	}
	c := typ.Restore()

	if nm, ok := n.Find("name"); ok {
		name, err := nm.Text(1)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFormat, err)
		}
		c.SetName(name)
	}

	for i, pt := range n.FindAll("point") {
		x, err := pt.IntAt(1)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrFormat, c.Name(), err)
		}
		y, err := pt.IntAt(2)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrFormat, c.Name(), err)
		}
		if err := c.SetControlPoint(i, at(image.Pt(x, y))); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrFormat, c.Name(), err)
		}
	}

	for _, prop := range n.FindAll("property") {
		id, err := prop.Text(1)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrFormat, c.Name(), err)
		}
		text, err := prop.Text(2)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrFormat, c.Name(), err)
		}
		if err := c.Properties().SetText(c, id, text); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrFormat, c.Name(), err)
		}
	}
	return c, nil
}

// rescaler moves decoded coordinates from the scale a file was saved at to
// the current one. A nil rescaler leaves them alone.
type rescaler struct {
	from, to float64
	boards   []movedBoard
}

type movedBoard struct {
	old  image.Rectangle
	move func(image.Point) image.Point
}

func (r *rescaler) board(b *board.Board) {
	if r == nil {
		return
	}
	old := b.Bounds
	r.boards = append(r.boards, movedBoard{old: old, move: b.Rescale(r.from, r.to)})
}

func (r *rescaler) point(p image.Point) image.Point {
	if r == nil {
		return p
	}
	for i := len(r.boards) - 1; i >= 0; i-- {
		if p.In(r.boards[i].old) {
			return r.boards[i].move(p)
		}
	}
	return board.ScalePoint(p, r.from, r.to)
}
