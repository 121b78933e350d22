// Package board provides the prototyping boards components are placed on and
// the presets they are created from.
package board

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/measure"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/render"
)

// Kind is the copper pattern of a board.
type Kind int

const (
	KindVero   Kind = iota // parallel copper strips
	KindPerf               // isolated pads
	KindTriPad             // strips of three connected pads
)

func (k Kind) String() string {
	switch k {
	case KindVero:
		return "vero"
	case KindPerf:
		return "perf"
	case KindTriPad:
		return "tripad"
	default:
		return "unknown"
	}
}

// ParseKind converts the name printed by Kind.String back to a Kind.
func ParseKind(name string) (Kind, error) {
	for _, k := range []Kind{KindVero, KindPerf, KindTriPad} {
		if k.String() == name {
			return k, nil
		}
	}
	return KindVero, fmt.Errorf("unknown board kind %q", name)
}

var (
	// DefaultColor is the substrate colour of a new board.
	DefaultColor = render.ColorBoard
	// DefaultSpacing is the standard 0.1in hole pitch.
	DefaultSpacing = measure.NewSize(0.1, measure.Inch)
)

// Board is a placed board: a rectangle in render space with a hole grid.
// It satisfies component.BoardContext.
type Board struct {
	Name    string
	Kind    Kind
	Color   color.NRGBA
	Spacing measure.Size
	Bounds  image.Rectangle
}

// BoardColor returns the substrate colour.
func (b *Board) BoardColor() color.NRGBA { return b.Color }

// HoleSpacing returns the distance between neighbouring holes.
func (b *Board) HoleSpacing() measure.Size { return b.Spacing }

// Contains reports whether p lies on the board.
func (b *Board) Contains(p image.Point) bool { return p.In(b.Bounds) }

// Validate checks that the board can be laid out.
func (b *Board) Validate() error {
	if b.Bounds.Empty() {
		return errors.New("board area is empty")
	}
	if b.Spacing.ToPixels() <= 0 {
		return fmt.Errorf("hole spacing %v must be positive", b.Spacing)
	}
	return nil
}

// Preset describes a board type the user can place.
type Preset struct {
	Name    string
	Kind    Kind
	Color   color.NRGBA
	Spacing measure.Size
}

// New places a board of this preset over bounds.
func (p Preset) New(bounds image.Rectangle) (*Board, error) {
	b := &Board{
		Name:    p.Name,
		Kind:    p.Kind,
		Color:   p.Color,
		Spacing: p.Spacing,
		Bounds:  bounds.Canon(),
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("board %q: %w", p.Name, err)
	}
	return b, nil
}

// Registry of known board presets
var presets = make(map[string]Preset)

// Register adds a preset, replacing any preset of the same name.
func Register(p Preset) {
	presets[p.Name] = p
}

// Lookup returns a preset by name.
func Lookup(name string) (Preset, bool) {
	p, ok := presets[name]
	return p, ok
}

// Names returns all registered preset names in order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VeroBoard returns the classic strip board preset.
func VeroBoard() Preset {
	return Preset{Name: "Vero Board", Kind: KindVero, Color: DefaultColor, Spacing: DefaultSpacing}
}

// PerfBoard returns the pad-per-hole preset.
func PerfBoard() Preset {
	return Preset{Name: "Perf Board", Kind: KindPerf, Color: DefaultColor, Spacing: DefaultSpacing}
}

// TriPadBoard returns the three-pad strip preset.
func TriPadBoard() Preset {
	return Preset{Name: "TriPad Board", Kind: KindTriPad, Color: DefaultColor, Spacing: DefaultSpacing}
}

func init() {
	Register(VeroBoard())
	Register(PerfBoard())
	Register(TriPadBoard())
}
