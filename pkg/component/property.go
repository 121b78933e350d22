package component

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/measure"
)

// Kind is the type tag of an editable property.
type Kind int

const (
	KindSize Kind = iota
	KindColor
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindSize:
		return "size"
	case KindColor:
		return "color"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

var (
	ErrUnknownProperty = errors.New("unknown property")
	ErrPropertyKind    = errors.New("value does not match property kind")
	ErrWrongComponent  = errors.New("property does not belong to component type")
)

// Property describes one editable attribute. ID is the stable identifier
// used in files; Label is what an editor shows.
type Property struct {
	ID    string
	Label string
	Kind  Kind

	get func(Component) (any, error)
	set func(Component, any) error
}

// NewProperty builds a property from typed accessors. V must be
// measure.Size, color.NRGBA or bool; anything else panics, since tables are
// built once at package initialisation.
func NewProperty[C Component, V any](id, label string, get func(C) V, set func(C, V)) Property {
	var zero V
	var kind Kind
	switch any(zero).(type) {
	case measure.Size:
		kind = KindSize
	case color.NRGBA:
		kind = KindColor
	case bool:
		kind = KindBool
	default:
		panic(fmt.Sprintf("component: property %q has unsupported type %T", id, zero))
	}

	return Property{
		ID:    id,
		Label: label,
		Kind:  kind,
		get: func(c Component) (any, error) {
			typed, ok := c.(C)
			if !ok {
				return nil, fmt.Errorf("property %q on %T: %w", id, c, ErrWrongComponent)
			}
			return get(typed), nil
		},
		set: func(c Component, v any) error {
			typed, ok := c.(C)
			if !ok {
				return fmt.Errorf("property %q on %T: %w", id, c, ErrWrongComponent)
			}
			value, ok := v.(V)
			if !ok {
				return fmt.Errorf("property %q wants %v, got %T: %w", id, kind, v, ErrPropertyKind)
			}
			set(typed, value)
			return nil
		},
	}
}

// Get reads the property from c. Lazily defaulted attributes resolve here,
// so the result is never an unset value.
func (p Property) Get(c Component) (any, error) {
	return p.get(c)
}

// Set writes v to c.
func (p Property) Set(c Component, v any) error {
	return p.set(c, v)
}

// Text reads the property from c and formats it.
func (p Property) Text(c Component) (string, error) {
	v, err := p.get(c)
	if err != nil {
		return "", err
	}
	return FormatValue(p.Kind, v)
}

// SetText parses text according to the property kind and writes it to c.
func (p Property) SetText(c Component, text string) error {
	v, err := ParseValue(p.Kind, text)
	if err != nil {
		return fmt.Errorf("property %q: %w", p.ID, err)
	}
	return p.set(c, v)
}

// PropertyTable is the ordered set of editable properties of a component
// type. Tables are immutable after construction.
type PropertyTable struct {
	props []Property
	byID  map[string]int
}

// NewPropertyTable builds a table. Duplicate IDs panic.
func NewPropertyTable(props ...Property) *PropertyTable {
	t := &PropertyTable{
		props: append([]Property(nil), props...),
		byID:  make(map[string]int, len(props)),
	}
	for i, p := range t.props {
		if _, dup := t.byID[p.ID]; dup {
			panic(fmt.Sprintf("component: duplicate property %q", p.ID))
		}
		t.byID[p.ID] = i
	}
	return t
}

// All returns the properties in declaration order.
func (t *PropertyTable) All() []Property {
	return append([]Property(nil), t.props...)
}

// Len returns the number of properties.
func (t *PropertyTable) Len() int { return len(t.props) }

// Lookup finds a property by ID.
func (t *PropertyTable) Lookup(id string) (Property, bool) {
	i, ok := t.byID[id]
	if !ok {
		return Property{}, false
	}
	return t.props[i], true
}

func (t *PropertyTable) mustLookup(id string) (Property, error) {
	p, ok := t.Lookup(id)
	if !ok {
		return Property{}, fmt.Errorf("property %q: %w", id, ErrUnknownProperty)
	}
	return p, nil
}

// Get reads property id from c.
func (t *PropertyTable) Get(c Component, id string) (any, error) {
	p, err := t.mustLookup(id)
	if err != nil {
		return nil, err
	}
	return p.Get(c)
}

// Set writes v to property id of c.
func (t *PropertyTable) Set(c Component, id string, v any) error {
	p, err := t.mustLookup(id)
	if err != nil {
		return err
	}
	return p.Set(c, v)
}

// Text reads property id from c as text.
func (t *PropertyTable) Text(c Component, id string) (string, error) {
	p, err := t.mustLookup(id)
	if err != nil {
		return "", err
	}
	return p.Text(c)
}

// SetText parses text and writes it to property id of c.
func (t *PropertyTable) SetText(c Component, id, text string) error {
	p, err := t.mustLookup(id)
	if err != nil {
		return err
	}
	return p.SetText(c, text)
}

// FormatValue renders a property value as text.
func FormatValue(kind Kind, v any) (string, error) {
	switch kind {
	case KindSize:
		if s, ok := v.(measure.Size); ok {
			return s.String(), nil
		}
	case KindColor:
		if c, ok := v.(color.NRGBA); ok {
			return FormatColor(c), nil
		}
	case KindBool:
		if b, ok := v.(bool); ok {
			return strconv.FormatBool(b), nil
		}
	}
	return "", fmt.Errorf("format %T as %v: %w", v, kind, ErrPropertyKind)
}

// ParseValue reads text produced by FormatValue.
func ParseValue(kind Kind, text string) (any, error) {
	switch kind {
	case KindSize:
		s, err := measure.ParseSize(text)
		if err != nil {
			return nil, err
		}
		if s.Value < 0 {
			return nil, fmt.Errorf("size %v must not be negative", s)
		}
		return s, nil
	case KindColor:
		return ParseColor(text)
	case KindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(text))
		if err != nil {
			return nil, fmt.Errorf("parse bool %q: %w", text, err)
		}
		return b, nil
	}
	return nil, fmt.Errorf("parse %v: %w", kind, ErrPropertyKind)
}

// FormatColor renders c as #RRGGBB, or #RRGGBBAA when not opaque.
func FormatColor(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// ParseColor reads #RRGGBB or #RRGGBBAA (the leading # is optional).
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("parse color %q: want #RRGGBB or #RRGGBBAA", s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	if len(hex) == 6 {
		n = n<<8 | 0xff
	}
	return color.NRGBA{
		R: uint8(n >> 24),
		G: uint8(n >> 16),
		B: uint8(n >> 8),
		A: uint8(n),
	}, nil
}
