// Package sexpr reads and writes the s-expression files layouts are saved
// in. Atoms keep whether they were quoted so that writing a parsed tree back
// reproduces it.
package sexpr

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is an atom or a list.
type Node interface {
	IsLeaf() bool
	String() string
}

// Atom is a symbol, number or quoted string.
type Atom struct {
	Value  string
	Quoted bool
}

func (a Atom) IsLeaf() bool { return true }

func (a Atom) String() string {
	if a.Quoted || needsQuote(a.Value) {
		return quote(a.Value)
	}
	return a.Value
}

// List is a parenthesised sequence of nodes.
type List []Node

func (l List) IsLeaf() bool { return false }

func (l List) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, n := range l {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(n.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Sym returns an unquoted atom.
func Sym(s string) Atom { return Atom{Value: s} }

// Str returns a quoted atom.
func Str(s string) Atom { return Atom{Value: s, Quoted: true} }

// Int returns a numeric atom.
func Int(i int) Atom { return Atom{Value: strconv.Itoa(i)} }

// Float returns a numeric atom in the shortest exact form.
func Float(f float64) Atom { return Atom{Value: strconv.FormatFloat(f, 'g', -1, 64)} }

// L builds a list whose head is the symbol key.
func L(key string, args ...Node) List {
	return append(List{Sym(key)}, args...)
}

// Key returns the head symbol of the list, or "" when the list is empty or
// starts with a list.
func (l List) Key() string {
	if len(l) == 0 {
		return ""
	}
	if a, ok := l[0].(Atom); ok && !a.Quoted {
		return a.Value
	}
	return ""
}

// Args returns the elements after the head.
func (l List) Args() []Node {
	if len(l) <= 1 {
		return nil
	}
	return l[1:]
}

// Find returns the first child list whose key is key.
func (l List) Find(key string) (List, bool) {
	for _, n := range l.Args() {
		if sub, ok := n.(List); ok && sub.Key() == key {
			return sub, true
		}
	}
	return nil, false
}

// FindAll returns every child list whose key is key.
func (l List) FindAll(key string) []List {
	var out []List
	for _, n := range l.Args() {
		if sub, ok := n.(List); ok && sub.Key() == key {
			out = append(out, sub)
		}
	}
	return out
}

// Text returns the atom at index i (0 is the key).
func (l List) Text(i int) (string, error) {
	if i < 0 || i >= len(l) {
		return "", fmt.Errorf("(%s): no element %d", l.Key(), i)
	}
	a, ok := l[i].(Atom)
	if !ok {
		return "", fmt.Errorf("(%s): element %d is a list", l.Key(), i)
	}
	return a.Value, nil
}

// IntAt parses the atom at index i as an integer.
func (l List) IntAt(i int) (int, error) {
	s, err := l.Text(i)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("(%s): element %d: %w", l.Key(), i, err)
	}
	return v, nil
}

// FloatAt parses the atom at index i as a float.
func (l List) FloatAt(i int) (float64, error) {
	s, err := l.Text(i)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("(%s): element %d: %w", l.Key(), i, err)
	}
	return v, nil
}

func needsQuote(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if isDelimiter(r) || r == ';' || r == '\\' {
			return true
		}
	}
	return false
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
