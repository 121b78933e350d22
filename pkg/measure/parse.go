package measure

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var sizeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

type sizeExpr struct {
	Value float64 `parser:"@Number"`
	Unit  string  `parser:"@Ident"`
}

var sizeParser = participle.MustBuild[sizeExpr](
	participle.Lexer(sizeLexer),
	participle.Elide("Whitespace"),
)

// ParseSize reads a size such as "0.07in", "0.5 mm" or "1e-1 cm".
func ParseSize(s string) (Size, error) {
	expr, err := sizeParser.ParseString("", s)
	if err != nil {
		return Size{}, fmt.Errorf("parse size %q: %w", s, err)
	}
	unit, err := ParseUnit(expr.Unit)
	if err != nil {
		return Size{}, fmt.Errorf("parse size %q: %w", s, err)
	}
	return Size{Value: expr.Value, Unit: unit}, nil
}

// MustParseSize is like ParseSize but panics on malformed input. It is
// meant for package-level defaults.
func MustParseSize(s string) Size {
	size, err := ParseSize(s)
	if err != nil {
		panic(err)
	}
	return size
}
