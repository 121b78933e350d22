package measure

import (
	"fmt"
	"strings"
)

// Unit identifies the physical unit of a Size.
type Unit int

const (
	Pixel Unit = iota
	Millimeter
	Centimeter
	Meter
	Inch
	Mil
)

const mmPerInch = 25.4

type unitInfo struct {
	symbol  string
	aliases []string
	mm      float64 // millimetres per unit; zero for Pixel
}

var units = map[Unit]unitInfo{
	Pixel:      {symbol: "px", aliases: []string{"pixel", "pixels"}},
	Millimeter: {symbol: "mm", aliases: []string{"millimeter", "millimeters", "millimetre", "millimetres"}, mm: 1},
	Centimeter: {symbol: "cm", aliases: []string{"centimeter", "centimeters"}, mm: 10},
	Meter:      {symbol: "m", aliases: []string{"meter", "meters", "metre", "metres"}, mm: 1000},
	Inch:       {symbol: "in", aliases: []string{"inch", "inches"}, mm: mmPerInch},
	Mil:        {symbol: "mil", aliases: []string{"mils", "thou"}, mm: mmPerInch / 1000},
}

// String returns the unit symbol, e.g. "in".
func (u Unit) String() string {
	if info, ok := units[u]; ok {
		return info.symbol
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// Valid reports whether u is a known unit.
func (u Unit) Valid() bool {
	_, ok := units[u]
	return ok
}

// inchesPer returns how many inches one unit spans. The ratio is computed
// against the inch so that Inch itself maps to exactly 1.
func (u Unit) inchesPer() float64 {
	return units[u].mm / mmPerInch
}

// ParseUnit resolves a unit symbol or long name, case-insensitively.
func ParseUnit(s string) (Unit, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for u, info := range units {
		if name == info.symbol {
			return u, nil
		}
		for _, alias := range info.aliases {
			if name == alias {
				return u, nil
			}
		}
	}
	return 0, fmt.Errorf("unknown unit %q", s)
}
