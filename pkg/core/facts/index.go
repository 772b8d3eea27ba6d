package facts

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseValue converts a fact's string-encoded value to a float64. Values
// arrive as plain decimal strings from the provider, so they go through an
// exact decimal parse first. An unparsable value is defect data and becomes
// NaN rather than 0: zero would silently drop the node during the
// zero-value filter and mask the defect.
func ParseValue(raw string) float64 {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return math.NaN()
	}
	v, _ := d.Float64()
	return v
}

// BuildValueIndex parses a period's facts into a concept-tag -> value map.
// The map is the seed for the compiler's working pools; absent tags read as
// zero at lookup time, so they are simply not stored.
func BuildValueIndex(p Period) map[string]float64 {
	index := make(map[string]float64, len(p.Facts))
	for _, f := range p.Facts {
		index[f.Tag] = ParseValue(f.Value)
	}
	return index
}
