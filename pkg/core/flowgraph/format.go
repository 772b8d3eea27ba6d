package flowgraph

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders a node value label in accounting style:
// thousands-grouped dollars with negatives parenthesized rather than
// prefixed with a minus sign. Whole amounts drop the cents. A NaN value,
// the sentinel for a fact that failed to parse, renders as "N/A" so defect
// data stays visible in the graph.
func FormatCurrency(v float64) string {
	if math.IsNaN(v) {
		return "N/A"
	}

	d := decimal.NewFromFloat(v).Round(2)
	negative := d.IsNegative()
	d = d.Abs()

	var digits string
	if d.IsInteger() {
		digits = groupThousands(d.StringFixed(0))
	} else {
		fixed := d.StringFixed(2)
		dot := strings.IndexByte(fixed, '.')
		digits = groupThousands(fixed[:dot]) + fixed[dot:]
	}

	if negative {
		return "($" + digits + ")"
	}
	return "$" + digits
}

// groupThousands inserts commas into a plain digit string.
func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
