package flowgraph

// conditionPasses evaluates a link condition against the resolved node
// values. A nil condition always passes. The referenced node's value is
// read from the pre-apportionment resolution, so every condition in a
// template sees the same numbers regardless of link order; a node absent
// from the map counts as zero.
//
// SignPositive requires a strictly positive value and SignNegative accepts
// zero or below, so the two variants partition every real value between
// them. A NaN value fails both, dropping the link along with the defect.
func conditionPasses(c *Condition, values map[string]float64) bool {
	if c == nil {
		return true
	}
	v := values[c.Node]
	switch c.Sign {
	case SignPositive:
		return v > 0
	case SignNegative:
		return v <= 0
	}
	return false
}

// activeLinks filters the merged template's links for one period: a link
// survives when both endpoints rendered and its condition passes. The
// input is already order-sorted, and filtering preserves that order for
// the apportionment pass.
func activeLinks(links []LinkTemplate, values map[string]float64, rendered map[string]bool) []LinkTemplate {
	kept := make([]LinkTemplate, 0, len(links))
	for _, l := range links {
		if !rendered[l.Source] || !rendered[l.Target] {
			continue
		}
		if !conditionPasses(l.Condition, values) {
			continue
		}
		kept = append(kept, l)
	}
	return kept
}
