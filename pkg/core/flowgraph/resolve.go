package flowgraph

import "math"

// pools holds the mutable tag-value state for one compile pass. Every node
// reads from and deducts against either the current period's pool or the
// prior period's, so sibling nodes sharing a tag compete for the same
// dollars and nothing is counted twice.
type pools struct {
	current map[string]float64
	prior   map[string]float64
}

// newPools copies the period indexes so a compile pass never mutates the
// caller's data. A dataset with no prior period gets an empty prior pool,
// which makes every prior-period contribution read as zero.
func newPools(current, prior map[string]float64) *pools {
	p := &pools{
		current: make(map[string]float64, len(current)),
		prior:   make(map[string]float64, len(prior)),
	}
	for tag, v := range current {
		p.current[tag] = v
	}
	for tag, v := range prior {
		p.prior[tag] = v
	}
	return p
}

// poolFor selects the pool backing a node's contributions.
func (p *pools) poolFor(n NodeTemplate) map[string]float64 {
	if n.UsePriorPeriod {
		return p.prior
	}
	return p.current
}

// resolveNodeValue sums a node's contributions against its pool. Tags the
// pool does not hold contribute zero. This is a pure read; only the
// apportionment pass mutates pools.
func resolveNodeValue(n NodeTemplate, p *pools) float64 {
	pool := p.poolFor(n)
	total := 0.0
	for _, c := range n.Contributions {
		v := pool[c.Tag]
		if c.Adds() {
			total += v
		} else {
			total -= v
		}
	}
	return total
}

// resolveAll computes the display value of every node before any
// apportionment runs, so link conditions and labels see the values a
// reader of the underlying statement would.
func resolveAll(nodes []NodeTemplate, p *pools) map[string]float64 {
	values := make(map[string]float64, len(nodes))
	for _, n := range nodes {
		values[n.ID] = resolveNodeValue(n, p)
	}
	return values
}

// renders reports whether a node appears in the output. Nodes that
// resolved to exactly zero are dropped; an unparseable value (NaN) still
// renders so the defect is visible rather than silently hidden.
func renders(value float64) bool {
	return math.Abs(value) != 0
}
