package flowgraph

import "math"

// flow is one apportioned link: the surviving template link plus the
// dollar magnitude assigned to it.
type flow struct {
	link  LinkTemplate
	value float64
}

// apportion walks the surviving links in ascending order and assigns each
// a magnitude from the shared pools, deducting what it consumes so later
// links only see what remains. This is what keeps the graph conservative:
// a dollar that flowed through one link is gone for every link after it.
//
// The value basis of a link is its source node unless Type names another
// node template, in which case that node's contributions and value-source
// mode are used instead while the link still renders from Source. A link
// whose Type names an unknown node falls back to the source itself.
//
// values holds every node's pre-apportionment resolution. A derived node
// shares pool entries with its neighbors (gross profit reads the revenue
// and cost tags), so deducting a link against both endpoints can push the
// live sum of such a node ABOVE what it started with. The claimed ledger
// caps each reported basis at its resolved value minus what earlier links
// already drew from it, whatever its live pool sum reads.
func apportion(links []LinkTemplate, nodes map[string]NodeTemplate, values map[string]float64, p *pools) []flow {
	flows := make([]flow, 0, len(links))
	claimed := make(map[string]float64, len(nodes))
	for _, l := range links {
		basis := nodes[l.Source]
		if l.Type != "" {
			if t, ok := nodes[l.Type]; ok {
				basis = t
			}
		}
		target := nodes[l.Target]

		sourceRemaining := math.Abs(resolveNodeValue(basis, p))
		if !basis.Unlimited() {
			if budget := math.Abs(values[basis.ID]) - claimed[basis.ID]; budget < sourceRemaining {
				sourceRemaining = budget
			}
		}
		targetRemaining := math.Abs(resolveNodeValue(target, p))

		var magnitude float64
		if basis.Unlimited() {
			// A plug covers whatever the target still needs, no matter
			// how much it has itself supplied already.
			magnitude = targetRemaining
		} else {
			magnitude = math.Min(sourceRemaining, targetRemaining)
		}

		if magnitude != 0 && !math.IsNaN(magnitude) {
			deduct(basis, magnitude, p)
			deduct(target, magnitude, p)
			claimed[basis.ID] += magnitude
		}

		flows = append(flows, flow{link: l, value: magnitude})
	}
	return flows
}

// deduct removes magnitude dollars from each pool entry backing a node's
// contributions. Subtract-action tags are credited instead, so draining a
// node lowers its net value whichever way its tags are signed.
func deduct(n NodeTemplate, magnitude float64, p *pools) {
	pool := p.poolFor(n)
	for _, c := range n.Contributions {
		if c.Adds() {
			pool[c.Tag] -= magnitude
		} else {
			pool[c.Tag] += magnitude
		}
	}
}
