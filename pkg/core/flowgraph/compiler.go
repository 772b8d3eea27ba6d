package flowgraph

import (
	"errors"
	"fmt"

	"storcky/pkg/core/facts"
)

// ErrPeriodNotFound reports a compile request naming a period the dataset
// does not hold. It is the only condition that aborts a compile; every
// other irregularity degrades to a zero or NaN value instead.
var ErrPeriodNotFound = errors.New("period not found in dataset")

// Compiler turns company datasets into flow graphs against a fixed base
// template. One Compiler serves concurrent requests: each Compile call
// allocates its own working pools and never mutates the base template or
// the dataset it is given.
type Compiler struct {
	base Template
}

// NewCompiler creates a compiler around a base template, typically the
// built-in income-statement layout or one loaded from a template file.
func NewCompiler(base Template) *Compiler {
	return &Compiler{base: base}
}

// Compile resolves one period of a dataset into a renderable graph. The
// optional override template is merged onto the base before resolution, so
// callers can recolor, retitle or extend the layout per request.
//
// The pass runs in stages: seed current and prior working pools from the
// period's facts, resolve every node's display value, drop zero-valued
// nodes, filter links by endpoint survival and condition, apportion flow
// magnitudes in link order, then emit the graph.
func (c *Compiler) Compile(dataset facts.CompanyDataset, periodID string, override *Template) (*Graph, error) {
	period, ok := dataset.FindPeriod(periodID)
	if !ok {
		return nil, fmt.Errorf("period %q: %w", periodID, ErrPeriodNotFound)
	}

	current := facts.BuildValueIndex(period)
	var prior map[string]float64
	if pp, ok := dataset.PriorPeriod(period); ok {
		prior = facts.BuildValueIndex(pp)
	}

	tpl := Merge(c.base, override)
	nodes := tpl.nodeIndex()
	p := newPools(current, prior)

	values := resolveAll(tpl.Nodes, p)
	rendered := make(map[string]bool, len(tpl.Nodes))
	for id, v := range values {
		rendered[id] = renders(v)
	}

	flows := apportion(activeLinks(tpl.Links, values, rendered), nodes, values, p)

	graph := &Graph{
		Nodes: make([]Node, 0, len(tpl.Nodes)),
		Links: make([]Link, 0, len(flows)),
	}
	for _, n := range tpl.Nodes {
		if !rendered[n.ID] {
			continue
		}
		graph.Nodes = append(graph.Nodes, emitNode(n, values[n.ID], dataset.ConceptLabel))
	}
	for _, f := range flows {
		graph.Links = append(graph.Links, emitLink(f))
	}
	return graph, nil
}
