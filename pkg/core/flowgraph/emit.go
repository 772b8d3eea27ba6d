package flowgraph

// defaultLinkColor is the render color applied to every emitted link.
// Category-specific coloring belongs to the renderer, keyed on Type.
const defaultLinkColor = "#d0d5dd"

// Node is one rendered flow-graph node: a resolved statement quantity with
// its display title, color and a pre-formatted currency label.
type Node struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Color string  `json:"color,omitempty"`
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// Link is one rendered flow between two node IDs.
type Link struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Value  float64 `json:"value"`
	Type   string  `json:"type,omitempty"`
	Color  string  `json:"color"`
}

// Graph is the compiled output handed to the layout layer: nodes in
// template order, links in apportionment order. It carries no geometry.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// labelLookup maps a concept tag to its human-readable label. Nodes
// without a configured title fall back to this.
type labelLookup func(tag string) string

// emitNode renders one surviving node. Negative values switch to the
// negative-variant title and color when the template defines them, so a
// quarter with a gross loss reads "Gross Loss" in red instead of "Gross
// Profit" in green.
func emitNode(n NodeTemplate, value float64, labels labelLookup) Node {
	title := n.Title
	if value < 0 && n.TitleWhenNegative != "" {
		title = n.TitleWhenNegative
	}
	if title == "" && len(n.Contributions) > 0 && labels != nil {
		title = labels(n.Contributions[0].Tag)
	}
	if title == "" {
		title = n.ID
	}

	color := n.Color
	if value < 0 && n.ColorWhenNegative != "" {
		color = n.ColorWhenNegative
	}

	return Node{
		ID:    n.ID,
		Title: title,
		Color: color,
		Value: value,
		Label: FormatCurrency(value),
	}
}

// emitLink renders one apportioned flow.
func emitLink(f flow) Link {
	return Link{
		Source: f.link.Source,
		Target: f.link.Target,
		Value:  f.value,
		Type:   f.link.Type,
		Color:  defaultLinkColor,
	}
}
