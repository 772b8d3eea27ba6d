package flowgraph

import "sort"

// Merge overlays an override template onto a base template and returns the
// combined result with nodes and links re-sorted by ascending Order. The
// inputs are never modified.
//
// Nodes merge by ID and links by (Source, Target). When both sides carry
// the same entry, the override's populated fields win and its zero-valued
// fields keep the base values. Entries only the override names are
// appended. Merging the same override twice yields the same template.
func Merge(base Template, override *Template) Template {
	merged := Template{
		Nodes: append([]NodeTemplate(nil), base.Nodes...),
		Links: append([]LinkTemplate(nil), base.Links...),
	}

	if override != nil {
		nodeAt := make(map[string]int, len(merged.Nodes))
		for i, n := range merged.Nodes {
			nodeAt[n.ID] = i
		}
		for _, o := range override.Nodes {
			if i, ok := nodeAt[o.ID]; ok {
				merged.Nodes[i] = overlayNode(merged.Nodes[i], o)
			} else {
				nodeAt[o.ID] = len(merged.Nodes)
				merged.Nodes = append(merged.Nodes, o)
			}
		}

		linkAt := make(map[linkKey]int, len(merged.Links))
		for i, l := range merged.Links {
			linkAt[keyOf(l)] = i
		}
		for _, o := range override.Links {
			if i, ok := linkAt[keyOf(o)]; ok {
				merged.Links[i] = overlayLink(merged.Links[i], o)
			} else {
				linkAt[keyOf(o)] = len(merged.Links)
				merged.Links = append(merged.Links, o)
			}
		}
	}

	sort.SliceStable(merged.Nodes, func(i, j int) bool {
		return merged.Nodes[i].Order < merged.Nodes[j].Order
	})
	sort.SliceStable(merged.Links, func(i, j int) bool {
		return merged.Links[i].Order < merged.Links[j].Order
	})
	return merged
}

// linkKey is the merge identity of a link.
type linkKey struct {
	source string
	target string
}

func keyOf(l LinkTemplate) linkKey {
	return linkKey{source: l.Source, target: l.Target}
}

// overlayNode applies the override's populated fields on top of the base
// node. Boolean and mode flags can be set by an override but not cleared,
// since an absent field decodes to the zero value.
func overlayNode(base, o NodeTemplate) NodeTemplate {
	out := base
	if o.Order != 0 {
		out.Order = o.Order
	}
	if o.Title != "" {
		out.Title = o.Title
	}
	if o.TitleWhenNegative != "" {
		out.TitleWhenNegative = o.TitleWhenNegative
	}
	if o.Color != "" {
		out.Color = o.Color
	}
	if o.ColorWhenNegative != "" {
		out.ColorWhenNegative = o.ColorWhenNegative
	}
	if len(o.Contributions) > 0 {
		out.Contributions = o.Contributions
	}
	if o.UsePriorPeriod {
		out.UsePriorPeriod = true
	}
	if o.ValueSource != "" {
		out.ValueSource = o.ValueSource
	}
	return out
}

// overlayLink applies the override's populated fields on top of the base
// link. Source and Target are the identity and never change.
func overlayLink(base, o LinkTemplate) LinkTemplate {
	out := base
	if o.Order != 0 {
		out.Order = o.Order
	}
	if o.Type != "" {
		out.Type = o.Type
	}
	if o.Condition != nil {
		out.Condition = o.Condition
	}
	return out
}
