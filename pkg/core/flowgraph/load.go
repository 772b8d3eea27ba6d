package flowgraph

import (
	"fmt"
	"os"

	"storcky/pkg/core/utils"
)

// ParseTemplate decodes a template from JSON bytes. Hand-edited files and
// client payloads are accepted leniently: comments, unquoted keys and
// trailing commas all parse. An override template may legitimately carry
// only nodes or only links, so the only structural check is that every
// condition carries a known sign; a typo there would otherwise fail the
// condition silently and drop the link from the layout.
func ParseTemplate(data []byte) (Template, error) {
	var tpl Template
	if err := utils.DecodeLenient(data, &tpl); err != nil {
		return Template{}, fmt.Errorf("parse template: %w", err)
	}
	for _, l := range tpl.Links {
		if c := l.Condition; c != nil && c.Sign != SignPositive && c.Sign != SignNegative {
			return Template{}, fmt.Errorf("link %s->%s: unknown condition sign %q",
				l.Source, l.Target, c.Sign)
		}
	}
	return tpl, nil
}

// LoadTemplateFile reads a base template from disk. Unlike an override, a
// base template must define at least one node to be usable.
func LoadTemplateFile(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, fmt.Errorf("read template %s: %w", path, err)
	}
	tpl, err := ParseTemplate(data)
	if err != nil {
		return Template{}, fmt.Errorf("template %s: %w", path, err)
	}
	if len(tpl.Nodes) == 0 {
		return Template{}, fmt.Errorf("template %s defines no nodes", path)
	}
	return tpl, nil
}
