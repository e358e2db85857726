package template

import (
	"fmt"
	"strings"
)

// Item is one element of a block list: per-item field name to value.
type Item map[string]string

// Data supplies the values a template is evaluated against.
type Data struct {
	// Scalars resolve {{Name}} references anywhere in the template.
	Scalars map[string]string

	// Lists resolve {{#Name}} blocks. A missing or empty list removes the
	// block entirely.
	Lists map[string][]Item

	// Default substitutes for unresolved scalar references. The zero value
	// strips them, which is the product's lenient residual-placeholder
	// policy.
	Default string

	// Strict records a warning for each unresolved reference instead of
	// dropping it silently. Output is identical either way.
	Strict bool
}

// Render evaluates the template against d. Rendering is deterministic:
// identical inputs always produce byte-identical output. The returned
// warnings are only populated in strict mode.
func (t *Template) Render(d Data) (string, []string) {
	var sb strings.Builder
	var warnings []string
	renderNodes(&sb, t.nodes, d, nil, &warnings)
	return sb.String(), warnings
}

func renderNodes(sb *strings.Builder, nodes []Node, d Data, item Item, warnings *[]string) {
	for _, n := range nodes {
		switch v := n.(type) {
		case Text:
			sb.WriteString(v.Value)
		case ScalarRef:
			sb.WriteString(resolveRef(v.Name, d, item, warnings))
		case Block:
			items := d.Lists[v.List]
			if len(items) == 0 {
				continue
			}
			for _, it := range items {
				renderNodes(sb, v.Body, d, it, warnings)
			}
		}
	}
}

// resolveRef resolves a scalar or per-item reference. Item fields shadow
// nothing: ".Field" only ever reads the current block element, and plain
// names only ever read the scalar map, so block expansion cannot leak into
// the outer scalar scope.
func resolveRef(name string, d Data, item Item, warnings *[]string) string {
	if field, ok := strings.CutPrefix(name, "."); ok {
		if item != nil {
			if val, ok := item[field]; ok {
				return val
			}
		}
		return unresolved(name, d, warnings)
	}
	if val, ok := d.Scalars[name]; ok {
		return val
	}
	return unresolved(name, d, warnings)
}

func unresolved(name string, d Data, warnings *[]string) string {
	if d.Strict {
		*warnings = append(*warnings, fmt.Sprintf("unresolved placeholder {{%s}}", name))
	}
	return d.Default
}

// Render is a convenience for single-use templates: parse then evaluate.
func Render(src string, d Data) (string, []string, error) {
	tmpl, err := Parse(src)
	if err != nil {
		return "", nil, err
	}
	out, warnings := tmpl.Render(d)
	return out, warnings, nil
}
