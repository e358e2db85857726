package taxonomy

import "fmt"

// Report is the result of validating a composed taxonomy. Errors make the
// taxonomy unsafe to provision; warnings mean the product still functions
// but routing may be ambiguous. The caller decides whether to proceed.
type Report struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Validate runs the static integrity checks over a composed taxonomy:
//
//  1. Completeness: every label name in the tree appears exactly once in the
//     provisioning order and vice versa, and no name precedes an ancestor.
//  2. Intent uniqueness: within each top-level category, the routing intent
//     of every label should be distinct (warning only).
//
// Validate never mutates its input, and its output is deterministic: checks
// report in tree and provisioning-order traversal order.
func Validate(c Composed) Report {
	var report Report

	pos := make(map[string]int, len(c.Order))
	orderCount := make(map[string]int, len(c.Order))
	for i, name := range c.Order {
		if _, dup := pos[name]; !dup {
			pos[name] = i
		}
		orderCount[name]++
		if orderCount[name] == 2 {
			report.Errors = append(report.Errors, fmt.Sprintf("label %q appears more than once in provisioning order", name))
		}
	}

	treeCount := make(map[string]int)
	var walk func(n LabelNode, ancestors []string)
	walk = func(n LabelNode, ancestors []string) {
		treeCount[n.Name]++
		if treeCount[n.Name] == 2 {
			report.Errors = append(report.Errors, fmt.Sprintf("label %q appears more than once in tree", n.Name))
		}
		at, inOrder := pos[n.Name]
		if !inOrder {
			report.Errors = append(report.Errors, fmt.Sprintf("label %q missing from provisioning order", n.Name))
		} else {
			for _, anc := range ancestors {
				if ap, ok := pos[anc]; ok && at < ap {
					report.Errors = append(report.Errors, fmt.Sprintf("label %q precedes its ancestor %q in provisioning order", n.Name, anc))
				}
			}
		}
		for _, child := range n.Children {
			walk(child, append(ancestors, n.Name))
		}
	}
	for _, cat := range c.Categories {
		walk(cat, nil)
	}

	for _, name := range c.Order {
		if treeCount[name] == 0 {
			report.Errors = append(report.Errors, fmt.Sprintf("provisioning order lists %q but the tree does not contain it", name))
		}
	}

	for _, cat := range c.Categories {
		report.Warnings = append(report.Warnings, duplicateIntents(cat)...)
	}

	report.Valid = len(report.Errors) == 0
	return report
}

// duplicateIntents reports routing intents used by more than one label
// inside a single top-level category, in first-seen order.
func duplicateIntents(cat LabelNode) []string {
	counts := make(map[string]int)
	var warnings []string
	var walk func(LabelNode)
	walk = func(n LabelNode) {
		if n.Intent != "" {
			counts[n.Intent]++
			if counts[n.Intent] == 2 {
				warnings = append(warnings, fmt.Sprintf("intent %q used by multiple labels under %q", n.Intent, cat.Name))
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(cat)
	return warnings
}
