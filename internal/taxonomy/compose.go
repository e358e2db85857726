package taxonomy

import (
	"fmt"
)

// Compose specializes the base tree with the given trade extensions (in
// trade-list order), resolves manager/supplier slots against the given
// entity names, and computes the provisioning order.
//
// Returned warnings cover dropped duplicate additions and overrides that
// named a top-level category the tree does not have. Composition itself
// never fails: the result is always a usable taxonomy.
func Compose(base []LabelNode, exts []Extension, managers, suppliers []string) (Composed, []string) {
	var warnings []string

	categories := make([]LabelNode, len(base))
	for i, n := range base {
		categories[i] = n.Clone()
	}

	// Phase 1: subtree overrides, last trade wins.
	for _, ext := range exts {
		for name, replacement := range ext.Overrides {
			idx := indexOf(categories, name)
			if idx < 0 {
				warnings = append(warnings, fmt.Sprintf("override for unknown category %q ignored", name))
				continue
			}
			categories[idx] = replacement.Clone()
		}
	}

	// Phase 2: top-level additions, first trade wins on a duplicate name.
	for _, ext := range exts {
		for _, add := range ext.Additions {
			if indexOf(categories, add.Node.Name) >= 0 {
				warnings = append(warnings, fmt.Sprintf("duplicate category addition %q dropped", add.Node.Name))
				continue
			}
			categories = insertBefore(categories, add.Node.Clone(), add.Anchor)
		}
	}

	// Phase 3: resolve or prune placeholder slots.
	for i := range categories {
		categories[i] = resolveSlots(categories[i], managers, suppliers)
	}

	return Composed{
		Categories: categories,
		Order:      flatten(categories),
	}, warnings
}

// insertBefore places node ahead of the anchor category. An empty or unknown
// anchor falls back to MISC; if MISC is also absent the node is appended.
func insertBefore(categories []LabelNode, node LabelNode, anchor string) []LabelNode {
	idx := -1
	if anchor != "" {
		idx = indexOf(categories, anchor)
	}
	if idx < 0 {
		idx = indexOf(categories, CategoryMisc)
	}
	if idx < 0 {
		return append(categories, node)
	}
	out := make([]LabelNode, 0, len(categories)+1)
	out = append(out, categories[:idx]...)
	out = append(out, node)
	out = append(out, categories[idx:]...)
	return out
}

func indexOf(categories []LabelNode, name string) int {
	for i, c := range categories {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// resolveSlots fills slot k with the k-th entity of its kind, or removes the
// slot node entirely when no entity exists at that position. Resolved slots
// get an indexed intent so routing stays unambiguous within the category.
func resolveSlots(node LabelNode, managers, suppliers []string) LabelNode {
	if len(node.Children) == 0 {
		return node
	}
	kept := node.Children[:0]
	for _, child := range node.Children {
		if child.Slot == nil {
			kept = append(kept, resolveSlots(child, managers, suppliers))
			continue
		}
		names := managers
		if child.Slot.Kind == SlotSupplier {
			names = suppliers
		}
		k := child.Slot.Index
		if k < 1 || k > len(names) {
			continue
		}
		resolved := child
		resolved.Name = names[k-1]
		resolved.Intent = fmt.Sprintf("%s_%d", child.Intent, k)
		resolved.Slot = nil
		kept = append(kept, resolved)
	}
	node.Children = kept
	return node
}

// flatten walks the tree depth-first so every parent precedes its children.
func flatten(categories []LabelNode) []string {
	var order []string
	seen := make(map[string]bool)
	var walk func(LabelNode)
	walk = func(n LabelNode) {
		if !seen[n.Name] {
			seen[n.Name] = true
			order = append(order, n.Name)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, c := range categories {
		walk(c)
	}
	return order
}
