// Package taxonomy builds the hierarchical label tree used to file incoming
// email for a configured client. A universal base tree is specialized by
// per-trade extensions (subtree overrides and anchored top-level additions),
// manager/supplier placeholder slots are resolved against client entities,
// and a flat provisioning order is computed so an external label service can
// create every parent before its children.
package taxonomy

// SlotKind identifies which entity list fills a placeholder slot.
type SlotKind string

const (
	SlotManager  SlotKind = "manager"
	SlotSupplier SlotKind = "supplier"
)

// Slot marks a node as a placeholder for a client entity.
// Index is 1-based: slot k is filled by the k-th entity of its kind.
type Slot struct {
	Kind  SlotKind `yaml:"kind"`
	Index int      `yaml:"index"`
}

// LabelNode is one label in the taxonomy tree. Nodes with a non-nil Slot are
// placeholder slots; their Name is empty until an entity resolves them.
type LabelNode struct {
	Name     string      `yaml:"name" json:"name"`
	Color    string      `yaml:"color,omitempty" json:"color,omitempty"`
	Intent   string      `yaml:"intent,omitempty" json:"intent,omitempty"`
	Critical bool        `yaml:"critical,omitempty" json:"critical,omitempty"`
	Slot     *Slot       `yaml:"slot,omitempty" json:"-"`
	Children []LabelNode `yaml:"children,omitempty" json:"children,omitempty"`
}

// Clone returns a deep copy of the node.
func (n LabelNode) Clone() LabelNode {
	out := n
	if n.Slot != nil {
		s := *n.Slot
		out.Slot = &s
	}
	if len(n.Children) > 0 {
		out.Children = make([]LabelNode, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// Addition is a whole new top-level category contributed by a trade.
// Anchor names the existing top-level category the addition is inserted
// before, keeping related categories adjacent. An empty or unknown anchor
// falls back to inserting before the catch-all MISC category.
type Addition struct {
	Node   LabelNode `yaml:"label"`
	Anchor string    `yaml:"anchor,omitempty"`
}

// Extension is one trade's specialization of the base tree.
type Extension struct {
	// Overrides replaces the subtree of the named top-level category.
	// When several trades override the same category, the last one in
	// trade-list order wins.
	Overrides map[string]LabelNode `yaml:"overrides,omitempty"`

	// Additions are new top-level categories. Additions from all trades
	// accumulate; a duplicate name keeps the first occurrence.
	Additions []Addition `yaml:"additions,omitempty"`
}

// Composed is the final taxonomy for one client: the specialized tree with
// all slots resolved or pruned, plus its flat provisioning order.
type Composed struct {
	Categories []LabelNode `json:"categories"`
	Order      []string    `json:"order"`
}
