package taxonomy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCategory(t *testing.T, c Composed, name string) LabelNode {
	t.Helper()
	for _, cat := range c.Categories {
		if cat.Name == name {
			return cat
		}
	}
	t.Fatalf("category %q not found", name)
	return LabelNode{}
}

func TestComposeBaseOnly(t *testing.T) {
	composed, warnings := Compose(Base(), nil, nil, nil)

	assert.Empty(t, warnings)
	assert.Equal(t, "BANKING", composed.Categories[0].Name)
	assert.Equal(t, "SOCIAL", composed.Categories[len(composed.Categories)-1].Name)

	// Without entities every slot is pruned.
	assert.Empty(t, findCategory(t, composed, "MANAGER").Children)
	assert.Empty(t, findCategory(t, composed, "SUPPLIERS").Children)
}

func TestComposeSlotPruning(t *testing.T) {
	managers := []string{"Dana Whitfield", "Marcus Cole"}
	composed, _ := Compose(Base(), nil, managers, nil)

	mgr := findCategory(t, composed, "MANAGER")
	require.Len(t, mgr.Children, 2)
	assert.Equal(t, "Dana Whitfield", mgr.Children[0].Name)
	assert.Equal(t, "Marcus Cole", mgr.Children[1].Name)
	assert.Equal(t, "internal_manager_1", mgr.Children[0].Intent)
	assert.Equal(t, "internal_manager_2", mgr.Children[1].Intent)
	assert.Nil(t, mgr.Children[0].Slot)

	// The order contains exactly the resolved names, no slot artifacts.
	assert.Contains(t, composed.Order, "Dana Whitfield")
	assert.Contains(t, composed.Order, "Marcus Cole")
	for _, name := range composed.Order {
		assert.NotEmpty(t, name)
		assert.NotContains(t, name, "Slot")
	}
}

func TestComposeOverrideLastWins(t *testing.T) {
	first := Extension{Overrides: map[string]LabelNode{
		CategorySupport: {Name: CategorySupport, Intent: "support", Children: []LabelNode{
			{Name: "First Support Child", Intent: "support_first"},
		}},
	}}
	second := Extension{Overrides: map[string]LabelNode{
		CategorySupport: {Name: CategorySupport, Intent: "support", Children: []LabelNode{
			{Name: "Second Support Child", Intent: "support_second"},
		}},
	}}

	composed, warnings := Compose(Base(), []Extension{first, second}, nil, nil)

	assert.Empty(t, warnings)
	support := findCategory(t, composed, CategorySupport)
	require.Len(t, support.Children, 1)
	assert.Equal(t, "Second Support Child", support.Children[0].Name)
}

func TestComposeOverrideUnknownCategory(t *testing.T) {
	ext := Extension{Overrides: map[string]LabelNode{
		"NO SUCH": {Name: "NO SUCH"},
	}}

	_, warnings := Compose(Base(), []Extension{ext}, nil, nil)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "NO SUCH")
}

func TestComposeDuplicateAdditionFirstWins(t *testing.T) {
	electrician := Extension{Additions: []Addition{{
		Anchor: CategorySupport,
		Node: LabelNode{Name: "PROJECTS", Intent: "projects", Children: []LabelNode{
			{Name: "Panel Upgrades", Intent: "projects_panel"},
		}},
	}}}
	hvac := Extension{Additions: []Addition{{
		Anchor: CategorySales,
		Node: LabelNode{Name: "PROJECTS", Intent: "projects", Children: []LabelNode{
			{Name: "Duct Replacement", Intent: "projects_duct"},
		}},
	}}}

	composed, warnings := Compose(Base(), []Extension{electrician, hvac}, nil, nil)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], `"PROJECTS"`)

	count := 0
	for _, cat := range composed.Categories {
		if cat.Name == "PROJECTS" {
			count++
			// First trade's subtree wins.
			require.Len(t, cat.Children, 1)
			assert.Equal(t, "Panel Upgrades", cat.Children[0].Name)
		}
	}
	assert.Equal(t, 1, count)
}

func TestComposeAdditionAnchors(t *testing.T) {
	tests := []struct {
		name       string
		anchor     string
		wantBefore string
	}{
		{"explicit anchor", CategorySupport, CategorySupport},
		{"default anchor is MISC", "", CategoryMisc},
		{"unknown anchor falls back to MISC", "NOT A CATEGORY", CategoryMisc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext := Extension{Additions: []Addition{{
				Anchor: tt.anchor,
				Node:   LabelNode{Name: "SERVICE CALLS", Intent: "service_call"},
			}}}
			composed, _ := Compose(Base(), []Extension{ext}, nil, nil)

			idx := indexOf(composed.Categories, "SERVICE CALLS")
			require.GreaterOrEqual(t, idx, 0)
			require.Less(t, idx+1, len(composed.Categories))
			assert.Equal(t, tt.wantBefore, composed.Categories[idx+1].Name)
		})
	}
}

func TestComposeOrderParentBeforeChild(t *testing.T) {
	managers := []string{"Dana Whitfield"}
	suppliers := []string{"Apex Electrical Supply", "Borealis HVAC Parts"}
	ext := Extension{Additions: []Addition{{
		Node: LabelNode{Name: "WARRANTY", Intent: "warranty", Children: []LabelNode{
			{Name: "Open Claims", Intent: "warranty_open"},
		}},
	}}}

	composed, _ := Compose(Base(), []Extension{ext}, managers, suppliers)

	pos := make(map[string]int)
	for i, name := range composed.Order {
		pos[name] = i
	}
	var walk func(n LabelNode, parent string)
	walk = func(n LabelNode, parent string) {
		if parent != "" {
			assert.Greater(t, pos[n.Name], pos[parent], "child %q must follow parent %q", n.Name, parent)
		}
		for _, c := range n.Children {
			walk(c, n.Name)
		}
	}
	for _, cat := range composed.Categories {
		walk(cat, "")
	}
}

func TestComposeDeterministic(t *testing.T) {
	ext := Extension{Additions: []Addition{{
		Node: LabelNode{Name: "WARRANTY", Intent: "warranty"},
	}}}
	a, _ := Compose(Base(), []Extension{ext}, []string{"Dana"}, []string{"Apex"})
	b, _ := Compose(Base(), []Extension{ext}, []string{"Dana"}, []string{"Apex"})

	assert.Equal(t, a, b)
	assert.Equal(t, strings.Join(a.Order, "|"), strings.Join(b.Order, "|"))
}
