package schema

import (
	"fmt"
	"sort"

	"github.com/GTP-getaipro/FWIQ-sub005/internal/taxonomy"
)

// Registry is the immutable trade-type → configuration mapping the whole
// pipeline reads from. It is built once, validated on construction, and safe
// for concurrent readers thereafter. Lookups are case-sensitive.
type Registry struct {
	entries  map[string]Entry
	fallback string
}

// NewRegistry validates every entry and returns a registry. The fallback
// trade is the designated base template schema used when none of a client's
// trade types resolve; it must exist in entries.
func NewRegistry(entries map[string]Entry, fallback string) (*Registry, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("registry requires at least one entry")
	}
	for trade, entry := range entries {
		if err := entry.Schema.Validate(); err != nil {
			return nil, fmt.Errorf("malformed schema for trade %q: %w", trade, err)
		}
	}
	if _, ok := entries[fallback]; !ok {
		return nil, fmt.Errorf("fallback trade %q not present in registry", fallback)
	}

	copied := make(map[string]Entry, len(entries))
	for trade, entry := range entries {
		copied[trade] = entry
	}
	return &Registry{entries: copied, fallback: fallback}, nil
}

// Lookup returns the entry for a trade type.
func (r *Registry) Lookup(trade string) (Entry, bool) {
	e, ok := r.entries[trade]
	return e, ok
}

// Fallback returns the designated base template trade and its entry.
func (r *Registry) Fallback() (string, Entry) {
	return r.fallback, r.entries[r.fallback]
}

// Trades returns every registered trade type, sorted for stable listings.
func (r *Registry) Trades() []string {
	trades := make([]string, 0, len(r.entries))
	for trade := range r.entries {
		trades = append(trades, trade)
	}
	sort.Strings(trades)
	return trades
}

// Resolve filters a client's trade-type list down to the types the registry
// knows, preserving order. Unknown types are dropped with a warning; if none
// resolve, the fallback trade is used with a warning. The resolved list is
// never empty.
// Duplicate trade types collapse to their first occurrence so that listing a
// trade twice never changes the merge result.
func (r *Registry) Resolve(trades []string) (resolved []string, warnings []string) {
	seen := make(map[string]bool, len(trades))
	for _, trade := range trades {
		if seen[trade] {
			continue
		}
		if _, ok := r.entries[trade]; ok {
			seen[trade] = true
			resolved = append(resolved, trade)
			continue
		}
		warnings = append(warnings, fmt.Sprintf("unknown trade type %q skipped", trade))
	}
	if len(resolved) == 0 {
		warnings = append(warnings, fmt.Sprintf("no trade types resolved, using base template %q", r.fallback))
		resolved = []string{r.fallback}
	}
	return resolved, warnings
}

// Extensions returns the label extensions for already-resolved trades, in
// order. Trades not in the registry are ignored; callers pass the output of
// Resolve.
func (r *Registry) Extensions(resolved []string) []taxonomy.Extension {
	exts := make([]taxonomy.Extension, 0, len(resolved))
	for _, trade := range resolved {
		if e, ok := r.entries[trade]; ok {
			exts = append(exts, e.Extension)
		}
	}
	return exts
}
