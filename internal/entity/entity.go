// Package entity normalizes client-supplied manager and supplier lists
// before they are injected into prompt templates and label taxonomies.
package entity

import "strings"

// Entity is a client-specific named person (manager) or organization
// (supplier). Email is used for managers, Domains for suppliers; either may
// be empty.
type Entity struct {
	Name    string   `yaml:"name" json:"name"`
	Email   string   `yaml:"email,omitempty" json:"email,omitempty"`
	Domains []string `yaml:"domains,omitempty" json:"domains,omitempty"`
}

// Resolve trims entity names and drops entries whose name is blank or
// whitespace-only, preserving the caller's order. The input slice is never
// modified.
func Resolve(entities []Entity) []Entity {
	out := make([]Entity, 0, len(entities))
	for _, e := range entities {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			continue
		}
		e.Name = name
		out = append(out, e)
	}
	return out
}

// Names returns the entity names in order.
func Names(entities []Entity) []string {
	names := make([]string, len(entities))
	for i, e := range entities {
		names[i] = e.Name
	}
	return names
}
