package schema

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/GTP-getaipro/FWIQ-sub005/internal/taxonomy"
)

//go:embed data/*.yaml
var builtinFS embed.FS

// FallbackTrade is the designated base template schema used when none of a
// client's trade types resolve.
const FallbackTrade = "General"

// tradeFile is the on-disk shape of one trade's configuration.
type tradeFile struct {
	Trade     string             `yaml:"trade"`
	Schema    BaseSchema         `yaml:"schema"`
	Extension taxonomy.Extension `yaml:"extension"`
}

// Builtin loads the production registry from the embedded per-trade YAML
// files. Any malformed entry fails loading: broken static configuration must
// be fixed in the data, not degraded around at runtime.
func Builtin() (*Registry, error) {
	entries, err := loadDir(builtinFS, "data")
	if err != nil {
		return nil, err
	}
	return NewRegistry(entries, FallbackTrade)
}

// loadDir parses every YAML file in dir into registry entries. Exposed for
// tests that load synthetic trade data from a fstest.MapFS.
func loadDir(fsys fs.FS, dir string) (map[string]Entry, error) {
	names, err := fs.Glob(fsys, dir+"/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob trade data: %w", err)
	}
	sort.Strings(names)

	entries := make(map[string]Entry, len(names))
	for _, name := range names {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read trade data %s: %w", name, err)
		}
		var file tradeFile
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("parse trade data %s: %w", name, err)
		}
		if file.Trade == "" {
			return nil, fmt.Errorf("trade data %s missing trade name", name)
		}
		if _, dup := entries[file.Trade]; dup {
			return nil, fmt.Errorf("trade %q defined twice", file.Trade)
		}
		entries[file.Trade] = Entry{Schema: file.Schema, Extension: file.Extension}
	}
	return entries, nil
}
