package profile

import (
	"fmt"
	"os"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"github.com/shopware/sw-sync-cli/pkg/value"
)

// Defaults overlaid onto a parsed profile before validation: a partial
// Profile merged in wherever the loaded document left a field at its
// zero value. Associations append rather than replace. This mirrors
// teacher's config.ApplyDefaults, but delegates the merge itself to
// mergo instead of hand-writing a field-by-field overlay — useful
// headroom for future profile fields that need the same treatment.
type Defaults struct {
	Profile
}

// Load reads a profile document from path, decodes it, propagates raw
// filter literals into value.Value, and applies defaults. It does not
// validate against a schema — call Validate with a SchemaDescriptor
// for that (spec.md §4.B: parsing and schema validation are separate
// steps so the caller can report all parse errors before any network
// call to fetch the schema).
func Load(path string, defaults Defaults) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SyntaxError{Cause: fmt.Errorf("failed to read profile %q: %w", path, err)}
	}
	return Parse(data, defaults)
}

// Parse decodes a profile document from raw YAML bytes.
func Parse(data []byte, defaults Defaults) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, &SyntaxError{Cause: err}
	}

	hydrateFilterValues(p.Filter)
	if err := applyDefaults(&p, defaults); err != nil {
		return nil, &SyntaxError{Cause: fmt.Errorf("failed to apply profile defaults: %w", err)}
	}

	return &p, nil
}

// hydrateFilterValues walks the filter tree populating Value from the
// loosely-typed RawValue/Range* fields the YAML decoder produced.
func hydrateFilterValues(filters []Filter) {
	for i := range filters {
		f := &filters[i]
		f.Value = value.FromInterface(f.RawValue)
		hydrateFilterValues(f.Queries)
	}
}

// applyDefaults overlays Defaults onto a parsed profile. mergo performs
// the zero-value-aware merge (filling unset scalars, appending slices)
// so new Default fields can be added without touching this function.
func applyDefaults(p *Profile, defaults Defaults) error {
	return mergo.Merge(p, defaults.Profile, mergo.WithAppendSlice)
}
