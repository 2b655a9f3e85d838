package profile

import "github.com/shopware/sw-sync-cli/pkg/value"

// SortOrder is the direction of a Sort entry.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// Sort is one profile sort entry (spec.md §3).
type Sort struct {
	Field string    `yaml:"field"`
	Order SortOrder `yaml:"order"`
}

// FilterOperator enumerates the operators the Criteria Builder
// understands (spec.md §4.E).
type FilterOperator string

const (
	OpEquals    FilterOperator = "equals"
	OpEqualsAny FilterOperator = "equalsAny"
	OpContains  FilterOperator = "contains"
	OpRange     FilterOperator = "range"
	OpNot       FilterOperator = "not"
	OpMulti     FilterOperator = "multi"
	OpPrefix    FilterOperator = "prefix"
	OpSuffix    FilterOperator = "suffix"
)

// MultiOperator is the boolean connective used by an OpMulti node.
type MultiOperator string

const (
	MultiAnd MultiOperator = "and"
	MultiOr  MultiOperator = "or"
)

// Filter is one node of a profile's filter tree. Only the fields
// relevant to Operator are populated; Value preserves its JSON type,
// including an explicit Null (spec.md §4.E).
type Filter struct {
	Field    string         `yaml:"field,omitempty"`
	Operator FilterOperator `yaml:"operator"`
	Value    value.Value    `yaml:"-"`
	RawValue interface{}    `yaml:"value,omitempty"`
	RangeGTE interface{}    `yaml:"gte,omitempty"`
	RangeLTE interface{}    `yaml:"lte,omitempty"`
	RangeGT  interface{}    `yaml:"gt,omitempty"`
	RangeLT  interface{}    `yaml:"lt,omitempty"`
	Multi    MultiOperator  `yaml:"multi,omitempty"`
	Queries  []Filter       `yaml:"queries,omitempty"`
}

// Mapping binds one CSV column to either a dotted entity path
// (automatic projection/injection) or a key (script-only slot).
// Exactly one of EntityPath/Key must be set (spec.md §3).
type Mapping struct {
	FileColumn string           `yaml:"file_column"`
	EntityPath string           `yaml:"entity_path,omitempty"`
	Key        string           `yaml:"key,omitempty"`
	ColumnType value.ColumnType `yaml:"column_type,omitempty"`
}

// IsPathMapping reports whether m projects/injects automatically via
// the path resolver, as opposed to being a script-only key slot.
func (m Mapping) IsPathMapping() bool {
	return m.EntityPath != ""
}

// Profile is a fully parsed, not-yet-validated profile document
// (spec.md §3).
type Profile struct {
	Entity            string    `yaml:"entity"`
	Filter            []Filter  `yaml:"filter,omitempty"`
	Sort              []Sort    `yaml:"sort,omitempty"`
	Associations      []string  `yaml:"associations,omitempty"`
	Mappings          []Mapping `yaml:"mappings"`
	SerializeScript   string    `yaml:"serialize_script,omitempty"`
	DeserializeScript string    `yaml:"deserialize_script,omitempty"`
}

// Columns returns the ordered list of file_column names, which is the
// CSV header order guarantee from spec.md §4.F and §8.
func (p *Profile) Columns() []string {
	cols := make([]string, len(p.Mappings))
	for i, m := range p.Mappings {
		cols[i] = m.FileColumn
	}
	return cols
}

// MappingByColumn returns the mapping for a given file_column, if any.
func (p *Profile) MappingByColumn(column string) (Mapping, bool) {
	for _, m := range p.Mappings {
		if m.FileColumn == column {
			return m, true
		}
	}
	return Mapping{}, false
}
