package criteria

import "github.com/shopware/sw-sync-cli/pkg/value"

// Default paging values (spec.md §4.E): page starts at 1, limit is fixed
// per export at 250 unless the run config's sync.page_limit sets another
// value.
const (
	DefaultPage  = 1
	DefaultLimit = 250
)

// Document is the remote API's search request body (spec.md §3
// "Criteria"): built once per export and reused, with only Page
// advancing, per page.
type Document struct {
	Page         int                     `json:"page"`
	Limit        int                     `json:"limit"`
	Filter       []FilterNode            `json:"filter,omitempty"`
	Sort         []SortNode              `json:"sort,omitempty"`
	Associations map[string]*Association `json:"associations,omitempty"`
}

// WithPage returns a shallow copy of d with Page replaced, used to step
// through pages without rebuilding the filter/sort/association tree.
func (d Document) WithPage(page int) Document {
	d.Page = page
	return d
}

// FilterNode is one node of the translated filter tree (spec.md §4.E).
// Only the fields relevant to Type are populated.
type FilterNode struct {
	Type     string       `json:"type"`
	Field    string       `json:"field,omitempty"`
	Value    *value.Value `json:"value,omitempty"`
	GTE      *value.Value `json:"gte,omitempty"`
	LTE      *value.Value `json:"lte,omitempty"`
	GT       *value.Value `json:"gt,omitempty"`
	LT       *value.Value `json:"lt,omitempty"`
	Operator string       `json:"operator,omitempty"` // "and"/"or" for multi and negated groups
	Queries  []FilterNode `json:"queries,omitempty"`
}

// SortNode is one translated sort entry.
type SortNode struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

// Association is one node of the nested association tree sent to the
// remote API (spec.md §4.E). An Association with a nil Associations map
// requests that single association with no further nesting.
type Association struct {
	Associations map[string]*Association `json:"associations,omitempty"`
}
