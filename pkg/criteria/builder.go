package criteria

import (
	"fmt"
	"strings"

	"github.com/shopware/sw-sync-cli/pkg/profile"
	"github.com/shopware/sw-sync-cli/pkg/value"
)

// Build translates a validated profile into a Document for page 1 at
// limit (spec.md §4.E). Callers advance pages with Document.WithPage.
func Build(p *profile.Profile, limit int) (*Document, error) {
	doc := &Document{Page: DefaultPage, Limit: limit}

	for _, f := range p.Filter {
		node, err := translateFilter(f)
		if err != nil {
			return nil, err
		}
		doc.Filter = append(doc.Filter, node)
	}

	for _, s := range p.Sort {
		doc.Sort = append(doc.Sort, SortNode{Field: s.Field, Order: string(s.Order)})
	}

	assoc := map[string]*Association{}
	for _, a := range p.Associations {
		insertChain(assoc, strings.Split(a, "."))
	}
	for _, m := range p.Mappings {
		if !m.IsPathMapping() {
			continue
		}
		segments := strings.Split(m.EntityPath, ".")
		// The final segment is the leaf field, not an association; only
		// the segments walked to reach it are associations (spec.md
		// §4.E: "path a.b.c implies association a and nested
		// association a.b").
		if len(segments) > 1 {
			insertChain(assoc, segments[:len(segments)-1])
		}
	}
	if len(assoc) > 0 {
		doc.Associations = assoc
	}

	return doc, nil
}

// insertChain inserts segments (each possibly carrying a trailing "?"
// null-safe mark, which is stripped — it affects path resolution, not
// which association is requested) as a nested association path.
func insertChain(root map[string]*Association, segments []string) {
	m := root
	for _, raw := range segments {
		seg := strings.TrimSuffix(raw, "?")
		if seg == "" {
			continue
		}
		next, ok := m[seg]
		if !ok {
			next = &Association{}
			m[seg] = next
		}
		if next.Associations == nil {
			next.Associations = map[string]*Association{}
		}
		m = next.Associations
	}
}

func translateFilter(f profile.Filter) (FilterNode, error) {
	switch f.Operator {
	case profile.OpEquals, profile.OpEqualsAny, profile.OpContains, profile.OpPrefix, profile.OpSuffix:
		v := f.Value
		return FilterNode{Type: string(f.Operator), Field: f.Field, Value: &v}, nil

	case profile.OpRange:
		node := FilterNode{Type: string(f.Operator), Field: f.Field}
		if f.RangeGTE != nil {
			v := value.FromInterface(f.RangeGTE)
			node.GTE = &v
		}
		if f.RangeLTE != nil {
			v := value.FromInterface(f.RangeLTE)
			node.LTE = &v
		}
		if f.RangeGT != nil {
			v := value.FromInterface(f.RangeGT)
			node.GT = &v
		}
		if f.RangeLT != nil {
			v := value.FromInterface(f.RangeLT)
			node.LT = &v
		}
		return node, nil

	case profile.OpMulti, profile.OpNot:
		queries := make([]FilterNode, 0, len(f.Queries))
		for _, q := range f.Queries {
			n, err := translateFilter(q)
			if err != nil {
				return FilterNode{}, err
			}
			queries = append(queries, n)
		}
		return FilterNode{Type: string(f.Operator), Operator: string(f.Multi), Queries: queries}, nil

	default:
		return FilterNode{}, fmt.Errorf("criteria: unknown filter operator %q", f.Operator)
	}
}
