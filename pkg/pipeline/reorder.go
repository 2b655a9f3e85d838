package pipeline

import "github.com/shopware/sw-sync-cli/pkg/value"

// recordResult is one record's transform outcome, tagged with its
// original offset within the page it came from.
type recordResult struct {
	offset int
	row    value.Value
	err    error
}

// reorderPage restores original record order from a page's out-of-order
// transform results, dropping any record whose transform errored (a
// per-record transform error is recorded and that row is skipped,
// spec.md §4.F) while every other record keeps its original relative
// position. This is the "(page, offset) reordering" the export pipeline
// applies before the single writer goroutine consumes rows.
func reorderPage(results []recordResult) ([]value.Value, int) {
	ordered := make([]*value.Value, len(results))
	for _, r := range results {
		if r.err != nil {
			continue
		}
		row := r.row
		ordered[r.offset] = &row
	}

	rows := make([]value.Value, 0, len(results))
	failed := 0
	for _, r := range ordered {
		if r == nil {
			failed++
			continue
		}
		rows = append(rows, *r)
	}
	return rows, failed
}
