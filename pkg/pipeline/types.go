package pipeline

import (
	"context"
	"time"

	"github.com/shopware/sw-sync-cli/pkg/client"
	"github.com/shopware/sw-sync-cli/pkg/criteria"
	"github.com/shopware/sw-sync-cli/pkg/value"
)

// API is the subset of *client.Client the pipelines need. Defined here,
// rather than depended on concretely, so tests can supply a fake without
// standing up an HTTP server.
type API interface {
	Search(ctx context.Context, entity string, doc *criteria.Document) (client.SearchResult, error)
	BulkUpsert(ctx context.Context, entity string, records []value.Value) (client.BulkResult, error)
	TriggerIndex(ctx context.Context) error
}

// BatchRecorder observes import batch submissions, labeled "ok" for a
// batch accepted in one shot and "split" for one that failed and was
// divided for retry (spec.md §4.G). *metrics.Collector satisfies this.
type BatchRecorder interface {
	RecordBatch(entity, outcome string)
}

// Summary is the end-of-run report spec.md §4.G requires ("sent,
// succeeded, failed, elapsed, effective throughput") and §4.F's "totals
// are reported at end".
type Summary struct {
	Sent      int
	Succeeded int
	Failed    int
	Elapsed   time.Duration
}

// Throughput returns succeeded records per second, 0 if Elapsed is 0.
func (s Summary) Throughput() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Succeeded) / s.Elapsed.Seconds()
}
