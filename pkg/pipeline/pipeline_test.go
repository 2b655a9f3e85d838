package pipeline

import (
	"context"
	"sync"

	"github.com/shopware/sw-sync-cli/pkg/client"
	"github.com/shopware/sw-sync-cli/pkg/criteria"
	"github.com/shopware/sw-sync-cli/pkg/value"
)

// fakeAPI is a test double for API. pages is consumed in order by
// Search; upserts records every call passed to BulkUpsert.
type fakeAPI struct {
	mu       sync.Mutex
	pages    []client.SearchResult
	upserts  [][]value.Value
	bulkErr  error
	bulkRes  *client.BulkResult
	indexed  int
	searches int
}

func (f *fakeAPI) Search(ctx context.Context, entity string, doc *criteria.Document) (client.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.searches >= len(f.pages) {
		return client.SearchResult{}, nil
	}
	res := f.pages[f.searches]
	f.searches++
	return res, nil
}

func (f *fakeAPI) BulkUpsert(ctx context.Context, entity string, records []value.Value) (client.BulkResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := make([]value.Value, len(records))
	copy(cp, records)
	f.upserts = append(f.upserts, cp)
	if f.bulkErr != nil {
		return client.BulkResult{}, f.bulkErr
	}
	if f.bulkRes != nil {
		return *f.bulkRes, nil
	}
	return client.BulkResult{Written: len(records)}, nil
}

func (f *fakeAPI) TriggerIndex(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.indexed++
	return nil
}
