package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"errors"

	"github.com/shopware/sw-sync-cli/pkg/client"
	"github.com/shopware/sw-sync-cli/pkg/criteria"
	"github.com/shopware/sw-sync-cli/pkg/profile"
	"github.com/shopware/sw-sync-cli/pkg/value"
)

var errFakeSearch = errors.New("fake search failure")

func testProfile() *profile.Profile {
	return &profile.Profile{
		Entity: "product",
		Mappings: []profile.Mapping{
			{FileColumn: "id", EntityPath: "id"},
			{FileColumn: "name", EntityPath: "name"},
		},
	}
}

func record(id, name string) value.Value {
	return value.Object(map[string]value.Value{
		"id":   value.String(id),
		"name": value.String(name),
	})
}

func TestExportWritesHeaderAndRows(t *testing.T) {
	hosts, err := NewHostPool(2, nil, nil, "", "")
	if err != nil {
		t.Fatalf("NewHostPool: %v", err)
	}
	defer hosts.Close()

	api := &fakeAPI{pages: []client.SearchResult{
		{Records: []value.Value{record("1", "Widget"), record("2", "Gadget")}, Total: 2},
	}}

	var buf bytes.Buffer
	summary, err := Export(context.Background(), testProfile(), api, hosts, 250, &buf, nil, nil)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if summary.Succeeded != 2 || summary.Failed != 0 {
		t.Fatalf("summary = %+v, want 2 succeeded 0 failed", summary)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (header + 2 rows): %q", len(lines), out)
	}
	if lines[0] != "id,name" {
		t.Errorf("header = %q, want %q", lines[0], "id,name")
	}
}

func TestExportStopsOnPartialPage(t *testing.T) {
	hosts, err := NewHostPool(1, nil, nil, "", "")
	if err != nil {
		t.Fatalf("NewHostPool: %v", err)
	}
	defer hosts.Close()

	api := &fakeAPI{pages: []client.SearchResult{
		{Records: []value.Value{record("1", "Widget")}, Total: 5},
	}}

	var buf bytes.Buffer
	if _, err := Export(context.Background(), testProfile(), api, hosts, 250, &buf, nil, nil); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if api.searches != 1 {
		t.Errorf("searches = %d, want 1 (short page under limit ends fetch)", api.searches)
	}
}

func TestExportPropagatesPageFetchError(t *testing.T) {
	hosts, err := NewHostPool(1, nil, nil, "", "")
	if err != nil {
		t.Fatalf("NewHostPool: %v", err)
	}
	defer hosts.Close()

	api := &erroringAPI{}
	var buf bytes.Buffer
	_, err = Export(context.Background(), testProfile(), api, hosts, 250, &buf, nil, nil)
	if err == nil {
		t.Fatal("expected error from failed page fetch")
	}
}

type erroringAPI struct{}

func (erroringAPI) Search(ctx context.Context, entity string, doc *criteria.Document) (client.SearchResult, error) {
	return client.SearchResult{}, errFakeSearch
}
func (erroringAPI) BulkUpsert(ctx context.Context, entity string, records []value.Value) (client.BulkResult, error) {
	return client.BulkResult{}, nil
}
func (erroringAPI) TriggerIndex(ctx context.Context) error { return nil }
