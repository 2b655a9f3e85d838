package pipeline

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/shopware/sw-sync-cli/pkg/cli"
	"github.com/shopware/sw-sync-cli/pkg/criteria"
	"github.com/shopware/sw-sync-cli/pkg/profile"
	"github.com/shopware/sw-sync-cli/pkg/value"
)

// pageFetchResult is one page's outcome, produced ahead of being
// consumed so the next page can be in flight while this one transforms
// (spec.md §4.F: "Launch a page-fetcher producing pages ... up to
// in_flight_limit").
type pageFetchResult struct {
	page    int
	records []value.Value
	total   int
	err     error
}

// Export streams entity to w as CSV per spec.md §4.F. limit is the
// fixed per-export page size (criteria.DefaultLimit if zero).
// reporter may be nil, in which case progress is not reported.
func Export(ctx context.Context, p *profile.Profile, api API, hosts *HostPool, limit int, w io.Writer, logger *slog.Logger, reporter cli.ProgressReporter) (Summary, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if limit <= 0 {
		limit = criteria.DefaultLimit
	}

	doc, err := criteria.Build(p, limit)
	if err != nil {
		return Summary{}, fmt.Errorf("pipeline: build criteria: %w", err)
	}

	start := time.Now()
	csvW := csv.NewWriter(w)
	if err := csvW.Write(p.Columns()); err != nil {
		return Summary{}, fmt.Errorf("pipeline: write header: %w", err)
	}

	pages := fetchPages(ctx, api, p.Entity, doc, hosts.Size())

	var summary Summary
	reportedTotal := false
	for pr := range pages {
		if pr.err != nil {
			if reporter != nil {
				reporter.Error(pr.err)
			}
			// A page fetch failure after retries is fatal (spec.md §4.F).
			return summary, fmt.Errorf("pipeline: fetch page %d: %w", pr.page, pr.err)
		}

		if reporter != nil && !reportedTotal {
			reporter.Start(int64(pr.total))
			reportedTotal = true
		}

		rows, failed := transformPage(ctx, hosts, p, pr.records)
		summary.Sent += len(pr.records)
		summary.Failed += failed
		summary.Succeeded += len(rows)

		for _, row := range rows {
			if err := csvW.Write(formatRow(p, row)); err != nil {
				return summary, fmt.Errorf("pipeline: write row: %w", err)
			}
		}
		if reporter != nil {
			reporter.Update(int64(summary.Sent))
		}
		if failed > 0 {
			logger.Warn("export page had per-record transform failures", "page", pr.page, "failed", failed)
		}
	}

	csvW.Flush()
	summary.Elapsed = time.Since(start)
	if err := csvW.Error(); err != nil {
		return summary, fmt.Errorf("pipeline: flush csv: %w", err)
	}
	if reporter != nil {
		reporter.Finish()
	}
	return summary, nil
}

// fetchPages fetches pages sequentially (ordering across pages requires
// it — page N+1's offset space only makes sense once page N's total is
// known) but overlaps fetch-ahead with the caller's transform/write work
// via a buffered channel sized to the transform pool, satisfying the
// "up to in_flight_limit pages in flight" shape without violating the
// remote-record-order guarantee.
func fetchPages(ctx context.Context, api API, entity string, doc *criteria.Document, bufSize int) <-chan pageFetchResult {
	out := make(chan pageFetchResult, bufSize)
	go func() {
		defer close(out)
		seen := 0
		for page := 1; ; page++ {
			select {
			case <-ctx.Done():
				out <- pageFetchResult{page: page, err: ctx.Err()}
				return
			default:
			}

			pageDoc := doc.WithPage(page)
			res, err := api.Search(ctx, entity, &pageDoc)
			if err != nil {
				out <- pageFetchResult{page: page, err: err}
				return
			}
			out <- pageFetchResult{page: page, records: res.Records, total: res.Total}

			seen += len(res.Records)
			if len(res.Records) < doc.Limit || seen >= res.Total {
				return
			}
		}
	}()
	return out
}

// transformPage runs one page's records through the transform pool
// concurrently and restores remote record order before returning.
func transformPage(ctx context.Context, hosts *HostPool, p *profile.Profile, records []value.Value) ([]value.Value, int) {
	results := make([]recordResult, len(records))
	sem := make(chan struct{}, hosts.Size())
	var wg sync.WaitGroup

	for i, rec := range records {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, rec value.Value) {
			defer wg.Done()
			defer func() { <-sem }()

			host := hosts.Get()
			row, err := transformExportRecord(host, p, rec)
			hosts.Put(host)

			results[i] = recordResult{offset: i, row: row, err: err}
		}(i, rec)
	}
	wg.Wait()

	return reorderPage(results)
}

// transformExportRecord implements spec.md §4.F step 3 / §4.C's
// serialize contract: project path-mappings from entity into a row,
// run the serialize script against that pre-populated row, then take
// each column from the script's result where the script set it (a path
// column under its file_column, a key-mapping under its key), keeping
// the projected value for path columns the script left unset.
func transformExportRecord(host interface {
	Serialize(entity, row value.Value) (value.Value, error)
}, p *profile.Profile, entity value.Value) (value.Value, error) {
	row := value.EmptyObject()
	for _, m := range p.Mappings {
		if !m.IsPathMapping() {
			continue
		}
		v, err := value.Get(m.EntityPath, entity)
		if err != nil {
			return value.Null(), fmt.Errorf("column %q: %w", m.FileColumn, err)
		}
		row = row.WithField(m.FileColumn, v)
	}
	scripted, err := host.Serialize(entity, row)
	if err != nil {
		return value.Null(), err
	}
	for _, m := range p.Mappings {
		slot := m.Key
		if m.IsPathMapping() {
			slot = m.FileColumn
		}
		if v, ok := scripted.Get(slot); ok {
			row = row.WithField(m.FileColumn, v)
		}
	}
	return row, nil
}

func formatRow(p *profile.Profile, row value.Value) []string {
	cols := p.Columns()
	out := make([]string, len(cols))
	for i, col := range cols {
		v, _ := row.Get(col)
		out[i] = value.FormatCell(v)
	}
	return out
}
