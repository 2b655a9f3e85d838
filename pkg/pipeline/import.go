package pipeline

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/shopware/sw-sync-cli/pkg/cli"
	"github.com/shopware/sw-sync-cli/pkg/errs"
	"github.com/shopware/sw-sync-cli/pkg/profile"
	"github.com/shopware/sw-sync-cli/pkg/value"
)

// DefaultBatchSize is the bulk_upsert batch size used when the caller
// passes a batchSize of zero or less (spec.md §4.G).
const DefaultBatchSize = 100

// Import reads CSV from r and upserts it to the remote entity per
// spec.md §4.G: per-row typed parse, deserialize script + path
// injection, batched bulk upsert with split-retry, then a trigger_index
// call unless disableIndex is set.
// reporter may be nil, in which case progress is not reported. Import
// does not know the row count ahead of time, so it reports against an
// indeterminate total (reporter.Start(0)) and calls Update with the
// running row count; cli.SimpleProgress draws nothing for a zero total,
// so with it only Finish's trailing newline is printed. recorder may be
// nil, in which case batch outcomes are not recorded.
func Import(ctx context.Context, p *profile.Profile, api API, hosts *HostPool, r io.Reader, batchSize int, disableIndex bool, logger *slog.Logger, reporter cli.ProgressReporter, recorder BatchRecorder) (Summary, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if reporter != nil {
		reporter.Start(0)
	}

	csvR := csv.NewReader(r)
	csvR.FieldsPerRecord = -1
	header, err := csvR.Read()
	if err != nil {
		return Summary{}, fmt.Errorf("pipeline: read csv header: %w", err)
	}

	cols := make([]profile.Mapping, len(header))
	for i, h := range header {
		m, ok := p.MappingByColumn(h)
		if !ok {
			logger.Warn("csv column has no mapping in profile, ignoring", "column", h)
			continue
		}
		cols[i] = m
	}

	start := time.Now()
	host := hosts.Get()
	defer hosts.Put(host)

	var summary Summary
	var batch []value.Value
	rowIndex := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		sent := len(batch)
		failed, err := submitBatch(ctx, api, p.Entity, batch, logger, recorder)
		if err != nil {
			return err
		}
		summary.Sent += sent
		summary.Failed += failed
		summary.Succeeded += sent - failed
		batch = batch[:0]
		return nil
	}

	for {
		record, err := csvR.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return summary, fmt.Errorf("pipeline: read csv row %d: %w", rowIndex, err)
		}

		row, rerr := parseRow(cols, record, rowIndex)
		if rerr != nil {
			logger.Warn("dropping row, cell parse failure", "row", rowIndex, "error", rerr)
			summary.Sent++
			summary.Failed++
			rowIndex++
			continue
		}

		entity, err := host.Deserialize(row, value.EmptyObject())
		if err != nil {
			logger.Warn("dropping row, deserialize script error", "row", rowIndex, "error", err)
			summary.Sent++
			summary.Failed++
			rowIndex++
			continue
		}
		for _, m := range cols {
			if m.FileColumn == "" || !m.IsPathMapping() {
				continue
			}
			v, _ := row.Get(m.FileColumn)
			entity = value.Set(m.EntityPath, v, entity)
		}

		batch = append(batch, entity)
		rowIndex++
		if reporter != nil {
			reporter.Update(int64(rowIndex))
		}
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				if reporter != nil {
					reporter.Error(err)
				}
				return summary, err
			}
		}
	}
	if err := flush(); err != nil {
		if reporter != nil {
			reporter.Error(err)
		}
		return summary, err
	}

	summary.Elapsed = time.Since(start)

	if !disableIndex {
		if err := api.TriggerIndex(ctx); err != nil {
			if reporter != nil {
				reporter.Error(err)
			}
			return summary, fmt.Errorf("pipeline: trigger index: %w", err)
		}
	}
	if reporter != nil {
		reporter.Finish()
	}
	return summary, nil
}

// parseRow builds a row Value from one CSV record, cell by cell typed
// per its mapping's column_type. Any single cell failure drops the
// whole row (spec.md §4.G).
func parseRow(cols []profile.Mapping, record []string, rowIndex int) (value.Value, error) {
	row := value.EmptyObject()
	for i, raw := range record {
		if i >= len(cols) || cols[i].FileColumn == "" {
			continue
		}
		m := cols[i]
		v, err := value.ParseCell(raw, m.ColumnType)
		if err != nil {
			return value.Null(), &errs.RowError{RowIndex: rowIndex, Column: m.FileColumn, Cause: err}
		}
		row = row.WithField(m.FileColumn, v)
	}
	return row, nil
}

// submitBatch upserts records and, on a batch-level failure, recursively
// splits in half and retries each half, down to single records, so one
// bad record never sinks its whole batch (spec.md §4.G). It returns the
// number of records that ultimately failed. Each BulkUpsert attempt is
// recorded via recorder (if non-nil) as "ok" or "split".
func submitBatch(ctx context.Context, api API, entity string, records []value.Value, logger *slog.Logger, recorder BatchRecorder) (int, error) {
	res, err := api.BulkUpsert(ctx, entity, records)
	if err == nil && len(res.Errors) == 0 {
		if recorder != nil {
			recorder.RecordBatch(entity, "ok")
		}
		return 0, nil
	}
	if err != nil {
		if recorder != nil {
			recorder.RecordBatch(entity, "split")
		}
		if len(records) == 1 {
			logger.Warn("dropping record after batch split", "error", err)
			return 1, nil
		}
		mid := len(records) / 2
		leftFailed, lerr := submitBatch(ctx, api, entity, records[:mid], logger, recorder)
		if lerr != nil {
			return 0, lerr
		}
		rightFailed, rerr := submitBatch(ctx, api, entity, records[mid:], logger, recorder)
		if rerr != nil {
			return 0, rerr
		}
		return leftFailed + rightFailed, nil
	}
	// Partial failure: remote told us exactly which indices failed.
	if recorder != nil {
		recorder.RecordBatch(entity, "ok")
	}
	for _, e := range res.Errors {
		logger.Warn("record rejected by remote", "index", e.Index, "error", e.Message)
	}
	return len(res.Errors), nil
}
