// Package errs defines the typed error kinds and dispositions from
// spec.md §7: which errors are fatal (exit 1/2), which are retried, and
// which are recorded per-record/per-batch and summarised at the end of a
// run.
package errs
