// Package pipeline implements the export and import data flows
// (spec.md §4.F, §4.G): paginated fetch → per-record script + path
// projection → ordered CSV write, and CSV read → per-row typed parse +
// script + path injection → batched bulk write with split-retry.
package pipeline
