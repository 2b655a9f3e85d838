// Package client is the authenticated HTTP client for the remote
// commerce-platform admin API (spec.md §4.D): token lifecycle, a bounded
// in-flight gate, retry with backoff, and the typed endpoint calls the
// rest of the engine uses.
package client
