package client

import "github.com/shopware/sw-sync-cli/pkg/value"

// SearchResult is search()'s return shape (spec.md §4.D).
type SearchResult struct {
	Records []value.Value
	Total   int
}

// RecordError is one failed record within a BulkResult.
type RecordError struct {
	Index   int
	Message string
}

// BulkResult is bulk_upsert()'s return shape (spec.md §4.D).
type BulkResult struct {
	Written int
	Errors  []RecordError
}

// schemaEntityWire / schemaAssociationWire are the remote schema
// introspection endpoint's JSON shape (spec.md §4.D fetch_schema, §6
// "Schema introspection endpoint for validation"). The exact remote
// field names are invented here since spec.md does not fix a wire
// format beyond "a SchemaDescriptor"; decodeSchema below is the single
// place that would need updating if the real endpoint's shape differs.
type schemaWire struct {
	Entities map[string]schemaEntityWire `json:"entities"`
}

type schemaEntityWire struct {
	Fields       []string                         `json:"fields"`
	Associations map[string]schemaAssociationWire `json:"associations"`
}

type schemaAssociationWire struct {
	Entity   string `json:"entity"`
	Nullable bool   `json:"nullable"`
}

// searchResponseWire / bulkResponseWire are the search and bulk_upsert
// endpoints' JSON response shapes.
type searchResponseWire struct {
	Total int           `json:"total"`
	Data  []value.Value `json:"data"`
}

type bulkResponseWire struct {
	Written int `json:"written"`
	Errors  []struct {
		Index   int    `json:"index"`
		Message string `json:"message"`
	} `json:"errors"`
}

type languageWire struct {
	ID  string `json:"id"`
	ISO string `json:"iso"`
}

type currencyWire struct {
	ID  string `json:"id"`
	ISO string `json:"iso"`
}

type constantsWire struct {
	SystemLanguageID string `json:"systemLanguageId"`
}

type tokenResponseWire struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}
