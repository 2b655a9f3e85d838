// Package lookup builds the immutable language/currency/constant tables
// fetched once at startup (spec.md §4.H) and shared read-only with every
// export/import worker and the script host's get_default/get_language_by_iso/
// get_currency_by_iso host functions.
package lookup
