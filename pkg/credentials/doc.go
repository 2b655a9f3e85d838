// Package credentials owns the local credentials file (spec.md §6): a
// plaintext, TOML-like key/value store for the domain, integration
// id/secret, and the last acquired bearer token.
package credentials
