// Package criteria translates a profile's filter/sort/associations into
// the remote API's search document (spec.md §4.E).
package criteria
