package profile

import "fmt"

// SyntaxError wraps a YAML decode or I/O failure while loading a
// profile document (spec.md §7 ProfileSyntax).
type SyntaxError struct {
	Cause error
}

func (e *SyntaxError) Error() string { return fmt.Sprintf("profile syntax error: %v", e.Cause) }
func (e *SyntaxError) Unwrap() error { return e.Cause }

// UnknownEntityError is returned when Entity does not exist in the
// remote schema descriptor (spec.md §7 UnknownEntity).
type UnknownEntityError struct {
	Entity string
}

func (e *UnknownEntityError) Error() string {
	return fmt.Sprintf("profile error: unknown entity %q", e.Entity)
}

// UnknownFieldError is returned when a path-mapping's segments do not
// resolve against the declared schema fields/associations (spec.md §7
// UnknownField(path)).
type UnknownFieldError struct {
	Path   string
	Reason string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("profile error: unknown field in path %q: %s", e.Path, e.Reason)
}

// DuplicateColumnError is returned when two mappings share a
// file_column (spec.md §7 DuplicateColumn).
type DuplicateColumnError struct {
	Column string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("profile error: duplicate file_column %q", e.Column)
}

// MappingShapeError is returned when a mapping has both EntityPath and
// Key, or neither (spec.md §4.B rule 4).
type MappingShapeError struct {
	FileColumn string
}

func (e *MappingShapeError) Error() string {
	return fmt.Sprintf("profile error: mapping %q must set exactly one of entity_path or key", e.FileColumn)
}

// ValidationErrors aggregates every validation failure found in one
// pass, the way teacher's config.ValidationError aggregates
// config.FieldError (spec.md §4.B: "all validation errors are fatal
// and reported before any I/O against data begins" — reporting them
// together, not one at a time, serves that).
type ValidationErrors struct {
	Errors []error
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d profile validation errors:", len(e.Errors))
	for _, err := range e.Errors {
		msg += "\n  - " + err.Error()
	}
	return msg
}
