package script

import "fmt"

// Error is a single record's script fault (spec.md §7 ScriptError): the
// pipeline drops the record and counts it, rather than aborting the run.
type Error struct {
	// Contract names which of Serialize/Deserialize faulted.
	Contract string
	// Line is the Lua source line reported by the interpreter, 0 if unknown.
	Line int
	// Message is the interpreter's error text.
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("script error in %s at line %d: %s", e.Contract, e.Line, e.Message)
	}
	return fmt.Sprintf("script error in %s: %s", e.Contract, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }
