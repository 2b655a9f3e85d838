// Package value defines the engine's wire-neutral representation of a
// record field: a small tagged union closed under JSON round-trip, and
// the dotted-path resolver used to project and inject values into it.
//
// Every entity fetched from the remote API and every row read from a
// CSV file is normalized into a Value before it reaches a profile
// mapping or a script. This keeps the rest of the engine free of
// interface{} type switches: a Value's Kind is known up front.
package value
