// Package profile parses and validates the YAML profile document that
// declares one sync between a remote commerce-platform entity and a
// CSV shape: which entity, which filter/sort/associations apply on
// export, the ordered column ↔ field mappings, and the optional
// serialize/deserialize scripts.
//
// Loading is a parse-then-validate pipeline, mirroring the teacher's
// config package: decode YAML, apply defaults, then validate against
// a cached schema descriptor before any data I/O begins (spec.md §4.B).
package profile
