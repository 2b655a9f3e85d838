package value

import "strings"

// PathMissError is returned by Get when a strict (non null-safe)
// segment is absent from its parent object.
type PathMissError struct {
	Path    string
	Segment string
}

func (e *PathMissError) Error() string {
	return "value: path miss at segment " + e.Segment + " in path " + e.Path
}

type segment struct {
	name     string
	nullSafe bool
}

// parsePath splits a dotted path into segments, stripping a trailing
// "?" null-safe marker off each segment that carries one.
func parsePath(path string) []segment {
	parts := strings.Split(path, ".")
	segments := make([]segment, len(parts))
	for i, p := range parts {
		if strings.HasSuffix(p, "?") {
			segments[i] = segment{name: strings.TrimSuffix(p, "?"), nullSafe: true}
		} else {
			segments[i] = segment{name: p}
		}
	}
	return segments
}

// Get walks path against root, returning the leaf Value.
//
// A strict segment whose parent is not an Object with that key set
// returns PathMissError. A null-safe segment ("a?.b") whose parent is
// Null, or whose parent object lacks the key, short-circuits the whole
// walk to Null with no error. A miss immediately following a
// null-safe hop is also forgiven: spec.md §8 states that for
// "a?.b.c", a present but b absent yields Null, not an error — the
// leniency of a null-safe hop covers the very next segment's miss as
// well as its own. Segments further down the path are strict again
// unless they carry their own "?".
func Get(path string, root Value) (Value, error) {
	segments := parsePath(path)
	current := root
	lenient := false

	for _, seg := range segments {
		nullSafe := seg.nullSafe || lenient
		lenient = false

		if current.IsNull() {
			if nullSafe {
				return Null(), nil
			}
			return Null(), &PathMissError{Path: path, Segment: seg.name}
		}

		child, ok := current.Get(seg.name)
		if !ok {
			if nullSafe {
				return Null(), nil
			}
			return Null(), &PathMissError{Path: path, Segment: seg.name}
		}
		current = child
		lenient = seg.nullSafe
	}

	return current, nil
}

// Set assigns val at path within root, creating intermediate Objects
// as needed, and returns the new root. Null-safe marks on intermediate
// segments are ignored on write — a write always creates the path.
// Set never mutates the Value passed in; it returns a new tree sharing
// unmodified branches.
func Set(path string, val Value, root Value) Value {
	segments := parsePath(path)
	return setSegments(segments, val, root)
}

func setSegments(segments []segment, val Value, root Value) Value {
	if len(segments) == 0 {
		return val
	}

	head := segments[0]
	rest := segments[1:]

	if len(rest) == 0 {
		return root.WithField(head.name, val)
	}

	child, ok := root.Get(head.name)
	if !ok || child.Kind != KindObject {
		child = EmptyObject()
	}
	updatedChild := setSegments(rest, val, child)
	return root.WithField(head.name, updatedChild)
}
