package value

import (
	"strconv"
	"strings"
	"time"
)

// ColumnType is a mapping's declared cell type (spec.md §3, §6).
type ColumnType string

const (
	ColumnTypeString   ColumnType = "string"
	ColumnTypeInteger  ColumnType = "integer"
	ColumnTypeFloat    ColumnType = "float"
	ColumnTypeBoolean  ColumnType = "boolean"
	ColumnTypeDatetime ColumnType = "datetime"
)

// StorageDateTimeFormat is the ISO-8601 layout used for "datetime" cells,
// matching the STORAGE_DATE_TIME_FORMAT host-function constant (spec.md §6).
const StorageDateTimeFormat = time.RFC3339

// ParseCell converts one raw CSV cell into a Value per its declared
// column_type. An empty cell is always Null, regardless of type. When
// declaredType is empty, ParseCell falls back to InferValue.
//
// This is the single place spec.md's "typed-parse" step (§4.G.2) lives.
func ParseCell(raw string, declaredType ColumnType) (Value, error) {
	if raw == "" {
		return Null(), nil
	}

	switch declaredType {
	case ColumnTypeString:
		return String(raw), nil
	case ColumnTypeInteger:
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Null(), err
		}
		return Int(i), nil
	case ColumnTypeFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Null(), err
		}
		return Float(f), nil
	case ColumnTypeBoolean:
		switch raw {
		case "true", "1":
			return Bool(true), nil
		case "false", "0":
			return Bool(false), nil
		default:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return Null(), err
			}
			return Bool(b), nil
		}
	case ColumnTypeDatetime:
		if _, err := time.Parse(StorageDateTimeFormat, raw); err != nil {
			return Null(), err
		}
		return String(raw), nil
	default:
		return InferValue(raw), nil
	}
}

// InferValue guesses a JSON-ish value from an untyped cell, trying
// integer, then float, then bool, then falling back to string
// (spec.md §4.G.2, §9 open question — this order is the documented
// resolution: int → float → bool → string).
func InferValue(raw string) Value {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return Int(i)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return Float(f)
	}
	if b, ok := parseStrictBool(raw); ok {
		return Bool(b)
	}
	return String(raw)
}

// parseStrictBool only accepts the tokens "true"/"false", in any letter
// case, so that arbitrary numeric-looking or free-text strings are not
// coerced.
func parseStrictBool(raw string) (bool, bool) {
	switch strings.ToLower(raw) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

// FormatCell renders a Value back to a CSV cell per spec.md §4.F: Null
// becomes empty, Bool becomes "true"/"false", numeric becomes a
// canonical decimal, String is written verbatim (CSV quoting is the
// csv.Writer's job, not this function's).
func FormatCell(v Value) string {
	switch v.Kind {
	case KindNull:
		return ""
	case KindBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case KindInt:
		return strconv.FormatInt(v.Int(), 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case KindString:
		return v.String()
	default:
		// Array/Object leaves should not reach a CSV cell; render as
		// their JSON form rather than silently dropping data.
		b, err := v.MarshalJSON()
		if err != nil {
			return ""
		}
		return string(b)
	}
}
