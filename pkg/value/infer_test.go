package value

import "testing"

func TestParseCellTypedInteger(t *testing.T) {
	// Scenario 3 from spec.md §8: stock declared integer, "7" parses
	// as Int, not String; empty cell is Null.
	got, err := ParseCell("7", ColumnTypeInteger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Kind != KindInt || got.Int() != 7 {
		t.Errorf("ParseCell(7, integer) = %#v, want Int(7)", got)
	}

	got, err = ParseCell("", ColumnTypeInteger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsNull() {
		t.Errorf("ParseCell(\"\", integer) = %#v, want Null", got)
	}
}

func TestParseCellBoolean(t *testing.T) {
	for _, raw := range []string{"true", "1"} {
		got, err := ParseCell(raw, ColumnTypeBoolean)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", raw, err)
		}
		if got.Kind != KindBool || !got.Bool() {
			t.Errorf("ParseCell(%q, boolean) = %#v, want Bool(true)", raw, got)
		}
	}
	for _, raw := range []string{"false", "0"} {
		got, err := ParseCell(raw, ColumnTypeBoolean)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", raw, err)
		}
		if got.Kind != KindBool || got.Bool() {
			t.Errorf("ParseCell(%q, boolean) = %#v, want Bool(false)", raw, got)
		}
	}
}

func TestInferValueOrderIntFloatBoolString(t *testing.T) {
	tests := []struct {
		raw  string
		kind Kind
	}{
		{"42", KindInt},
		{"3.14", KindFloat},
		{"true", KindBool},
		{"false", KindBool},
		{"hello", KindString},
		{"007", KindInt},
	}
	for _, tt := range tests {
		got := InferValue(tt.raw)
		if got.Kind != tt.kind {
			t.Errorf("InferValue(%q).Kind = %v, want %v", tt.raw, got.Kind, tt.kind)
		}
	}
}

func TestFormatCellRoundTrip(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Null(), ""},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Int(42), "42"},
		{Float(3.5), "3.5"},
		{String(`He said "hi"`), `He said "hi"`},
	}
	for _, tt := range tests {
		if got := FormatCell(tt.v); got != tt.want {
			t.Errorf("FormatCell(%#v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
