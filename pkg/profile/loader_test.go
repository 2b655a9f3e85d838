package profile

import "testing"

const sampleProfile = `
entity: product
mappings:
  - file_column: Number
    entity_path: productNumber
  - file_column: Name
    entity_path: name
  - file_column: Stock
    entity_path: stock
    column_type: integer
  - file_column: CustomTranslations
    key: translations
filter:
  - field: active
    operator: equals
    value: true
sort:
  - field: name
    order: ASC
associations:
  - tax
`

func TestParseBasicProfile(t *testing.T) {
	p, err := Parse([]byte(sampleProfile), Defaults{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Entity != "product" {
		t.Errorf("Entity = %q, want product", p.Entity)
	}
	if len(p.Mappings) != 4 {
		t.Fatalf("len(Mappings) = %d, want 4", len(p.Mappings))
	}
	wantCols := []string{"Number", "Name", "Stock", "CustomTranslations"}
	gotCols := p.Columns()
	for i, want := range wantCols {
		if gotCols[i] != want {
			t.Errorf("Columns()[%d] = %q, want %q", i, gotCols[i], want)
		}
	}
	if len(p.Filter) != 1 || p.Filter[0].Value.Bool() != true {
		t.Errorf("expected filter value true, got %#v", p.Filter)
	}
	if len(p.Sort) != 1 || p.Sort[0].Order != SortAsc {
		t.Errorf("expected sort ASC, got %#v", p.Sort)
	}
}

func TestLoadAppliesDefaultAssociations(t *testing.T) {
	p, err := Parse([]byte(sampleProfile), Defaults{Profile: Profile{Associations: []string{"manufacturer"}}})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	found := map[string]bool{}
	for _, a := range p.Associations {
		found[a] = true
	}
	if !found["tax"] || !found["manufacturer"] {
		t.Errorf("expected associations to include both tax and manufacturer, got %v", p.Associations)
	}
}

func TestMappingIsPathMapping(t *testing.T) {
	path := Mapping{FileColumn: "a", EntityPath: "a.b"}
	key := Mapping{FileColumn: "b", Key: "slot"}
	if !path.IsPathMapping() {
		t.Error("expected path mapping to report IsPathMapping() true")
	}
	if key.IsPathMapping() {
		t.Error("expected key mapping to report IsPathMapping() false")
	}
}
