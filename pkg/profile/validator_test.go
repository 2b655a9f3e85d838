package profile

import "testing"

func productSchema() SchemaDescriptor {
	return SchemaDescriptor{
		Entities: map[string]EntityDescriptor{
			"product": {
				Fields: map[string]struct{}{
					"productNumber": {},
					"name":          {},
					"stock":         {},
				},
				Associations: map[string]AssociationDescriptor{
					"tax":          {TargetEntity: "tax", Nullable: false},
					"manufacturer": {TargetEntity: "manufacturer", Nullable: true},
				},
			},
			"tax": {
				Fields: map[string]struct{}{"name": {}, "rate": {}},
			},
			"manufacturer": {
				Fields: map[string]struct{}{"name": {}},
			},
		},
	}
}

func TestValidateAcceptsKnownPaths(t *testing.T) {
	p := &Profile{
		Entity: "product",
		Mappings: []Mapping{
			{FileColumn: "Number", EntityPath: "productNumber"},
			{FileColumn: "TaxName", EntityPath: "tax.name"},
			{FileColumn: "ManufacturerName", EntityPath: "manufacturer?.name"},
			{FileColumn: "Custom", Key: "slot"},
		},
	}
	warnings, err := Validate(p, productSchema())
	if err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestValidateWarnsOnNullSafeNonNullableAssociation(t *testing.T) {
	p := &Profile{
		Entity: "product",
		Mappings: []Mapping{
			{FileColumn: "TaxName", EntityPath: "tax?.name"},
		},
	}
	warnings, err := Validate(p, productSchema())
	if err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
}

func TestValidateRejectsUnknownEntity(t *testing.T) {
	p := &Profile{Entity: "widget", Mappings: []Mapping{{FileColumn: "a", EntityPath: "a"}}}
	_, err := Validate(p, productSchema())
	if err == nil {
		t.Fatal("expected UnknownEntityError")
	}
}

func TestValidateRejectsUnknownField(t *testing.T) {
	p := &Profile{
		Entity:   "product",
		Mappings: []Mapping{{FileColumn: "X", EntityPath: "doesNotExist"}},
	}
	_, err := Validate(p, productSchema())
	if err == nil {
		t.Fatal("expected UnknownFieldError")
	}
}

func TestValidateRejectsDuplicateColumn(t *testing.T) {
	p := &Profile{
		Entity: "product",
		Mappings: []Mapping{
			{FileColumn: "Number", EntityPath: "productNumber"},
			{FileColumn: "Number", EntityPath: "name"},
		},
	}
	_, err := Validate(p, productSchema())
	if err == nil {
		t.Fatal("expected DuplicateColumnError")
	}
}

func TestValidateRejectsMappingWithBothOrNeither(t *testing.T) {
	both := &Profile{
		Entity:   "product",
		Mappings: []Mapping{{FileColumn: "X", EntityPath: "name", Key: "slot"}},
	}
	if _, err := Validate(both, productSchema()); err == nil {
		t.Fatal("expected MappingShapeError for both entity_path and key set")
	}

	neither := &Profile{
		Entity:   "product",
		Mappings: []Mapping{{FileColumn: "X"}},
	}
	if _, err := Validate(neither, productSchema()); err == nil {
		t.Fatal("expected MappingShapeError for neither entity_path nor key set")
	}
}
