package script

import (
	"testing"

	"github.com/shopware/sw-sync-cli/pkg/lookup"
	"github.com/shopware/sw-sync-cli/pkg/value"
)

func testTables() *lookup.Tables {
	return lookup.New(
		[]lookup.LanguageRecord{{ID: "lang-en", ISO: "en-GB"}},
		[]lookup.CurrencyRecord{{ID: "cur-eur", ISO: "EUR"}},
		"lang-en",
	)
}

func TestSerializePopulatesKeyMapping(t *testing.T) {
	h := NewHost(testTables(), nil)
	defer h.Close()

	src := `
function serialize(entity, row)
  row.slot = entity.name .. "!"
  return row
end
`
	if err := h.LoadSerialize(src); err != nil {
		t.Fatalf("LoadSerialize: %v", err)
	}

	entity := value.Object(map[string]value.Value{"name": value.String("Widget")})
	row := value.Object(map[string]value.Value{"Number": value.String("123")})

	out, err := h.Serialize(entity, row)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	slot, ok := out.Get("slot")
	if !ok || slot.String() != "Widget!" {
		t.Errorf("slot = %#v", slot)
	}
	num, ok := out.Get("Number")
	if !ok || num.String() != "123" {
		t.Errorf("Number should survive untouched, got %#v", num)
	}
}

func TestSerializeNoScriptReturnsRowUnchanged(t *testing.T) {
	h := NewHost(testTables(), nil)
	defer h.Close()

	row := value.Object(map[string]value.Value{"a": value.Int(1)})
	out, err := h.Serialize(value.EmptyObject(), row)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if !value.Equal(out, row) {
		t.Errorf("expected unchanged row, got %#v", out)
	}
}

func TestDeserializeBuildsScaffolding(t *testing.T) {
	h := NewHost(testTables(), nil)
	defer h.Close()

	src := `
function deserialize(row, entity)
  entity.translations = {}
  entity.translations[1] = { languageId = get_default("LANGUAGE_SYSTEM"), name = row.Name }
  return entity
end
`
	if err := h.LoadDeserialize(src); err != nil {
		t.Fatalf("LoadDeserialize: %v", err)
	}

	row := value.Object(map[string]value.Value{"Name": value.String("Gadget")})
	out, err := h.Deserialize(row, value.EmptyObject())
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	translations, ok := out.Get("translations")
	if !ok || translations.Kind != value.KindArray || len(translations.Array()) != 1 {
		t.Fatalf("translations = %#v", translations)
	}
	first := translations.Array()[0]
	langID, _ := first.Get("languageId")
	if langID.String() != "lang-en" {
		t.Errorf("languageId = %q, want lang-en", langID.String())
	}
}

func TestScriptFaultReturnsScriptError(t *testing.T) {
	h := NewHost(testTables(), nil)
	defer h.Close()

	src := `
function serialize(entity, row)
  error("deliberate fault")
end
`
	if err := h.LoadSerialize(src); err != nil {
		t.Fatalf("LoadSerialize: %v", err)
	}

	_, err := h.Serialize(value.EmptyObject(), value.EmptyObject())
	if err == nil {
		t.Fatal("expected a script error")
	}
	var scriptErr *Error
	if !asScriptError(err, &scriptErr) {
		t.Fatalf("expected *script.Error, got %T: %v", err, err)
	}
	if scriptErr.Contract != "serialize" {
		t.Errorf("Contract = %q, want serialize", scriptErr.Contract)
	}
}

func TestHostFunctionLookupMiss(t *testing.T) {
	h := NewHost(testTables(), nil)
	defer h.Close()

	src := `
function serialize(entity, row)
  row.langId = get_language_by_iso("zz-ZZ")
  return row
end
`
	if err := h.LoadSerialize(src); err != nil {
		t.Fatalf("LoadSerialize: %v", err)
	}
	out, err := h.Serialize(value.EmptyObject(), value.EmptyObject())
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	langID, ok := out.Get("langId")
	if !ok || !langID.IsNull() {
		t.Errorf("langId = %#v, want Null for an unknown iso", langID)
	}
}

func asScriptError(err error, target **Error) bool {
	se, ok := err.(*Error)
	if ok {
		*target = se
	}
	return ok
}
