package profile

// SchemaDescriptor is the cached, client-fetched description of the
// remote entity schema that profile validation checks paths against
// (spec.md §4.B). It is intentionally minimal: just enough to resolve
// a dotted path's first segment as a field or an association, and to
// know whether an association is nullable (to-one) or a collection
// (to-many) for the "? on a non-nullable association is warned, not
// rejected" rule.
type SchemaDescriptor struct {
	Entities map[string]EntityDescriptor
}

// EntityDescriptor describes one remote entity's declared fields and
// associations.
type EntityDescriptor struct {
	Fields       map[string]struct{}
	Associations map[string]AssociationDescriptor
}

// AssociationDescriptor describes one association on an entity: the
// entity it points to (so nested path segments can resolve), and
// whether the association is allowed to be absent (nullable to-one)
// as opposed to always present (to-many collections default to an
// empty array, never Null).
type AssociationDescriptor struct {
	TargetEntity string
	Nullable     bool
}

// HasEntity reports whether name is declared in the schema.
func (s SchemaDescriptor) HasEntity(name string) bool {
	_, ok := s.Entities[name]
	return ok
}
