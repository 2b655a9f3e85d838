package profile

import (
	"fmt"
	"strings"
)

// Warning is a non-fatal validation note, e.g. a "?" on a non-nullable
// association (spec.md §4.B rule 2).
type Warning struct {
	Path    string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Path, w.Message)
}

// Validate cross-checks a parsed Profile against a SchemaDescriptor
// per spec.md §4.B's four rules. All errors found are returned
// together as *ValidationErrors; warnings are returned separately and
// never fail validation.
func Validate(p *Profile, schema SchemaDescriptor) (warnings []Warning, err error) {
	var errs []error

	if !schema.HasEntity(p.Entity) {
		errs = append(errs, &UnknownEntityError{Entity: p.Entity})
		// Nothing further can be checked without a valid entity.
		return nil, &ValidationErrors{Errors: errs}
	}

	seenColumns := make(map[string]struct{}, len(p.Mappings))
	entity := schema.Entities[p.Entity]

	for _, m := range p.Mappings {
		if _, dup := seenColumns[m.FileColumn]; dup {
			errs = append(errs, &DuplicateColumnError{Column: m.FileColumn})
		}
		seenColumns[m.FileColumn] = struct{}{}

		hasPath := m.EntityPath != ""
		hasKey := m.Key != ""
		if hasPath == hasKey {
			errs = append(errs, &MappingShapeError{FileColumn: m.FileColumn})
			continue
		}
		if !hasPath {
			continue // key-mapping: resolved only by scripts, nothing to validate here
		}

		ws, verr := validatePath(p.Entity, entity, m.EntityPath, schema)
		warnings = append(warnings, ws...)
		if verr != nil {
			errs = append(errs, verr)
		}
	}

	if len(errs) > 0 {
		return warnings, &ValidationErrors{Errors: errs}
	}
	return warnings, nil
}

// validatePath resolves each dotted segment of path against the
// schema starting at entity, descending through associations.
func validatePath(rootEntity string, entity EntityDescriptor, path string, schema SchemaDescriptor) ([]Warning, error) {
	segments := strings.Split(path, ".")
	var warnings []Warning
	current := entity
	walked := ""

	for i, raw := range segments {
		nullSafe := strings.HasSuffix(raw, "?")
		name := strings.TrimSuffix(raw, "?")
		if walked == "" {
			walked = name
		} else {
			walked = walked + "." + name
		}

		last := i == len(segments)-1

		if last {
			if _, ok := current.Fields[name]; ok {
				return warnings, nil
			}
			// A final segment may also legitimately be an association
			// itself (e.g. mapping the whole sub-object), so check that too.
			if assoc, ok := current.Associations[name]; ok {
				if nullSafe && !assoc.Nullable {
					warnings = append(warnings, Warning{
						Path:    path,
						Message: fmt.Sprintf("'?' on non-nullable association %q", name),
					})
				}
				return warnings, nil
			}
			return warnings, &UnknownFieldError{Path: path, Reason: fmt.Sprintf("%q is not a declared field or association of %s", walked, rootEntity)}
		}

		assoc, ok := current.Associations[name]
		if !ok {
			return warnings, &UnknownFieldError{Path: path, Reason: fmt.Sprintf("%q is not a declared association of %s", walked, rootEntity)}
		}
		if nullSafe && !assoc.Nullable {
			warnings = append(warnings, Warning{
				Path:    path,
				Message: fmt.Sprintf("'?' on non-nullable association %q", name),
			})
		}
		target, ok := schema.Entities[assoc.TargetEntity]
		if !ok {
			return warnings, &UnknownFieldError{Path: path, Reason: fmt.Sprintf("association %q targets undeclared entity %q", name, assoc.TargetEntity)}
		}
		current = target
	}

	return warnings, nil
}
