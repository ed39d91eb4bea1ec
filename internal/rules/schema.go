package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ─────────────────────────────────────────────────────────────────────────────
// Declarative schemas.
//
// A Schema is the rule declarations for one entity type written down as
// data instead of as a sequence of Register calls. Rules that belong to
// an entity read best next to each other:
//
//	rules.Schema{
//	    EntityType: "course",
//	    Fields: []rules.FieldSchema{
//	        {Name: "title", Rules: []rules.Kind{rules.KindRequired}},
//	        {Name: "price", Rules: []rules.Kind{rules.KindRequired, rules.KindPositiveNumber}},
//	    },
//	}
//
// The same shape loads from a YAML file, which is how operators attach
// rules to entity types that have no Go struct at all:
//
//	entities:
//	  - type: course
//	    fields:
//	      - name: title
//	        rules: [required]
//	      - name: price
//	        rules: [required, positive_number]
// ─────────────────────────────────────────────────────────────────────────────

// FieldSchema declares the rules for a single field. A field may carry
// zero rules; that is legal and simply constrains nothing.
type FieldSchema struct {
	Name  string `yaml:"name" json:"name"`
	Rules []Kind `yaml:"rules" json:"rules"`
}

// Schema declares the rules for one entity type.
type Schema struct {
	EntityType string        `yaml:"type" json:"type"`
	Fields     []FieldSchema `yaml:"fields" json:"fields"`
}

// Apply registers every rule the schema declares. Registration is
// additive: applying a second schema for the same entity type appends
// to what is already in the table, it never replaces it.
//
// The first invalid declaration aborts the apply with an error naming
// the entity and field, leaving earlier registrations in place — apply
// errors are fatal at boot anyway, so partial state is never served.
func (s Schema) Apply(r *Registry) error {
	if s.EntityType == "" {
		return ErrEmptyEntityType
	}
	for _, f := range s.Fields {
		for _, kind := range f.Rules {
			if err := r.Register(s.EntityType, f.Name, kind); err != nil {
				return fmt.Errorf("schema %q: field %q: %w", s.EntityType, f.Name, err)
			}
		}
	}
	return nil
}

// schemaFile is the on-disk document shape: a single top-level
// "entities" list, so one file can declare any number of entity types.
type schemaFile struct {
	Entities []Schema `yaml:"entities"`
}

// LoadSchemaFile reads and parses a YAML schema file.
//
// Every declaration is checked here — entity types and field names must
// be non-empty and every rule name must parse — so a broken schema file
// is rejected as a whole before a single rule reaches any registry.
func LoadSchemaFile(path string) ([]Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadSchemaFile: read %s: %w", path, err)
	}

	var file schemaFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("LoadSchemaFile: parse %s: %w", path, err)
	}

	for _, schema := range file.Entities {
		if schema.EntityType == "" {
			return nil, fmt.Errorf("LoadSchemaFile: %s: %w", path, ErrEmptyEntityType)
		}
		for _, field := range schema.Fields {
			if field.Name == "" {
				return nil, fmt.Errorf("LoadSchemaFile: %s: entity %q: %w",
					path, schema.EntityType, ErrEmptyField)
			}
			for _, kind := range field.Rules {
				if _, err := ParseKind(string(kind)); err != nil {
					return nil, fmt.Errorf("LoadSchemaFile: %s: entity %q, field %q: %w",
						path, schema.EntityType, field.Name, err)
				}
			}
		}
	}

	return file.Entities, nil
}
