// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, storage, and the rule registry can all import types without
// depending on each other.
package types

import "github.com/GeoSauer/courses-api/internal/rules"

// CourseEntity is the registry tag for Course.
//
// The tag is an explicit constant, NOT derived from the Go type name
// via reflection. A derived name would silently change under renames,
// and every rule registered under the old name would stop applying —
// with a permissive registry that means everything suddenly validates.
// An explicit tag cannot drift.
const CourseEntity = "course"

// Course represents one course offered in our catalog.
//
// The json:"..." tags control how the struct appears on the wire
// (lowercase names match REST API conventions). Validation rules are
// deliberately NOT attached here as struct tags: they live in the rule
// registry, declared by CourseSchema below, so code and configuration
// can contribute rules to the same table.
type Course struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

// Field implements rules.Candidate: it is the field-name → value
// mapping the evaluator uses instead of reflecting into the struct.
//
// The names here are the wire names ("title", "price"), matching what
// CourseSchema registers. A name the Course does not have returns
// ok=false, which makes any rule registered for it fail — never pass.
func (c Course) Field(name string) (any, bool) {
	switch name {
	case "title":
		return c.Title, true
	case "price":
		return c.Price, true
	}
	return nil, false
}

// CourseSchema declares the validation rules for Course:
//
//	title → required
//	price → required, positive number
//
// This is the single place where Course's rules are written down.
// main() applies it to the registry during startup, before the first
// request is served.
func CourseSchema() rules.Schema {
	return rules.Schema{
		EntityType: CourseEntity,
		Fields: []rules.FieldSchema{
			{Name: "title", Rules: []rules.Kind{rules.KindRequired}},
			{Name: "price", Rules: []rules.Kind{rules.KindRequired, rules.KindPositiveNumber}},
		},
	}
}
