// Package rules implements a declarative validation registry: a table of
// per-entity-type, per-field validation rules that is filled once at
// startup (the registration phase) and then consulted every time a
// candidate instance arrives (the evaluation phase).
//
// WHY A REGISTRY INSTEAD OF STRUCT TAGS?
// ──────────────────────────────────────
// Struct-tag validators bind rules to one concrete Go type at compile
// time. A registry keyed by an explicit entity-type tag ("course") can
// hold rules for types that are only described by configuration — for
// example entities declared in a YAML schema file — and lets the rule
// set live in one inspectable place instead of being scattered across
// tag strings.
//
// The two phases matter:
//
//   - Registration: Register / Apply calls, executed once during
//     startup, before the first request is served. Ends with Seal().
//   - Evaluation: Evaluate / Check calls, any number of them, from any
//     goroutine. After Seal() the table is immutable, so reads are
//     cheap and race-free.
package rules

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind names a validation predicate that can be attached to a field.
//
// It is a string type (not an int enum) so that rule kinds read
// naturally in YAML schema files:
//
//	fields:
//	  - name: price
//	    rules: [required, positive_number]
type Kind string

const (
	// KindRequired passes when the field value is "present":
	// not absent, not nil, not an empty string, not numeric zero,
	// and not false. Any other value counts as present.
	KindRequired Kind = "required"

	// KindPositiveNumber passes when the field value, interpreted
	// numerically, is strictly greater than zero. Numeric strings
	// (as submitted by forms) are parsed; values with no numeric
	// interpretation fail.
	KindPositiveNumber Kind = "positive_number"
)

// ParseKind converts a rule name (e.g. from a schema file) into a Kind.
// Unknown names are an error — a typo in a schema must fail loudly at
// startup, never silently skip a rule.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// valid reports whether k is one of the defined rule kinds.
func (k Kind) valid() bool {
	switch k {
	case KindRequired, KindPositiveNumber:
		return true
	}
	return false
}

// passes applies the kind's predicate to a field value.
//
// present is false when the candidate does not expose the field at all;
// an absent value fails every predicate (an absent required field is
// missing, and an absent number is not positive).
//
// The predicates are total: they never panic and never return an error.
// Failure is always communicated as false.
func (k Kind) passes(value any, present bool) bool {
	switch k {
	case KindRequired:
		return isPresent(value, present)
	case KindPositiveNumber:
		return isPositiveNumber(value, present)
	}
	// An unknown kind cannot get into the table (Register rejects it),
	// but if one ever did, failing closed is the safe answer.
	return false
}

// isPresent implements the Required predicate.
//
// "Present" follows the conventional notion of a filled-in form field:
// the zero values of the basic scalar types ("" , 0, false) and nil all
// count as missing. Compound values (structs, slices, maps) count as
// present — a candidate that exposes them has set them deliberately.
func isPresent(value any, present bool) bool {
	if !present || value == nil {
		return false
	}
	switch v := value.(type) {
	case string:
		return v != ""
	case bool:
		return v
	case int:
		return v != 0
	case int8:
		return v != 0
	case int16:
		return v != 0
	case int32:
		return v != 0
	case int64:
		return v != 0
	case uint:
		return v != 0
	case uint8:
		return v != 0
	case uint16:
		return v != 0
	case uint32:
		return v != 0
	case uint64:
		return v != 0
	case float32:
		return v != 0
	case float64:
		return v != 0
	}
	return true
}

// isPositiveNumber implements the PositiveNumber predicate.
//
// JSON bodies decode numbers into float64 and forms submit numbers as
// strings, so both are interpreted here. Go does not coerce booleans or
// compound values into numbers, so those simply fail.
func isPositiveNumber(value any, present bool) bool {
	if !present || value == nil {
		return false
	}
	switch v := value.(type) {
	case int:
		return v > 0
	case int8:
		return v > 0
	case int16:
		return v > 0
	case int32:
		return v > 0
	case int64:
		return v > 0
	case uint:
		return v > 0
	case uint8:
		return v > 0
	case uint16:
		return v > 0
	case uint32:
		return v > 0
	case uint64:
		return v > 0
	case float32:
		return v > 0
	case float64:
		return v > 0
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return err == nil && f > 0
	}
	return false
}

// ─────────────────────────────────────────────────────────────────────────────
// Candidate — how the evaluator reads field values.
//
// The registry never reaches into a struct with reflection and never
// indexes an object by a string. Instead every entity type provides its
// own field accessor by implementing this one-method interface. The
// method IS the field-name → value mapping, established in code right
// next to the entity's definition.
// ─────────────────────────────────────────────────────────────────────────────

// Candidate is a runtime instance whose field values can be looked up
// by field name.
//
// Field returns the value of the named field and true, or nil and false
// when the entity has no such field. Returning false makes every rule
// registered for that name fail, which is the safe direction: a rule
// aimed at a field the instance cannot produce should never pass.
type Candidate interface {
	Field(name string) (value any, ok bool)
}

// Values is a map-backed Candidate for entities that exist only as
// loose key/value data — schema-declared types with no Go struct, or
// test fixtures.
type Values map[string]any

// Field implements Candidate.
func (vs Values) Field(name string) (any, bool) {
	v, ok := vs[name]
	return v, ok
}
