package rules

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Registration errors. These mean the caller (almost always startup
// code) passed something nonsensical — they are programmer errors, and
// the application treats them as fatal at boot rather than limping on
// with a partial rule table.
var (
	// ErrEmptyEntityType is returned when a rule is registered without
	// an entity type tag.
	ErrEmptyEntityType = errors.New("entity type must not be empty")

	// ErrEmptyField is returned when a rule is registered without a
	// field name.
	ErrEmptyField = errors.New("field name must not be empty")

	// ErrUnknownKind is returned for a rule kind this package does not
	// define.
	ErrUnknownKind = errors.New("unknown rule kind")

	// ErrSealed is returned when Register is called after Seal — the
	// table is read-only once the registration phase has ended.
	ErrSealed = errors.New("registry is sealed")
)

// ─────────────────────────────────────────────────────────────────────────────
// Registry is the validator table: entity type → field → ordered list
// of rule kinds.
//
// INVARIANTS:
//
//   - Append-only: rules are only ever added, never removed.
//   - Additive merge: registering a rule for one field never disturbs
//     the rules already registered for any other field of the same
//     type. Every field owns its own slice; nothing is rebuilt or
//     replaced on the way in.
//   - Duplicates are allowed. Evaluation is a pure conjunction, so a
//     duplicated rule changes nothing about the result.
//   - After Seal() the table never changes again, so concurrent
//     evaluation needs no coordination beyond the RWMutex used here.
//
// The zero value is not usable; call New.
// ─────────────────────────────────────────────────────────────────────────────
type Registry struct {
	mu     sync.RWMutex
	sealed bool
	table  map[string]map[string][]Kind
}

// New creates an empty, unsealed registry.
//
// There is deliberately no package-level default registry: the table is
// an explicit object handed to whoever registers or evaluates, which
// keeps tests independent and makes the registration phase visible in
// main().
func New() *Registry {
	return &Registry{
		table: make(map[string]map[string][]Kind),
	}
}

// Register appends one rule to the list kept for (entityType, field),
// creating table entries as needed.
//
// It returns ErrEmptyEntityType, ErrEmptyField or ErrUnknownKind for
// invalid input, and ErrSealed once the registration phase is over.
func (r *Registry) Register(entityType, field string, kind Kind) error {
	if entityType == "" {
		return ErrEmptyEntityType
	}
	if field == "" {
		return ErrEmptyField
	}
	if !kind.valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return ErrSealed
	}

	fields, ok := r.table[entityType]
	if !ok {
		fields = make(map[string][]Kind)
		r.table[entityType] = fields
	}
	fields[field] = append(fields[field], kind)
	return nil
}

// MustRegister is Register for static-initialization call sites: it
// panics on error. Follows the same convention as config.MustLoad — if
// it returns, the registration happened.
func (r *Registry) MustRegister(entityType, field string, kind Kind) {
	if err := r.Register(entityType, field, kind); err != nil {
		panic(fmt.Sprintf("rules: register %s.%s: %v", entityType, field, err))
	}
}

// Seal ends the registration phase. After Seal the table is immutable:
// further Register calls fail with ErrSealed. Sealing twice is a no-op.
//
// Call this in main() after every schema has been applied and before
// the first request is served.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

// Sealed reports whether the registration phase has ended.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// ─────────────────────────────────────────────────────────────────────────────
// Evaluation.
//
// Check collects every violation; Evaluate reduces that to the single
// accept/reject boolean. Neither returns an error and neither panics —
// all failure travels in the result (a nil candidate simply has no
// fields, so every registered rule for it fails).
// ─────────────────────────────────────────────────────────────────────────────

// Violation records one failed (field, rule) pair.
type Violation struct {
	Field string `json:"field"`
	Kind  Kind   `json:"kind"`
}

// Report is the outcome of checking one candidate instance against
// every rule registered for its entity type.
type Report struct {
	EntityType string      `json:"entity_type"`
	Violations []Violation `json:"violations,omitempty"`
}

// OK reports whether the candidate passed every rule.
func (r Report) OK() bool {
	return len(r.Violations) == 0
}

// Check evaluates c against all rules registered for entityType and
// returns every violation.
//
// An entity type with no registered rules produces an empty (passing)
// report: unconfigured types are deliberately treated as valid rather
// than as an error.
//
// Violations are deterministic: fields in alphabetical order, and
// within a field the kinds in registration order. Deterministic output
// means stable API error messages and stable tests.
func (r *Registry) Check(entityType string, c Candidate) Report {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report := Report{EntityType: entityType}

	fields, ok := r.table[entityType]
	if !ok {
		return report
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		var (
			value   any
			present bool
		)
		if c != nil {
			value, present = c.Field(name)
		}
		for _, kind := range fields[name] {
			if !kind.passes(value, present) {
				report.Violations = append(report.Violations, Violation{
					Field: name,
					Kind:  kind,
				})
			}
		}
	}
	return report
}

// Evaluate reports whether c satisfies every rule registered for
// entityType: the logical AND across all (field, rule) pairs. No rules
// registered for the type means true.
func (r *Registry) Evaluate(entityType string, c Candidate) bool {
	return r.Check(entityType, c).OK()
}

// ─────────────────────────────────────────────────────────────────────────────
// Introspection. Handy for startup logging and for tests that assert
// on the table's shape; everything returned is a copy, so callers can
// never mutate the table through these.
// ─────────────────────────────────────────────────────────────────────────────

// Types returns the entity type tags that have at least one registered
// rule, in alphabetical order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.table))
	for t := range r.table {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Fields returns the field names carrying rules for entityType, in
// alphabetical order. Unknown types return an empty slice.
func (r *Registry) Fields(entityType string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fields := make([]string, 0, len(r.table[entityType]))
	for f := range r.table[entityType] {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Kinds returns the rules registered for (entityType, field) in
// registration order. Unknown pairs return an empty slice.
func (r *Registry) Kinds(entityType, field string) []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := r.table[entityType][field]
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}
