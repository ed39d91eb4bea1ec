//go:build property

package rules

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestEvaluatorProperties validates the evaluator's laws over generated
// inputs rather than hand-picked cases.
func TestEvaluatorProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1357)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	// Property: any non-empty string satisfies Required.
	properties.Property("required passes for every non-empty string", prop.ForAll(
		func(s string) bool {
			if s == "" {
				return true
			}
			r := New()
			r.MustRegister("course", "title", KindRequired)
			return r.Evaluate("course", Values{"title": s})
		},
		gen.AnyString(),
	))

	// Property: PositiveNumber agrees exactly with f > 0 on floats.
	properties.Property("positive_number mirrors f > 0", prop.ForAll(
		func(f float64) bool {
			r := New()
			r.MustRegister("course", "price", KindPositiveNumber)
			return r.Evaluate("course", Values{"price": f}) == (f > 0)
		},
		gen.Float64Range(-1e9, 1e9),
	))

	// Property: the overall result is the conjunction of the per-field
	// predicates — computed independently of the registry.
	properties.Property("evaluation is the conjunction of its predicates", prop.ForAll(
		func(title string, price float64) bool {
			r := New()
			r.MustRegister("course", "title", KindRequired)
			r.MustRegister("course", "price", KindRequired)
			r.MustRegister("course", "price", KindPositiveNumber)

			want := title != "" && price != 0 && price > 0
			return r.Evaluate("course", Values{"title": title, "price": price}) == want
		},
		gen.AnyString(),
		gen.Float64Range(-1e9, 1e9),
	))

	// Property: an entity type with no rules accepts everything.
	properties.Property("unregistered types always evaluate true", prop.ForAll(
		func(entityType, title string, price float64) bool {
			if entityType == "" {
				return true
			}
			r := New()
			r.MustRegister("course", "title", KindRequired)
			if entityType == "course" {
				return true
			}
			return r.Evaluate(entityType, Values{"title": title, "price": price})
		},
		gen.Identifier(),
		gen.AnyString(),
		gen.Float64(),
	))

	// Property: registration order does not change the verdict, only
	// the table's history.
	properties.Property("registration order is irrelevant", prop.ForAll(
		func(title string, price float64) bool {
			forward := New()
			forward.MustRegister("course", "title", KindRequired)
			forward.MustRegister("course", "price", KindRequired)
			forward.MustRegister("course", "price", KindPositiveNumber)

			backward := New()
			backward.MustRegister("course", "price", KindPositiveNumber)
			backward.MustRegister("course", "price", KindRequired)
			backward.MustRegister("course", "title", KindRequired)

			c := Values{"title": title, "price": price}
			return forward.Evaluate("course", c) == backward.Evaluate("course", c)
		},
		gen.AnyString(),
		gen.Float64Range(-1e6, 1e6),
	))

	properties.TestingRun(t)
}
