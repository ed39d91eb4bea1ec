package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKind(t *testing.T) {
	k, err := ParseKind("required")
	assert.NoError(t, err)
	assert.Equal(t, KindRequired, k)

	k, err = ParseKind("positive_number")
	assert.NoError(t, err)
	assert.Equal(t, KindPositiveNumber, k)

	_, err = ParseKind("requried") // the typo must not slip through
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = ParseKind("")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestRequiredPredicate(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		present bool
		want    bool
	}{
		{"absent field", nil, false, false},
		{"nil value", nil, true, false},
		{"empty string", "", true, false},
		{"non-empty string", "Algebra", true, true},
		{"whitespace string", " ", true, true}, // filled in, even if only with a space
		{"zero int", 0, true, false},
		{"positive int", 1, true, true},
		{"negative int", -1, true, true}, // non-zero counts as present
		{"zero float", 0.0, true, false},
		{"float", 12.5, true, true},
		{"zero int64", int64(0), true, false},
		{"int64", int64(7), true, true},
		{"zero uint", uint(0), true, false},
		{"uint", uint(3), true, true},
		{"false", false, true, false},
		{"true", true, true, true},
		{"struct value", struct{ X int }{}, true, true},
		{"empty slice", []string{}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindRequired.passes(tt.value, tt.present))
		})
	}
}

func TestPositiveNumberPredicate(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		present bool
		want    bool
	}{
		{"absent field", nil, false, false},
		{"nil value", nil, true, false},
		{"positive int", 10, true, true},
		{"zero int", 0, true, false},
		{"negative int", -1, true, false},
		{"positive float", 0.01, true, true},
		{"zero float", 0.0, true, false},
		{"negative float", -12.5, true, false},
		{"positive int64", int64(99), true, true},
		{"uint", uint(4), true, true},
		{"zero uint", uint(0), true, false},
		{"numeric string", "10", true, true},
		{"padded numeric string", " 42 ", true, true},
		{"decimal string", "0.5", true, true},
		{"negative string", "-3", true, false},
		{"zero string", "0", true, false},
		{"non-numeric string", "ten", true, false},
		{"empty string", "", true, false},
		{"bool", true, true, false}, // booleans have no numeric reading here
		{"struct value", struct{}{}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindPositiveNumber.passes(tt.value, tt.present))
		})
	}
}

func TestUnknownKindFailsClosed(t *testing.T) {
	assert.False(t, Kind("mystery").passes("anything", true))
}

func TestValuesField(t *testing.T) {
	vs := Values{"title": "Algebra", "price": 10}

	v, ok := vs.Field("title")
	assert.True(t, ok)
	assert.Equal(t, "Algebra", v)

	v, ok = vs.Field("instructor")
	assert.False(t, ok)
	assert.Nil(t, v)
}
