package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSchema drops a schema document into a temp dir and returns its path.
func writeSchema(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestSchemaApply(t *testing.T) {
	r := New()

	schema := Schema{
		EntityType: "course",
		Fields: []FieldSchema{
			{Name: "title", Rules: []Kind{KindRequired}},
			{Name: "price", Rules: []Kind{KindRequired, KindPositiveNumber}},
		},
	}
	require.NoError(t, schema.Apply(r))

	assert.Equal(t, []Kind{KindRequired}, r.Kinds("course", "title"))
	assert.Equal(t, []Kind{KindRequired, KindPositiveNumber}, r.Kinds("course", "price"))
	assert.True(t, r.Evaluate("course", Values{"title": "Algebra", "price": 10}))
	assert.False(t, r.Evaluate("course", Values{"title": "", "price": 10}))
}

func TestSchemaApply_IsAdditive(t *testing.T) {
	r := New()

	first := Schema{
		EntityType: "course",
		Fields:     []FieldSchema{{Name: "title", Rules: []Kind{KindRequired}}},
	}
	second := Schema{
		EntityType: "course",
		Fields:     []FieldSchema{{Name: "price", Rules: []Kind{KindPositiveNumber}}},
	}
	require.NoError(t, first.Apply(r))
	require.NoError(t, second.Apply(r))

	// Applying the second schema appended price's rules without
	// touching title's.
	assert.Equal(t, []Kind{KindRequired}, r.Kinds("course", "title"))
	assert.Equal(t, []Kind{KindPositiveNumber}, r.Kinds("course", "price"))
}

func TestSchemaApply_Invalid(t *testing.T) {
	r := New()

	err := Schema{}.Apply(r)
	assert.ErrorIs(t, err, ErrEmptyEntityType)

	err = Schema{
		EntityType: "course",
		Fields:     []FieldSchema{{Name: "", Rules: []Kind{KindRequired}}},
	}.Apply(r)
	assert.ErrorIs(t, err, ErrEmptyField)

	err = Schema{
		EntityType: "course",
		Fields:     []FieldSchema{{Name: "title", Rules: []Kind{Kind("bogus")}}},
	}.Apply(r)
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.Contains(t, err.Error(), "title")
}

func TestSchemaApply_FieldWithNoRules(t *testing.T) {
	r := New()

	schema := Schema{
		EntityType: "course",
		Fields:     []FieldSchema{{Name: "description"}},
	}
	require.NoError(t, schema.Apply(r))

	// Zero rules constrain nothing.
	assert.Empty(t, r.Kinds("course", "description"))
	assert.True(t, r.Evaluate("course", Values{}))
}

func TestLoadSchemaFile(t *testing.T) {
	path := writeSchema(t, `
entities:
  - type: course
    fields:
      - name: title
        rules: [required]
      - name: price
        rules: [required, positive_number]
  - type: lecture
    fields:
      - name: room
        rules: [required]
`)

	schemas, err := LoadSchemaFile(path)
	require.NoError(t, err)
	require.Len(t, schemas, 2)

	assert.Equal(t, "course", schemas[0].EntityType)
	assert.Equal(t, "lecture", schemas[1].EntityType)
	assert.Equal(t, []Kind{KindRequired, KindPositiveNumber}, schemas[0].Fields[1].Rules)

	// And the loaded schemas drive a registry end to end.
	r := New()
	for _, s := range schemas {
		require.NoError(t, s.Apply(r))
	}
	assert.True(t, r.Evaluate("course", Values{"title": "Algebra", "price": 10}))
	assert.False(t, r.Evaluate("lecture", Values{"room": ""}))
}

func TestLoadSchemaFile_Missing(t *testing.T) {
	_, err := LoadSchemaFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadSchemaFile_MalformedYAML(t *testing.T) {
	path := writeSchema(t, "entities: [:::")
	_, err := LoadSchemaFile(path)
	assert.Error(t, err)
}

func TestLoadSchemaFile_UnknownRule(t *testing.T) {
	path := writeSchema(t, `
entities:
  - type: course
    fields:
      - name: price
        rules: [positve_number]
`)
	_, err := LoadSchemaFile(path)
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.Contains(t, err.Error(), "price")
}

func TestLoadSchemaFile_MissingNames(t *testing.T) {
	_, err := LoadSchemaFile(writeSchema(t, `
entities:
  - type: ""
    fields: []
`))
	assert.ErrorIs(t, err, ErrEmptyEntityType)

	_, err = LoadSchemaFile(writeSchema(t, `
entities:
  - type: course
    fields:
      - name: ""
        rules: [required]
`))
	assert.ErrorIs(t, err, ErrEmptyField)
}
