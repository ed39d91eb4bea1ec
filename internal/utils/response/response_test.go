package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GeoSauer/courses-api/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	err := WriteJSON(rec, http.StatusCreated, map[string]int64{"id": 7})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]int64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(7), body["id"])
}

func TestGeneralError(t *testing.T) {
	resp := GeneralError(errors.New("request body is empty"))

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "request body is empty", resp.Error)
}

func TestEvaluationError(t *testing.T) {
	report := rules.Report{
		EntityType: "course",
		Violations: []rules.Violation{
			{Field: "price", Kind: rules.KindPositiveNumber},
			{Field: "title", Kind: rules.KindRequired},
		},
	}

	resp := EvaluationError(report)

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t,
		"field price must be a positive number, field title is required",
		resp.Error)
}

func TestEvaluationError_UnknownKind(t *testing.T) {
	report := rules.Report{
		EntityType: "course",
		Violations: []rules.Violation{
			{Field: "title", Kind: rules.Kind("future_rule")},
		},
	}

	resp := EvaluationError(report)
	assert.Equal(t, "field title is invalid", resp.Error)
}
