package shared

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Name        string `json:"name" validate:"required,min=2"`
	Email       string `json:"email" validate:"required,email"`
	DaysAllowed int    `json:"daysAllowed" validate:"gte=1,lte=365"`
	Color       string `json:"color" validate:"required,hexcolor"`
}

func TestCheckPayloadPasses(t *testing.T) {
	rec := httptest.NewRecorder()
	rejected := CheckPayload(rec, samplePayload{
		Name:        "Annual Leave",
		Email:       "jane@company.com",
		DaysAllowed: 25,
		Color:       "#3B82F6",
	}, "req-1")
	assert.False(t, rejected)
}

func TestCheckPayloadRejectsWithFieldIssues(t *testing.T) {
	rec := httptest.NewRecorder()
	rejected := CheckPayload(rec, samplePayload{
		Name:        "A",
		Email:       "not-an-email",
		DaysAllowed: 400,
		Color:       "blue",
	}, "req-1")
	require.True(t, rejected)
	assert.Equal(t, 400, rec.Code)

	var envelope struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Details struct {
				Fields []ValidationIssue `json:"fields"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "validation_error", envelope.Error.Code)
	require.Len(t, envelope.Error.Details.Fields, 4)
	assert.Equal(t, "name", envelope.Error.Details.Fields[0].Field)
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), parsed)

	parsed, err = ParseDate("2024-03-01T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, parsed.Hour())

	_, err = ParseDate("03/01/2024")
	assert.Error(t, err)
}

func TestParseMonth(t *testing.T) {
	parsed, err := ParseMonth("2024-03", time.Now())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), parsed)

	fallback := time.Date(2024, 7, 19, 15, 0, 0, 0, time.UTC)
	parsed, err = ParseMonth("", fallback)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), parsed)
}
