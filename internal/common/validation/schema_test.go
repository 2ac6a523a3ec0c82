package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dining-concierge/internal/models"
)

func TestReservationValidator(t *testing.T) {
	v, err := NewReservationValidator()
	require.NoError(t, err)

	tests := []struct {
		name      string
		document  string
		wantValid bool
		badField  string
	}{
		{
			name:      "complete request",
			document:  `{"location":"manhattan","cuisine":"japanese","date":"2030-01-01","time":"18:30","numberOfPeople":"2","emailAddress":"a@b.com"}`,
			wantValid: true,
		},
		{
			name:      "missing email",
			document:  `{"location":"manhattan","cuisine":"japanese","date":"2030-01-01","time":"18:30","numberOfPeople":"2"}`,
			wantValid: false,
			badField:  "emailAddress",
		},
		{
			name:      "party size not numeric",
			document:  `{"location":"manhattan","cuisine":"japanese","date":"2030-01-01","time":"18:30","numberOfPeople":"two","emailAddress":"a@b.com"}`,
			wantValid: false,
			badField:  "numberOfPeople",
		},
		{
			name:      "empty cuisine",
			document:  `{"location":"manhattan","cuisine":"","date":"2030-01-01","time":"18:30","numberOfPeople":"2","emailAddress":"a@b.com"}`,
			wantValid: false,
			badField:  "cuisine",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := v.ValidateJSON(tt.document)
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, res.Valid)
			if tt.badField != "" {
				fields := make([]string, 0, len(res.Errors))
				for _, e := range res.Errors {
					fields = append(fields, e.Field)
				}
				assert.Contains(t, fields, tt.badField, "errors: %v", res.GetErrorMessages())
			}
		})
	}
}

func TestValidateJSON_NotJSON(t *testing.T) {
	v, err := NewReservationValidator()
	require.NoError(t, err)

	_, err = v.ValidateJSON("not json")
	assert.Error(t, err)
}

func TestValidateValue(t *testing.T) {
	v, err := NewReservationValidator()
	require.NoError(t, err)

	res, err := v.ValidateValue(map[string]interface{}{"location": "manhattan"})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.NotEmpty(t, res.GetErrorMessages())

	res, err = v.ValidateValue(models.ReservationRequest{
		Location:       "manhattan",
		Cuisine:        "thai",
		Date:           "2030-01-01",
		Time:           "18:30",
		NumberOfPeople: "+2",
		EmailAddress:   "a@b.com",
	})
	require.NoError(t, err)
	assert.False(t, res.Valid, "the schema only accepts canonical party sizes")
}

func TestNewValidator_BadSchema(t *testing.T) {
	_, err := NewValidator(`{"type": 12}`)
	assert.Error(t, err)
}
