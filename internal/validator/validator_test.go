package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkedin-reviewer/internal/models"
)

func TestValidateCertificateQuery(t *testing.T) {
	v := New()
	score := 87

	assert.NoError(t, v.Validate(models.CertificateQuery{Score: &score, Name: "Jane"}))
}

func TestValidateReportsQueryNames(t *testing.T) {
	v := New()
	tooHigh := 101

	cases := []struct {
		name  string
		query models.CertificateQuery
		field string
		msg   string
	}{
		{"missing score", models.CertificateQuery{}, "score", "is required"},
		{"score too high", models.CertificateQuery{Score: &tooHigh}, "score", "must be at most 100"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(tc.query)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.msg, ve.Errors[tc.field])
		})
	}
}

func TestValidationErrorMessageIsSorted(t *testing.T) {
	err := &ValidationError{Errors: map[string]string{"score": "is required", "name": "is too long"}}
	assert.Equal(t, "name: is too long; score: is required", err.Error())
}
