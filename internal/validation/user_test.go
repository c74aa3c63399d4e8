package validation

import (
	"strings"
	"testing"

	"chirp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Michael Example"))
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName(strings.Repeat("a", 51)))
	assert.NoError(t, ValidateName(strings.Repeat("a", 50)))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("user@example.com"))
	assert.NoError(t, ValidateEmail("first.last+tag@sub.example.org"))
	assert.Error(t, ValidateEmail("user@example"))
	assert.Error(t, ValidateEmail("user at example.com"))
	assert.Error(t, ValidateEmail(strings.Repeat("a", 250)+"@e.com"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("password123"))
	assert.Error(t, ValidatePassword("short1"))
	assert.Error(t, ValidatePassword("allletters"))
	assert.Error(t, ValidatePassword("123456789"))
	assert.Error(t, ValidatePassword(strings.Repeat("a1", 70)))
}

// Callers rely on errors.As to map these to field-level 400 responses, so
// every rejection must carry the validation code.
func TestValidationErrorsCarryCode(t *testing.T) {
	for _, err := range []error{
		ValidateName(""),
		ValidateEmail("bogus"),
		ValidatePassword("short1"),
	} {
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	}
}
