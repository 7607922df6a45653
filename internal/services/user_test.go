package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/moodflow-ai/moodflow-backend/internal/models"
)

func TestValidateProfile(t *testing.T) {
	valid := func() *models.UserProfile {
		return &models.UserProfile{
			FirstName:   "Amina",
			LastName:    "Odhiambo",
			DateOfBirth: "1995-04-12",
		}
	}

	t.Run("accepts a complete profile", func(t *testing.T) {
		assert.NoError(t, ValidateProfile(valid()))
	})

	t.Run("nil profile", func(t *testing.T) {
		assert.ErrorIs(t, ValidateProfile(nil), ErrProfileValidation)
	})

	t.Run("missing first name", func(t *testing.T) {
		p := valid()
		p.FirstName = "  "
		assert.ErrorIs(t, ValidateProfile(p), ErrProfileValidation)
	})

	t.Run("missing last name", func(t *testing.T) {
		p := valid()
		p.LastName = ""
		assert.ErrorIs(t, ValidateProfile(p), ErrProfileValidation)
	})

	t.Run("missing date of birth", func(t *testing.T) {
		p := valid()
		p.DateOfBirth = ""
		assert.ErrorIs(t, ValidateProfile(p), ErrProfileValidation)
	})

	t.Run("malformed date of birth", func(t *testing.T) {
		p := valid()
		p.DateOfBirth = "12/04/1995"
		assert.ErrorIs(t, ValidateProfile(p), ErrProfileValidation)
	})
}
