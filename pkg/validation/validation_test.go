package validation_test

import (
	"encoding/json"
	"testing"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator() *validator.Validate {
	return validation.New()
}

func TestRegisterRequest_UnknownRole(t *testing.T) {
	req := domain.RegisterRequest{
		Email:     "a@b.com",
		Username:  "alice",
		Password:  "secret1",
		FirstName: "Alice",
		LastName:  "Smith",
		Role:      "SUPERUSER",
	}
	err := newValidator().Struct(req)
	require.Error(t, err)

	msgs := validation.FormatValidationErrors(err)
	assert.Equal(t, []string{"Role must be one of: CANDIDATE, RECRUITER, ADMIN"}, msgs)
}

func TestRegisterRequest_Valid(t *testing.T) {
	req := domain.RegisterRequest{
		Email:     "a@b.com",
		Username:  "alice",
		Password:  "secret1",
		FirstName: "Alice",
		LastName:  "Smith",
		Role:      domain.RoleRecruiter,
	}
	assert.NoError(t, newValidator().Struct(req))
}

func TestStatusUpdate_Validation(t *testing.T) {
	v := newValidator()
	assert.NoError(t, v.Struct(domain.ApplicationStatusUpdateRequest{Status: domain.StatusShortlisted}))

	err := v.Struct(domain.ApplicationStatusUpdateRequest{Status: "HIRED"})
	require.Error(t, err)
	assert.Contains(t, validation.FormatValidationErrors(err)[0], "Status must be one of")

	err = v.Struct(domain.ApplicationStatusUpdateRequest{})
	require.Error(t, err)
	assert.Equal(t, []string{"Status is required"}, validation.FormatValidationErrors(err))
}

func TestJobRequest_MissingFields(t *testing.T) {
	err := newValidator().Struct(domain.JobRequest{Title: "Go dev"})
	require.Error(t, err)

	msgs := validation.FormatValidationErrors(err)
	assert.ElementsMatch(t, []string{
		"Description is required",
		"Location is required",
		"Employment type is required",
	}, msgs)
}

func TestFormatValidationErrors_NotValidation(t *testing.T) {
	var target map[string]any
	err := json.Unmarshal([]byte("{"), &target)
	assert.Equal(t, []string{"Malformed request body"}, validation.FormatValidationErrors(err))
}
