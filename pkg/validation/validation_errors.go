package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps JSON field names to the labels shown in error messages
var FieldLabels = map[string]string{
	"email":              "Email",
	"username":           "Username",
	"password":           "Password",
	"firstName":          "First name",
	"lastName":           "Last name",
	"role":               "Role",
	"usernameOrEmail":    "Username or email",
	"title":              "Title",
	"description":        "Description",
	"location":           "Location",
	"employmentType":     "Employment type",
	"experienceRequired": "Experience required",
	"jobId":              "Job id",
	"resume":             "Resume",
	"status":             "Status",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error (malformed JSON, wrong types)
		return []string{"Malformed request body"}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at least %s", label, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at most %s", label, param)

	case "email":
		return fmt.Sprintf("%s must be a valid email address", label)

	case "role":
		return fmt.Sprintf("%s must be one of: CANDIDATE, RECRUITER, ADMIN", label)

	case "appstatus":
		return fmt.Sprintf("%s must be one of: APPLIED, REVIEWED, SHORTLISTED, REJECTED, ACCEPTED, WITHDRAWN", label)

	default:
		return fmt.Sprintf("%s is invalid (%s)", label, e.Tag())
	}
}

func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts camelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
			r += 'a' - 'A'
		}
		result.WriteRune(r)
	}
	return result.String()
}

// Message joins the formatted errors into a single line.
func Message(err error) string {
	return strings.Join(FormatValidationErrors(err), "; ")
}
