package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go-jobportal-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, http.StatusConflict, apperror.CodeOf(apperror.Conflict("dup")))
	assert.Equal(t, http.StatusForbidden, apperror.CodeOf(fmt.Errorf("wrapped: %w", apperror.Forbidden("no"))))
	assert.Equal(t, http.StatusInternalServerError, apperror.CodeOf(errors.New("boom")))
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("store unreachable")
	err := apperror.Internal(cause)
	assert.Equal(t, "Internal Server Error", err.Error())
	assert.ErrorIs(t, err, cause)
}
