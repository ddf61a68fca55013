package auth_test

import (
	"testing"

	"go-jobportal-backend/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := auth.NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.True(t, h.Compare(hash, "s3cret!"))
	assert.False(t, h.Compare(hash, "S3cret!"))
	assert.False(t, h.Compare("not-a-hash", "s3cret!"))
}

func TestBcryptHasher_SaltsEachHash(t *testing.T) {
	h := auth.NewBcryptHasher(bcrypt.MinCost)
	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestBcryptHasher_EmptyPassword(t *testing.T) {
	_, err := auth.NewBcryptHasher(bcrypt.MinCost).Hash("")
	assert.Error(t, err)
}
