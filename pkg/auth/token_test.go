package auth_test

import (
	"testing"
	"time"

	"go-jobportal-backend/pkg/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-for-tokens"

func newService(t *testing.T, issuer string) *auth.TokenService {
	t.Helper()
	svc, err := auth.NewTokenService(auth.TokenConfig{Secret: testSecret, Issuer: issuer, Expiration: time.Hour})
	require.NoError(t, err)
	return svc
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := newService(t, "jobportal")

	tok, err := svc.Generate("u-1", "jdoe", "RECRUITER")
	require.NoError(t, err)

	claims, err := svc.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, "jdoe", claims.Username)
	assert.Equal(t, "RECRUITER", claims.Role)
	assert.Equal(t, "jobportal", claims.Issuer)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestTokenService_Expired(t *testing.T) {
	svc := newService(t, "jobportal")
	past := svc.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })

	tok, err := past.Generate("u-1", "jdoe", "CANDIDATE")
	require.NoError(t, err)

	_, err = svc.Parse(tok)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenService_WrongSecret(t *testing.T) {
	svc := newService(t, "jobportal")
	tok, err := svc.Generate("u-1", "jdoe", "CANDIDATE")
	require.NoError(t, err)

	other, err := auth.NewTokenService(auth.TokenConfig{Secret: "another-secret", Issuer: "jobportal", Expiration: time.Hour})
	require.NoError(t, err)

	_, err = other.Parse(tok)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenService_WrongIssuer(t *testing.T) {
	tok, err := newService(t, "someone-else").Generate("u-1", "jdoe", "CANDIDATE")
	require.NoError(t, err)

	_, err = newService(t, "jobportal").Parse(tok)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenService_RejectsNoneAlgorithm(t *testing.T) {
	claims := auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			Issuer:    "jobportal",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: "u-1",
		Role:   "ADMIN",
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newService(t, "jobportal").Parse(tok)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenService_Garbage(t *testing.T) {
	_, err := newService(t, "").Parse("not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestNewTokenService_Validation(t *testing.T) {
	_, err := auth.NewTokenService(auth.TokenConfig{Expiration: time.Hour})
	assert.Error(t, err)

	_, err = auth.NewTokenService(auth.TokenConfig{Secret: "x"})
	assert.Error(t, err)
}
