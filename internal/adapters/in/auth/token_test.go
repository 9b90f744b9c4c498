package auth

import (
	"testing"
	"time"

	"livetrack/internal/core/domain/model/kernel"
	"livetrack/internal/core/ports"
	"livetrack/internal/pkg/errs"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func Test_TokenVerifier_ValidToken(t *testing.T) {
	verifier, err := NewTokenVerifier(testSecret)
	require.NoError(t, err)

	userID := kernel.NewUUID()
	token := signedToken(t, testSecret, jwt.MapClaims{
		"user_id": userID.String(),
		"role":    "rider",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	identity, err := verifier.Verify("Bearer " + token)

	require.NoError(t, err)
	assert.True(t, identity.UserID.IsEqual(userID))
	assert.Equal(t, ports.RoleRider, identity.Role)
}

func Test_TokenVerifier_RejectsWrongSecret(t *testing.T) {
	verifier, err := NewTokenVerifier(testSecret)
	require.NoError(t, err)

	token := signedToken(t, "other-secret", jwt.MapClaims{
		"user_id": kernel.NewUUID().String(),
		"role":    "customer",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	_, err = verifier.Verify(token)

	require.ErrorIs(t, err, errs.ErrNotAuthorized)
}

func Test_TokenVerifier_RejectsExpiredToken(t *testing.T) {
	verifier, err := NewTokenVerifier(testSecret)
	require.NoError(t, err)

	token := signedToken(t, testSecret, jwt.MapClaims{
		"user_id": kernel.NewUUID().String(),
		"role":    "customer",
		"exp":     time.Now().Add(-time.Minute).Unix(),
	})

	_, err = verifier.Verify(token)

	require.ErrorIs(t, err, errs.ErrNotAuthorized)
}

func Test_TokenVerifier_RejectsUnknownRole(t *testing.T) {
	verifier, err := NewTokenVerifier(testSecret)
	require.NoError(t, err)

	token := signedToken(t, testSecret, jwt.MapClaims{
		"user_id": kernel.NewUUID().String(),
		"role":    "superuser",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	_, err = verifier.Verify(token)

	require.ErrorIs(t, err, errs.ErrNotAuthorized)
}

func Test_TokenVerifier_RejectsMissingClaims(t *testing.T) {
	verifier, err := NewTokenVerifier(testSecret)
	require.NoError(t, err)

	token := signedToken(t, testSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err = verifier.Verify(token)

	require.ErrorIs(t, err, errs.ErrNotAuthorized)
}

func Test_TokenVerifier_RejectsEmptyToken(t *testing.T) {
	verifier, err := NewTokenVerifier(testSecret)
	require.NoError(t, err)

	_, err = verifier.Verify("")

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func Test_NewTokenVerifier_RequiresSecret(t *testing.T) {
	_, err := NewTokenVerifier("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
