// Package auth verifies the bearer tokens issued by the external auth
// service. Both the HTTP middleware and the websocket upgrade use it; this
// service never issues tokens itself.
package auth

import (
	"fmt"
	"strings"

	"livetrack/internal/core/domain/model/kernel"
	"livetrack/internal/core/ports"
	"livetrack/internal/pkg/errs"

	"github.com/golang-jwt/jwt"
)

// TokenVerifier validates HS256 bearer tokens and extracts the caller's
// identity from the user_id and role claims.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier creates a verifier for the shared signing secret.
func NewTokenVerifier(secret string) (*TokenVerifier, error) {
	if secret == "" {
		return nil, errs.NewValueIsRequiredError("secret")
	}
	return &TokenVerifier{secret: []byte(secret)}, nil
}

// Verify parses the token (with or without the "Bearer " prefix) and returns
// the authenticated identity.
func (v *TokenVerifier) Verify(tokenString string) (ports.Identity, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	if tokenString == "" {
		return ports.Identity{}, errs.NewValueIsRequiredError("token")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return ports.Identity{}, errs.NewNotAuthorizedErrorWithCause("unknown", "authenticate", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return ports.Identity{}, errs.NewNotAuthorizedError("unknown", "authenticate")
	}

	rawUserID, ok := claims["user_id"].(string)
	if !ok {
		return ports.Identity{}, errs.NewNotAuthorizedError("unknown", "authenticate")
	}

	userID, err := kernel.UUIDFromString(rawUserID)
	if err != nil {
		return ports.Identity{}, errs.NewNotAuthorizedErrorWithCause(rawUserID, "authenticate", err)
	}

	rawRole, ok := claims["role"].(string)
	if !ok {
		return ports.Identity{}, errs.NewNotAuthorizedError(rawUserID, "authenticate")
	}

	role, err := ports.ParseRole(rawRole)
	if err != nil {
		return ports.Identity{}, errs.NewNotAuthorizedErrorWithCause(rawUserID, "authenticate", err)
	}

	return ports.Identity{UserID: userID, Role: role}, nil
}
