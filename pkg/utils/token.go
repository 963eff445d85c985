package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued bearer token stays valid. Tokens cannot be
// revoked before expiry; logout only clears the server-side session.
const TokenTTL = time.Hour

// TokenUser is the identity claim embedded in a bearer token.
type TokenUser struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email"`
}

// TokenClaims is the full JWT payload: {"user": {"id": ..., "email": ...}}.
type TokenClaims struct {
	User TokenUser `json:"user"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("invalid token")

// GenerateToken signs a bearer token for the given identity with a 1 hour expiry.
func GenerateToken(user TokenUser, secret string) (string, error) {
	claims := TokenClaims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyToken validates signature and expiry and returns the identity claim.
// Expired and forged tokens both come back as ErrInvalidToken; callers are not
// told which, so verification internals never leak to clients.
func VerifyToken(tokenString, secret string) (TokenUser, error) {
	var claims TokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return TokenUser{}, ErrInvalidToken
	}
	if claims.User.Email == "" && claims.User.ID == "" {
		return TokenUser{}, ErrInvalidToken
	}
	return claims.User, nil
}
