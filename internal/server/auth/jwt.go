// Package auth handles access tokens and credential hashing for the API.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/common"
)

// Claims carries the authenticated username and rank alongside the
// registered claims.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Rank     string `json:"rank"`
}

// GenerateToken mints an HS256 token for the given account.
func GenerateToken(username, rank string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Username: username,
		Rank:     rank,
	})

	return token.SignedString(secretKey)
}

// ParseToken validates the token and returns its claims. Expired tokens
// yield common.ErrTokenExpired; any other validation failure yields
// common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
