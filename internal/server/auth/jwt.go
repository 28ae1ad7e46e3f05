// Package auth issues and checks the session tokens that stand in for the
// browser session cookie: each carries an opaque, random session id.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tokenvote/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// SessionIDLength is the number of alphabet characters in a session id.
const SessionIDLength = 16

// Claims carries the session id next to the registered claims.
type Claims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

// NewSessionID draws a fresh random session id.
func NewSessionID() (string, error) {
	return common.RandomString(common.SafeAlphabet, SessionIDLength)
}

// GenerateToken signs sessionID into an HS256 token valid for validity.
func GenerateToken(sessionID string, secretKey []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		SessionID: sessionID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// GetSessionIDFromToken validates tokenString and returns its session id.
// Any failure, including expiry, is common.ErrInvalidToken.
func GetSessionIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: session expired", common.ErrInvalidToken)
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.SessionID == "" {
		return "", common.ErrInvalidToken
	}
	return claims.SessionID, nil
}
