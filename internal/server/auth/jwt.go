// Package auth encodes user identity claims into signed HS256 JWTs and
// decodes them back.
//
// The signing secret is passed into every call; the package keeps no key
// state. A token issued with validity <= 0 carries no exp claim and stays
// valid until the secret changes.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySecret is returned by GenerateToken for a zero-length key.
var ErrEmptySecret = errors.New("empty signing secret")

// timeNow is a seam for tests.
var timeNow = time.Now

// Claims is the token payload: a snapshot of the user record plus the
// registered claims (sub mirrors UserID).
type Claims struct {
	UserID    string    `json:"uid"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	jwt.RegisteredClaims
}

// ClaimsFor builds the claims for u.
func ClaimsFor(u models.User) Claims {
	return Claims{UserID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}

// user returns the user snapshot embedded in the claims.
func (c *Claims) user() models.User {
	return models.User{ID: c.UserID, Email: c.Email, Name: c.Name, CreatedAt: c.CreatedAt}
}

// GenerateToken signs c with secretKey; validity <= 0 omits exp and iat.
func GenerateToken(c Claims, secretKey []byte, validity time.Duration) (string, error) {
	if len(secretKey) == 0 {
		return "", ErrEmptySecret
	}

	c.RegisteredClaims = jwt.RegisteredClaims{Subject: c.UserID}
	if validity > 0 {
		now := timeNow()
		c.IssuedAt = jwt.NewNumericDate(now)
		c.ExpiresAt = jwt.NewNumericDate(now.Add(validity))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenString, nil
}

// ParseToken verifies tokenString with secretKey and returns its claims.
// Errors are common.ErrMalformedToken, common.ErrInvalidSignature,
// common.ErrTokenExpired or common.ErrInvalidToken; all match
// common.ErrInvalidToken with errors.Is.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	if len(secretKey) == 0 {
		return nil, ErrEmptySecret
	}

	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(timeNow),
	)
	if err != nil {
		return nil, classify(err)
	}

	if !token.Valid || claims.UserID == "" || claims.Subject != claims.UserID {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return common.ErrMalformedToken
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return common.ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return common.ErrTokenExpired
	default:
		return common.ErrInvalidToken
	}
}
