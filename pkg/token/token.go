// Package token issues and verifies the signed session credentials used by
// the API. Tokens are stateless: there is no revocation list, a token stays
// valid for its full window.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalid covers malformed, forged, and wrongly-signed tokens.
	ErrInvalid = errors.New("token invalid")
	// ErrExpired covers well-formed tokens past their validity window.
	ErrExpired = errors.New("token expired")
)

// Claims carried by every session token.
type Claims struct {
	jwt.RegisteredClaims

	UserID string `json:"userId"`
	Email  string `json:"email"`
}

type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, expiryHours int) *Service {
	if expiryHours <= 0 {
		expiryHours = 24
	}
	return &Service{
		secret: []byte(secret),
		ttl:    time.Duration(expiryHours) * time.Hour,
	}
}

// TTL returns the validity window tokens are issued with.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue signs a new token for the given user with a fresh validity window.
func (s *Service) Issue(userID uuid.UUID, email string) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID: userID.String(),
		Email:  email,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses and validates a token string. It distinguishes ErrExpired
// from ErrInvalid so callers can log the cause; the HTTP layer maps both to
// the same authentication failure.
func (s *Service) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}

	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, ErrInvalid
	}

	return claims, nil
}
