package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestIssueAndVerify(t *testing.T) {
	svc := NewService(testSecret, 24)
	userID := uuid.New()

	tokenStr, err := svc.Issue(userID, "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	claims, err := svc.Verify(tokenStr)
	require.NoError(t, err)
	require.Equal(t, userID.String(), claims.UserID)
	require.Equal(t, "user@example.com", claims.Email)
	require.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestVerifyMalformed(t *testing.T) {
	svc := NewService(testSecret, 24)

	for _, tokenStr := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJIUzI1NiJ9"} {
		_, err := svc.Verify(tokenStr)
		require.ErrorIs(t, err, ErrInvalid)
	}
}

func TestVerifyWrongKey(t *testing.T) {
	svc := NewService(testSecret, 24)
	other := NewService("a-different-secret", 24)

	tokenStr, err := other.Issue(uuid.New(), "user@example.com")
	require.NoError(t, err)

	_, err = svc.Verify(tokenStr)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestVerifyExpired(t *testing.T) {
	svc := NewService(testSecret, 24)

	past := time.Now().Add(-time.Hour)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(past.Add(-24 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(past),
		},
		UserID: uuid.New().String(),
		Email:  "user@example.com",
	}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(tokenStr)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerifyRejectsNonHMAC(t *testing.T) {
	svc := NewService(testSecret, 24)

	// alg "none" must never be accepted even for a well-formed payload.
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: uuid.New().String(),
	}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(tokenStr)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestVerifyRejectsBadUserID(t *testing.T) {
	svc := NewService(testSecret, 24)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: "not-a-uuid",
		Email:  "user@example.com",
	}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(tokenStr)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestTTLDefault(t *testing.T) {
	require.Equal(t, 24*time.Hour, NewService(testSecret, 0).TTL())
	require.Equal(t, 24*time.Hour, NewService(testSecret, -5).TTL())
	require.Equal(t, 2*time.Hour, NewService(testSecret, 2).TTL())
}
