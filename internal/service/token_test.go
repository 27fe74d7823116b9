package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shutterspot/api/internal/config"
)

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()

	cfg := &config.Config{}
	cfg.Auth.TokenSecret = "test-secret"
	cfg.Auth.TokenTTLHours = config.DefaultTokenTTLHours

	svc, err := NewTokenService(cfg)
	require.NoError(t, err)
	return svc
}

// signAt builds a token signed with the service secret whose validity
// window started at issuedAt. Used to exercise expiry boundaries without
// a fake clock.
func signAt(t *testing.T, svc *TokenService, issuedAt time.Time) string {
	t.Helper()

	claims := Claims{
		UserID: "user-1",
		Email:  "ana@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(svc.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)
	require.NoError(t, err)
	return signed
}

func TestTokenServiceRequiresSecret(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth.TokenTTLHours = config.DefaultTokenTTLHours

	_, err := NewTokenService(cfg)
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.Issue("user-1", "ana@example.com")
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestTokenAcceptedBeforeExpiry(t *testing.T) {
	svc := newTestTokenService(t)

	// Issued 6 days 23 hours ago with a 7 day TTL: one hour of validity
	// left.
	token := signAt(t, svc, time.Now().Add(-(6*24+23)*time.Hour))

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestTokenRejectedAfterExpiry(t *testing.T) {
	svc := newTestTokenService(t)

	// Issued 7 days 1 hour ago: expired one hour ago.
	token := signAt(t, svc, time.Now().Add(-(7*24+1)*time.Hour))

	_, err := svc.Verify(token)
	assert.Error(t, err)
}

func TestTokenRejectedWhenTampered(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.Issue("user-1", "ana@example.com")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"

	_, err = svc.Verify(tampered)
	assert.Error(t, err)
}

func TestTokenRejectedWithWrongSecret(t *testing.T) {
	svc := newTestTokenService(t)

	other := &TokenService{secret: []byte("other-secret"), ttl: svc.ttl}
	token, err := other.Issue("user-1", "ana@example.com")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.Error(t, err)
}

func TestTokenRejectedWithUnexpectedAlgorithm(t *testing.T) {
	svc := newTestTokenService(t)

	// alg=none tokens must never verify, even with a valid payload.
	claims := Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(unsigned)
	assert.Error(t, err)
}
