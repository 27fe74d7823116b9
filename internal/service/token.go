package service

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"

	"github.com/shutterspot/api/internal/config"
)

// Claims is the payload of an API token: who the caller is plus the
// standard issued-at/expiry window.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256-signed API tokens. Tokens are
// the only session state; nothing is stored server-side.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService builds the service from config. The signing secret is
// validated at config load, but an empty secret is refused here too so a
// miswired caller cannot issue unsigned-equivalent tokens.
func NewTokenService(cfg *config.Config) (*TokenService, error) {
	if cfg.Auth.TokenSecret == "" {
		return nil, errors.New("auth token secret is not configured")
	}

	return &TokenService{
		secret: []byte(cfg.Auth.TokenSecret),
		ttl:    time.Duration(cfg.Auth.TokenTTLHours) * time.Hour,
	}, nil
}

// Issue signs a token for the given user, valid for the configured TTL.
func (t *TokenService) Issue(userID, email string) (string, error) {
	now := time.Now()

	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return signed, nil
}

// Verify parses and validates a token string. Expired, tampered and
// wrong-algorithm tokens all return an error; callers treat any error
// the same as a missing token.
func (t *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Only HMAC is acceptable; an RS256 token signed with the public
		// secret bytes must not slip through.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid || claims.UserID == "" {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
