package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shutterspot/api/internal/errs"
	"github.com/shutterspot/api/internal/model"
	"github.com/shutterspot/api/internal/server"
	"github.com/shutterspot/api/internal/service"
)

const bearerPrefix = "Bearer "

// UserResolver loads the account behind a verified token. A token whose
// user no longer exists counts as unauthenticated.
type UserResolver interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// AuthMiddleware verifies bearer tokens and attaches the caller's
// identity to the request.
type AuthMiddleware struct {
	server *server.Server
	tokens *service.TokenService
	users  UserResolver
}

func NewAuthMiddleware(s *server.Server, tokens *service.TokenService, users UserResolver) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
		tokens: tokens,
		users:  users,
	}
}

// extractToken pulls the token from the Authorization header first,
// then falls back to the auth cookie. Returns "" when neither is
// present.
func (auth *AuthMiddleware) extractToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimPrefix(header, bearerPrefix)
	}

	cookie, err := c.Cookie(auth.server.Config.Auth.CookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	return ""
}

// resolve verifies the request's token and loads its user. Returns nil
// for any failure: missing token, bad signature, expiry, or a deleted
// user.
func (auth *AuthMiddleware) resolve(c echo.Context) *model.User {
	token := auth.extractToken(c)
	if token == "" {
		return nil
	}

	claims, err := auth.tokens.Verify(token)
	if err != nil {
		return nil
	}

	user, err := auth.users.GetByID(c.Request().Context(), claims.UserID)
	if err != nil {
		return nil
	}

	return user
}

// RequireAuth enforces authentication. Missing, malformed, expired and
// tampered tokens, and tokens for deleted users, all produce the same
// 401 so callers cannot probe which check failed.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		user := auth.resolve(c)
		if user == nil {
			auth.server.Logger.Warn().
				Str("function", "RequireAuth").
				Str("request_id", GetRequestID(c)).
				Dur("duration", time.Since(start)).
				Msg("unauthenticated request rejected")

			return errs.NewUnauthorizedError("Invalid credentials", false)
		}

		c.Set(UserIDKey, user.ID)
		c.Set(UserEmailKey, user.Email)
		c.Set(UserKey, user)

		return next(c)
	}
}

// OptionalAuth attaches identity when a valid token is present but
// never rejects the request. Used on public routes that personalize
// output for signed-in users.
func (auth *AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if user := auth.resolve(c); user != nil {
			c.Set(UserIDKey, user.ID)
			c.Set(UserEmailKey, user.Email)
			c.Set(UserKey, user)
		}

		return next(c)
	}
}
