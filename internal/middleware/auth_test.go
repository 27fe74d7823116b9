package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shutterspot/api/internal/config"
	"github.com/shutterspot/api/internal/errs"
	"github.com/shutterspot/api/internal/model"
	"github.com/shutterspot/api/internal/server"
	"github.com/shutterspot/api/internal/service"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserResolver struct {
	users map[string]*model.User
}

func (s *stubUserResolver) GetByID(_ context.Context, id string) (*model.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

type authFixture struct {
	auth   *AuthMiddleware
	tokens *service.TokenService
	users  *stubUserResolver
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	cfg := &config.Config{
		Auth: config.AuthConfig{
			TokenSecret:   "test-secret",
			TokenTTLHours: config.DefaultTokenTTLHours,
			CookieName:    config.DefaultAuthCookieName,
		},
	}

	tokens, err := service.NewTokenService(cfg)
	require.NoError(t, err)

	logger := zerolog.Nop()
	srv := &server.Server{Config: cfg, Logger: &logger}

	name := "Ada"
	users := &stubUserResolver{users: map[string]*model.User{
		"user-1": {ID: "user-1", Email: "ada@example.com", Name: &name},
	}}

	return &authFixture{
		auth:   NewAuthMiddleware(srv, tokens, users),
		tokens: tokens,
		users:  users,
	}
}

func runRequireAuth(f *authFixture, decorate func(*http.Request)) (echo.Context, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := f.auth.RequireAuth(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	return c, handler(c)
}

func assertInvalidCredentials(t *testing.T, err error) {
	t.Helper()
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
	assert.Equal(t, "Invalid credentials", httpErr.Message)
}

func TestRequireAuthAcceptsBearerToken(t *testing.T) {
	f := newAuthFixture(t)

	token, err := f.tokens.Issue("user-1", "ada@example.com")
	require.NoError(t, err)

	c, err := runRequireAuth(f, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})

	require.NoError(t, err)
	assert.Equal(t, "user-1", GetUserID(c))
	assert.Equal(t, "ada@example.com", GetUserEmail(c))
	require.NotNil(t, GetUser(c))
	require.NotNil(t, GetUser(c).Name)
	assert.Equal(t, "Ada", *GetUser(c).Name)
}

func TestRequireAuthAcceptsCookieToken(t *testing.T) {
	f := newAuthFixture(t)

	token, err := f.tokens.Issue("user-1", "ada@example.com")
	require.NoError(t, err)

	c, err := runRequireAuth(f, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: config.DefaultAuthCookieName, Value: token})
	})

	require.NoError(t, err)
	assert.Equal(t, "user-1", GetUserID(c))
}

func TestRequireAuthPrefersHeaderOverCookie(t *testing.T) {
	f := newAuthFixture(t)

	token, err := f.tokens.Issue("user-1", "ada@example.com")
	require.NoError(t, err)

	// A garbage cookie must not shadow a valid header token.
	_, err = runRequireAuth(f, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		req.AddCookie(&http.Cookie{Name: config.DefaultAuthCookieName, Value: "garbage"})
	})

	require.NoError(t, err)
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	f := newAuthFixture(t)

	_, err := runRequireAuth(f, nil)

	assertInvalidCredentials(t, err)
}

func TestRequireAuthRejectsTamperedToken(t *testing.T) {
	f := newAuthFixture(t)

	token, err := f.tokens.Issue("user-1", "ada@example.com")
	require.NoError(t, err)

	_, err = runRequireAuth(f, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token+"x")
	})

	assertInvalidCredentials(t, err)
}

func TestRequireAuthRejectsDeletedUser(t *testing.T) {
	f := newAuthFixture(t)

	token, err := f.tokens.Issue("user-gone", "gone@example.com")
	require.NoError(t, err)

	_, err = runRequireAuth(f, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})

	assertInvalidCredentials(t, err)
}

func TestOptionalAuthPassesAnonymous(t *testing.T) {
	f := newAuthFixture(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/locations", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := f.auth.OptionalAuth(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.Empty(t, GetUserID(c))
	assert.Nil(t, GetUser(c))
}

func TestOptionalAuthAttachesIdentityWhenPresent(t *testing.T) {
	f := newAuthFixture(t)

	token, err := f.tokens.Issue("user-1", "ada@example.com")
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/locations", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := f.auth.OptionalAuth(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, "user-1", GetUserID(c))
}
