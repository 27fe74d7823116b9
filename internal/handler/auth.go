package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shutterspot/api/internal/errs"
	"github.com/shutterspot/api/internal/middleware"
	"github.com/shutterspot/api/internal/model"
	"github.com/shutterspot/api/internal/server"
	"github.com/shutterspot/api/internal/service"
)

// AuthHandler serves registration, login and the current-user endpoint.
type AuthHandler struct {
	Handler
	auth *service.AuthService
}

func NewAuthHandler(s *server.Server, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auth:    auth,
	}
}

type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	Name     *string `json:"name" validate:"omitempty,max=100"`
}

func (r *RegisterRequest) Validate() error { return validate.Struct(r) }

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error { return validate.Struct(r) }

// AuthResponse carries the sanitized user plus the signed token.
type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// Register creates an account and signs the caller in.
func (h *AuthHandler) Register(c echo.Context, req *RegisterRequest) (*AuthResponse, error) {
	user, token, err := h.auth.Register(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return nil, err
	}

	h.setAuthCookie(c, token)

	return &AuthResponse{User: user, Token: token}, nil
}

// Login checks credentials and returns the user with a fresh token.
func (h *AuthHandler) Login(c echo.Context, req *LoginRequest) (*AuthResponse, error) {
	user, token, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	h.setAuthCookie(c, token)

	return &AuthResponse{User: user, Token: token}, nil
}

// Me returns the caller's account. Runs behind RequireAuth, which
// resolved the user already.
func (h *AuthHandler) Me(c echo.Context, _ *EmptyRequest) (*model.User, error) {
	user := middleware.GetUser(c)
	if user == nil {
		return nil, errs.NewUnauthorizedError("Invalid credentials", false)
	}
	return user, nil
}

// Logout clears the auth cookie. Tokens themselves stay valid until
// expiry; there is no server-side session to revoke.
func (h *AuthHandler) Logout(c echo.Context, _ *EmptyRequest) (*SuccessResponse, error) {
	c.SetCookie(&http.Cookie{
		Name:     h.server.Config.Auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return &SuccessResponse{Success: true}, nil
}

// setAuthCookie mirrors the token into an http-only cookie so browser
// clients authenticate without storing the token in script-readable
// state.
func (h *AuthHandler) setAuthCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     h.server.Config.Auth.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(time.Duration(h.server.Config.Auth.TokenTTLHours) * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.server.Config.Primary.Env == "production",
	})
}
