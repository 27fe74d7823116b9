package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shutterspot/api/internal/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testValidate = validator.New()

type signupPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=HOST GUEST"`
}

func (p *signupPayload) Validate() error {
	return testValidate.Struct(p)
}

func newJSONContext(t *testing.T, body string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestBindAndValidateSuccess(t *testing.T) {
	c := newJSONContext(t, `{"email":"ada@example.com","password":"correct-horse","role":"HOST"}`)

	payload := &signupPayload{}
	err := BindAndValidate(c, payload)

	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", payload.Email)
	assert.Equal(t, "HOST", payload.Role)
}

func TestBindAndValidateRejectsMistypedField(t *testing.T) {
	c := newJSONContext(t, `{"email":"ada@example.com","password":12345678}`)

	err := BindAndValidate(c, &signupPayload{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestBindAndValidateRejectsMalformedJSON(t *testing.T) {
	c := newJSONContext(t, `{"email":`)

	err := BindAndValidate(c, &signupPayload{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestBindAndValidateExtractsFieldErrors(t *testing.T) {
	c := newJSONContext(t, `{"email":"not-an-email","password":"short","role":"ADMIN"}`)

	err := BindAndValidate(c, &signupPayload{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Validation failed", httpErr.Message)
	require.Len(t, httpErr.Errors, 3)

	byField := map[string]string{}
	for _, fe := range httpErr.Errors {
		byField[fe.Field] = fe.Error
	}
	assert.Equal(t, "must be a valid email address", byField["email"])
	assert.Equal(t, "must be at least 8 characters", byField["password"])
	assert.Equal(t, "must be one of: HOST GUEST", byField["role"])
}

func TestBindAndValidateRequiredFields(t *testing.T) {
	c := newJSONContext(t, `{}`)

	err := BindAndValidate(c, &signupPayload{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Len(t, httpErr.Errors, 2)
	assert.Equal(t, "email", httpErr.Errors[0].Field)
	assert.Equal(t, "is required", httpErr.Errors[0].Error)
	assert.Equal(t, "password", httpErr.Errors[1].Field)
}

type windowPayload struct {
	Start string
	End   string
}

func (p *windowPayload) Validate() error {
	if p.End <= p.Start {
		return CustomValidationErrors{
			{Field: "endTime", Message: "must be after startTime"},
		}
	}
	return nil
}

func TestBindAndValidateCustomErrors(t *testing.T) {
	c := newJSONContext(t, `{"Start":"b","End":"a"}`)

	err := BindAndValidate(c, &windowPayload{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "Validation failed", httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "endTime", httpErr.Errors[0].Field)
	assert.Equal(t, "must be after startTime", httpErr.Errors[0].Error)
}
