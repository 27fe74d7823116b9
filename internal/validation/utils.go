package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/shutterspot/api/internal/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to
// validate themselves, usually by running validator.Struct on their tags.
type Validatable interface {
	Validate() error
}

// CustomValidationError is a validation failure that cannot be expressed
// through struct tags (e.g. "endDate must be after startDate").
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors satisfies error so services can return a batch of
// cross-field failures.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate populates payload from the request (body, path and query
// params) and validates it. payload must be a pointer so echo's Bind can
// mutate it. Returns a 400 *errs.HTTPError on either failure.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		var echoErr *echo.HTTPError
		message := "Malformed request"
		if ok := strings.Contains(err.Error(), "message="); ok {
			message = strings.Split(err.Error(), "message=")[1]
			if idx := strings.Index(message, ", internal="); idx >= 0 {
				message = message[:idx]
			}
		} else if e, ok2 := err.(*echo.HTTPError); ok2 {
			echoErr = e
			if msg, ok3 := echoErr.Message.(string); ok3 {
				message = msg
			}
		}
		return errs.NewBadRequestError(message, false, nil, nil)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors)
	}

	return nil
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		if customErrors, isCustom := err.(CustomValidationErrors); isCustom {
			for _, custom := range customErrors {
				fieldErrors = append(fieldErrors, errs.FieldError{
					Field: custom.Field,
					Error: custom.Message,
				})
			}
			return "Validation failed", fieldErrors
		}
		return err.Error(), []errs.FieldError{{Field: "request", Error: err.Error()}}
	}

	for _, verr := range validationErrors {
		field := strings.ToLower(verr.Field())
		var msg string

		switch verr.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if verr.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", verr.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", verr.Param())
			}

		case "max":
			if verr.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", verr.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", verr.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", verr.Param())

		case "email":
			msg = "must be a valid email address"

		case "uuid":
			msg = "must be a valid UUID"

		case "gte":
			msg = fmt.Sprintf("must be at least %s", verr.Param())

		case "lte":
			msg = fmt.Sprintf("must not exceed %s", verr.Param())

		case "gtefield":
			msg = fmt.Sprintf("must not be less than %s", strings.ToLower(verr.Param()))

		case "url":
			msg = "must be a valid URL"

		case "dive":
			msg = "some items are invalid"

		default:
			if verr.Param() != "" {
				msg = fmt.Sprintf("failed %s:%s validation", verr.Tag(), verr.Param())
			} else {
				msg = fmt.Sprintf("failed %s validation", verr.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}
