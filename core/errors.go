package core

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// genericAPIErrMsg is surfaced when the backend gives no message of its own.
const genericAPIErrMsg = "something went wrong, please try again"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return fmt.Sprintf("%s: %s", err.Fields[0].Field, err.Fields[0].Error)
		}
		return ""
	}
	return err.Err.Error()
}

// APIError is a structured failure returned by the backend; Message carries
// the human-readable text extracted from the error response body.
type APIError struct {
	StatusCode int
	Message    string
}

func NewAPIError(code int, msg string) *APIError {
	if msg == "" {
		if msg = http.StatusText(code); msg == "" {
			msg = genericAPIErrMsg
		}
	}
	return &APIError{StatusCode: code, Message: msg}
}

func (err APIError) Error() string {
	return err.Message
}

// IsAuthFailure reports whether err is an ordinary authentication failure
// (bad credentials, deactivated account) as opposed to a transport error.
func IsAuthFailure(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusBadRequest || apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
	}
	return false
}
