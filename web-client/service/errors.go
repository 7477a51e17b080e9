package service

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed API call.
type ErrorKind int

const (
	// KindNetwork covers transport failures and timeouts.
	KindNetwork ErrorKind = iota
	// KindAuthentication is a 401: the token is missing, invalid or expired.
	KindAuthentication
	// KindValidation is a 4xx that carried a usable detail message.
	KindValidation
	// KindServer is any other non-success response, or a malformed body.
	KindServer
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuthentication:
		return "authentication"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	default:
		return fmt.Sprintf("unknown kind: %d", int(k))
	}
}

// APIError is returned by every API method on failure.
type APIError struct {
	Op         string
	Kind       ErrorKind
	StatusCode int
	Detail     string
	Err        error
}

func (e *APIError) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("%s: %s error (status %d): %s", e.Op, e.Kind, e.StatusCode, e.Detail)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s error (status %d)", e.Op, e.Kind, e.StatusCode)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewStatusError classifies a non-success HTTP response.
func NewStatusError(op string, statusCode int, detail string) *APIError {
	kind := KindServer
	switch {
	case statusCode == http.StatusUnauthorized:
		kind = KindAuthentication
	case statusCode >= 400 && statusCode < 500 && detail != "":
		kind = KindValidation
	}
	return &APIError{Op: op, Kind: kind, StatusCode: statusCode, Detail: detail}
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindAuthentication
}

// DetailOr returns the server-provided detail of a validation error, or
// fallback for every other failure.
func DetailOr(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Kind == KindValidation && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
