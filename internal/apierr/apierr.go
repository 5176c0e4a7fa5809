// Package apierr defines the error categories raised by the entitlements
// service transport. The GraphQL adapter classifies every failure into one of
// these values; the domain layer maps them onto its own taxonomy.
package apierr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAccountLocked            = errors.New("account locked")
	ErrNotSignedIn              = errors.New("not signed in")
	ErrNotAuthorized            = errors.New("not authorized")
	ErrLimitExceeded            = errors.New("limit exceeded")
	ErrInsufficientEntitlements = errors.New("insufficient entitlements")
	ErrVersionMismatch          = errors.New("version mismatch")
	ErrServiceError             = errors.New("service error")
	ErrInvalidRequest           = errors.New("invalid request")
	ErrRateLimitExceeded        = errors.New("rate limit exceeded")
)

// RequestFailedError reports a request that did not produce a GraphQL
// response: connectivity failures (StatusCode 0) or unexpected HTTP statuses.
type RequestFailedError struct {
	StatusCode int
	Cause      error
}

func (e *RequestFailedError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Cause != nil:
		return fmt.Sprintf("request failed: status %d: %v", e.StatusCode, e.Cause)
	case e.StatusCode != 0:
		return fmt.Sprintf("request failed: status %d", e.StatusCode)
	case e.Cause != nil:
		return fmt.Sprintf("request failed: %v", e.Cause)
	default:
		return "request failed"
	}
}

func (e *RequestFailedError) Unwrap() error {
	return e.Cause
}

// GraphQLError is a remote error entry returned in the "errors" array of a
// GraphQL response. ErrorType carries the service's stable error code.
type GraphQLError struct {
	Message   string
	ErrorType string
	Path      []string
}

func (e *GraphQLError) Error() string {
	var b strings.Builder
	b.WriteString("graphql error")
	if e.ErrorType != "" {
		b.WriteString(" ")
		b.WriteString(e.ErrorType)
	}
	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}
