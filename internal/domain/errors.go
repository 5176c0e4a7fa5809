package domain

import (
	"errors"
	"fmt"
	"reflect"
)

var ErrSecretNotFound = errors.New("secret not found")

// ErrorKind identifies a member of the closed set of errors returned by the
// entitlements client.
type ErrorKind string

const (
	KindInvalidConfig                     ErrorKind = "invalid_config"
	KindNotSignedIn                       ErrorKind = "not_signed_in"
	KindEntitlementsServiceConfigNotFound ErrorKind = "entitlements_service_config_not_found"
	KindInvalidInput                      ErrorKind = "invalid_input"
	KindAccountLocked                     ErrorKind = "account_locked"
	KindNotAuthorized                     ErrorKind = "not_authorized"
	KindLimitExceeded                     ErrorKind = "limit_exceeded"
	KindInsufficientEntitlements          ErrorKind = "insufficient_entitlements"
	KindVersionMismatch                   ErrorKind = "version_mismatch"
	KindServiceError                      ErrorKind = "service_error"
	KindRequestFailed                     ErrorKind = "request_failed"
	KindRateLimitExceeded                 ErrorKind = "rate_limit_exceeded"
	KindGraphQLError                      ErrorKind = "graphql_error"
	KindFatalError                        ErrorKind = "fatal_error"
	KindAmbiguousEntitlements             ErrorKind = "ambiguous_entitlements"
	KindInternalError                     ErrorKind = "internal_error"
	KindInvalidArgument                   ErrorKind = "invalid_argument"
	KindInvalidTokenError                 ErrorKind = "invalid_token"
	KindNoEntitlementsError               ErrorKind = "no_entitlements"
	KindPolicyFailed                      ErrorKind = "policy_failed"
	KindNoExternalID                      ErrorKind = "no_external_id"
	KindNoBillingGroup                    ErrorKind = "no_billing_group"
	KindEntitlementsSetNotFound           ErrorKind = "entitlements_set_not_found"
	KindEntitlementsSequenceNotFound      ErrorKind = "entitlements_sequence_not_found"
)

var kindMessages = map[ErrorKind]string{
	KindInvalidConfig:                     "Invalid configuration",
	KindNotSignedIn:                       "User is not signed in",
	KindEntitlementsServiceConfigNotFound: "Entitlements service configuration not found",
	KindInvalidInput:                      "Invalid input",
	KindAccountLocked:                     "Account is locked",
	KindNotAuthorized:                     "Not authorized",
	KindLimitExceeded:                     "Limit exceeded",
	KindInsufficientEntitlements:          "Insufficient entitlements",
	KindVersionMismatch:                   "Version mismatch",
	KindServiceError:                      "Service error",
	KindRequestFailed:                     "Request failed",
	KindRateLimitExceeded:                 "Rate limit exceeded",
	KindGraphQLError:                      "Unexpected GraphQL error",
	KindFatalError:                        "Unexpected fatal error occurred",
	KindAmbiguousEntitlements:             "Ambiguous entitlements",
	KindInternalError:                     "Internal error",
	KindInvalidArgument:                   "Invalid argument",
	KindInvalidTokenError:                 "Invalid token",
	KindNoEntitlementsError:               "No entitlements",
	KindPolicyFailed:                      "Policy failed",
	KindNoExternalID:                      "No external ID",
	KindNoBillingGroup:                    "No billing group",
	KindEntitlementsSetNotFound:           "Entitlements set not found",
	KindEntitlementsSequenceNotFound:      "Entitlements sequence not found",
}

// Kinds returns every member of the error taxonomy.
func Kinds() []ErrorKind {
	return []ErrorKind{
		KindInvalidConfig,
		KindNotSignedIn,
		KindEntitlementsServiceConfigNotFound,
		KindInvalidInput,
		KindAccountLocked,
		KindNotAuthorized,
		KindLimitExceeded,
		KindInsufficientEntitlements,
		KindVersionMismatch,
		KindServiceError,
		KindRequestFailed,
		KindRateLimitExceeded,
		KindGraphQLError,
		KindFatalError,
		KindAmbiguousEntitlements,
		KindInternalError,
		KindInvalidArgument,
		KindInvalidTokenError,
		KindNoEntitlementsError,
		KindPolicyFailed,
		KindNoExternalID,
		KindNoBillingGroup,
		KindEntitlementsSetNotFound,
		KindEntitlementsSequenceNotFound,
	}
}

// Message returns the human readable summary for the kind.
func (k ErrorKind) Message() string {
	if msg, ok := kindMessages[k]; ok {
		return msg
	}
	return string(k)
}

// Error is the single error type surfaced by the entitlements client.
//
// StatusCode and Cause are only populated for KindRequestFailed. Description
// carries the remote message for KindGraphQLError, the reason for
// KindFatalError, the cause for KindInternalError and the message for
// KindInvalidArgument.
type Error struct {
	Kind        ErrorKind
	StatusCode  int
	Cause       error
	Description string
}

func (e *Error) Error() string {
	msg := e.Kind.Message()
	switch {
	case e.Kind == KindRequestFailed && e.StatusCode != 0 && e.Cause != nil:
		return fmt.Sprintf("%s: status %d: %v", msg, e.StatusCode, e.Cause)
	case e.Kind == KindRequestFailed && e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d", msg, e.StatusCode)
	case e.Kind == KindRequestFailed && e.Cause != nil:
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	case e.Description != "":
		return msg + ": " + e.Description
	default:
		return msg
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind. Payloads are not
// compared, except for KindRequestFailed which matches on status code when
// both sides carry one and on the dynamic type of the cause otherwise.
// ErrRequestFailed itself matches every request failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	if e.Kind != t.Kind {
		return false
	}
	if e.Kind != KindRequestFailed || t == ErrRequestFailed {
		return true
	}
	if e.StatusCode != 0 && t.StatusCode != 0 {
		return e.StatusCode == t.StatusCode
	}
	return reflect.TypeOf(e.Cause) == reflect.TypeOf(t.Cause)
}

// Retryable reports whether callers may reasonably retry the failed call.
// The client itself never retries.
func (e *Error) Retryable() bool {
	return e.Kind == KindServiceError || e.Kind == KindRateLimitExceeded
}

var (
	ErrInvalidConfig                     = &Error{Kind: KindInvalidConfig}
	ErrNotSignedIn                       = &Error{Kind: KindNotSignedIn}
	ErrEntitlementsServiceConfigNotFound = &Error{Kind: KindEntitlementsServiceConfigNotFound}
	ErrInvalidInput                      = &Error{Kind: KindInvalidInput}
	ErrAccountLocked                     = &Error{Kind: KindAccountLocked}
	ErrNotAuthorized                     = &Error{Kind: KindNotAuthorized}
	ErrLimitExceeded                     = &Error{Kind: KindLimitExceeded}
	ErrInsufficientEntitlements          = &Error{Kind: KindInsufficientEntitlements}
	ErrVersionMismatch                   = &Error{Kind: KindVersionMismatch}
	ErrServiceError                      = &Error{Kind: KindServiceError}
	ErrRateLimitExceeded                 = &Error{Kind: KindRateLimitExceeded}
	ErrAmbiguousEntitlements             = &Error{Kind: KindAmbiguousEntitlements}
	ErrInvalidTokenError                 = &Error{Kind: KindInvalidTokenError}
	ErrNoEntitlementsError               = &Error{Kind: KindNoEntitlementsError}
	ErrPolicyFailed                      = &Error{Kind: KindPolicyFailed}
	ErrNoExternalID                      = &Error{Kind: KindNoExternalID}
	ErrNoBillingGroup                    = &Error{Kind: KindNoBillingGroup}
	ErrEntitlementsSetNotFound           = &Error{Kind: KindEntitlementsSetNotFound}
	ErrEntitlementsSequenceNotFound      = &Error{Kind: KindEntitlementsSequenceNotFound}

	// Payload-carrying kinds. Use the constructors below to attach data; these
	// values exist for errors.Is comparisons.
	ErrRequestFailed   = &Error{Kind: KindRequestFailed}
	ErrGraphQLError    = &Error{Kind: KindGraphQLError}
	ErrFatalError      = &Error{Kind: KindFatalError}
	ErrInternalError   = &Error{Kind: KindInternalError}
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
)

func NewRequestFailed(statusCode int, cause error) *Error {
	return &Error{Kind: KindRequestFailed, StatusCode: statusCode, Cause: cause}
}

func NewGraphQLError(description string) *Error {
	return &Error{Kind: KindGraphQLError, Description: description}
}

func NewFatalError(description string) *Error {
	return &Error{Kind: KindFatalError, Description: description}
}

func NewInternalError(cause string) *Error {
	return &Error{Kind: KindInternalError, Description: cause}
}

func NewInvalidArgument(message string) *Error {
	return &Error{Kind: KindInvalidArgument, Description: message}
}
