package domain

import (
	"errors"
	"fmt"

	"github.com/bnema/entitlements-cli/internal/apierr"
)

// Remote error codes reported by the entitlements service in the errorType
// field of a GraphQL error.
const (
	RemoteCodeAmbiguousEntitlements        = "sudoplatform.entitlements.AmbiguousEntitlementsError"
	RemoteCodeNoEntitlements               = "sudoplatform.NoEntitlementsError"
	RemoteCodeNoExternalID                 = "sudoplatform.entitlements.NoExternalIdError"
	RemoteCodeNoBillingGroup               = "sudoplatform.entitlements.NoBillingGroupError"
	RemoteCodeEntitlementsSetNotFound      = "sudoplatform.entitlements.EntitlementsSetNotFoundError"
	RemoteCodeEntitlementsSequenceNotFound = "sudoplatform.entitlements.EntitlementsSequenceNotFoundError"
	RemoteCodeInsufficientEntitlements     = "sudoplatform.InsufficientEntitlementsError"
	RemoteCodeInvalidArgument              = "sudoplatform.InvalidArgumentError"
	RemoteCodeInvalidToken                 = "sudoplatform.InvalidTokenError"
	RemoteCodePolicyFailed                 = "sudoplatform.PolicyFailed"
	RemoteCodeServiceError                 = "sudoplatform.ServiceError"
	RemoteCodeLimitExceeded                = "sudoplatform.LimitExceededError"
	RemoteCodeAccountLocked                = "sudoplatform.AccountLockedError"
	RemoteCodeVersionMismatch              = "sudoplatform.VersionMismatchError"
)

var remoteCodeKinds = map[string]ErrorKind{
	RemoteCodeAmbiguousEntitlements:        KindAmbiguousEntitlements,
	RemoteCodeNoEntitlements:               KindNoEntitlementsError,
	RemoteCodeNoExternalID:                 KindNoExternalID,
	RemoteCodeNoBillingGroup:               KindNoBillingGroup,
	RemoteCodeEntitlementsSetNotFound:      KindEntitlementsSetNotFound,
	RemoteCodeEntitlementsSequenceNotFound: KindEntitlementsSequenceNotFound,
	RemoteCodeInsufficientEntitlements:     KindInsufficientEntitlements,
	RemoteCodeInvalidArgument:              KindInvalidArgument,
	RemoteCodeInvalidToken:                 KindInvalidTokenError,
	RemoteCodePolicyFailed:                 KindPolicyFailed,
	RemoteCodeServiceError:                 KindServiceError,
	RemoteCodeLimitExceeded:                KindLimitExceeded,
	RemoteCodeAccountLocked:                KindAccountLocked,
	RemoteCodeVersionMismatch:              KindVersionMismatch,
}

// transportKinds is checked in order; the first matching sentinel wins.
var transportKinds = []struct {
	sentinel error
	kind     ErrorKind
}{
	{apierr.ErrAccountLocked, KindAccountLocked},
	{apierr.ErrNotSignedIn, KindNotSignedIn},
	{apierr.ErrNotAuthorized, KindNotAuthorized},
	{apierr.ErrLimitExceeded, KindLimitExceeded},
	{apierr.ErrInsufficientEntitlements, KindInsufficientEntitlements},
	{apierr.ErrVersionMismatch, KindVersionMismatch},
	{apierr.ErrServiceError, KindServiceError},
	{apierr.ErrInvalidRequest, KindInvalidInput},
	{apierr.ErrRateLimitExceeded, KindRateLimitExceeded},
}

// FromRemoteErrorCode classifies a remote error code. Codes outside the
// known table become KindGraphQLError carrying message, or the code itself
// when the service sent no message.
func FromRemoteErrorCode(code, message string) *Error {
	if kind, ok := remoteCodeKinds[code]; ok {
		if kind == KindInvalidArgument {
			return NewInvalidArgument(message)
		}
		return &Error{Kind: kind}
	}

	description := message
	if description == "" {
		description = code
	}
	return NewGraphQLError(description)
}

// FromTransportError classifies any error raised by the transport. It always
// returns a non-nil *Error.
func FromTransportError(err error) *Error {
	var domainErr *Error
	if errors.As(err, &domainErr) && domainErr != nil {
		return domainErr
	}

	var graphQLErr *apierr.GraphQLError
	if errors.As(err, &graphQLErr) && graphQLErr != nil {
		return FromRemoteErrorCode(graphQLErr.ErrorType, graphQLErr.Message)
	}

	var requestFailed *apierr.RequestFailedError
	if errors.As(err, &requestFailed) && requestFailed != nil {
		return NewRequestFailed(requestFailed.StatusCode, requestFailed.Cause)
	}

	for _, candidate := range transportKinds {
		if errors.Is(err, candidate.sentinel) {
			return &Error{Kind: candidate.kind}
		}
	}

	return NewFatalError(fmt.Sprintf("unexpected error: %v", err))
}
