package auth

import (
	"fmt"
	"net/http"

	"casting/internal/domain"
)

var _ domain.HTTPError = (*AuthorizationError)(nil)

// ErrorKind identifies why a request failed authorization.
type ErrorKind string

const (
	KindMissingHeader             ErrorKind = "MissingHeader"
	KindMalformedHeader           ErrorKind = "MalformedHeader"
	KindMalformedToken            ErrorKind = "MalformedToken"
	KindUnknownSigningKey         ErrorKind = "UnknownSigningKey"
	KindInvalidSignature          ErrorKind = "InvalidSignature"
	KindExpired                   ErrorKind = "Expired"
	KindClaimsInvalid             ErrorKind = "ClaimsInvalid"
	KindPermissionMissing         ErrorKind = "PermissionMissing"
	KindPermissionDenied          ErrorKind = "PermissionDenied"
	KindUpstreamKeySetUnavailable ErrorKind = "UpstreamKeySetUnavailable"
)

// ErrorClass groups kinds by who has to act on them.
type ErrorClass string

const (
	// ClassClient failures are fixed by the caller re-authenticating or
	// resending a well-formed header.
	ClassClient ErrorClass = "client"
	// ClassDenied failures mean the caller is authenticated but not allowed.
	ClassDenied ErrorClass = "denied"
	// ClassUpstream failures point at the identity provider or our
	// configuration of it rather than at the caller.
	ClassUpstream ErrorClass = "upstream"
)

type kindInfo struct {
	status int
	code   string
	class  ErrorClass
}

var kinds = map[ErrorKind]kindInfo{
	KindMissingHeader:             {http.StatusUnauthorized, "authorization_header_missing", ClassClient},
	KindMalformedHeader:           {http.StatusUnauthorized, "invalid_header", ClassClient},
	KindMalformedToken:            {http.StatusUnauthorized, "invalid_header", ClassClient},
	KindExpired:                   {http.StatusUnauthorized, "token_expired", ClassClient},
	KindClaimsInvalid:             {http.StatusUnauthorized, "invalid_claims", ClassClient},
	KindPermissionMissing:         {http.StatusForbidden, "invalid_claims", ClassDenied},
	KindPermissionDenied:          {http.StatusForbidden, "unauthorized", ClassDenied},
	KindUnknownSigningKey:         {http.StatusUnauthorized, "invalid_header", ClassUpstream},
	KindInvalidSignature:          {http.StatusUnauthorized, "invalid_signature", ClassUpstream},
	KindUpstreamKeySetUnavailable: {http.StatusUnauthorized, "jwks_unavailable", ClassUpstream},
}

// AuthorizationError is the classified failure returned by every step of the
// authorization chain. The transport renders Status, Code and Description as
// they are.
type AuthorizationError struct {
	Kind        ErrorKind
	Status      int
	Code        string
	Description string

	// cause is kept for server-side logs only and never rendered.
	cause error
}

func newError(kind ErrorKind, description string, cause error) *AuthorizationError {
	info := kinds[kind]
	return &AuthorizationError{
		Kind:        kind,
		Status:      info.status,
		Code:        info.code,
		Description: description,
		cause:       cause,
	}
}

// Error implements the error interface
func (e *AuthorizationError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Description, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Description)
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *AuthorizationError) Unwrap() error {
	return e.cause
}

// StatusCode implements domain.HTTPError
func (e *AuthorizationError) StatusCode() int {
	return e.Status
}

// ErrorCode implements domain.HTTPError
func (e *AuthorizationError) ErrorCode() string {
	return e.Code
}

// Class reports which side of the system the failure belongs to.
func (e *AuthorizationError) Class() ErrorClass {
	return kinds[e.Kind].class
}

// Is matches another AuthorizationError of the same kind, so callers can
// write errors.Is(err, auth.ErrExpired).
func (e *AuthorizationError) Is(target error) bool {
	t, ok := target.(*AuthorizationError)
	return ok && t.Kind == e.Kind
}

// Kind sentinels for errors.Is comparisons.
var (
	ErrMissingHeader             = newError(KindMissingHeader, "Authorization header is expected.", nil)
	ErrMalformedHeader           = newError(KindMalformedHeader, "Authorization header must be bearer token.", nil)
	ErrMalformedToken            = newError(KindMalformedToken, "Authorization malformed.", nil)
	ErrUnknownSigningKey         = newError(KindUnknownSigningKey, "Unable to find the appropriate key.", nil)
	ErrInvalidSignature          = newError(KindInvalidSignature, "Token signature is invalid.", nil)
	ErrExpired                   = newError(KindExpired, "Token expired.", nil)
	ErrClaimsInvalid             = newError(KindClaimsInvalid, "Incorrect claims. Please, check the audience and issuer.", nil)
	ErrPermissionMissing         = newError(KindPermissionMissing, "Permissions not included in JWT.", nil)
	ErrPermissionDenied          = newError(KindPermissionDenied, "Permission not found.", nil)
	ErrUpstreamKeySetUnavailable = newError(KindUpstreamKeySetUnavailable, "Unable to retrieve signing keys.", nil)
)
