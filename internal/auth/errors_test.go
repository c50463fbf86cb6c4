package auth

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds_StatusAndCode(t *testing.T) {
	tests := []struct {
		err    *AuthorizationError
		status int
		code   string
		class  ErrorClass
	}{
		{ErrMissingHeader, http.StatusUnauthorized, "authorization_header_missing", ClassClient},
		{ErrMalformedHeader, http.StatusUnauthorized, "invalid_header", ClassClient},
		{ErrMalformedToken, http.StatusUnauthorized, "invalid_header", ClassClient},
		{ErrUnknownSigningKey, http.StatusUnauthorized, "invalid_header", ClassUpstream},
		{ErrInvalidSignature, http.StatusUnauthorized, "invalid_signature", ClassUpstream},
		{ErrExpired, http.StatusUnauthorized, "token_expired", ClassClient},
		{ErrClaimsInvalid, http.StatusUnauthorized, "invalid_claims", ClassClient},
		{ErrPermissionMissing, http.StatusForbidden, "invalid_claims", ClassDenied},
		{ErrPermissionDenied, http.StatusForbidden, "unauthorized", ClassDenied},
		{ErrUpstreamKeySetUnavailable, http.StatusUnauthorized, "jwks_unavailable", ClassUpstream},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Kind), func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.StatusCode())
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.code, tt.err.ErrorCode())
			assert.Equal(t, tt.class, tt.err.Class())
			assert.NotEmpty(t, tt.err.Description)
		})
	}
}

func TestAuthorizationError_IsMatchesKind(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("wrapped: %w", newError(KindUpstreamKeySetUnavailable, "custom description", cause))

	assert.ErrorIs(t, err, ErrUpstreamKeySetUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrExpired)
	assert.Contains(t, err.Error(), "connection refused")
}
