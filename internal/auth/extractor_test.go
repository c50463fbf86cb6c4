package auth

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		set       bool
		wantToken string
		wantKind  ErrorKind
	}{
		{name: "no header", set: false, wantKind: KindMissingHeader},
		{name: "empty header", header: "", set: true, wantKind: KindMissingHeader},
		{name: "whitespace only", header: "   ", set: true, wantKind: KindMalformedHeader},
		{name: "bearer with token", header: "Bearer abc.def.ghi", set: true, wantToken: "abc.def.ghi"},
		{name: "scheme is case-insensitive", header: "bEaReR abc.def.ghi", set: true, wantToken: "abc.def.ghi"},
		{name: "extra spaces between parts", header: "Bearer    tok", set: true, wantToken: "tok"},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", set: true, wantKind: KindMalformedHeader},
		{name: "scheme only", header: "Bearer", set: true, wantKind: KindMalformedHeader},
		{name: "too many parts", header: "Bearer a b", set: true, wantKind: KindMalformedHeader},
		{name: "token without scheme", header: "abc.def.ghi", set: true, wantKind: KindMalformedHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			if tt.set {
				header[AuthorizationHeader] = []string{tt.header}
			}

			token, err := ExtractToken(header)
			if tt.wantKind == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
				return
			}

			require.Error(t, err)
			assert.Empty(t, token)
			var authErr *AuthorizationError
			require.True(t, errors.As(err, &authErr))
			assert.Equal(t, tt.wantKind, authErr.Kind)
			assert.Equal(t, http.StatusUnauthorized, authErr.Status)
		})
	}
}

func TestExtractToken_MissingHeaderCode(t *testing.T) {
	_, err := ExtractToken(http.Header{})
	assert.ErrorIs(t, err, ErrMissingHeader)

	var authErr *AuthorizationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "authorization_header_missing", authErr.Code)
	assert.Equal(t, "Authorization header is expected.", authErr.Description)
}
