package auth

import (
	"net/http"
	"strings"
)

// AuthorizationHeader is the only request header the gate reads.
const AuthorizationHeader = "Authorization"

// ExtractToken returns the token segment of a "Bearer <token>" Authorization
// header. The scheme is matched case-insensitively; anything other than exactly
// one token segment after it is rejected. A present but blank header has no
// scheme and is malformed; only an absent or empty one counts as missing.
func ExtractToken(header http.Header) (string, error) {
	value := header.Get(AuthorizationHeader)
	if value == "" {
		return "", ErrMissingHeader
	}

	parts := strings.Fields(value)
	switch {
	case len(parts) == 0, !strings.EqualFold(parts[0], "bearer"):
		return "", newError(KindMalformedHeader, `Authorization header must start with "Bearer".`, nil)
	case len(parts) == 1:
		return "", newError(KindMalformedHeader, "Token not found.", nil)
	case len(parts) > 2:
		return "", newError(KindMalformedHeader, "Authorization header must be bearer token.", nil)
	}

	return parts[1], nil
}
