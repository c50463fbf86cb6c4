package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"casting/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/juju/clock"
)

// DefaultAlgorithms is used when no algorithm allow-list is configured.
var DefaultAlgorithms = []string{"RS256"}

var errKeyAlgorithmMismatch = errors.New("signing key is published for a different algorithm")

// VerifierConfig holds the static expectations a token must meet.
type VerifierConfig struct {
	Issuer     string
	Audience   string
	Algorithms []string
}

// JWTVerifier implements TokenVerifier for provider-issued access tokens,
// resolving signing keys through a KeyResolver.
type JWTVerifier struct {
	keys   KeyResolver
	parser *jwt.Parser
	logger *slog.Logger
}

// NewJWTVerifier creates a verifier. clk supplies "now" for expiry checks.
func NewJWTVerifier(cfg VerifierConfig, keys KeyResolver, clk clock.Clock, logger *slog.Logger) (*JWTVerifier, error) {
	if cfg.Issuer == "" {
		return nil, errors.New("issuer cannot be empty")
	}
	if cfg.Audience == "" {
		return nil, errors.New("audience cannot be empty")
	}
	if keys == nil {
		return nil, errors.New("key resolver cannot be nil")
	}
	if clk == nil {
		clk = clock.WallClock
	}

	algorithms := cfg.Algorithms
	if len(algorithms) == 0 {
		algorithms = DefaultAlgorithms
	}
	for _, alg := range algorithms {
		if jwt.GetSigningMethod(alg) == nil {
			return nil, fmt.Errorf("unsupported signing algorithm %q", alg)
		}
	}

	// Prevent algorithm confusion attacks - only the configured methods verify
	parser := jwt.NewParser(
		jwt.WithValidMethods(algorithms),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithAudience(cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(clk.Now),
	)

	logger.Info("JWT verifier initialized",
		"issuer", cfg.Issuer,
		"audience", cfg.Audience,
		"algorithms", algorithms,
	)

	return &JWTVerifier{
		keys:   keys,
		parser: parser,
		logger: logger,
	}, nil
}

// VerifyToken validates a JWT and returns its claims. The steps run in a fixed
// order: header, key resolution, signature, then claims.
func (v *JWTVerifier) VerifyToken(ctx context.Context, tokenString string) (models.Claims, error) {
	unverified, _, err := v.parser.ParseUnverified(tokenString, &models.Claims{})
	if err != nil {
		v.logger.Debug("token parse failed", "error", err)
		return models.Claims{}, newError(KindMalformedToken, "Unable to parse authentication token.", err)
	}

	kid, _ := unverified.Header["kid"].(string)
	if kid == "" {
		v.logger.Debug("token header has no kid")
		return models.Claims{}, ErrMalformedToken
	}

	key, err := v.keys.GetKey(ctx, kid)
	if err != nil {
		return models.Claims{}, err
	}

	var claims models.Claims
	_, err = v.parser.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if key.Algorithm != "" && key.Algorithm != token.Method.Alg() {
			return nil, errKeyAlgorithmMismatch
		}
		return key.PublicKey(), nil
	})
	if err != nil {
		authErr := classifyParseError(err)
		v.logger.Debug("token rejected",
			"kind", authErr.Kind,
			"kid", kid,
			"error", err,
		)
		return models.Claims{}, authErr
	}

	return claims, nil
}

// classifyParseError maps golang-jwt's joined validation errors onto kinds.
// Claim problems other than expiry win over expiry: re-authenticating would
// not fix a wrong issuer or audience.
func classifyParseError(err error) *AuthorizationError {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return newError(KindMalformedToken, "Unable to parse authentication token.", err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return newError(KindInvalidSignature, ErrInvalidSignature.Description, err)
	case errors.Is(err, jwt.ErrTokenInvalidIssuer),
		errors.Is(err, jwt.ErrTokenInvalidAudience),
		errors.Is(err, jwt.ErrTokenNotValidYet),
		errors.Is(err, jwt.ErrTokenUsedBeforeIssued),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return newError(KindClaimsInvalid, ErrClaimsInvalid.Description, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return newError(KindExpired, ErrExpired.Description, err)
	default:
		return newError(KindClaimsInvalid, ErrClaimsInvalid.Description, err)
	}
}
