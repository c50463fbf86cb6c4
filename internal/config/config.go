package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	CORSOrigins string
	TablePrefix string
	PageSize    int
	// Identity provider
	Auth0Domain      string
	Auth0ClientID    string
	Auth0CallbackURL string
	APIAudience      string
	Issuer           string   // Defaults to https://<domain>/
	Algorithms       []string // Allowed signing algorithms
	JWKSURL          string   // Defaults to https://<domain>/.well-known/jwks.json
	// Key set fetching
	JWKSFetchTimeout       time.Duration
	JWKSMinRefreshInterval time.Duration
	// Logging
	LogDir      string
	LogMaxFiles int
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	domain := strings.TrimSuffix(strings.TrimPrefix(getEnv("AUTH0_DOMAIN", ""), "https://"), "/")

	// Construct issuer and JWKS URL from the provider domain
	issuer := getEnv("AUTH0_ISSUER", "")
	jwksURL := getEnv("JWKS_URL", "")
	if domain != "" {
		if issuer == "" {
			issuer = "https://" + domain + "/"
		}
		if jwksURL == "" {
			jwksURL = "https://" + domain + "/.well-known/jwks.json"
		}
	}

	return &Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      env,
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		CORSOrigins:      getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix:      getTablePrefix(env),
		PageSize:         getEnvInt("PAGE_SIZE", 10),
		Auth0Domain:      domain,
		Auth0ClientID:    getEnv("AUTH0_CLIENT_ID", ""),
		Auth0CallbackURL: getEnv("AUTH0_CALLBACK_URL", ""),
		APIAudience:      getEnv("API_AUDIENCE", ""),
		Issuer:           issuer,
		Algorithms:       splitList(getEnv("ALGORITHMS", "RS256")),
		JWKSURL:          jwksURL,
		// Fetch timeout bounds how long a request can wait on the provider
		JWKSFetchTimeout:       getEnvDuration("JWKS_FETCH_TIMEOUT", 5*time.Second),
		JWKSMinRefreshInterval: getEnvDuration("JWKS_MIN_REFRESH_INTERVAL", 0),
		LogDir:                 getEnv("LOG_DIR", ""),
		LogMaxFiles:            getEnvInt("LOG_MAX_FILES", 10),
	}
}

// Validate checks that the settings needed to verify tokens are present.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, is.Port),
		validation.Field(&c.Environment, validation.In("dev", "test", "prod")),
		validation.Field(&c.Auth0Domain, validation.Required, is.Host),
		validation.Field(&c.APIAudience, validation.Required),
		validation.Field(&c.Issuer, validation.Required, is.URL),
		validation.Field(&c.JWKSURL, validation.Required, is.URL),
		validation.Field(&c.Algorithms, validation.Required, validation.Each(
			validation.In("RS256", "RS384", "RS512", "PS256", "PS384", "PS512", "ES256", "ES384", "ES512"),
		)),
		validation.Field(&c.JWKSFetchTimeout, validation.Required, validation.Min(100*time.Millisecond)),
		validation.Field(&c.JWKSMinRefreshInterval, validation.Min(time.Duration(0))),
		validation.Field(&c.PageSize, validation.Required, validation.Min(1), validation.Max(MaxPageSize)),
		validation.Field(&c.LogMaxFiles, validation.Min(1)),
	)
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvDuration accepts Go durations ("5s") or bare seconds ("5")
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if n, err := strconv.Atoi(value); err == nil {
		return time.Duration(n) * time.Second
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
