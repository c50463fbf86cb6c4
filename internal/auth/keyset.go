package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	// DefaultFetchTimeout bounds a single key document fetch.
	DefaultFetchTimeout = 5 * time.Second

	// maxKeyDocumentSize caps the key document body; real providers publish a
	// handful of keys.
	maxKeyDocumentSize = 1 << 20

	// maxThrottledKeyIDs bounds how many recently refreshed ids are tracked.
	maxThrottledKeyIDs = 1024

	refreshKey = "jwks"
)

// SigningKey is one public key published by the identity provider.
type SigningKey struct {
	KeyID     string
	KeyType   string
	Use       string
	Algorithm string
	Modulus   string
	Exponent  string

	jwk jwkset.JWK
}

// PublicKey returns the decoded key material (*rsa.PublicKey for RSA keys).
func (k SigningKey) PublicKey() any {
	return k.jwk.Key()
}

// KeySet is an immutable snapshot of the provider's keys.
type KeySet struct {
	keys      map[string]SigningKey
	FetchedAt time.Time
}

// KeyIDs returns the ids in the snapshot, sorted.
func (s *KeySet) KeyIDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.keys))
	for id := range s.keys {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// KeySetCacheConfig configures a KeySetCache.
type KeySetCacheConfig struct {
	// URL of the JSON Web Key Set document.
	URL string
	// FetchTimeout bounds each fetch. Zero means DefaultFetchTimeout.
	FetchTimeout time.Duration
	// MinRefreshInterval is how long an id that already triggered a refresh
	// must wait before it may trigger another one. An id that has not
	// triggered a refresh is never throttled. Zero disables throttling.
	MinRefreshInterval time.Duration
	// HTTPClient is optional; its Timeout is left alone, FetchTimeout applies
	// through the request context.
	HTTPClient *http.Client
}

// KeySetCache fetches the provider's key document and caches it. Lookups that
// miss trigger one refresh; concurrent misses share the same fetch.
type KeySetCache struct {
	url     string
	timeout time.Duration
	client   *http.Client
	throttle *refreshThrottle
	logger   *slog.Logger

	current atomic.Pointer[KeySet]
	group   singleflight.Group
	fetches atomic.Int64
}

// NewKeySetCache creates an empty cache. Nothing is fetched until the first
// lookup or an explicit Prime.
func NewKeySetCache(cfg KeySetCacheConfig, logger *slog.Logger) (*KeySetCache, error) {
	if cfg.URL == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}

	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	var throttle *refreshThrottle
	if cfg.MinRefreshInterval > 0 {
		throttle = newRefreshThrottle(cfg.MinRefreshInterval)
	}

	return &KeySetCache{
		url:      cfg.URL,
		timeout:  timeout,
		client:   client,
		throttle: throttle,
		logger:   logger,
	}, nil
}

// GetKey resolves a signing key by id, refreshing the cached set at most once
// when the id is not present.
func (c *KeySetCache) GetKey(ctx context.Context, keyID string) (SigningKey, error) {
	if key, ok := c.lookup(keyID); ok {
		return key, nil
	}

	if c.throttle != nil && !c.throttle.allow(keyID) {
		c.logger.Debug("key set refresh throttled", "kid", keyID)
		return SigningKey{}, ErrUnknownSigningKey
	}

	if err := c.refresh(ctx); err != nil {
		return SigningKey{}, err
	}

	if key, ok := c.lookup(keyID); ok {
		return key, nil
	}

	c.logger.Warn("signing key not published by identity provider", "kid", keyID)
	return SigningKey{}, ErrUnknownSigningKey
}

// Prime fetches the key document eagerly.
func (c *KeySetCache) Prime(ctx context.Context) error {
	_, err, _ := c.group.Do(refreshKey, func() (interface{}, error) {
		return nil, c.fetch()
	})
	return err
}

// Snapshot returns the current key set, or nil if nothing was fetched yet.
func (c *KeySetCache) Snapshot() *KeySet {
	return c.current.Load()
}

// Fetches reports how many key documents were requested from the provider.
func (c *KeySetCache) Fetches() int64 {
	return c.fetches.Load()
}

func (c *KeySetCache) lookup(keyID string) (SigningKey, bool) {
	set := c.current.Load()
	if set == nil {
		return SigningKey{}, false
	}
	key, ok := set.keys[keyID]
	return key, ok
}

// refresh joins (or starts) the shared fetch. A caller whose context ends
// stops waiting; the fetch itself keeps going for the other waiters.
func (c *KeySetCache) refresh(ctx context.Context) error {
	ch := c.group.DoChan(refreshKey, func() (interface{}, error) {
		return nil, c.fetch()
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// refreshThrottle remembers which key ids recently triggered a refresh. Each
// id gets its own single-token bucket, so a flood of bogus ids can never use
// up the refresh budget of an id that the provider has just published.
type refreshThrottle struct {
	mu       sync.Mutex
	interval time.Duration
	ids      map[string]*rate.Limiter
}

func newRefreshThrottle(interval time.Duration) *refreshThrottle {
	return &refreshThrottle{
		interval: interval,
		ids:      make(map[string]*rate.Limiter),
	}
}

// allow reports whether keyID may trigger a refresh now.
func (t *refreshThrottle) allow(keyID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	lim, ok := t.ids[keyID]
	if !ok {
		if len(t.ids) >= maxThrottledKeyIDs {
			t.prune()
		}
		lim = rate.NewLimiter(rate.Every(t.interval), 1)
		t.ids[keyID] = lim
	}
	return lim.Allow()
}

// prune drops ids whose interval has elapsed. If every tracked id is still
// inside its interval the set is reset; forgetting an id only lets it
// refresh again.
func (t *refreshThrottle) prune() {
	for id, lim := range t.ids {
		if lim.Tokens() >= 1 {
			delete(t.ids, id)
		}
	}
	if len(t.ids) >= maxThrottledKeyIDs {
		clear(t.ids)
	}
}

// fetch downloads and parses the key document and swaps it in. It never runs
// on a caller's context so that one cancelled request can't fail the others.
func (c *KeySetCache) fetch() error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	c.fetches.Add(1)
	start := time.Now()

	set, err := c.download(ctx)
	if err != nil {
		c.logger.Error("key set fetch failed",
			"url", c.url,
			"error", err,
			"duration", time.Since(start),
		)
		return newError(KindUpstreamKeySetUnavailable, ErrUpstreamKeySetUnavailable.Description, err)
	}

	c.current.Store(set)
	c.logger.Info("key set refreshed",
		"url", c.url,
		"keys", len(set.keys),
		"duration", time.Since(start),
	)
	return nil
}

func (c *KeySetCache) download(ctx context.Context) (*KeySet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get key document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("key document returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxKeyDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("read key document: %w", err)
	}

	return parseKeySet(ctx, body)
}

// parseKeySet turns a JWK Set document into a snapshot. A document without a
// "keys" array, or with a key that does not parse, is rejected as a whole.
func parseKeySet(ctx context.Context, body []byte) (*KeySet, error) {
	var doc struct {
		Keys *[]json.RawMessage `json:"keys"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode key document: %w", err)
	}
	if doc.Keys == nil {
		return nil, errors.New(`key document has no "keys" array`)
	}

	kf, err := keyfunc.NewJWKSetJSON(body)
	if err != nil {
		return nil, fmt.Errorf("parse key document: %w", err)
	}

	jwks, err := kf.Storage().KeyReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read parsed keys: %w", err)
	}

	keys := make(map[string]SigningKey, len(jwks))
	for _, jwk := range jwks {
		m := jwk.Marshal()
		if m.KID == "" {
			continue
		}
		// Later entries for a reused id replace earlier ones.
		keys[m.KID] = SigningKey{
			KeyID:     m.KID,
			KeyType:   string(m.KTY),
			Use:       string(m.USE),
			Algorithm: string(m.ALG),
			Modulus:   m.N,
			Exponent:  m.E,
			jwk:       jwk,
		}
	}

	return &KeySet{keys: keys, FetchedAt: time.Now()}, nil
}
