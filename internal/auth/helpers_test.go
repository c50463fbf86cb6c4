package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "https://casting.test.example.com/"
	testAudience = "casting"
)

var (
	keyOnce     sync.Once
	primaryKey  *rsa.PrivateKey
	rotatedKey  *rsa.PrivateKey
	keyGenError error
)

// testKeys generates the RSA keys once per package run
func testKeys(t *testing.T) (*rsa.PrivateKey, *rsa.PrivateKey) {
	t.Helper()
	keyOnce.Do(func() {
		primaryKey, keyGenError = rsa.GenerateKey(rand.Reader, 2048)
		if keyGenError != nil {
			return
		}
		rotatedKey, keyGenError = rsa.GenerateKey(rand.Reader, 2048)
	})
	require.NoError(t, keyGenError)
	return primaryKey, rotatedKey
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// jwkJSON renders an RSA public key as a JWK object
func jwkJSON(kid string, pub *rsa.PublicKey) map[string]string {
	return map[string]string{
		"kty": "RSA",
		"use": "sig",
		"alg": "RS256",
		"kid": kid,
		"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
		"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
	}
}

// keyDocument builds a JWK Set document from kid → key pairs
func keyDocument(t *testing.T, keys map[string]*rsa.PrivateKey) []byte {
	t.Helper()
	entries := make([]map[string]string, 0, len(keys))
	for kid, key := range keys {
		entries = append(entries, jwkJSON(kid, &key.PublicKey))
	}
	body, err := json.Marshal(map[string]interface{}{"keys": entries})
	require.NoError(t, err)
	return body
}

// jwksServer serves a swappable key document and counts requests.
type jwksServer struct {
	*httptest.Server

	doc    atomic.Pointer[[]byte]
	status atomic.Int32
	hits   atomic.Int64

	// gate, when set, holds each request until it is closed or the client
	// goes away
	mu      sync.Mutex
	gate    chan struct{}
	arrived chan struct{}
}

func newJWKSServer(t *testing.T, doc []byte) *jwksServer {
	t.Helper()
	s := &jwksServer{arrived: make(chan struct{}, 16)}
	s.setDocument(doc)
	s.status.Store(http.StatusOK)

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		select {
		case s.arrived <- struct{}{}:
		default:
		}

		s.mu.Lock()
		gate := s.gate
		s.mu.Unlock()
		if gate != nil {
			select {
			case <-gate:
			case <-r.Context().Done():
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(int(s.status.Load()))
		w.Write(*s.doc.Load())
	}))
	t.Cleanup(func() {
		s.release()
		s.Close()
	})
	return s
}

func (s *jwksServer) setDocument(doc []byte) {
	s.doc.Store(&doc)
}

// hold makes subsequent requests block until release
func (s *jwksServer) hold() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gate == nil {
		s.gate = make(chan struct{})
	}
}

func (s *jwksServer) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gate != nil {
		close(s.gate)
		s.gate = nil
	}
}

// waitArrived blocks until a request reaches the handler
func (s *jwksServer) waitArrived(t *testing.T) {
	t.Helper()
	select {
	case <-s.arrived:
	case <-time.After(5 * time.Second):
		t.Fatal("key document request never arrived")
	}
}

// mintToken signs claims with key, setting kid when non-empty
func mintToken(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if kid != "" {
		token.Header["kid"] = kid
	}
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

// validClaims returns a payload that passes every check at now
func validClaims(now time.Time, permissions ...string) jwt.MapClaims {
	perms := make([]interface{}, 0, len(permissions))
	for _, p := range permissions {
		perms = append(perms, p)
	}
	return jwt.MapClaims{
		"iss":         testIssuer,
		"sub":         "auth0|user-1",
		"aud":         []string{testAudience, testIssuer + "userinfo"},
		"iat":         now.Add(-time.Minute).Unix(),
		"exp":         now.Add(time.Hour).Unix(),
		"azp":         "client-1",
		"scope":       "openid profile",
		"permissions": perms,
	}
}
