package httpapi

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"homestay-backoffice/internal/store"
)

const sessionKeyPrefix = "session:"

// SessionStore issues and checks bearer tokens backed by a KV with TTL.
// The back office has a single shared credential, so a session only needs
// to exist, not identify a user.
type SessionStore struct {
	kv           store.KV
	passwordHash string
	ttl          time.Duration
}

func NewSessionStore(kv store.KV, password string, ttl time.Duration) *SessionStore {
	return &SessionStore{
		kv:           kv,
		passwordHash: sha256Hex(password),
		ttl:          ttl,
	}
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// CheckPassword compares in constant time over the digests.
func (s *SessionStore) CheckPassword(password string) bool {
	given := sha256Hex(password)
	return subtle.ConstantTimeCompare([]byte(given), []byte(s.passwordHash)) == 1
}

// Create issues a new session token.
func (s *SessionStore) Create(ctx context.Context) (string, error) {
	token := uuid.NewString()
	if err := s.kv.Set(ctx, sessionKeyPrefix+token, "1", s.ttl); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

// Validate reports whether the token names a live session.
func (s *SessionStore) Validate(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	_, err := s.kv.Get(ctx, sessionKeyPrefix+token)
	return err == nil
}

// Destroy revokes the token. Revoking an unknown token is not an error.
func (s *SessionStore) Destroy(ctx context.Context, token string) error {
	return s.kv.Delete(ctx, sessionKeyPrefix+token)
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// requireAuth guards a handler: missing or expired sessions answer
// HTTP 401 with the token-expired code the front end watches for.
func (s *SessionStore) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.Validate(r.Context(), bearerToken(r)) {
			writeJSON(w, http.StatusUnauthorized, TokenExpired())
			return
		}
		next(w, r)
	}
}
