package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dropDatabas3/acmedash/internal/authz"
	"github.com/dropDatabas3/acmedash/internal/cache"
)

// record es el registro de sesión tal como se persiste en el cache.
type record struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store lee (y para tooling, escribe) registros de sesión en el cache
// compartido con el servicio de auth. Los tokens se guardan hasheados:
// nunca se persiste el token en claro.
type Store struct {
	cache cache.Client
	ttl   time.Duration
}

// NewStore crea un session store sobre el cache dado.
func NewStore(c cache.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{cache: c, ttl: ttl}
}

func sessionKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "sess:" + hex.EncodeToString(sum[:])
}

// Get resuelve el token a una sesión. Miss o sesión expirada => (nil, nil).
// Errores del backend se propagan tal cual.
func (s *Store) Get(ctx context.Context, token string) (*authz.Session, error) {
	b, err := s.cache.Get(ctx, sessionKey(token))
	if errors.Is(err, cache.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: store get: %w", err)
	}
	var rec record
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("session: corrupt record: %w", err)
	}
	if !rec.ExpiresAt.IsZero() && time.Now().After(rec.ExpiresAt) {
		_ = s.cache.Delete(ctx, sessionKey(token))
		return nil, nil
	}
	return &authz.Session{UserID: rec.UserID, Email: rec.Email, Role: rec.Role}, nil
}

// Put guarda una sesión bajo el token dado. Lo usan el seed (sesiones demo)
// y los tests; en producción escribe el servicio de auth.
func (s *Store) Put(ctx context.Context, token string, sess authz.Session) error {
	rec := record{
		UserID:    sess.UserID,
		Email:     sess.Email,
		Role:      sess.Role,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, sessionKey(token), b, s.ttl)
}

// Delete revoca el token.
func (s *Store) Delete(ctx context.Context, token string) error {
	return s.cache.Delete(ctx, sessionKey(token))
}

// CookieSource resuelve la sesión desde una cookie de sesión opaca,
// buscando el token en el Store.
type CookieSource struct {
	store      *Store
	cookieName string
}

// NewCookieSource crea el source. cookieName vacío usa "acme_session".
func NewCookieSource(store *Store, cookieName string) *CookieSource {
	if cookieName == "" {
		cookieName = "acme_session"
	}
	return &CookieSource{store: store, cookieName: cookieName}
}

func (s *CookieSource) Resolve(ctx context.Context, r *http.Request) (*authz.Session, error) {
	ck, err := r.Cookie(s.cookieName)
	if err != nil || ck.Value == "" {
		return nil, nil
	}
	return s.store.Get(ctx, ck.Value)
}
