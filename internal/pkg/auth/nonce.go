package auth

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/KamiliaNHayati/university-registration-contracts/internal/pkg/apperrors"
)

// NonceStore issues one-time login nonces per address. Nonces are held in
// memory only: a restart simply forces a new challenge, no durable state.
type NonceStore struct {
	ttl time.Duration

	mu     sync.Mutex
	nonces map[string]nonceEntry
}

type nonceEntry struct {
	nonce     string
	expiresAt time.Time
}

// NewNonceStore creates a store with the given nonce lifetime.
func NewNonceStore(ttl time.Duration) *NonceStore {
	return &NonceStore{
		ttl:    ttl,
		nonces: make(map[string]nonceEntry),
	}
}

func nonceKey(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// Issue creates a fresh nonce for the address, replacing any previous one.
func (s *NonceStore) Issue(address string) string {
	nonce := uuid.New().String()

	s.mu.Lock()
	s.nonces[nonceKey(address)] = nonceEntry{
		nonce:     nonce,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()

	return nonce
}

// Take returns and burns the address's current nonce. Burning happens even
// when verification later fails, so every login attempt needs a fresh
// challenge.
func (s *NonceStore) Take(address string) (string, error) {
	key := nonceKey(address)

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.nonces[key]
	if !ok {
		return "", apperrors.ErrNonceNotFound
	}
	delete(s.nonces, key)

	if time.Now().After(entry.expiresAt) {
		return "", apperrors.ErrNonceNotFound
	}
	return entry.nonce, nil
}
