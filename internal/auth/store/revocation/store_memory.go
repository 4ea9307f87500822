// Package revocation tracks logged-out session tokens by jti until they
// expire on their own. Logout puts the token here; the session middleware
// rejects anything listed.
package revocation

import (
	"context"
	"sync"
	"time"
)

// MemoryTRL is an in-process token revocation list for single-instance
// deployments and tests. Entries expire lazily on read and via Purge.
type MemoryTRL struct {
	mu      sync.RWMutex
	revoked map[string]time.Time // jti -> expiry
}

func NewMemoryTRL() *MemoryTRL {
	return &MemoryTRL{revoked: make(map[string]time.Time)}
}

// Revoke adds a token to the revocation list for the given TTL.
func (t *MemoryTRL) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.revoked[jti] = time.Now().Add(ttl)
	return nil
}

// IsRevoked reports whether a token is on the list and not yet expired.
func (t *MemoryTRL) IsRevoked(_ context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	t.mu.RLock()
	expiry, ok := t.revoked[jti]
	t.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		t.mu.Lock()
		delete(t.revoked, jti)
		t.mu.Unlock()
		return false, nil
	}
	return true, nil
}

// Purge drops expired entries. Callers may run it periodically; correctness
// does not depend on it.
func (t *MemoryTRL) Purge() {
	now := time.Now()
	t.mu.Lock()
	defer t.mu.Unlock()
	for jti, expiry := range t.revoked {
		if now.After(expiry) {
			delete(t.revoked, jti)
		}
	}
}
