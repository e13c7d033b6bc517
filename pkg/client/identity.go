package client

import (
	"context"
	"sync"

	"github.com/mmynk/housemate/internal/models"
)

// Identity caches the caller's login id after the first successful lookup.
type Identity struct {
	fetch func(context.Context) (*models.Member, error)

	mu      sync.Mutex
	loginID string
	cached  bool
}

func newIdentity(fetch func(context.Context) (*models.Member, error)) *Identity {
	return &Identity{fetch: fetch}
}

// LoginID returns the cached login id, asking the server on first use.
// Failed lookups are not cached.
func (i *Identity) LoginID(ctx context.Context) (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.cached {
		return i.loginID, nil
	}
	member, err := i.fetch(ctx)
	if err != nil {
		return "", err
	}
	i.loginID, i.cached = member.LoginID, true
	return i.loginID, nil
}

// Invalidate drops the cached login id, e.g. on logout.
func (i *Identity) Invalidate() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.loginID, i.cached = "", false
}
