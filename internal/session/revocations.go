package session

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Revocations remembers session ids that were logged out before their token
// expired. The cache has no size limit, so a live revocation is never evicted.
// Entries drop out after ttl, or earlier through Prune once the token they
// shadow has expired anyway.
type Revocations struct {
	cache *expirable.LRU[string, time.Time]
	now   func() time.Time
}

// NewRevocations creates a revocation store whose entries live at most ttl.
// ttl must not be shorter than the session token lifetime.
func NewRevocations(ttl time.Duration) *Revocations {
	return &Revocations{
		cache: expirable.NewLRU[string, time.Time](0, nil, ttl),
		now:   time.Now,
	}
}

// Revoke marks a session id as logged out until expiresAt
func (r *Revocations) Revoke(id string, expiresAt time.Time) {
	if id == "" {
		return
	}
	r.cache.Add(id, expiresAt)
}

// IsRevoked reports whether the session id was logged out
func (r *Revocations) IsRevoked(id string) bool {
	expiresAt, ok := r.cache.Get(id)
	if !ok {
		return false
	}
	return r.now().Before(expiresAt)
}

// Prune drops entries whose token has expired and returns how many were removed
func (r *Revocations) Prune() int {
	now := r.now()
	removed := 0
	for _, id := range r.cache.Keys() {
		expiresAt, ok := r.cache.Peek(id)
		if ok && !now.Before(expiresAt) {
			r.cache.Remove(id)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked revocations
func (r *Revocations) Len() int {
	return r.cache.Len()
}
