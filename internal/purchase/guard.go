package purchase

import (
	"context"
	"sync"
	"time"
)

// Guard prevents a flow from being settled twice. Acquire reports false when the key is already held.
type Guard interface {
	Acquire(ctx context.Context, key, owner string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key, owner string) error
}

// LocalGuard is the in-process Guard used when Redis is not configured.
type LocalGuard struct {
	mu    sync.Mutex
	held  map[string]localLock
	clock func() time.Time
}

type localLock struct {
	owner   string
	expires time.Time
}

func NewLocalGuard() *LocalGuard {
	return &LocalGuard{held: make(map[string]localLock), clock: time.Now}
}

func (g *LocalGuard) Acquire(_ context.Context, key, owner string, ttl time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock()
	if l, ok := g.held[key]; ok && now.Before(l.expires) {
		return false, nil
	}
	g.held[key] = localLock{owner: owner, expires: now.Add(ttl)}
	return true, nil
}

// Release only drops the key when owner still holds it.
func (g *LocalGuard) Release(_ context.Context, key, owner string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if l, ok := g.held[key]; ok && l.owner == owner {
		delete(g.held, key)
	}
	return nil
}
