package applications

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[int64]json.RawMessage // auth id -> aggregate
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[int64]json.RawMessage)}
}

// Seed stores an aggregate for an auth identity.
func (r *MemoryRepo) Seed(authID int64, aggregate json.RawMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[authID] = aggregate
}

func (r *MemoryRepo) ListByAuthID(ctx context.Context, authID int64) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data[authID], nil
}
