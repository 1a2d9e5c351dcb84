package limits

import (
	"context"
	"sync"
)

type RepositoryStub struct {
	mu     sync.Mutex
	limits map[int]Limits
	// Err is returned by every call when set.
	Err error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{limits: map[int]Limits{}}
}

func (r *RepositoryStub) Get(ctx context.Context, userId int) (Limits, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return Limits{}, r.Err
	}
	return r.limits[userId], nil
}

func (r *RepositoryStub) Store(ctx context.Context, userId int, limits Limits) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.limits[userId] = limits
	return nil
}

func (r *RepositoryStub) Cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.limits = map[int]Limits{}
	r.Err = nil
}
