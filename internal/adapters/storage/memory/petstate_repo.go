package memory

import (
	"context"
	"sync"

	"community-pet/internal/domain/sharedstate"
)

// petStateRepo guarda un Record por instancia. Put reemplaza sin mirar
// lo que había: last-write-wins.
type petStateRepo struct {
	mu         sync.RWMutex
	byInstance map[string]sharedstate.Record
}

func NewPetStateRepo() sharedstate.Repository {
	return &petStateRepo{
		byInstance: make(map[string]sharedstate.Record),
	}
}

func (r *petStateRepo) Get(ctx context.Context, instanceID string) (sharedstate.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byInstance[instanceID]
	if !ok {
		return sharedstate.Record{}, sharedstate.ErrNotFound
	}
	return rec, nil
}

func (r *petStateRepo) Put(ctx context.Context, instanceID string, rec sharedstate.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byInstance[instanceID] = rec
	return nil
}
