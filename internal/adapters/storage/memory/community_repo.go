package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"community-pet/internal/domain/community"
)

// ring guarda las últimas cap entradas de una instancia.
type ring struct {
	buf  []community.Entry
	next int
	size int
}

func newRing(capacity int) *ring {
	return &ring{buf: make([]community.Entry, capacity)}
}

func (rg *ring) push(e community.Entry) {
	rg.buf[rg.next] = e
	rg.next = (rg.next + 1) % len(rg.buf)
	if rg.size < len(rg.buf) {
		rg.size++
	}
}

// newest devuelve hasta limit entradas, la más nueva primero.
func (rg *ring) newest(limit int) []community.Entry {
	n := rg.size
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]community.Entry, 0, n)
	for i := 1; i <= n; i++ {
		idx := (rg.next - i + len(rg.buf)) % len(rg.buf)
		out = append(out, rg.buf[idx])
	}
	return out
}

type communityRepo struct {
	mu      sync.RWMutex
	window  int
	entries map[string]*ring
	totals  map[string]int64
}

// NewCommunityRepo acota cada instancia a window entradas (ring buffer).
func NewCommunityRepo(window int) community.Repository {
	if window <= 0 {
		window = community.DefaultWindow
	}
	return &communityRepo{
		window:  window,
		entries: make(map[string]*ring),
		totals:  make(map[string]int64),
	}
}

func (r *communityRepo) Append(ctx context.Context, instanceID string, e community.Entry) error {
	if e.ID == "" {
		return errors.New("community entry id required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rg, ok := r.entries[instanceID]
	if !ok {
		rg = newRing(r.window)
		r.entries[instanceID] = rg
	}
	rg.push(e)
	return nil
}

// Recent ordena por Timestamp (y ID) desc como los adapters SQL: dos
// Record concurrentes pueden llegar al append fuera de orden.
func (r *communityRepo) Recent(ctx context.Context, instanceID string, limit int) ([]community.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rg, ok := r.entries[instanceID]
	if !ok {
		return []community.Entry{}, nil
	}

	out := rg.newest(0)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *communityRepo) IncrementTotal(ctx context.Context, instanceID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.totals[instanceID]++
	return r.totals[instanceID], nil
}

func (r *communityRepo) Total(ctx context.Context, instanceID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.totals[instanceID], nil
}
