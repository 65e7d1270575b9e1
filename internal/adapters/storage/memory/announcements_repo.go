package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"community-pet/internal/domain/announcements"
)

type announcementRepo struct {
	mu   sync.RWMutex
	byID map[string]announcements.Announcement
}

func NewAnnouncementRepo() announcements.Repository {
	return &announcementRepo{
		byID: make(map[string]announcements.Announcement),
	}
}

func (r *announcementRepo) Create(ctx context.Context, a announcements.Announcement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID == "" {
		return errors.New("announcement id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("announcement already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *announcementRepo) ListByInstance(ctx context.Context, instanceID string, limit int) ([]announcements.Announcement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]announcements.Announcement, 0)
	for _, a := range r.byID {
		if a.InstanceID == instanceID {
			out = append(out, a)
		}
	}

	// más reciente primero
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
