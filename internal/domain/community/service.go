package community

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"community-pet/internal/domain/pet"
	"community-pet/internal/platform/logger"

	"github.com/oklog/ulid/v2"
)

var ErrLogUnavailable = errors.New("community log unavailable")

type Service struct {
	repo Repository
	log  logger.Logger
	now  func() time.Time
}

func NewService(repo Repository, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// NewEntryID combina tiempo (ULID) y actor, así dos appends concurrentes
// nunca chocan.
func NewEntryID(at time.Time, username string) string {
	id := ulid.MustNew(ulid.Timestamp(at), ulid.DefaultEntropy()).String()
	actor := strings.Map(func(r rune) rune {
		if r == ' ' || r == ':' {
			return '_'
		}
		return r
	}, strings.TrimSpace(username))
	if actor == "" {
		return id
	}
	return id + ":" + actor
}

// Record agrega la entrada y suma el contador como dos operaciones
// independientes: si una falla la otra igual se intenta.
func (s *Service) Record(ctx context.Context, instanceID, username, action, message string) (Entry, error) {
	if strings.TrimSpace(instanceID) == "" || strings.TrimSpace(username) == "" {
		return Entry{}, pet.ErrInvalidInput
	}

	now := s.now().UTC()
	e := Entry{
		ID:        NewEntryID(now, username),
		Username:  strings.TrimSpace(username),
		Action:    strings.TrimSpace(action),
		Message:   strings.TrimSpace(message),
		Timestamp: now,
	}

	fields := map[string]any{"instance": instanceID, "user": e.Username, "action": e.Action}

	appendErr := s.repo.Append(ctx, instanceID, e)
	if appendErr != nil {
		s.log.Error("append community action failed", merge(fields, "err", appendErr))
	}
	_, totalErr := s.repo.IncrementTotal(ctx, instanceID)
	if totalErr != nil {
		s.log.Error("increment community total failed", merge(fields, "err", totalErr))
	}

	if err := errors.Join(appendErr, totalErr); err != nil {
		return e, fmt.Errorf("%w: %v", ErrLogUnavailable, err)
	}
	return e, nil
}

// Feed lee las entradas recientes y el total. limit fuera de rango usa el default.
func (s *Service) Feed(ctx context.Context, instanceID string, limit int) (Feed, error) {
	if strings.TrimSpace(instanceID) == "" {
		return Feed{}, pet.ErrInvalidInput
	}
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}

	actions, err := s.repo.Recent(ctx, instanceID, limit)
	if err != nil {
		s.log.Error("read community actions failed", map[string]any{"instance": instanceID, "err": err})
		return Feed{}, fmt.Errorf("%w: %v", ErrLogUnavailable, err)
	}
	total, err := s.repo.Total(ctx, instanceID)
	if err != nil {
		s.log.Error("read community total failed", map[string]any{"instance": instanceID, "err": err})
		return Feed{}, fmt.Errorf("%w: %v", ErrLogUnavailable, err)
	}

	if actions == nil {
		actions = []Entry{}
	}
	return Feed{Actions: actions, TotalActions: total}, nil
}

func merge(fields map[string]any, k string, v any) map[string]any {
	out := make(map[string]any, len(fields)+1)
	for fk, fv := range fields {
		out[fk] = fv
	}
	out[k] = v
	return out
}
