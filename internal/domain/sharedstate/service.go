package sharedstate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"community-pet/internal/domain/pet"
	"community-pet/internal/platform/logger"
)

var ErrPetDead = errors.New("pet is dead")

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

// Read devuelve (record, true) si existe. Un blob corrupto se trata como
// ausente: se loguea y el caller ve "sin record".
func (s *Service) Read(ctx context.Context, instanceID string) (Record, bool, error) {
	if strings.TrimSpace(instanceID) == "" {
		return Record{}, false, pet.ErrInvalidInput
	}

	rec, err := s.repo.Get(ctx, instanceID)
	switch {
	case err == nil:
		return rec, true, nil
	case errors.Is(err, ErrNotFound):
		return Record{}, false, nil
	case errors.Is(err, ErrMalformedRecord):
		s.log.Warn("malformed pet state, treating as absent", map[string]any{
			"instance": instanceID,
			"err":      err,
		})
		return Record{}, false, nil
	default:
		s.log.Error("read pet state failed", map[string]any{
			"instance": instanceID,
			"err":      err,
		})
		return Record{}, false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
}

// Write reemplaza el record de la instancia. Stats se clampéan; alive se
// guarda tal cual lo mandó el cliente.
func (s *Service) Write(ctx context.Context, instanceID, userID string, stats pet.StatSnapshot, alive bool) (Record, error) {
	if strings.TrimSpace(instanceID) == "" || strings.TrimSpace(userID) == "" {
		return Record{}, pet.ErrInvalidInput
	}
	if err := stats.Validate(); err != nil {
		return Record{}, err
	}

	rec := Record{
		Stats:          stats.Clamped(),
		Alive:          alive,
		LastActionBy:   userID,
		LastActionTime: s.now().UTC(),
	}
	return rec, s.put(ctx, instanceID, rec)
}

// Restart reemplaza el record con los stats de nacimiento.
func (s *Service) Restart(ctx context.Context, instanceID, userID string) (Record, error) {
	if strings.TrimSpace(instanceID) == "" || strings.TrimSpace(userID) == "" {
		return Record{}, pet.ErrInvalidInput
	}

	rec := Record{
		Stats:          pet.Birth(),
		Alive:          true,
		LastActionBy:   userID,
		LastActionTime: s.now().UTC(),
	}
	if err := s.put(ctx, instanceID, rec); err != nil {
		return Record{}, err
	}

	s.log.Info("pet restarted", map[string]any{"instance": instanceID, "user": userID})
	return rec, nil
}

type ActionResult struct {
	Record    Record
	Condition pet.Condition
	Message   string
}

// PerformAction resuelve la acción sobre los stats que mandó el cliente
// (no sobre lo guardado) y escribe el resultado.
func (s *Service) PerformAction(ctx context.Context, instanceID, userID string, kind pet.ActionKind, current pet.StatSnapshot) (ActionResult, error) {
	if strings.TrimSpace(instanceID) == "" || strings.TrimSpace(userID) == "" {
		return ActionResult{}, pet.ErrInvalidInput
	}
	if err := current.Validate(); err != nil {
		return ActionResult{}, err
	}
	current = current.Clamped()
	if !current.Alive() {
		return ActionResult{}, ErrPetDead
	}

	next, msg, err := pet.Resolve(kind, current)
	if err != nil {
		return ActionResult{}, err
	}

	cond := pet.Classify(next)
	rec := Record{
		Stats:          next,
		Alive:          cond != pet.ConditionDead,
		LastActionBy:   userID,
		LastActionTime: s.now().UTC(),
	}
	if err := s.put(ctx, instanceID, rec); err != nil {
		return ActionResult{}, err
	}

	return ActionResult{Record: rec, Condition: cond, Message: msg}, nil
}

func (s *Service) put(ctx context.Context, instanceID string, rec Record) error {
	if err := s.repo.Put(ctx, instanceID, rec); err != nil {
		s.log.Error("write pet state failed", map[string]any{
			"instance": instanceID,
			"user":     rec.LastActionBy,
			"err":      err,
		})
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
