package announcements

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"community-pet/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrStoreUnavailable = errors.New("announcement store unavailable")
)

const (
	maxMessageLen    = 500
	defaultListLimit = 20
)

type Service struct {
	repo      Repository
	announcer Announcer
	log       logger.Logger
	now       func() time.Time
}

// NewService: announcer puede ser nil (solo se guarda y se loguea).
func NewService(repo Repository, announcer Announcer, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:      repo,
		announcer: announcer,
		log:       log,
		now:       time.Now,
	}
}

type RecordInput struct {
	InstanceID string
	UserID     string
	Username   string
	Action     string
	Message    string
}

// Record guarda el aviso y lo publica. Un fallo de publicación se loguea y
// se traga; solo un fallo de storage se devuelve.
func (s *Service) Record(ctx context.Context, in RecordInput) (Announcement, error) {
	if strings.TrimSpace(in.InstanceID) == "" || strings.TrimSpace(in.UserID) == "" {
		return Announcement{}, ErrInvalidInput
	}
	action := strings.TrimSpace(in.Action)
	msg := strings.TrimSpace(in.Message)
	if action == "" || msg == "" {
		return Announcement{}, ErrInvalidInput
	}
	msg = truncate(msg, maxMessageLen)

	a := Announcement{
		ID:         uuid.NewString(),
		InstanceID: in.InstanceID,
		UserID:     in.UserID,
		Username:   strings.TrimSpace(in.Username),
		Action:     action,
		Message:    msg,
		CreatedAt:  s.now().UTC(),
	}
	if a.Username == "" {
		a.Username = a.UserID
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.log.Error("store announcement failed", map[string]any{
			"instance": a.InstanceID,
			"user":     a.UserID,
			"action":   a.Action,
			"err":      err,
		})
		return Announcement{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.log.Info("announcement", map[string]any{
		"instance": a.InstanceID,
		"user":     a.Username,
		"action":   a.Action,
		"message":  a.Message,
	})

	if s.announcer != nil {
		if err := s.announcer.Announce(ctx, a); err != nil {
			s.log.Warn("publish announcement failed", map[string]any{
				"instance": a.InstanceID,
				"action":   a.Action,
				"err":      err,
			})
		}
	}

	return a, nil
}

// truncate corta en max bytes sin partir un carácter multibyte.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	n := max
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func (s *Service) List(ctx context.Context, instanceID string, limit int) ([]Announcement, error) {
	if strings.TrimSpace(instanceID) == "" {
		return nil, ErrInvalidInput
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.repo.ListByInstance(ctx, instanceID, limit)
}
