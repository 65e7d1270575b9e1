package client

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"community-pet/internal/domain/pet"
	"community-pet/internal/platform/logger"
)

var (
	ErrPetDead = errors.New("pet is dead")
	ErrBusy    = errors.New("action in progress")
)

const (
	restartAnnouncement = "restarted the community pet! A new life begins! 🔄"

	// pausa corta después de un restart antes de aceptar otra acción
	restartCooldown = 300 * time.Millisecond

	DefaultFeedLimit = 10
)

// View es la vista local de un cliente. Se reemplaza entera en cada
// reconciliación.
type View struct {
	Stats        pet.StatSnapshot
	Condition    pet.Condition
	Alive        bool
	Urgencies    []string
	LastActionBy string

	Feed         []FeedEntry
	TotalActions int64

	Message string
}

// Session es el loop de sincronización de un cliente: decae y actúa sobre
// su vista local, escribe el resultado y relee el estado compartido.
type Session struct {
	backend Backend
	log     logger.Logger
	now     func() time.Time

	mu        sync.Mutex
	view      View
	busyUntil time.Time
	inFlight  bool
}

func NewSession(backend Backend, log logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	s := &Session{
		backend: backend,
		log:     log,
		now:     time.Now,
	}
	s.view = viewOf(pet.Birth(), true)
	return s
}

func viewOf(stats pet.StatSnapshot, alive bool) View {
	cond := pet.Classify(stats)
	return View{
		Stats:     stats,
		Condition: cond,
		Alive:     alive && cond != pet.ConditionDead,
		Urgencies: pet.Urgencies(stats),
	}
}

// View devuelve una copia de la vista actual.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.view
	v.Feed = append([]FeedEntry(nil), s.view.Feed...)
	v.Urgencies = append([]string(nil), s.view.Urgencies...)
	return v
}

// setStats reemplaza stats y condición conservando el feed.
func (s *Session) setStats(stats pet.StatSnapshot, alive bool) {
	next := viewOf(stats, alive)
	next.Feed = s.view.Feed
	next.TotalActions = s.view.TotalActions
	next.LastActionBy = s.view.LastActionBy
	next.Message = s.view.Message
	s.view = next
}

// ReconcilePet relee el estado compartido y pisa la vista local. Sin record
// remoto la vista queda como está.
func (s *Session) ReconcilePet(ctx context.Context) error {
	remote, err := s.backend.ReadState(ctx)
	if err != nil {
		s.log.Warn("reconcile pet state failed", map[string]any{"err": err})
		return err
	}
	if remote.Stats == nil {
		return nil
	}

	alive := true
	if remote.Alive != nil {
		alive = *remote.Alive
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.setStats(remote.Stats.Clamped(), alive)
	s.view.LastActionBy = remote.LastActionBy
	return nil
}

func (s *Session) ReconcileFeed(ctx context.Context) error {
	page, err := s.backend.CommunityLog(ctx, DefaultFeedLimit)
	if err != nil {
		s.log.Warn("reconcile community feed failed", map[string]any{"err": err})
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Feed = page.Actions
	s.view.TotalActions = page.TotalActions
	return nil
}

// Tick aplica un paso de decay a la vista local y lo escribe. Un error de
// escritura no revierte el paso local: la próxima reconciliación corrige.
func (s *Session) Tick(ctx context.Context) error {
	return s.TickWithPeriod(ctx, pet.TickPeriod)
}

func (s *Session) TickWithPeriod(ctx context.Context, period time.Duration) error {
	s.mu.Lock()
	if !s.view.Alive {
		s.mu.Unlock()
		return nil
	}
	next := pet.DecayWithPeriod(s.view.Stats, period)
	s.setStats(next, true)
	if !s.view.Alive {
		s.view.Message = fmt.Sprintf("COMMUNITY PET DIED AT %dM", int(math.Round(next.Age)))
	}
	alive := s.view.Alive
	s.mu.Unlock()

	if err := s.backend.WriteState(ctx, next, alive); err != nil {
		s.log.Warn("write decayed state failed", map[string]any{"err": err})
		return err
	}
	return nil
}

// Act aplica una acción si la mascota vive y no hay otra en curso. El
// cooldown es solo local: otros clientes pueden actuar en la misma ventana.
func (s *Session) Act(ctx context.Context, kind pet.ActionKind) (ActionOutcome, error) {
	if !kind.Valid() {
		return ActionOutcome{}, pet.ErrInvalidAction
	}

	s.mu.Lock()
	switch {
	case !s.view.Alive:
		s.mu.Unlock()
		return ActionOutcome{}, ErrPetDead
	case s.inFlight || s.now().Before(s.busyUntil):
		s.mu.Unlock()
		return ActionOutcome{}, ErrBusy
	}
	s.inFlight = true
	current := s.view.Stats
	s.mu.Unlock()

	out, err := s.backend.PerformAction(ctx, kind, current)

	s.mu.Lock()
	s.inFlight = false
	s.busyUntil = s.now().Add(kind.Cooldown())
	if err != nil {
		s.view.Message = "Action failed. Please try again."
		s.mu.Unlock()
		s.log.Warn("pet action failed", map[string]any{"action": kind, "err": err})
		return ActionOutcome{}, err
	}
	s.setStats(out.Stats, true)
	s.view.Message = out.Message
	s.mu.Unlock()

	s.announce(ctx, string(kind), kind.CommunityMessage())
	return out, nil
}

// Restart anuncia la muerte (si corresponde), reinicia el estado compartido
// y anuncia el renacimiento.
func (s *Session) Restart(ctx context.Context) error {
	s.mu.Lock()
	if s.inFlight || s.now().Before(s.busyUntil) {
		s.mu.Unlock()
		return ErrBusy
	}
	s.inFlight = true
	wasAlive := s.view.Alive
	age := s.view.Stats.Age
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.busyUntil = s.now().Add(restartCooldown)
		s.mu.Unlock()
	}()

	if !wasAlive {
		s.announce(ctx, "death", DeathAnnouncement(age))
	}

	if err := s.backend.Restart(ctx); err != nil {
		s.mu.Lock()
		s.view.Message = "Restart failed. Please try again."
		s.mu.Unlock()
		s.log.Warn("restart failed", map[string]any{"err": err})
		return err
	}

	s.mu.Lock()
	s.setStats(pet.Birth(), true)
	s.view.Message = "COMMUNITY PET REBORN!"
	s.mu.Unlock()

	s.announce(ctx, "restart", restartAnnouncement)
	return nil
}

func DeathAnnouncement(ageMinutes float64) string {
	return fmt.Sprintf("Community pet lived %d minutes before going to pet heaven 💀", int(math.Round(ageMinutes)))
}

// announce es fire-and-forget: el error solo se loguea.
func (s *Session) announce(ctx context.Context, action, message string) {
	if err := s.backend.Announce(ctx, action, message); err != nil {
		s.log.Warn("announce failed", map[string]any{"action": action, "err": err})
	}
}
