package client

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"community-pet/internal/domain/pet"
)

// -------------------------
// Test backend (in-memory)
// -------------------------

type announcement struct {
	action  string
	message string
}

type fakeBackend struct {
	mu sync.Mutex

	stored  *pet.StatSnapshot
	alive   bool
	writes  int
	feed    FeedPage
	actErr  error
	readErr error

	announced []announcement
	restarts  int
}

func (b *fakeBackend) PerformAction(ctx context.Context, kind pet.ActionKind, current pet.StatSnapshot) (ActionOutcome, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.actErr != nil {
		return ActionOutcome{}, b.actErr
	}
	next, msg, err := pet.Resolve(kind, current)
	if err != nil {
		return ActionOutcome{}, err
	}
	b.stored = &next
	b.alive = next.Alive()
	return ActionOutcome{Stats: next, State: pet.Classify(next), Message: msg}, nil
}

func (b *fakeBackend) ReadState(ctx context.Context) (RemoteState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.readErr != nil {
		return RemoteState{}, b.readErr
	}
	if b.stored == nil {
		return RemoteState{}, nil
	}
	s := *b.stored
	alive := b.alive
	return RemoteState{Stats: &s, Alive: &alive}, nil
}

func (b *fakeBackend) WriteState(ctx context.Context, stats pet.StatSnapshot, alive bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stored = &stats
	b.alive = alive
	b.writes++
	return nil
}

func (b *fakeBackend) Restart(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	birth := pet.Birth()
	b.stored = &birth
	b.alive = true
	b.restarts++
	return nil
}

func (b *fakeBackend) CommunityLog(ctx context.Context, limit int) (FeedPage, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.feed, nil
}

func (b *fakeBackend) Announce(ctx context.Context, action, message string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.announced = append(b.announced, announcement{action, message})
	return errors.New("channel down")
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func newTestSession(b Backend, c *fakeClock) *Session {
	s := NewSession(b, nil)
	s.now = c.now
	return s
}

func TestSession_TickWritesBack(t *testing.T) {
	b := &fakeBackend{}
	s := newTestSession(b, newFakeClock())

	for i := 0; i < 3; i++ {
		if err := s.Tick(context.Background()); err != nil {
			t.Fatalf("tick: %v", err)
		}
	}

	v := s.View()
	if v.Stats.Hunger != 91 || v.Stats.Energy != 92.5 || v.Stats.Health != 100 {
		t.Fatalf("unexpected stats after 3 ticks: %+v", v.Stats)
	}
	if b.writes != 3 || b.stored.Hunger != 91 || !b.alive {
		t.Fatalf("writes=%d stored=%+v alive=%v", b.writes, b.stored, b.alive)
	}
}

func TestSession_TickStopsWhenDead(t *testing.T) {
	b := &fakeBackend{}
	s := newTestSession(b, newFakeClock())
	s.setStats(pet.StatSnapshot{Health: 5, Hunger: 2, Cleanliness: 50, Energy: 50, Happiness: 50, Age: 30}, true)

	if err := s.Tick(context.Background()); err != nil {
		t.Fatalf("tick: %v", err)
	}
	v := s.View()
	if v.Alive || v.Condition != pet.ConditionDead {
		t.Fatalf("expected dead, got %+v", v)
	}
	if b.alive {
		t.Fatalf("dead state should be written with alive=false")
	}
	if !strings.HasPrefix(v.Message, "COMMUNITY PET DIED AT") {
		t.Fatalf("message=%q", v.Message)
	}

	if err := s.Tick(context.Background()); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if b.writes != 1 {
		t.Fatalf("dead pet must not keep decaying, writes=%d", b.writes)
	}
}

func TestSession_ReconcileReplacesLocalView(t *testing.T) {
	remote := pet.StatSnapshot{Health: 50, Hunger: 15, Cleanliness: 50, Energy: 50, Happiness: 50, Age: 10}
	b := &fakeBackend{stored: &remote, alive: true}
	s := newTestSession(b, newFakeClock())

	// progreso local sin escribir: se pierde
	s.setStats(pet.StatSnapshot{Health: 99, Hunger: 99, Cleanliness: 99, Energy: 99, Happiness: 99}, true)

	if err := s.ReconcilePet(context.Background()); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	v := s.View()
	if v.Stats != remote || v.Condition != pet.ConditionSick {
		t.Fatalf("expected remote view, got %+v", v)
	}
	if len(v.Urgencies) != 1 || v.Urgencies[0] != "HUNGRY" {
		t.Fatalf("urgencies=%v", v.Urgencies)
	}
}

func TestSession_ReconcileWithoutRecordKeepsView(t *testing.T) {
	s := newTestSession(&fakeBackend{}, newFakeClock())

	if err := s.ReconcilePet(context.Background()); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if v := s.View(); v.Stats != pet.Birth() || !v.Alive {
		t.Fatalf("unexpected view: %+v", v)
	}
}

func TestSession_ReconcileError(t *testing.T) {
	b := &fakeBackend{readErr: errors.New("unreachable")}
	s := newTestSession(b, newFakeClock())

	if err := s.ReconcilePet(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if v := s.View(); v.Stats != pet.Birth() {
		t.Fatalf("failed reconcile must not touch the view")
	}
}

func TestSession_ActCooldown(t *testing.T) {
	b := &fakeBackend{}
	clock := newFakeClock()
	s := newTestSession(b, clock)
	s.setStats(pet.StatSnapshot{Health: 100, Hunger: 10, Cleanliness: 100, Energy: 100, Happiness: 70}, true)

	out, err := s.Act(context.Background(), pet.ActionFeed)
	if err != nil {
		t.Fatalf("act: %v", err)
	}
	if out.Stats.Hunger != 35 || out.Stats.Happiness != 75 || out.Message == "" {
		t.Fatalf("unexpected outcome: %+v", out)
	}

	if _, err := s.Act(context.Background(), pet.ActionPlay); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy inside cooldown, got %v", err)
	}

	clock.advance(pet.ActionFeed.Cooldown())
	if _, err := s.Act(context.Background(), pet.ActionSleep); err != nil {
		t.Fatalf("act after cooldown: %v", err)
	}

	clock.advance(2 * time.Second)
	if _, err := s.Act(context.Background(), pet.ActionTalk); !errors.Is(err, ErrBusy) {
		t.Fatalf("sleep cooldown is 3s, got %v", err)
	}

	// el anuncio falla pero la acción igual cuenta
	if len(b.announced) != 2 || b.announced[0].action != "feed" {
		t.Fatalf("announced=%+v", b.announced)
	}
}

func TestSession_ActRequiresAlive(t *testing.T) {
	b := &fakeBackend{}
	s := newTestSession(b, newFakeClock())
	s.setStats(pet.StatSnapshot{Health: 0, Hunger: 50, Cleanliness: 50, Energy: 50}, false)

	if _, err := s.Act(context.Background(), pet.ActionFeed); !errors.Is(err, ErrPetDead) {
		t.Fatalf("expected ErrPetDead, got %v", err)
	}
	if _, err := s.Act(context.Background(), pet.ActionKind("dance")); !errors.Is(err, pet.ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
}

func TestSession_ActFailureKeepsStats(t *testing.T) {
	b := &fakeBackend{actErr: errors.New("500")}
	s := newTestSession(b, newFakeClock())

	if _, err := s.Act(context.Background(), pet.ActionFeed); err == nil {
		t.Fatalf("expected error")
	}
	v := s.View()
	if v.Stats != pet.Birth() || v.Message == "" {
		t.Fatalf("unexpected view: %+v", v)
	}
	if len(b.announced) != 0 {
		t.Fatalf("failed action must not be announced")
	}
}

func TestSession_RestartAnnouncesDeath(t *testing.T) {
	b := &fakeBackend{}
	s := newTestSession(b, newFakeClock())
	s.setStats(pet.StatSnapshot{Health: 0, Hunger: 0, Cleanliness: 20, Energy: 10, Age: 12.4}, false)

	if err := s.Restart(context.Background()); err != nil {
		t.Fatalf("restart: %v", err)
	}

	v := s.View()
	if v.Stats != pet.Birth() || !v.Alive || v.Condition != pet.ConditionHappy {
		t.Fatalf("unexpected view after restart: %+v", v)
	}
	if b.restarts != 1 {
		t.Fatalf("restarts=%d", b.restarts)
	}
	if len(b.announced) != 2 {
		t.Fatalf("announced=%+v", b.announced)
	}
	if b.announced[0].action != "death" || b.announced[0].message != DeathAnnouncement(12.4) {
		t.Fatalf("death announcement=%+v", b.announced[0])
	}
	if !strings.Contains(b.announced[0].message, "12 minutes") {
		t.Fatalf("age should be rounded: %q", b.announced[0].message)
	}
	if b.announced[1].action != "restart" {
		t.Fatalf("restart announcement=%+v", b.announced[1])
	}
}

func TestSession_RestartWhileAliveSkipsDeath(t *testing.T) {
	b := &fakeBackend{}
	s := newTestSession(b, newFakeClock())

	if err := s.Restart(context.Background()); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if len(b.announced) != 1 || b.announced[0].action != "restart" {
		t.Fatalf("announced=%+v", b.announced)
	}
}

func TestSession_ReconcileFeed(t *testing.T) {
	b := &fakeBackend{feed: FeedPage{
		Actions:      []FeedEntry{{ID: "1", Username: "snoo_fan", Action: "feed"}},
		TotalActions: 7,
	}}
	s := newTestSession(b, newFakeClock())

	if err := s.ReconcileFeed(context.Background()); err != nil {
		t.Fatalf("reconcile feed: %v", err)
	}
	v := s.View()
	if len(v.Feed) != 1 || v.TotalActions != 7 {
		t.Fatalf("unexpected feed: %+v", v)
	}
}
