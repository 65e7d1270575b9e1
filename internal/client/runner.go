package client

import (
	"context"
	"time"

	"community-pet/internal/domain/pet"
	"community-pet/internal/platform/logger"
)

const (
	DefaultStatePollPeriod = 15 * time.Second
	DefaultFeedPollPeriod  = 30 * time.Second
)

type RunnerConfig struct {
	TickPeriod      time.Duration
	StatePollPeriod time.Duration
	FeedPollPeriod  time.Duration
}

func (c RunnerConfig) withDefaults() RunnerConfig {
	if c.TickPeriod <= 0 {
		c.TickPeriod = pet.TickPeriod
	}
	if c.StatePollPeriod <= 0 {
		c.StatePollPeriod = DefaultStatePollPeriod
	}
	if c.FeedPollPeriod <= 0 {
		c.FeedPollPeriod = DefaultFeedPollPeriod
	}
	return c
}

// Runner agrupa los tres loops de un cliente: decay local, relectura del
// estado compartido y relectura del feed.
type Runner struct {
	Decay *Poller
	State *Poller
	Feed  *Poller
}

func NewRunner(session *Session, cfg RunnerConfig, log logger.Logger) *Runner {
	cfg = cfg.withDefaults()

	// el paso de decay usa el mismo período que el ticker
	tick := func(ctx context.Context) error {
		return session.TickWithPeriod(ctx, cfg.TickPeriod)
	}

	r := &Runner{
		Decay: NewPoller("decay", cfg.TickPeriod, tick, log),
		State: NewPoller("pet-state", cfg.StatePollPeriod, session.ReconcilePet, log),
		Feed:  NewPoller("community-feed", cfg.FeedPollPeriod, session.ReconcileFeed, log),
	}
	r.State.Immediate = true
	r.Feed.Immediate = true
	return r
}

func (r *Runner) pollers() []*Poller {
	return []*Poller{r.State, r.Feed, r.Decay}
}

// WithTicker aplica la misma fábrica a los tres pollers.
func (r *Runner) WithTicker(f TickerFactory) *Runner {
	for _, p := range r.pollers() {
		p.WithTicker(f)
	}
	return r
}

func (r *Runner) Start(ctx context.Context) error {
	started := make([]*Poller, 0, 3)
	for _, p := range r.pollers() {
		if err := p.Start(ctx); err != nil {
			for _, s := range started {
				s.Stop()
			}
			return err
		}
		started = append(started, p)
	}
	return nil
}

func (r *Runner) Stop() {
	for _, p := range r.pollers() {
		p.Stop()
	}
}
