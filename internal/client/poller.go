package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"community-pet/internal/platform/logger"
)

var ErrAlreadyRunning = errors.New("poller already running")

// Ticker es lo mínimo de *time.Ticker que usa el Poller.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type TickerFactory func(period time.Duration) Ticker

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

func NewRealTicker(period time.Duration) Ticker {
	return realTicker{t: time.NewTicker(period)}
}

// Poller corre fn cada period entre Start y Stop. Los errores de fn se
// loguean y el loop sigue; no hay reintentos.
type Poller struct {
	name      string
	period    time.Duration
	fn        func(context.Context) error
	newTicker TickerFactory
	log       logger.Logger

	// si es true, fn corre una vez al arrancar
	Immediate bool

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPoller(name string, period time.Duration, fn func(context.Context) error, log logger.Logger) *Poller {
	if log == nil {
		log = logger.Nop()
	}
	return &Poller{
		name:      name,
		period:    period,
		fn:        fn,
		newTicker: NewRealTicker,
		log:       log.With(map[string]any{"poller": name}),
	}
}

// WithTicker reemplaza la fábrica de tickers (tests).
func (p *Poller) WithTicker(f TickerFactory) *Poller {
	p.newTicker = f
	return p
}

func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	ticker := p.newTicker(p.period)
	go p.run(ctx, ticker, p.done)
	return nil
}

func (p *Poller) run(ctx context.Context, ticker Ticker, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()
	// si el ctx padre se cancela el poller queda detenido sin Stop()
	defer p.release(done)

	if p.Immediate {
		p.step(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			p.step(ctx)
		}
	}
}

func (p *Poller) step(ctx context.Context) {
	if err := p.fn(ctx); err != nil && ctx.Err() == nil {
		p.log.Debug("poll step failed", map[string]any{"err": err})
	}
}

func (p *Poller) release(done chan struct{}) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done != done {
		return
	}
	p.cancel()
	p.cancel, p.done = nil, nil
}

// Stop cancela el loop y espera a que termine el paso en curso.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}
