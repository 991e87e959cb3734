package playback

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// PrunerConfig controls stale-device eviction. The upstream behavior keeps
// devices listed forever, so pruning is opt-in: a zero DeviceTTL disables
// the worker entirely.
type PrunerConfig struct {
	Interval  time.Duration
	DeviceTTL time.Duration
}

// DefaultPrunerConfig returns the default schedule with pruning disabled.
func DefaultPrunerConfig() PrunerConfig {
	return PrunerConfig{
		Interval:  5 * time.Minute,
		DeviceTTL: 0,
	}
}

// Enabled reports whether the config turns pruning on.
func (c PrunerConfig) Enabled() bool {
	return c.DeviceTTL > 0
}

// Pruner periodically drops devices that have not re-registered within the
// TTL from sessions that still list devices.
type Pruner struct {
	app    *App
	clock  clockwork.Clock
	config PrunerConfig

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewPruner creates a device pruner.
func NewPruner(app *App, clock clockwork.Clock, config PrunerConfig) *Pruner {
	return &Pruner{
		app:      app,
		clock:    clock,
		config:   config,
		stopChan: make(chan struct{}),
	}
}

// Start begins the prune loop. Starting a disabled pruner is an error.
func (p *Pruner) Start(ctx context.Context) error {
	if !p.config.Enabled() {
		return fmt.Errorf("device pruning is disabled")
	}

	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("device pruner already running")
	}
	p.running = true
	p.mu.Unlock()

	p.wg.Add(1)
	go p.run(ctx)

	log.Info().
		Dur("interval", p.config.Interval).
		Dur("device_ttl", p.config.DeviceTTL).
		Msg("device pruner started")
	return nil
}

// Stop halts the prune loop and waits for it to finish.
func (p *Pruner) Stop() error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return fmt.Errorf("device pruner not running")
	}
	p.running = false
	p.mu.Unlock()

	close(p.stopChan)
	p.wg.Wait()

	log.Info().Msg("device pruner stopped")
	return nil
}

func (p *Pruner) run(ctx context.Context) {
	defer p.wg.Done()

	ticker := p.clock.NewTicker(p.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopChan:
			return
		case <-ticker.Chan():
			p.pruneOnce(ctx)
		}
	}
}

func (p *Pruner) pruneOnce(ctx context.Context) {
	removed, err := p.app.PruneStaleDevices(ctx, p.config.DeviceTTL)
	if err != nil {
		log.Error().Err(err).Msg("device prune pass failed")
		return
	}
	if removed > 0 {
		log.Info().Int("removed", removed).Msg("pruned stale devices")
	}
}
