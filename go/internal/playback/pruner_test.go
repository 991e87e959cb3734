package playback

import (
	"context"
	"testing"
	"time"
)

func TestPrunerDisabledByDefault(t *testing.T) {
	app, _, _, clock := newTestApp(t)
	pruner := NewPruner(app, clock, DefaultPrunerConfig())

	if err := pruner.Start(context.Background()); err == nil {
		t.Fatal("starting a disabled pruner should error")
	}
}

func TestPrunerStartStop(t *testing.T) {
	app, _, _, clock := newTestApp(t)
	pruner := NewPruner(app, clock, PrunerConfig{
		Interval:  time.Minute,
		DeviceTTL: time.Hour,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := pruner.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := pruner.Start(ctx); err == nil {
		t.Error("double start should error")
	}

	if err := pruner.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := pruner.Stop(); err == nil {
		t.Error("double stop should error")
	}
}
