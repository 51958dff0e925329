package providers

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// maintenanceGate wraps a BookingProvider and collapses repeated
// maintenance triggers into at most one upstream call per interval.
// Every schedule view load fires the expire/create pair; the upstream
// work is idempotent, so skipped triggers simply succeed.
type maintenanceGate struct {
	BookingProvider
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu      sync.Mutex
	lastRun map[string]time.Time
}

// NewMaintenanceGate returns a BookingProvider whose maintenance triggers
// run at most once per interval.
func NewMaintenanceGate(inner BookingProvider, interval time.Duration, logger *slog.Logger) BookingProvider {
	if interval <= 0 {
		interval = time.Minute
	}
	return &maintenanceGate{
		BookingProvider: inner,
		interval:        interval,
		logger:          logger,
		now:             time.Now,
		lastRun:         make(map[string]time.Time),
	}
}

func (g *maintenanceGate) ExpirePastTurnos(ctx context.Context) error {
	return g.run(ctx, "expirar-pasados", func(ctx context.Context) error {
		return g.BookingProvider.ExpirePastTurnos(ctx)
	})
}

func (g *maintenanceGate) CreateTodayTurnos(ctx context.Context) error {
	return g.run(ctx, "crear-del-dia", func(ctx context.Context) error {
		return g.BookingProvider.CreateTodayTurnos(ctx)
	})
}

func (g *maintenanceGate) FinalizeExpiredReservations(ctx context.Context) error {
	return g.run(ctx, "finalizar-vencidas", func(ctx context.Context) error {
		return g.BookingProvider.FinalizeExpiredReservations(ctx)
	})
}

func (g *maintenanceGate) run(ctx context.Context, name string, trigger func(context.Context) error) error {
	if g == nil || g.BookingProvider == nil {
		return ErrProviderUnavailable
	}

	g.mu.Lock()
	last := g.lastRun[name]
	if g.now().Sub(last) < g.interval {
		g.mu.Unlock()
		if g.logger != nil {
			g.logger.Debug("maintenance trigger skipped", slog.String("trigger", name))
		}
		return nil
	}
	g.lastRun[name] = g.now()
	g.mu.Unlock()

	return trigger(ctx)
}
