package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"donbalon-gateway/internal/logging"
	"donbalon-gateway/internal/metrics"
)

const defaultInterval = 5 * time.Minute

// Refreshable is anything that can reload upstream state in one cycle.
type Refreshable interface {
	Refresh(ctx context.Context) error
}

// Refresher reloads the booking reference data on an interval. The first
// cycle runs immediately on Start so the grid is warm before the server
// reports ready.
type Refresher struct {
	target   Refreshable
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the refresher has had a recent success and is
// not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Refresher with sane defaults.
func New(target Refreshable, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Refresher{
		target:   target,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start begins refreshing until the context is cancelled or Stop is
// called.
func (r *Refresher) Start(ctx context.Context) {
	r.startMu.Lock()
	if r.started {
		r.startMu.Unlock()
		return
	}
	r.started = true
	r.startMu.Unlock()

	r.ticker = time.NewTicker(r.interval)

	go func() {
		r.logInfo("refresher started", slog.Int64(logging.FieldDurationMS, r.interval.Milliseconds()))
		r.RefreshOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				r.stopTicker()
				r.logInfo("refresher stopped")
				return
			case <-r.done:
				r.stopTicker()
				r.logInfo("refresher stopped")
				return
			case <-r.ticker.C:
				r.RefreshOnce(ctx)
			}
		}
	}()
}

// Stop halts the refresh loop.
func (r *Refresher) Stop(ctx context.Context) error {
	_ = ctx
	r.stopOnce.Do(func() {
		close(r.done)
		r.stopTicker()
	})
	return nil
}

// RefreshOnce runs a single refresh cycle and records its outcome. It is
// also invoked directly by the explicit refresh endpoint.
func (r *Refresher) RefreshOnce(ctx context.Context) error {
	start := time.Now()
	r.recordAttempt(start)
	err := r.target.Refresh(ctx)
	if r.metrics != nil {
		r.metrics.RecordRefreshCycle(time.Since(start), err)
	}
	if err != nil {
		r.logError("refresh cycle failed", err, slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		r.recordFailure(err, start)
		return err
	}

	r.recordSuccess(start)
	r.logInfo("refreshed booking data",
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
	return nil
}

func (r *Refresher) stopTicker() {
	if r.ticker != nil {
		r.ticker.Stop()
	}
}

func (r *Refresher) logInfo(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Info(msg, args...)
	}
}

func (r *Refresher) logError(msg string, err error, attrs ...any) {
	if r.logger != nil {
		r.logger.Error(msg, append(attrs, "error", err)...)
	}
}

func (r *Refresher) recordAttempt(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.LastAttempt = at
}

func (r *Refresher) recordSuccess(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures = 0
	r.status.LastError = ""
	r.status.LastSuccess = at
}

func (r *Refresher) recordFailure(err error, at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures++
	if err != nil {
		r.status.LastError = err.Error()
	}
	r.status.LastAttempt = at
}

// Status returns a snapshot of the refresher's recent health.
func (r *Refresher) Status() Status {
	r.statusMu.RLock()
	defer r.statusMu.RUnlock()
	return r.status
}
