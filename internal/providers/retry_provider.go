package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"donbalon-gateway/internal/domain"
	"donbalon-gateway/internal/logging"
	"donbalon-gateway/internal/metrics"
)

const (
	defaultRetryAttempts   = 3
	defaultInitialInterval = 200 * time.Millisecond
)

// retryingProvider wraps a BookingProvider and retries read-only fetches
// with exponential backoff. Mutations pass through untouched: a failed
// reservation or tournament booking must surface to the caller for an
// explicit re-submission, never fire twice on its own.
type retryingProvider struct {
	BookingProvider
	logger      *slog.Logger
	metrics     *metrics.Recorder
	name        string
	maxAttempts uint64
	interval    time.Duration
}

// NewRetryingProvider wraps the given provider with read retries. If
// maxAttempts/interval are <= 0, defaults are used.
func NewRetryingProvider(inner BookingProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, interval time.Duration) BookingProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if interval <= 0 {
		interval = defaultInitialInterval
	}
	return &retryingProvider{
		BookingProvider: inner,
		logger:          logger,
		metrics:         recorder,
		name:            name,
		maxAttempts:     uint64(maxAttempts),
		interval:        interval,
	}
}

func (r *retryingProvider) FetchFields(ctx context.Context) ([]domain.Field, error) {
	return retryFetch(ctx, r, "canchas", r.BookingProvider.FetchFields)
}

func (r *retryingProvider) FetchFieldTypes(ctx context.Context) ([]domain.FieldType, error) {
	return retryFetch(ctx, r, "tipos-cancha", r.BookingProvider.FetchFieldTypes)
}

func (r *retryingProvider) FetchScheduleSlots(ctx context.Context) ([]domain.ScheduleSlot, error) {
	return retryFetch(ctx, r, "horarios", r.BookingProvider.FetchScheduleSlots)
}

func (r *retryingProvider) FetchTurnos(ctx context.Context) ([]domain.Turno, error) {
	return retryFetch(ctx, r, "turnos", r.BookingProvider.FetchTurnos)
}

func (r *retryingProvider) FetchServices(ctx context.Context) ([]domain.Service, error) {
	return retryFetch(ctx, r, "servicios", r.BookingProvider.FetchServices)
}

func (r *retryingProvider) FetchPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	return retryFetch(ctx, r, "metodos-pago", r.BookingProvider.FetchPaymentMethods)
}

func (r *retryingProvider) FetchFieldDetail(ctx context.Context, fieldID int) (domain.FieldDetail, error) {
	return retryFetch(ctx, r, "canchas-servicios", func(ctx context.Context) (domain.FieldDetail, error) {
		return r.BookingProvider.FetchFieldDetail(ctx, fieldID)
	})
}

func (r *retryingProvider) MaxMatchesPerDay(ctx context.Context, teamCount int, fieldTypes []int) (int, error) {
	return retryFetch(ctx, r, "torneos", func(ctx context.Context) (int, error) {
		return r.BookingProvider.MaxMatchesPerDay(ctx, teamCount, fieldTypes)
	})
}

func retryFetch[T any](ctx context.Context, r *retryingProvider, resource string, fetch func(context.Context) (T, error)) (T, error) {
	var result T

	schedule := backoff.NewExponentialBackOff()
	schedule.InitialInterval = r.interval

	attempt := 0
	operation := func() error {
		attempt++
		start := time.Now()
		value, err := fetch(ctx)
		if r.metrics != nil {
			r.metrics.RecordProviderAttempt(r.name, resource, time.Since(start), err)
		}
		if err != nil {
			// Upstream 4xx responses are deterministic; retrying them
			// only delays the caller's error.
			if apiErr, ok := AsAPIError(err); ok && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
				return backoff.Permanent(err)
			}
			r.logWarn(ctx, "upstream fetch retry",
				"resource", resource, "attempt", attempt, "err", err)
			return err
		}
		result = value
		return nil
	}

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(schedule, r.maxAttempts-1), ctx))
	if err != nil {
		r.logWarn(ctx, "upstream fetch failed",
			"resource", resource, "attempts", attempt, "err", err)
		var zero T
		return zero, err
	}
	return result, nil
}

func (r *retryingProvider) logWarn(ctx context.Context, msg string, args ...any) {
	logger := logging.FromContext(ctx, r.logger)
	if logger != nil {
		logger.Warn(msg, args...)
	}
}
