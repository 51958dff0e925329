package schedule

import (
	"context"
	"fmt"
	"log/slog"

	"donbalon-gateway/internal/domain"
	"donbalon-gateway/internal/grid"
	"donbalon-gateway/internal/providers"
	"donbalon-gateway/internal/store"
)

// Provider is the slice of upstream capabilities the schedule service
// needs: reference-data reads plus the housekeeping triggers.
type Provider interface {
	providers.CatalogProvider
	providers.MaintenanceProvider
}

// Service keeps the in-memory reference data fresh and builds the
// availability grid from it.
type Service struct {
	provider Provider
	store    *store.MemoryStore
	logger   *slog.Logger
}

// NewService constructs a Service over the provided store.
func NewService(provider Provider, st *store.MemoryStore, logger *slog.Logger) *Service {
	return &Service{provider: provider, store: st, logger: logger}
}

// Refresh runs the upstream housekeeping sweep, then re-fetches all
// reference data and replaces the store snapshot. Housekeeping failures
// are logged and do not abort the refresh; a failed fetch does.
func (s *Service) Refresh(ctx context.Context) error {
	s.runMaintenance(ctx)

	fields, err := s.provider.FetchFields(ctx)
	if err != nil {
		return fmt.Errorf("refreshing fields: %w", err)
	}
	fieldTypes, err := s.provider.FetchFieldTypes(ctx)
	if err != nil {
		return fmt.Errorf("refreshing field types: %w", err)
	}
	slots, err := s.provider.FetchScheduleSlots(ctx)
	if err != nil {
		return fmt.Errorf("refreshing schedule slots: %w", err)
	}
	turnos, err := s.provider.FetchTurnos(ctx)
	if err != nil {
		return fmt.Errorf("refreshing turnos: %w", err)
	}
	services, err := s.provider.FetchServices(ctx)
	if err != nil {
		return fmt.Errorf("refreshing services: %w", err)
	}
	methods, err := s.provider.FetchPaymentMethods(ctx)
	if err != nil {
		return fmt.Errorf("refreshing payment methods: %w", err)
	}

	s.store.Replace(store.Snapshot{
		Fields:         fields,
		FieldTypes:     fieldTypes,
		ScheduleSlots:  slots,
		Turnos:         turnos,
		Services:       services,
		PaymentMethods: methods,
	})
	return nil
}

func (s *Service) runMaintenance(ctx context.Context) {
	triggers := []struct {
		name string
		run  func(context.Context) error
	}{
		{"expirar-pasados", s.provider.ExpirePastTurnos},
		{"crear-del-dia", s.provider.CreateTodayTurnos},
		{"finalizar-vencidas", s.provider.FinalizeExpiredReservations},
	}
	for _, trigger := range triggers {
		if err := trigger.run(ctx); err != nil {
			s.logWarn("maintenance trigger failed", slog.String("trigger", trigger.name), slog.Any("error", err))
		}
	}
}

// Grid builds the availability grid for one date from the current
// snapshot.
func (s *Service) Grid(date string) grid.Grid {
	snap := s.store.Snapshot()
	return grid.Build(date, snap.Fields, snap.ScheduleSlots, snap.Turnos)
}

// Fields returns the current field list.
func (s *Service) Fields() []domain.Field {
	return s.store.Fields()
}

// FieldTypes returns the current field type list.
func (s *Service) FieldTypes() []domain.FieldType {
	return s.store.FieldTypes()
}

// ScheduleSlots returns the current schedule definitions.
func (s *Service) ScheduleSlots() []domain.ScheduleSlot {
	return s.store.ScheduleSlots()
}

// Services returns the current amenity catalog.
func (s *Service) Services() []domain.Service {
	return s.store.Services()
}

// PaymentMethods returns the current payment methods.
func (s *Service) PaymentMethods() []domain.PaymentMethod {
	return s.store.PaymentMethods()
}

func (s *Service) logWarn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
