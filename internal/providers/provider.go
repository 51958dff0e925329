package providers

import (
	"context"

	"donbalon-gateway/internal/domain"
)

// CatalogProvider fetches the reference data the schedule grid is built
// from. All reads are full-list fetches; the upstream owns filtering.
type CatalogProvider interface {
	FetchFields(ctx context.Context) ([]domain.Field, error)
	FetchFieldTypes(ctx context.Context) ([]domain.FieldType, error)
	FetchScheduleSlots(ctx context.Context) ([]domain.ScheduleSlot, error)
	FetchTurnos(ctx context.Context) ([]domain.Turno, error)
	FetchServices(ctx context.Context) ([]domain.Service, error)
	FetchFieldDetail(ctx context.Context, fieldID int) (domain.FieldDetail, error)
	FetchPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error)
}

// MaintenanceProvider triggers upstream housekeeping: expiring stale
// turnos, materializing today's turnos, and finalizing overdue
// reservations. All three are idempotent upstream.
type MaintenanceProvider interface {
	ExpirePastTurnos(ctx context.Context) error
	CreateTodayTurnos(ctx context.Context) error
	FinalizeExpiredReservations(ctx context.Context) error
}

// ReservationProvider covers reservation creation, lookup and
// cancellation. Cancellation is only accepted upstream while the
// reservation is still pending.
type ReservationProvider interface {
	CreateReservation(ctx context.Context, req domain.ReservationRequest) (domain.Reservation, error)
	ReservationDetails(ctx context.Context, id int) (domain.Reservation, []domain.ReservationDetail, error)
	ReservationsByEmail(ctx context.Context, email string) ([]domain.Reservation, error)
	ReservationBySlot(ctx context.Context, slot domain.SlotSelection) (domain.Reservation, error)
	CancelReservation(ctx context.Context, id int) error
}

// CustomerProvider looks up and updates client records.
type CustomerProvider interface {
	CustomerByEmail(ctx context.Context, email string) (domain.Customer, error)
	UpdateCustomer(ctx context.Context, c domain.Customer) (domain.Customer, error)
}

// TournamentQuery describes a tournament shape for feasibility checks.
type TournamentQuery struct {
	StartDate     string
	EndDate       string
	TotalMatches  int
	MatchesPerDay int
	TeamCount     int
	FieldTypes    []int
}

// TournamentProvider covers tournament feasibility and booking.
type TournamentProvider interface {
	MaxMatchesPerDay(ctx context.Context, teamCount int, fieldTypes []int) (int, error)
	CheckAvailability(ctx context.Context, q TournamentQuery) (domain.TournamentAvailability, error)
	BookTournament(ctx context.Context, req domain.TournamentRequest) (domain.TournamentBooking, error)
}

// AdminProvider covers field and schedule-definition CRUD. Deletes are
// soft upstream: the record is deactivated and history is preserved.
type AdminProvider interface {
	CreateField(ctx context.Context, name string, typeID int) (domain.Field, error)
	UpdateField(ctx context.Context, id int, name string, typeID int) (domain.Field, error)
	DeactivateField(ctx context.Context, id int) error
	CreateScheduleSlot(ctx context.Context, start, end string) (domain.ScheduleSlot, error)
	UpdateScheduleSlot(ctx context.Context, id int, start, end string) (domain.ScheduleSlot, error)
	DeactivateScheduleSlot(ctx context.Context, id int) error
}

// ReportKind selects one of the upstream PDF reports.
type ReportKind string

const (
	ReportConfirmation ReportKind = "confirmation"
	ReportClient       ReportKind = "client"
	ReportField        ReportKind = "field"
	ReportTopFields    ReportKind = "top-fields"
	ReportMonthlyUse   ReportKind = "monthly-use"
)

// ReportQuery identifies a report and its parameters. Unused fields are
// ignored for kinds that do not need them.
type ReportQuery struct {
	Kind          ReportKind
	ReservationID int
	ClientID      int
	FieldID       int
	StartDate     string
	EndDate       string
	TopN          int
}

// ReportProvider fetches a rendered PDF report from the upstream.
type ReportProvider interface {
	FetchReport(ctx context.Context, q ReportQuery) ([]byte, error)
}

// BookingProvider combines every upstream capability the gateway uses.
type BookingProvider interface {
	CatalogProvider
	MaintenanceProvider
	ReservationProvider
	CustomerProvider
	TournamentProvider
	AdminProvider
	ReportProvider
}
