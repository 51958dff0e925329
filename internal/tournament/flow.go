package tournament

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"donbalon-gateway/internal/domain"
	"donbalon-gateway/internal/providers"
	"donbalon-gateway/internal/timeutil"
)

// State tracks where a tournament flow is in its lifecycle.
type State string

const (
	StateFormEntry         State = "form-entry"
	StateAvailabilityCheck State = "availability-check"
	StatePaymentEntry      State = "payment-entry"
	StateSubmitting        State = "submitting"
	StateConfirmed         State = "confirmed"
)

// Provider is the slice of upstream capabilities the tournament flow
// needs.
type Provider interface {
	FetchFieldTypes(ctx context.Context) ([]domain.FieldType, error)
	FetchPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error)
	MaxMatchesPerDay(ctx context.Context, teamCount int, fieldTypes []int) (int, error)
	CheckAvailability(ctx context.Context, q providers.TournamentQuery) (domain.TournamentAvailability, error)
	BookTournament(ctx context.Context, req domain.TournamentRequest) (domain.TournamentBooking, error)
}

var (
	errTeamName      = errors.New("Debe ingresar el nombre del equipo")
	errTeamDuplicate = errors.New("Ya existe un equipo con ese nombre en este torneo")
	errTeamPlayers   = errors.New("Debe ingresar al menos 5 jugadores por equipo")

	errName       = errors.New("Debe ingresar el nombre del torneo")
	errDates      = errors.New("Debe seleccionar las fechas del torneo")
	errStartPast  = errors.New("La fecha de inicio no puede ser anterior a la fecha actual")
	errEndBefore  = errors.New("La fecha de fin debe ser mayor o igual a la fecha de inicio")
	errTeamCount  = errors.New("Debe ingresar al menos 2 equipos")
	errFieldTypes = errors.New("Debe seleccionar al menos un tipo de cancha")
	errTotal      = errors.New("Debe ingresar la cantidad total de partidos del torneo")
	errPerDay     = errors.New("Los partidos por día deben ser al menos 1")

	errNoMethod = errors.New("Debe seleccionar un método de pago")
)

const minPlayersPerTeam = 5

// Form is the tournament shape the organizer fills in.
type Form struct {
	Name          string        `json:"nombre_torneo"`
	StartDate     string        `json:"fecha_inicio"`
	EndDate       string        `json:"fecha_fin"`
	Teams         []domain.Team `json:"equipos"`
	TotalMatches  int           `json:"total_partidos"`
	MatchesPerDay int           `json:"partidos_por_dia"`
	FieldTypes    []int         `json:"tipos_cancha"`
}

// Flow drives a tournament booking: form entry, upstream availability
// validation, payment, and the final multi-slot reservation. A Flow is
// not safe for concurrent use.
type Flow struct {
	provider Provider
	clientID int
	now      func() time.Time

	state        State
	form         Form
	fieldTypes   []domain.FieldType
	methods      []domain.PaymentMethod
	maxPerDay    int
	availability domain.TournamentAvailability
	booking      domain.TournamentBooking
}

// NewFlow starts an empty tournament flow for a client.
func NewFlow(provider Provider, clientID int) *Flow {
	return &Flow{
		provider: provider,
		clientID: clientID,
		now:      time.Now,
		state:    StateFormEntry,
		form:     Form{MatchesPerDay: 1},
	}
}

// Load fetches the field type catalog and payment methods. Every field
// type starts selected, matching the booking site's default.
func (f *Flow) Load(ctx context.Context) error {
	fieldTypes, err := f.provider.FetchFieldTypes(ctx)
	if err != nil {
		return err
	}
	methods, err := f.provider.FetchPaymentMethods(ctx)
	if err != nil {
		return err
	}

	f.fieldTypes = fieldTypes
	f.methods = methods
	f.form.FieldTypes = make([]int, 0, len(fieldTypes))
	for _, t := range fieldTypes {
		f.form.FieldTypes = append(f.form.FieldTypes, t.ID)
	}
	return nil
}

// SetForm replaces the editable form fields. Teams added through AddTeam
// are kept unless the new form carries its own.
func (f *Flow) SetForm(form Form) {
	if form.Teams == nil {
		form.Teams = f.form.Teams
	}
	if form.FieldTypes == nil {
		form.FieldTypes = f.form.FieldTypes
	}
	f.form = form
}

// Form returns the current form contents.
func (f *Flow) Form() Form { return f.form }

// AddTeam validates and registers one participant team. Names are
// compared case-insensitively after trimming.
func (f *Flow) AddTeam(name string, players int) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errTeamName
	}
	for _, team := range f.form.Teams {
		if strings.EqualFold(strings.TrimSpace(team.Name), trimmed) {
			return errTeamDuplicate
		}
	}
	if players < minPlayersPerTeam {
		return errTeamPlayers
	}
	f.form.Teams = append(f.form.Teams, domain.Team{Name: trimmed, Players: players})
	return nil
}

// RemoveTeam drops the team at the given position.
func (f *Flow) RemoveTeam(index int) {
	if index < 0 || index >= len(f.form.Teams) {
		return
	}
	f.form.Teams = append(f.form.Teams[:index], f.form.Teams[index+1:]...)
}

// RefreshMaxMatches asks the upstream how many matches per day the
// current team count and field types allow, and caches the answer for
// form validation.
func (f *Flow) RefreshMaxMatches(ctx context.Context) (int, error) {
	if len(f.form.FieldTypes) == 0 {
		return 0, errFieldTypes
	}
	limit, err := f.provider.MaxMatchesPerDay(ctx, len(f.form.Teams), f.form.FieldTypes)
	if err != nil {
		return 0, err
	}
	f.maxPerDay = limit
	return limit, nil
}

// DaysNeeded reports how many days the configured matches require.
func (f *Flow) DaysNeeded() int {
	if f.form.TotalMatches <= 0 || f.form.MatchesPerDay <= 0 {
		return 0
	}
	return (f.form.TotalMatches + f.form.MatchesPerDay - 1) / f.form.MatchesPerDay
}

// ValidateForm checks the form in the same order the booking site does,
// returning the first violation.
func (f *Flow) ValidateForm() error {
	if strings.TrimSpace(f.form.Name) == "" {
		return errName
	}
	if f.form.StartDate == "" || f.form.EndDate == "" {
		return errDates
	}
	start, err := timeutil.ParseDate(f.form.StartDate)
	if err != nil {
		return errDates
	}
	end, err := timeutil.ParseDate(f.form.EndDate)
	if err != nil {
		return errDates
	}

	today := f.now().UTC().Truncate(24 * time.Hour)
	if start.Before(today) {
		return errStartPast
	}
	if end.Before(start) {
		return errEndBefore
	}
	if len(f.form.Teams) < 2 {
		return errTeamCount
	}
	if len(f.form.FieldTypes) == 0 {
		return errFieldTypes
	}
	if f.form.TotalMatches < 1 {
		return errTotal
	}
	if f.form.MatchesPerDay < 1 {
		return errPerDay
	}
	if f.maxPerDay > 0 && f.form.MatchesPerDay > f.maxPerDay {
		return fmt.Errorf("No se pueden jugar %d partidos por día. Máximo disponible: %d",
			f.form.MatchesPerDay, f.maxPerDay)
	}

	available := timeutil.DaysInclusive(start, end)
	if needed := f.DaysNeeded(); needed > available {
		return fmt.Errorf("Se necesitan %d días para %d partidos a %d por día, pero solo hay %d días disponibles",
			needed, f.form.TotalMatches, f.form.MatchesPerDay, available)
	}
	return nil
}

// CheckAvailability validates the form and asks the upstream whether the
// tournament fits the real turno inventory. On success the flow moves to
// the payment step carrying the estimated amount.
func (f *Flow) CheckAvailability(ctx context.Context) (domain.TournamentAvailability, error) {
	if f.state != StateFormEntry {
		return domain.TournamentAvailability{}, fmt.Errorf("tournament: availability check not allowed in state %q", f.state)
	}
	if err := f.ValidateForm(); err != nil {
		return domain.TournamentAvailability{}, err
	}

	f.state = StateAvailabilityCheck
	availability, err := f.provider.CheckAvailability(ctx, providers.TournamentQuery{
		StartDate:     f.form.StartDate,
		EndDate:       f.form.EndDate,
		TotalMatches:  f.form.TotalMatches,
		MatchesPerDay: f.form.MatchesPerDay,
		TeamCount:     len(f.form.Teams),
		FieldTypes:    f.form.FieldTypes,
	})
	if err != nil {
		f.state = StateFormEntry
		return domain.TournamentAvailability{}, fmt.Errorf("%s: %w", providers.Detail(err, "Error al validar disponibilidad de turnos"), err)
	}
	if !availability.Available {
		f.state = StateFormEntry
		return availability, errors.New(availability.Message)
	}

	f.availability = availability
	f.state = StatePaymentEntry
	return availability, nil
}

// Confirm validates the payment method (and card, when required) and
// books every turno the tournament needs in one upstream call.
func (f *Flow) Confirm(ctx context.Context, methodID int, card *Card) (domain.TournamentBooking, error) {
	if f.state != StatePaymentEntry {
		return domain.TournamentBooking{}, fmt.Errorf("tournament: confirm not allowed in state %q", f.state)
	}

	method, ok := f.methodByID(methodID)
	if !ok {
		return domain.TournamentBooking{}, errNoMethod
	}
	if method.RequiresCard() {
		if card == nil {
			return domain.TournamentBooking{}, errCardIncomplete
		}
		if err := card.Validate(f.now()); err != nil {
			return domain.TournamentBooking{}, err
		}
	}

	f.state = StateSubmitting
	booking, err := f.provider.BookTournament(ctx, domain.TournamentRequest{
		ClientID:        f.clientID,
		Name:            f.form.Name,
		StartDate:       f.form.StartDate,
		EndDate:         f.form.EndDate,
		Teams:           f.form.Teams,
		TotalMatches:    f.form.TotalMatches,
		MatchesPerDay:   f.form.MatchesPerDay,
		PaymentMethodID: methodID,
		FieldTypes:      f.form.FieldTypes,
	})
	if err != nil {
		f.state = StatePaymentEntry
		return domain.TournamentBooking{}, fmt.Errorf("%s: %w", providers.Detail(err, "Error al crear el torneo"), err)
	}

	f.booking = booking
	f.state = StateConfirmed
	return booking, nil
}

// State returns the flow's current state.
func (f *Flow) State() State { return f.state }

// Availability returns the upstream feasibility answer, valid once the
// flow has passed the availability check.
func (f *Flow) Availability() domain.TournamentAvailability { return f.availability }

// Booking returns the confirmation, valid once the flow is confirmed.
func (f *Flow) Booking() domain.TournamentBooking { return f.booking }

// PaymentMethods returns the methods loaded for selection.
func (f *Flow) PaymentMethods() []domain.PaymentMethod { return f.methods }

// MaxMatchesPerDay returns the cached upstream per-day limit.
func (f *Flow) MaxMatchesPerDay() int { return f.maxPerDay }

// FieldTypes returns the loaded field type catalog.
func (f *Flow) FieldTypes() []domain.FieldType { return f.fieldTypes }

func (f *Flow) methodByID(id int) (domain.PaymentMethod, bool) {
	for _, m := range f.methods {
		if m.ID == id {
			return m, true
		}
	}
	return domain.PaymentMethod{}, false
}
