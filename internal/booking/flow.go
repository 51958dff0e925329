package booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"donbalon-gateway/internal/domain"
	"donbalon-gateway/internal/providers"
)

// State tracks where a booking flow is in its lifecycle.
type State string

const (
	StateLoadingContext State = "loading-context"
	StateAwaitingMethod State = "awaiting-method-selection"
	StateSubmitting     State = "submitting"
	StateConfirmed      State = "confirmed"
	StateFailed         State = "failed"
)

// Provider is the slice of upstream capabilities the booking flow needs.
type Provider interface {
	FetchPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error)
	FetchFieldDetail(ctx context.Context, fieldID int) (domain.FieldDetail, error)
	CreateReservation(ctx context.Context, req domain.ReservationRequest) (domain.Reservation, error)
}

var (
	errNoSelections   = errors.New("Debe seleccionar al menos un turno")
	errNoMethod       = errors.New("Debe seleccionar un método de pago")
	errLoadingContext = errors.New("Error al cargar información de pago")
)

// Flow drives a single-slot booking from slot selection through payment
// to a confirmed reservation. A Flow is not safe for concurrent use.
type Flow struct {
	provider   Provider
	clientID   int
	selections []domain.SlotSelection

	state       State
	methods     []domain.PaymentMethod
	details     map[int]domain.FieldDetail
	reservation domain.Reservation
	failure     string
}

// NewFlow starts a booking flow for the given client and selected slots.
func NewFlow(provider Provider, clientID int, selections []domain.SlotSelection) (*Flow, error) {
	if len(selections) == 0 {
		return nil, errNoSelections
	}
	return &Flow{
		provider:   provider,
		clientID:   clientID,
		selections: selections,
		state:      StateLoadingContext,
		details:    make(map[int]domain.FieldDetail),
	}, nil
}

// Load fetches the payment methods and the priced detail of every
// distinct selected field, then moves the flow to method selection.
func (f *Flow) Load(ctx context.Context) error {
	if f.state != StateLoadingContext {
		return fmt.Errorf("booking: load not allowed in state %q", f.state)
	}

	methods, err := f.provider.FetchPaymentMethods(ctx)
	if err != nil {
		return f.fail(errLoadingContext.Error(), err)
	}
	f.methods = methods

	for _, selection := range f.selections {
		if _, ok := f.details[selection.FieldID]; ok {
			continue
		}
		detail, err := f.provider.FetchFieldDetail(ctx, selection.FieldID)
		if err != nil {
			return f.fail(errLoadingContext.Error(), err)
		}
		f.details[selection.FieldID] = detail
	}

	f.state = StateAwaitingMethod
	return nil
}

// Line is one field's share of the booking price: the number of selected
// turnos times the field's per-turno price.
type Line struct {
	FieldID   int              `json:"id_cancha"`
	Name      string           `json:"nombre"`
	Count     int              `json:"cantidad"`
	UnitPrice string           `json:"precio_total"`
	Subtotal  string           `json:"subtotal"`
	Services  []domain.Service `json:"servicios,omitempty"`
}

// Summary is the priced breakdown shown before payment.
type Summary struct {
	Lines []Line `json:"items"`
	Total string `json:"total"`
}

// Summary computes the per-field breakdown from the loaded details.
// Selections whose field detail never resolved are skipped.
func (f *Flow) Summary() Summary {
	counts := make(map[int]int)
	order := make([]int, 0, len(f.selections))
	for _, selection := range f.selections {
		if _, ok := f.details[selection.FieldID]; !ok {
			continue
		}
		if counts[selection.FieldID] == 0 {
			order = append(order, selection.FieldID)
		}
		counts[selection.FieldID]++
	}

	var total float64
	lines := make([]Line, 0, len(order))
	for _, fieldID := range order {
		detail := f.details[fieldID]
		unit := parseAmount(detail.TotalPrice)
		subtotal := unit * float64(counts[fieldID])
		total += subtotal
		lines = append(lines, Line{
			FieldID:   fieldID,
			Name:      detail.Name,
			Count:     counts[fieldID],
			UnitPrice: formatAmount(unit),
			Subtotal:  formatAmount(subtotal),
			Services:  detail.Services,
		})
	}

	return Summary{Lines: lines, Total: formatAmount(total)}
}

// Submit validates the chosen payment method (and card, when the method
// needs one) and creates the reservation upstream.
func (f *Flow) Submit(ctx context.Context, methodID int, card *Card) (domain.Reservation, error) {
	if f.state != StateAwaitingMethod && f.state != StateFailed {
		return domain.Reservation{}, fmt.Errorf("booking: submit not allowed in state %q", f.state)
	}

	method, ok := f.methodByID(methodID)
	if !ok {
		return domain.Reservation{}, errNoMethod
	}
	if method.RequiresCard() {
		if card == nil {
			return domain.Reservation{}, ErrCardNumber
		}
		if err := card.Validate(); err != nil {
			return domain.Reservation{}, err
		}
	}

	f.state = StateSubmitting
	reservation, err := f.provider.CreateReservation(ctx, domain.ReservationRequest{
		ClientID:        f.clientID,
		PaymentMethodID: methodID,
		Items:           f.selections,
	})
	if err != nil {
		return domain.Reservation{}, f.fail(providers.Detail(err, "Error al procesar la reserva"), err)
	}

	f.reservation = reservation
	f.state = StateConfirmed
	return reservation, nil
}

// State returns the flow's current state.
func (f *Flow) State() State { return f.state }

// PaymentMethods returns the methods loaded for selection.
func (f *Flow) PaymentMethods() []domain.PaymentMethod { return f.methods }

// Reservation returns the confirmed reservation, valid once the flow is
// in StateConfirmed.
func (f *Flow) Reservation() domain.Reservation { return f.reservation }

// Failure returns the user-facing message of the last failure.
func (f *Flow) Failure() string { return f.failure }

func (f *Flow) methodByID(id int) (domain.PaymentMethod, bool) {
	for _, m := range f.methods {
		if m.ID == id {
			return m, true
		}
	}
	return domain.PaymentMethod{}, false
}

func (f *Flow) fail(message string, cause error) error {
	f.state = StateFailed
	f.failure = message
	if cause != nil {
		return fmt.Errorf("%s: %w", message, cause)
	}
	return errors.New(message)
}

func parseAmount(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return value
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
