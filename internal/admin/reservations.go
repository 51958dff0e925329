package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"donbalon-gateway/internal/domain"
	"donbalon-gateway/internal/providers"
)

var (
	errReservationID    = errors.New("Por favor ingresa un ID de reserva")
	errReservationEmail = errors.New("Por favor ingresa un email")
	errSlotIncomplete   = errors.New("Por favor completa todos los campos del turno")

	errReservationNotFound  error = &NotFoundError{Message: "No se encontró una reserva con ese ID"}
	errReservationsNotFound error = &NotFoundError{Message: "No se encontraron reservas para ese cliente"}
	errSlotNotFound         error = &NotFoundError{Message: "No se encontró una reserva para ese turno"}

	errNotCancelable = errors.New("Solo se pueden eliminar reservas pendientes")
)

// ReservationProvider is the slice of upstream capabilities the
// reservation panel needs.
type ReservationProvider interface {
	ReservationDetails(ctx context.Context, id int) (domain.Reservation, []domain.ReservationDetail, error)
	ReservationsByEmail(ctx context.Context, email string) ([]domain.Reservation, error)
	ReservationBySlot(ctx context.Context, slot domain.SlotSelection) (domain.Reservation, error)
	CancelReservation(ctx context.Context, id int) error
}

// ReservationController manages the reservation admin panel: lookups by
// id, client email or turno, and cancellation of pending reservations.
type ReservationController struct {
	provider ReservationProvider
}

// NewReservationController constructs a controller.
func NewReservationController(provider ReservationProvider) *ReservationController {
	return &ReservationController{provider: provider}
}

// FindByID loads a reservation with its line items.
func (c *ReservationController) FindByID(ctx context.Context, id int) (domain.Reservation, []domain.ReservationDetail, error) {
	if id <= 0 {
		return domain.Reservation{}, nil, errReservationID
	}
	reservation, details, err := c.provider.ReservationDetails(ctx, id)
	if err != nil {
		if providers.IsNotFound(err) {
			return domain.Reservation{}, nil, errReservationNotFound
		}
		return domain.Reservation{}, nil, fmt.Errorf("%s: %w", providers.Detail(err, "Error al buscar la reserva"), err)
	}
	return reservation, details, nil
}

// FindByEmail lists a client's reservations.
func (c *ReservationController) FindByEmail(ctx context.Context, email string) ([]domain.Reservation, error) {
	if strings.TrimSpace(email) == "" {
		return nil, errReservationEmail
	}
	reservations, err := c.provider.ReservationsByEmail(ctx, email)
	if err != nil {
		if providers.IsNotFound(err) {
			return nil, errReservationsNotFound
		}
		return nil, fmt.Errorf("%s: %w", providers.Detail(err, "Error al buscar las reservas"), err)
	}
	if len(reservations) == 0 {
		return nil, errReservationsNotFound
	}
	return reservations, nil
}

// FindBySlot locates the reservation holding a specific turno.
func (c *ReservationController) FindBySlot(ctx context.Context, slot domain.SlotSelection) (domain.Reservation, error) {
	if slot.FieldID <= 0 || slot.ScheduleID <= 0 || slot.Date == "" {
		return domain.Reservation{}, errSlotIncomplete
	}
	reservation, err := c.provider.ReservationBySlot(ctx, slot)
	if err != nil {
		if providers.IsNotFound(err) {
			return domain.Reservation{}, errSlotNotFound
		}
		return domain.Reservation{}, fmt.Errorf("%s: %w", providers.Detail(err, "Error al buscar la reserva"), err)
	}
	return reservation, nil
}

// Cancel deletes a reservation. Only pending reservations can be
// cancelled; the check runs here before touching the upstream.
func (c *ReservationController) Cancel(ctx context.Context, id int) error {
	reservation, _, err := c.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !reservation.Status.IsPending() {
		return errNotCancelable
	}
	if err := c.provider.CancelReservation(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", providers.Detail(err, "Error al eliminar la reserva"), err)
	}
	return nil
}
