package donbalon

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"donbalon-gateway/internal/domain"
)

// reservationWithDetails is the wire shape of /reservas/{id}/detalles:
// the reservation row with its priced line items embedded.
type reservationWithDetails struct {
	domain.Reservation
	Details []domain.ReservationDetail `json:"detalles"`
}

// CreateReservation posts a reservation built from the selected slots.
// The upstream prices the items and leaves the reservation pending.
func (c *Client) CreateReservation(ctx context.Context, req domain.ReservationRequest) (domain.Reservation, error) {
	var created domain.Reservation
	if err := c.sendJSON(ctx, http.MethodPost, "/reservas/", req, &created); err != nil {
		return domain.Reservation{}, err
	}
	return created, nil
}

// ReservationDetails fetches a reservation together with its line items.
func (c *Client) ReservationDetails(ctx context.Context, id int) (domain.Reservation, []domain.ReservationDetail, error) {
	var payload reservationWithDetails
	path := fmt.Sprintf("/reservas/%d/detalles", id)
	if err := c.getJSON(ctx, path, nil, &payload); err != nil {
		return domain.Reservation{}, nil, err
	}
	return payload.Reservation, payload.Details, nil
}

// ReservationsByEmail lists a client's reservations by their email.
func (c *Client) ReservationsByEmail(ctx context.Context, email string) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	path := "/reservas/cliente/email/" + url.PathEscape(email)
	if err := c.getJSON(ctx, path, nil, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

// ReservationBySlot finds the reservation holding a specific turno.
func (c *Client) ReservationBySlot(ctx context.Context, slot domain.SlotSelection) (domain.Reservation, error) {
	query := url.Values{}
	query.Set("id_cancha", strconv.Itoa(slot.FieldID))
	query.Set("id_horario", strconv.Itoa(slot.ScheduleID))
	query.Set("fecha", slot.Date)

	var reservation domain.Reservation
	if err := c.getJSON(ctx, "/reservas/turno/buscar", query, &reservation); err != nil {
		return domain.Reservation{}, err
	}
	return reservation, nil
}

// CancelReservation deletes a reservation. The upstream rejects the call
// unless the reservation is still pending.
func (c *Client) CancelReservation(ctx context.Context, id int) error {
	return c.sendJSON(ctx, http.MethodDelete, fmt.Sprintf("/reservas/%d", id), nil, nil)
}
