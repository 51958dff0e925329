package donbalon

import (
	"context"
	"fmt"
	"net/http"

	"donbalon-gateway/internal/domain"
)

// FetchFields lists every cancha, active and deactivated; deactivated
// fields stay listed so historical reservations keep resolving.
func (c *Client) FetchFields(ctx context.Context) ([]domain.Field, error) {
	var fields []domain.Field
	if err := c.getJSON(ctx, "/canchas/", nil, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// FetchFieldTypes lists the field types with their hourly prices.
func (c *Client) FetchFieldTypes(ctx context.Context) ([]domain.FieldType, error) {
	var types []domain.FieldType
	if err := c.getJSON(ctx, "/tipos-cancha/", nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// FetchScheduleSlots lists the recurring daily time windows.
func (c *Client) FetchScheduleSlots(ctx context.Context) ([]domain.ScheduleSlot, error) {
	var slots []domain.ScheduleSlot
	if err := c.getJSON(ctx, "/horarios/", nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// FetchTurnos lists every materialized turno across dates.
func (c *Client) FetchTurnos(ctx context.Context) ([]domain.Turno, error) {
	var turnos []domain.Turno
	if err := c.getJSON(ctx, "/turnos", nil, &turnos); err != nil {
		return nil, err
	}
	return turnos, nil
}

// FetchServices lists the amenity catalog.
func (c *Client) FetchServices(ctx context.Context) ([]domain.Service, error) {
	var services []domain.Service
	if err := c.getJSON(ctx, "/servicios", nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// FetchFieldDetail returns the priced view of a field: its type's hourly
// price plus the summed cost of attached services.
func (c *Client) FetchFieldDetail(ctx context.Context, fieldID int) (domain.FieldDetail, error) {
	var detail domain.FieldDetail
	path := fmt.Sprintf("/canchas-servicios/cancha/%d/detalle", fieldID)
	if err := c.getJSON(ctx, path, nil, &detail); err != nil {
		return domain.FieldDetail{}, err
	}
	return detail, nil
}

// FetchPaymentMethods lists the accepted payment methods.
func (c *Client) FetchPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	var methods []domain.PaymentMethod
	if err := c.getJSON(ctx, "/metodos-pago", nil, &methods); err != nil {
		return nil, err
	}
	return methods, nil
}

// ExpirePastTurnos marks yesterday's and older turnos as expired upstream.
func (c *Client) ExpirePastTurnos(ctx context.Context) error {
	return c.sendJSON(ctx, http.MethodPost, "/turnos/expirar-pasados", nil, nil)
}

// CreateTodayTurnos materializes today's turnos upstream when missing.
func (c *Client) CreateTodayTurnos(ctx context.Context) error {
	return c.sendJSON(ctx, http.MethodPost, "/turnos/crear-del-dia", nil, nil)
}

// FinalizeExpiredReservations sweeps overdue reservations into the
// finalized state. The upstream exposes this as a GET.
func (c *Client) FinalizeExpiredReservations(ctx context.Context) error {
	return c.getJSON(ctx, "/reservas/finalizar-vencidas", nil, nil)
}
