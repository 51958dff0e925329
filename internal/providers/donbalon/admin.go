package donbalon

import (
	"context"
	"fmt"
	"net/http"

	"donbalon-gateway/internal/domain"
)

type fieldPayload struct {
	Name   string `json:"nombre"`
	TypeID int    `json:"id_tipo"`
}

type schedulePayload struct {
	StartTime string `json:"hora_inicio"`
	EndTime   string `json:"hora_fin"`
}

// CreateField registers a new cancha.
func (c *Client) CreateField(ctx context.Context, name string, typeID int) (domain.Field, error) {
	var created domain.Field
	body := fieldPayload{Name: name, TypeID: typeID}
	if err := c.sendJSON(ctx, http.MethodPost, "/canchas/", body, &created); err != nil {
		return domain.Field{}, err
	}
	return created, nil
}

// UpdateField renames a cancha or moves it to another type.
func (c *Client) UpdateField(ctx context.Context, id int, name string, typeID int) (domain.Field, error) {
	var updated domain.Field
	body := fieldPayload{Name: name, TypeID: typeID}
	if err := c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/canchas/%d", id), body, &updated); err != nil {
		return domain.Field{}, err
	}
	return updated, nil
}

// DeactivateField soft-deletes a cancha upstream. Existing reservations
// keep referencing it.
func (c *Client) DeactivateField(ctx context.Context, id int) error {
	return c.sendJSON(ctx, http.MethodDelete, fmt.Sprintf("/canchas/%d", id), nil, nil)
}

// CreateScheduleSlot registers a recurring daily time window.
func (c *Client) CreateScheduleSlot(ctx context.Context, start, end string) (domain.ScheduleSlot, error) {
	var created domain.ScheduleSlot
	body := schedulePayload{StartTime: start, EndTime: end}
	if err := c.sendJSON(ctx, http.MethodPost, "/horarios/", body, &created); err != nil {
		return domain.ScheduleSlot{}, err
	}
	return created, nil
}

// UpdateScheduleSlot changes the window of an existing schedule slot.
func (c *Client) UpdateScheduleSlot(ctx context.Context, id int, start, end string) (domain.ScheduleSlot, error) {
	var updated domain.ScheduleSlot
	body := schedulePayload{StartTime: start, EndTime: end}
	if err := c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/horarios/%d", id), body, &updated); err != nil {
		return domain.ScheduleSlot{}, err
	}
	return updated, nil
}

// DeactivateScheduleSlot soft-deletes a schedule slot upstream.
func (c *Client) DeactivateScheduleSlot(ctx context.Context, id int) error {
	return c.sendJSON(ctx, http.MethodDelete, fmt.Sprintf("/horarios/%d", id), nil, nil)
}
