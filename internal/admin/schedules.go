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
	errScheduleStart = errors.New("La hora de inicio es obligatoria")
	errScheduleEnd   = errors.New("La hora de fin es obligatoria")
	errScheduleOrder = errors.New("La hora de fin debe ser posterior a la hora de inicio")
)

// ScheduleProvider is the slice of upstream capabilities the schedule
// panel needs.
type ScheduleProvider interface {
	FetchScheduleSlots(ctx context.Context) ([]domain.ScheduleSlot, error)
	CreateScheduleSlot(ctx context.Context, start, end string) (domain.ScheduleSlot, error)
	UpdateScheduleSlot(ctx context.Context, id int, start, end string) (domain.ScheduleSlot, error)
	DeactivateScheduleSlot(ctx context.Context, id int) error
}

// ScheduleController manages the horario admin panel.
type ScheduleController struct {
	provider ScheduleProvider

	state     EditorState
	editingID int
	slots     []domain.ScheduleSlot
}

// NewScheduleController constructs an idle controller.
func NewScheduleController(provider ScheduleProvider) *ScheduleController {
	return &ScheduleController{provider: provider, state: EditorIdle}
}

// Load refreshes the schedule listing.
func (c *ScheduleController) Load(ctx context.Context) error {
	slots, err := c.provider.FetchScheduleSlots(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", providers.Detail(err, "Error al cargar horarios"), err)
	}
	c.slots = slots
	return nil
}

// BeginCreate opens the editor for a new schedule slot.
func (c *ScheduleController) BeginCreate() {
	c.state = EditorCreating
	c.editingID = 0
}

// BeginEdit opens the editor over an existing slot.
func (c *ScheduleController) BeginEdit(id int) error {
	for _, s := range c.slots {
		if s.ID == id {
			c.state = EditorEditing
			c.editingID = id
			return nil
		}
	}
	return fmt.Errorf("horario %d no encontrado", id)
}

// Cancel closes the editor without saving.
func (c *ScheduleController) Cancel() {
	c.state = EditorIdle
	c.editingID = 0
}

// HH:MM strings compare correctly as text.
func validateSchedule(start, end string) error {
	if strings.TrimSpace(start) == "" {
		return errScheduleStart
	}
	if strings.TrimSpace(end) == "" {
		return errScheduleEnd
	}
	if end <= start {
		return errScheduleOrder
	}
	return nil
}

// Create validates the window and registers it.
func (c *ScheduleController) Create(ctx context.Context, start, end string) (domain.ScheduleSlot, error) {
	if c.state != EditorCreating {
		return domain.ScheduleSlot{}, fmt.Errorf("admin: create not allowed in state %q", c.state)
	}
	if err := validateSchedule(start, end); err != nil {
		return domain.ScheduleSlot{}, err
	}

	created, err := c.provider.CreateScheduleSlot(ctx, start, end)
	if err != nil {
		return domain.ScheduleSlot{}, fmt.Errorf("%s: %w", providers.Detail(err, "Error al crear horario"), err)
	}
	if err := c.Load(ctx); err != nil {
		return created, err
	}
	c.Cancel()
	return created, nil
}

// Update validates the window and saves the slot being edited.
func (c *ScheduleController) Update(ctx context.Context, start, end string) (domain.ScheduleSlot, error) {
	if c.state != EditorEditing {
		return domain.ScheduleSlot{}, fmt.Errorf("admin: update not allowed in state %q", c.state)
	}
	if err := validateSchedule(start, end); err != nil {
		return domain.ScheduleSlot{}, err
	}

	updated, err := c.provider.UpdateScheduleSlot(ctx, c.editingID, start, end)
	if err != nil {
		return domain.ScheduleSlot{}, fmt.Errorf("%s: %w", providers.Detail(err, "Error al actualizar horario"), err)
	}
	if err := c.Load(ctx); err != nil {
		return updated, err
	}
	c.Cancel()
	return updated, nil
}

// Deactivate soft-deletes a schedule slot and reloads the listing.
func (c *ScheduleController) Deactivate(ctx context.Context, id int) error {
	if err := c.provider.DeactivateScheduleSlot(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", providers.Detail(err, "Error al desactivar horario"), err)
	}
	return c.Load(ctx)
}

// State returns the editor state.
func (c *ScheduleController) State() EditorState { return c.state }

// Slots returns the loaded schedule listing.
func (c *ScheduleController) Slots() []domain.ScheduleSlot { return c.slots }
