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
	errFieldName = errors.New("El nombre de la cancha es obligatorio")
	errFieldType = errors.New("Debe seleccionar un tipo de cancha")
)

// FieldProvider is the slice of upstream capabilities the field panel
// needs.
type FieldProvider interface {
	FetchFields(ctx context.Context) ([]domain.Field, error)
	FetchFieldTypes(ctx context.Context) ([]domain.FieldType, error)
	CreateField(ctx context.Context, name string, typeID int) (domain.Field, error)
	UpdateField(ctx context.Context, id int, name string, typeID int) (domain.Field, error)
	DeactivateField(ctx context.Context, id int) error
}

// FieldController manages the cancha admin panel: the listing plus a
// create/edit editor. Deactivation is a soft delete upstream, so the
// field stays listed afterwards.
type FieldController struct {
	provider FieldProvider

	state      EditorState
	editingID  int
	fields     []domain.Field
	fieldTypes []domain.FieldType
}

// NewFieldController constructs an idle controller.
func NewFieldController(provider FieldProvider) *FieldController {
	return &FieldController{provider: provider, state: EditorIdle}
}

// Load refreshes the field listing and the type catalog.
func (c *FieldController) Load(ctx context.Context) error {
	fields, err := c.provider.FetchFields(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", providers.Detail(err, "Error al cargar canchas"), err)
	}
	fieldTypes, err := c.provider.FetchFieldTypes(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", providers.Detail(err, "Error al cargar tipos de cancha"), err)
	}
	c.fields = fields
	c.fieldTypes = fieldTypes
	return nil
}

// BeginCreate opens the editor for a new field.
func (c *FieldController) BeginCreate() {
	c.state = EditorCreating
	c.editingID = 0
}

// BeginEdit opens the editor over an existing field.
func (c *FieldController) BeginEdit(id int) error {
	for _, f := range c.fields {
		if f.ID == id {
			c.state = EditorEditing
			c.editingID = id
			return nil
		}
	}
	return fmt.Errorf("cancha %d no encontrada", id)
}

// Cancel closes the editor without saving.
func (c *FieldController) Cancel() {
	c.state = EditorIdle
	c.editingID = 0
}

func validateField(name string, typeID int) error {
	if strings.TrimSpace(name) == "" {
		return errFieldName
	}
	if typeID <= 0 {
		return errFieldType
	}
	return nil
}

// Create validates the form and registers the field, then reloads the
// listing and closes the editor.
func (c *FieldController) Create(ctx context.Context, name string, typeID int) (domain.Field, error) {
	if c.state != EditorCreating {
		return domain.Field{}, fmt.Errorf("admin: create not allowed in state %q", c.state)
	}
	if err := validateField(name, typeID); err != nil {
		return domain.Field{}, err
	}

	created, err := c.provider.CreateField(ctx, strings.TrimSpace(name), typeID)
	if err != nil {
		return domain.Field{}, fmt.Errorf("%s: %w", providers.Detail(err, "Error al crear cancha"), err)
	}
	if err := c.Load(ctx); err != nil {
		return created, err
	}
	c.Cancel()
	return created, nil
}

// Update validates the form and saves the field being edited.
func (c *FieldController) Update(ctx context.Context, name string, typeID int) (domain.Field, error) {
	if c.state != EditorEditing {
		return domain.Field{}, fmt.Errorf("admin: update not allowed in state %q", c.state)
	}
	if err := validateField(name, typeID); err != nil {
		return domain.Field{}, err
	}

	updated, err := c.provider.UpdateField(ctx, c.editingID, strings.TrimSpace(name), typeID)
	if err != nil {
		return domain.Field{}, fmt.Errorf("%s: %w", providers.Detail(err, "Error al actualizar cancha"), err)
	}
	if err := c.Load(ctx); err != nil {
		return updated, err
	}
	c.Cancel()
	return updated, nil
}

// Deactivate soft-deletes a field and reloads the listing. Historical
// reservations and turnos keep referencing the field, and the listing
// still includes it.
func (c *FieldController) Deactivate(ctx context.Context, id int) error {
	if err := c.provider.DeactivateField(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", providers.Detail(err, "Error al desactivar cancha"), err)
	}
	return c.Load(ctx)
}

// State returns the editor state.
func (c *FieldController) State() EditorState { return c.state }

// EditingID returns the id under edit, zero when not editing.
func (c *FieldController) EditingID() int { return c.editingID }

// Fields returns the loaded field listing.
func (c *FieldController) Fields() []domain.Field { return c.fields }

// FieldTypes returns the loaded type catalog.
func (c *FieldController) FieldTypes() []domain.FieldType { return c.fieldTypes }
