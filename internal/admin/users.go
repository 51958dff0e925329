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
	errUserEmail            = errors.New("Debe ingresar un email")
	errUserNotFound   error = &NotFoundError{Message: "Usuario no encontrado"}
	errUserFirstName  = errors.New("El nombre es obligatorio")
	errUserLastName   = errors.New("El apellido es obligatorio")
	errUserEmailField = errors.New("El email es obligatorio")
	errUserPhone      = errors.New("El teléfono es obligatorio")
)

// UserProvider is the slice of upstream capabilities the user panel
// needs.
type UserProvider interface {
	CustomerByEmail(ctx context.Context, email string) (domain.Customer, error)
	UpdateCustomer(ctx context.Context, c domain.Customer) (domain.Customer, error)
}

// UserController manages the client admin panel: lookup by email and
// profile edits.
type UserController struct {
	provider UserProvider

	state    EditorState
	customer domain.Customer
	loaded   bool
}

// NewUserController constructs an idle controller.
func NewUserController(provider UserProvider) *UserController {
	return &UserController{provider: provider, state: EditorIdle}
}

// Lookup finds a client by email. A 404 maps to a not-found message.
func (c *UserController) Lookup(ctx context.Context, email string) (domain.Customer, error) {
	if strings.TrimSpace(email) == "" {
		return domain.Customer{}, errUserEmail
	}

	c.state = EditorIdle
	c.loaded = false

	customer, err := c.provider.CustomerByEmail(ctx, email)
	if err != nil {
		if providers.IsNotFound(err) {
			return domain.Customer{}, errUserNotFound
		}
		return domain.Customer{}, fmt.Errorf("%s: %w", providers.Detail(err, "Error al buscar usuario"), err)
	}

	c.customer = customer
	c.loaded = true
	return customer, nil
}

// BeginEdit opens the editor over the loaded client.
func (c *UserController) BeginEdit() error {
	if !c.loaded {
		return errUserNotFound
	}
	c.state = EditorEditing
	return nil
}

// Cancel closes the editor, keeping the loaded client intact.
func (c *UserController) Cancel() {
	c.state = EditorIdle
}

// Save validates the edited profile and persists it upstream.
func (c *UserController) Save(ctx context.Context, updated domain.Customer) (domain.Customer, error) {
	if c.state != EditorEditing {
		return domain.Customer{}, fmt.Errorf("admin: save not allowed in state %q", c.state)
	}
	if strings.TrimSpace(updated.FirstName) == "" {
		return domain.Customer{}, errUserFirstName
	}
	if strings.TrimSpace(updated.LastName) == "" {
		return domain.Customer{}, errUserLastName
	}
	if strings.TrimSpace(updated.Email) == "" {
		return domain.Customer{}, errUserEmailField
	}
	if strings.TrimSpace(updated.Phone) == "" {
		return domain.Customer{}, errUserPhone
	}

	updated.ID = c.customer.ID
	saved, err := c.provider.UpdateCustomer(ctx, updated)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("%s: %w", providers.Detail(err, "Error al actualizar usuario"), err)
	}

	c.customer = saved
	c.state = EditorIdle
	return saved, nil
}

// Customer returns the loaded client record.
func (c *UserController) Customer() (domain.Customer, bool) {
	return c.customer, c.loaded
}

// State returns the editor state.
func (c *UserController) State() EditorState { return c.state }
