package donbalon

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"donbalon-gateway/internal/domain"
)

// CustomerByEmail looks up a client record by email.
func (c *Client) CustomerByEmail(ctx context.Context, email string) (domain.Customer, error) {
	var customer domain.Customer
	path := "/clientes/email/" + url.PathEscape(email)
	if err := c.getJSON(ctx, path, nil, &customer); err != nil {
		return domain.Customer{}, err
	}
	return customer, nil
}

// UpdateCustomer replaces the mutable profile fields of a client.
func (c *Client) UpdateCustomer(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	var updated domain.Customer
	path := fmt.Sprintf("/clientes/%d", customer.ID)
	if err := c.sendJSON(ctx, http.MethodPut, path, customer, &updated); err != nil {
		return domain.Customer{}, err
	}
	return updated, nil
}
