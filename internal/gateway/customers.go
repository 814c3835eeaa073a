package gateway

import (
	"context"
	"fmt"
	"net/url"
)

// CreateCustomerInput is the registration payload for POST /customers.
// FirebaseUID ties the backend row to the identity-provider account.
type CreateCustomerInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Password    string `json:"password"`
	FirebaseUID string `json:"firebase_uid"`
}

// ProfileUpdate carries the editable profile fields; nil means leave
// unchanged.
type ProfileUpdate struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

func (c *Client) CreateCustomer(ctx context.Context, in CreateCustomerInput) (*CreateUserResponse, error) {
	var out CreateUserResponse
	if err := c.Post(ctx, "/customers", in, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) LoginCustomer(ctx context.Context, email, password string) (*CustomerLoginResponse, error) {
	var out CustomerLoginResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.Post(ctx, "/customers/login", body, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListCustomers(ctx context.Context, query url.Values) ([]Customer, error) {
	path := "/customers"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	var out []Customer
	if err := c.Get(ctx, path, false, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCustomer(ctx context.Context, id int64) (*CustomerWithTickets, error) {
	var out CustomerWithTickets
	if err := c.Get(ctx, fmt.Sprintf("/customers/%d", id), true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TopCustomers(ctx context.Context) ([]Customer, error) {
	var out []Customer
	if err := c.Get(ctx, "/customers/top", false, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyTickets returns the signed-in customer's own tickets; the backend
// resolves the customer from the bearer token.
func (c *Client) MyTickets(ctx context.Context) ([]ServiceTicketBasic, error) {
	var out []ServiceTicketBasic
	if err := c.Get(ctx, "/customers/my-tickets", true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateCustomer(ctx context.Context, id int64, in ProfileUpdate) (*Customer, error) {
	var out Customer
	if err := c.Put(ctx, fmt.Sprintf("/customers/%d", id), in, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCustomer(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/customers/%d", id), true, nil)
}
