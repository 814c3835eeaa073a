package gateway

import (
	"context"
	"fmt"
	"net/url"
)

// CreateMechanicInput is the registration payload for POST /mechanics.
type CreateMechanicInput struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Salary      float64 `json:"salary"`
	Password    string  `json:"password"`
	FirebaseUID string  `json:"firebase_uid"`
}

func (c *Client) CreateMechanic(ctx context.Context, in CreateMechanicInput) (*CreateUserResponse, error) {
	var out CreateUserResponse
	if err := c.Post(ctx, "/mechanics", in, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) LoginMechanic(ctx context.Context, email, password string) (*MechanicLoginResponse, error) {
	var out MechanicLoginResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.Post(ctx, "/mechanics/login", body, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMechanics requires auth: the roster is only shown to signed-in
// mechanics.
func (c *Client) ListMechanics(ctx context.Context, query url.Values) ([]Mechanic, error) {
	path := "/mechanics"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	var out []Mechanic
	if err := c.Get(ctx, path, true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetMechanic(ctx context.Context, id int64) (*MechanicWithTickets, error) {
	var out MechanicWithTickets
	if err := c.Get(ctx, fmt.Sprintf("/mechanics/%d", id), true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TopMechanics(ctx context.Context) ([]Mechanic, error) {
	var out []Mechanic
	if err := c.Get(ctx, "/mechanics/top", false, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateMechanic(ctx context.Context, id int64, in ProfileUpdate) (*Mechanic, error) {
	var out Mechanic
	if err := c.Put(ctx, fmt.Sprintf("/mechanics/%d", id), in, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteMechanic(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/mechanics/%d", id), true, nil)
}
