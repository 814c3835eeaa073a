package gateway

import (
	"context"
	"fmt"
	"net/url"
)

// CreateTicketInput is the payload for POST /service_tickets.
type CreateTicketInput struct {
	VIN         string `json:"VIN"`
	ServiceDate string `json:"service_date"`
	ServiceDesc string `json:"service_desc"`
	CustomerID  int64  `json:"customer_id"`
}

// EditMechanicsInput adds and removes mechanics from a ticket in bulk.
type EditMechanicsInput struct {
	AddIDs    []int64 `json:"add_ids"`
	RemoveIDs []int64 `json:"remove_ids"`
}

func (c *Client) ListTickets(ctx context.Context, query url.Values) ([]ServiceTicketBasic, error) {
	path := "/service_tickets"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	var out []ServiceTicketBasic
	if err := c.Get(ctx, path, false, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTicket(ctx context.Context, id int64) (*ServiceTicket, error) {
	var out ServiceTicket
	if err := c.Get(ctx, fmt.Sprintf("/service_tickets/%d", id), false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTicket(ctx context.Context, in CreateTicketInput) (*ServiceTicket, error) {
	var out ServiceTicket
	if err := c.Post(ctx, "/service_tickets", in, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTicket(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/service_tickets/%d", id), true, nil)
}

func (c *Client) AssignMechanic(ctx context.Context, ticketID, mechanicID int64) error {
	path := fmt.Sprintf("/service_tickets/%d/assign-mechanic/%d", ticketID, mechanicID)
	return c.Put(ctx, path, map[string]any{}, true, nil)
}

func (c *Client) RemoveMechanic(ctx context.Context, ticketID, mechanicID int64) error {
	path := fmt.Sprintf("/service_tickets/%d/remove-mechanic/%d", ticketID, mechanicID)
	return c.Put(ctx, path, map[string]any{}, true, nil)
}

func (c *Client) EditMechanics(ctx context.Context, ticketID int64, in EditMechanicsInput) error {
	path := fmt.Sprintf("/service_tickets/%d/edit-mechanics", ticketID)
	return c.Put(ctx, path, in, true, nil)
}

func (c *Client) AddTicketInventory(ctx context.Context, ticketID, inventoryID int64, quantity int) error {
	path := fmt.Sprintf("/service_tickets/%d/add-inventory", ticketID)
	body := map[string]any{"inventory_id": inventoryID, "quantity_used": quantity}
	return c.Post(ctx, path, body, true, nil)
}

// RemoveTicketInventory detaches one service-inventory line from a
// ticket. The id is the line's own id, not the part's.
func (c *Client) RemoveTicketInventory(ctx context.Context, ticketID, serviceInventoryID int64) error {
	path := fmt.Sprintf("/service_tickets/%d/remove-inventory/%d", ticketID, serviceInventoryID)
	return c.Put(ctx, path, map[string]any{}, true, nil)
}
