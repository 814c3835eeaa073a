package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// PartInput is the payload for creating or updating an inventory part.
type PartInput struct {
	PartName        string  `json:"part_name"`
	Price           float64 `json:"price"`
	QuantityInStock int     `json:"quantity_in_stock"`
}

func (c *Client) ListInventory(ctx context.Context, query url.Values) ([]InventoryPart, error) {
	path := "/inventory"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	var out []InventoryPart
	if err := c.Get(ctx, path, false, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPart(ctx context.Context, id int64) (*InventoryPart, error) {
	var out InventoryPart
	if err := c.Get(ctx, fmt.Sprintf("/inventory/%d", id), false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchInventory hits the backend's dedicated part-name search
// endpoint rather than filtering the plain listing.
func (c *Client) SearchInventory(ctx context.Context, partName string) ([]InventoryPart, error) {
	path := "/inventory/search?part_name=" + url.QueryEscape(partName)
	var out []InventoryPart
	if err := c.Get(ctx, path, true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) LowStock(ctx context.Context, threshold int) (*LowStockResponse, error) {
	path := "/inventory/low-stock"
	if threshold > 0 {
		path += "?threshold=" + strconv.Itoa(threshold)
	}
	var out LowStockResponse
	if err := c.Get(ctx, path, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePart(ctx context.Context, in PartInput) (*InventoryPart, error) {
	var out InventoryPart
	if err := c.Post(ctx, "/inventory", in, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePart(ctx context.Context, id int64, in PartInput) (*InventoryPart, error) {
	var out InventoryPart
	if err := c.Put(ctx, fmt.Sprintf("/inventory/%d", id), in, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePart(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/inventory/%d", id), true, nil)
}
