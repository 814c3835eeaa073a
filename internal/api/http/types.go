package http

import "github.com/autoful/console-gateway/internal/session"

// LoginRequest is the body for both login endpoints.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SessionResponse is the store snapshot the console shell polls.
type SessionResponse struct {
	User        *session.User `json:"user"`
	Loading     bool          `json:"loading"`
	Error       string        `json:"error,omitempty"`
	Initialized bool          `json:"initialized"`
}

// AddInventoryRequest attaches a part to a service ticket.
type AddInventoryRequest struct {
	InventoryID  int64 `json:"inventory_id" binding:"required"`
	QuantityUsed int   `json:"quantity_used" binding:"required,min=1"`
}
