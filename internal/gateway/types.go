package gateway

// Contracts for the backend's JSON shapes. These mirror what the
// backend actually serves; parsing into them at this boundary keeps
// shape drift from leaking further in.

type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type CustomerWithTickets struct {
	Customer
	ServiceTickets []ServiceTicketBasic `json:"service_tickets"`
}

type Mechanic struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Phone  string  `json:"phone"`
	Salary float64 `json:"salary"`
}

type MechanicWithTickets struct {
	Mechanic
	ServiceTickets []ServiceTicketBasic `json:"service_tickets"`
}

type ServiceTicketBasic struct {
	ID          int64  `json:"id"`
	VIN         string `json:"VIN"`
	ServiceDate string `json:"service_date"`
	ServiceDesc string `json:"service_desc"`
}

type ServiceTicket struct {
	ServiceTicketBasic
	CustomerID         int64              `json:"customer_id"`
	Customer           Customer           `json:"customer"`
	Mechanics          []Mechanic         `json:"mechanics"`
	ServiceInventories []ServiceInventory `json:"service_inventories"`
}

type InventoryPart struct {
	ID              int64   `json:"id"`
	PartName        string  `json:"part_name"`
	Price           float64 `json:"price"`
	QuantityInStock int     `json:"quantity_in_stock"`
}

type ServiceInventory struct {
	ID              int64         `json:"id"`
	ServiceTicketID int64         `json:"service_ticket_id"`
	InventoryID     int64         `json:"inventory_id"`
	QuantityUsed    int           `json:"quantity_used"`
	Inventory       InventoryPart `json:"inventory"`
}

// CreateUserResponse is what POST /customers and POST /mechanics return.
type CreateUserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CustomerLoginResponse is what POST /customers/login returns.
type CustomerLoginResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	AuthToken  string `json:"auth_token"`
	CustomerID int64  `json:"customer_id"`
	Name       string `json:"name"`
}

// MechanicLoginResponse is what POST /mechanics/login returns.
type MechanicLoginResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	AuthToken  string `json:"auth_token"`
	MechanicID int64  `json:"mechanic_id"`
	Name       string `json:"name"`
}

// LowStockResponse is what GET /inventory/low-stock returns.
type LowStockResponse struct {
	Threshold int             `json:"threshold"`
	Items     []InventoryPart `json:"items"`
}
