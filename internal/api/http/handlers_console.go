package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autoful/console-gateway/internal/gateway"
	"github.com/autoful/console-gateway/internal/session"
)

// ConsoleHandler proxies the console's CRUD screens to the backend
// through the gateway client. Failures here stay local to the request;
// they are never merged into the session store.
type ConsoleHandler struct {
	gw    *gateway.Client
	store *session.Store
}

func NewConsoleHandler(gw *gateway.Client, store *session.Store) *ConsoleHandler {
	return &ConsoleHandler{gw: gw, store: store}
}

// RegisterCustomerRoutes mounts the customer dashboard's endpoints;
// the group is expected to be guarded with the customer role.
func (h *ConsoleHandler) RegisterCustomerRoutes(r gin.IRouter) {
	r.GET("/my-tickets", h.MyTickets)
	r.DELETE("/account", h.DeleteOwnAccount)
}

// RegisterMechanicRoutes mounts the mechanic dashboard's endpoints;
// the group is expected to be guarded with the mechanic role.
func (h *ConsoleHandler) RegisterMechanicRoutes(r gin.IRouter) {
	r.GET("/customers", h.ListCustomers)
	r.GET("/customers/top", h.TopCustomers)
	r.GET("/customers/:id", h.GetCustomer)
	r.DELETE("/customers/:id", h.DeleteCustomer)

	r.GET("/mechanics", h.ListMechanics)
	r.GET("/mechanics/top", h.TopMechanics)
	r.GET("/mechanics/:id", h.GetMechanic)
	r.PUT("/mechanics/:id", h.UpdateMechanic)
	r.DELETE("/mechanics/:id", h.DeleteMechanic)

	r.GET("/tickets", h.ListTickets)
	r.GET("/tickets/:id", h.GetTicket)
	r.POST("/tickets", h.CreateTicket)
	r.DELETE("/tickets/:id", h.DeleteTicket)
	r.PUT("/tickets/:id/assign-mechanic/:mechanicId", h.AssignMechanic)
	r.PUT("/tickets/:id/remove-mechanic/:mechanicId", h.RemoveMechanic)
	r.PUT("/tickets/:id/edit-mechanics", h.EditMechanics)
	r.POST("/tickets/:id/add-inventory", h.AddTicketInventory)
	r.PUT("/tickets/:id/remove-inventory/:serviceInventoryId", h.RemoveTicketInventory)

	r.GET("/inventory", h.ListInventory)
	r.GET("/inventory/search", h.SearchInventory)
	r.GET("/inventory/low-stock", h.LowStock)
	r.GET("/inventory/:id", h.GetPart)
	r.POST("/inventory", h.CreatePart)
	r.PUT("/inventory/:id", h.UpdatePart)
	r.DELETE("/inventory/:id", h.DeletePart)
}

func (h *ConsoleHandler) MyTickets(c *gin.Context) {
	tickets, err := h.gw.MyTickets(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// DeleteOwnAccount removes the signed-in customer's backend record.
// The identity-provider account survives; the operator is expected to
// log out afterwards.
func (h *ConsoleHandler) DeleteOwnAccount(c *gin.Context) {
	user := h.store.Snapshot().User
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}
	if err := h.gw.DeleteCustomer(c.Request.Context(), user.BackendID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ConsoleHandler) ListCustomers(c *gin.Context) {
	customers, err := h.gw.ListCustomers(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *ConsoleHandler) TopCustomers(c *gin.Context) {
	customers, err := h.gw.TopCustomers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *ConsoleHandler) GetCustomer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	customer, err := h.gw.GetCustomer(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *ConsoleHandler) DeleteCustomer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.gw.DeleteCustomer(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ConsoleHandler) ListMechanics(c *gin.Context) {
	mechanics, err := h.gw.ListMechanics(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mechanics)
}

func (h *ConsoleHandler) TopMechanics(c *gin.Context) {
	mechanics, err := h.gw.TopMechanics(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mechanics)
}

func (h *ConsoleHandler) GetMechanic(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	mechanic, err := h.gw.GetMechanic(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mechanic)
}

func (h *ConsoleHandler) UpdateMechanic(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req gateway.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	mechanic, err := h.gw.UpdateMechanic(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mechanic)
}

func (h *ConsoleHandler) DeleteMechanic(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.gw.DeleteMechanic(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ConsoleHandler) ListTickets(c *gin.Context) {
	tickets, err := h.gw.ListTickets(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}

func (h *ConsoleHandler) GetTicket(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ticket, err := h.gw.GetTicket(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (h *ConsoleHandler) CreateTicket(c *gin.Context) {
	var req gateway.CreateTicketInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	ticket, err := h.gw.CreateTicket(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

func (h *ConsoleHandler) DeleteTicket(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.gw.DeleteTicket(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ConsoleHandler) AssignMechanic(c *gin.Context) {
	ticketID, ok := pathID(c, "id")
	if !ok {
		return
	}
	mechanicID, ok := pathID(c, "mechanicId")
	if !ok {
		return
	}
	if err := h.gw.AssignMechanic(c.Request.Context(), ticketID, mechanicID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ConsoleHandler) RemoveMechanic(c *gin.Context) {
	ticketID, ok := pathID(c, "id")
	if !ok {
		return
	}
	mechanicID, ok := pathID(c, "mechanicId")
	if !ok {
		return
	}
	if err := h.gw.RemoveMechanic(c.Request.Context(), ticketID, mechanicID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ConsoleHandler) EditMechanics(c *gin.Context) {
	ticketID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req gateway.EditMechanicsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if err := h.gw.EditMechanics(c.Request.Context(), ticketID, req); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ConsoleHandler) AddTicketInventory(c *gin.Context) {
	ticketID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req AddInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if err := h.gw.AddTicketInventory(c.Request.Context(), ticketID, req.InventoryID, req.QuantityUsed); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ConsoleHandler) RemoveTicketInventory(c *gin.Context) {
	ticketID, ok := pathID(c, "id")
	if !ok {
		return
	}
	lineID, ok := pathID(c, "serviceInventoryId")
	if !ok {
		return
	}
	if err := h.gw.RemoveTicketInventory(c.Request.Context(), ticketID, lineID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ConsoleHandler) SearchInventory(c *gin.Context) {
	partName := c.Query("part_name")
	if partName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "part_name is required"})
		return
	}
	parts, err := h.gw.SearchInventory(c.Request.Context(), partName)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, parts)
}

func (h *ConsoleHandler) ListInventory(c *gin.Context) {
	parts, err := h.gw.ListInventory(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, parts)
}

func (h *ConsoleHandler) LowStock(c *gin.Context) {
	threshold := 0
	if v := c.Query("threshold"); v != "" {
		if parsed, err := parseThreshold(v); err == nil {
			threshold = parsed
		}
	}
	resp, err := h.gw.LowStock(c.Request.Context(), threshold)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConsoleHandler) GetPart(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	part, err := h.gw.GetPart(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, part)
}

func (h *ConsoleHandler) CreatePart(c *gin.Context) {
	var req gateway.PartInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	part, err := h.gw.CreatePart(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, part)
}

func (h *ConsoleHandler) UpdatePart(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req gateway.PartInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	part, err := h.gw.UpdatePart(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, part)
}

func (h *ConsoleHandler) DeletePart(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.gw.DeletePart(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
