package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autoful/console-gateway/internal/auth"
	"github.com/autoful/console-gateway/internal/session"
)

// AuthHandler exposes the auth lifecycle to the console.
type AuthHandler struct {
	svc   *auth.Service
	store *session.Store
}

func NewAuthHandler(svc *auth.Service, store *session.Store) *AuthHandler {
	return &AuthHandler{svc: svc, store: store}
}

// RegisterRoutes mounts the auth surface. credentialLimit guards only
// the credential-carrying endpoints; the session snapshot is polled by
// the console shell and must never compete with a login for the same
// bucket.
func (h *AuthHandler) RegisterRoutes(r gin.IRouter, credentialLimit gin.HandlerFunc) {
	grp := r.Group("/auth")

	creds := grp.Group("")
	if credentialLimit != nil {
		creds.Use(credentialLimit)
	}
	creds.POST("/register/customer", h.RegisterCustomer)
	creds.POST("/register/mechanic", h.RegisterMechanic)
	creds.POST("/login/customer", h.LoginCustomer)
	creds.POST("/login/mechanic", h.LoginMechanic)

	grp.POST("/logout", h.Logout)
	grp.PUT("/profile", h.UpdateProfile)
	grp.GET("/session", h.Session)
	grp.POST("/clear-error", h.ClearError)
}

func (h *AuthHandler) RegisterCustomer(c *gin.Context) {
	var req auth.RegisterCustomerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	user, err := h.svc.RegisterCustomer(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) RegisterMechanic(c *gin.Context) {
	var req auth.RegisterMechanicInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	user, err := h.svc.RegisterMechanic(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) LoginCustomer(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	user, err := h.svc.LoginCustomer(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) LoginMechanic(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	user, err := h.svc.LoginMechanic(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req auth.ProfileUpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	user, err := h.svc.UpdateProfile(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Session returns the current store snapshot; the console shell uses
// it to decide between the loading screen, login, and a dashboard.
func (h *AuthHandler) Session(c *gin.Context) {
	st := h.store.Snapshot()
	c.JSON(http.StatusOK, SessionResponse{
		User:        st.User,
		Loading:     st.Loading,
		Error:       st.Err,
		Initialized: st.Initialized,
	})
}

func (h *AuthHandler) ClearError(c *gin.Context) {
	h.store.ClearError()
	c.Status(http.StatusNoContent)
}
