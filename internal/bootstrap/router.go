package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	httpapi "github.com/autoful/console-gateway/internal/api/http"
	"github.com/autoful/console-gateway/internal/api/http/middleware"
	"github.com/autoful/console-gateway/internal/auth"
	"github.com/autoful/console-gateway/internal/gateway"
	"github.com/autoful/console-gateway/internal/session"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	Redis          *redis.Client
	Store          *session.Store
	AuthService    *auth.Service
	Gateway        *gateway.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	credentialLimit := middleware.RateLimit(middleware.RateLimitConfig{RPS: rate.Limit(2), Burst: 5})
	authHandler := httpapi.NewAuthHandler(dep.AuthService, dep.Store)
	authHandler.RegisterRoutes(api, credentialLimit)

	consoleHandler := httpapi.NewConsoleHandler(dep.Gateway, dep.Store)

	customerGroup := api.Group("/customer-dashboard")
	customerGroup.Use(middleware.RequireRole(dep.Store, dep.AuthService, session.RoleCustomer))
	consoleHandler.RegisterCustomerRoutes(customerGroup)

	mechanicGroup := api.Group("/mechanic-dashboard")
	mechanicGroup.Use(middleware.RequireRole(dep.Store, dep.AuthService, session.RoleMechanic))
	consoleHandler.RegisterMechanicRoutes(mechanicGroup)

	return r
}
