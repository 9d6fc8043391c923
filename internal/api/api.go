// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/besco/backend-go/internal/api/handlers"
	"github.com/besco/backend-go/internal/api/middleware"
	"github.com/besco/backend-go/internal/service"
)

type Services struct {
	Auth      *service.AuthService
	Customers *service.CustomerService
	Materials *service.MaterialService
	Purchases *service.PurchaseService
	Orders    *service.OrderService
	Inventory *service.InventoryService
	Profit    *service.ProfitService
}

// NewRouter wires the HTTP surface. Profit reports and the health check are
// public; everything that mutates or reads operational data requires a bearer
// credential.
func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api")

	authHandler := handlers.NewAuthHandler(services.Auth)
	apiGroup.POST("/auth/login", authHandler.Login)

	analyticsHandler := handlers.NewAnalyticsHandler(services.Profit)
	profitGroup := apiGroup.Group("/analytics/profit")
	{
		profitGroup.GET("/summary", analyticsHandler.GetSummary)
		profitGroup.GET("/by-product", analyticsHandler.GetByProduct)
		profitGroup.GET("/by-customer", analyticsHandler.GetByCustomer)
		profitGroup.GET("/monthly", analyticsHandler.GetMonthly)
	}

	protected := apiGroup.Group("")
	protected.Use(middleware.RequireAuth(services.Auth))
	{
		protected.POST("/auth/api-key", authHandler.IssueAPIKey)

		customerHandler := handlers.NewCustomerHandler(services.Customers)
		protected.GET("/customers", customerHandler.List)
		protected.POST("/customers", customerHandler.Create)
		protected.DELETE("/customers/:name", customerHandler.Delete)

		materialHandler := handlers.NewMaterialHandler(services.Materials)
		protected.GET("/materials", materialHandler.List)
		protected.GET("/materials/:id", materialHandler.Get)
		protected.POST("/materials", materialHandler.Create)
		protected.PATCH("/materials/:id", materialHandler.Update)
		protected.GET("/materials/:id/components", materialHandler.Components)
		protected.PUT("/materials/:id/components", materialHandler.ReplaceComponents)

		purchaseHandler := handlers.NewPurchaseHandler(services.Purchases)
		protected.GET("/material-purchases", purchaseHandler.List)
		protected.POST("/material-purchases", purchaseHandler.Create)
		protected.DELETE("/material-purchases/:id", purchaseHandler.Delete)

		orderHandler := handlers.NewOrderHandler(services.Orders)
		protected.GET("/orders", orderHandler.List)
		protected.GET("/orders/:id", orderHandler.Get)
		protected.POST("/orders", orderHandler.Create)
		protected.DELETE("/orders/:id", orderHandler.Delete)

		inventoryHandler := handlers.NewInventoryHandler(services.Inventory)
		protected.GET("/inventory", inventoryHandler.List)
		protected.PATCH("/inventory/:id", inventoryHandler.SetQuantity)
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
