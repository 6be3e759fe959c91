package delivery

import (
	"time"

	"storefront/internal/delivery/middleware"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type HTTPRouter struct {
	handlers *HTTPHandlers
	logger   *logger.Logger
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	timeout  time.Duration
}

func NewHTTPRouter(
	handlers *HTTPHandlers,
	logger *logger.Logger,
	metrics *metrics.Metrics,
	gatherer prometheus.Gatherer,
	timeout time.Duration,
) *HTTPRouter {
	return &HTTPRouter{
		handlers: handlers,
		logger:   logger,
		metrics:  metrics,
		gatherer: gatherer,
		timeout:  timeout,
	}
}

func (r *HTTPRouter) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.Recovery(r.logger))
	router.Use(middleware.Metrics(r.metrics))
	router.Use(middleware.Timeout(r.timeout))

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Content-Type", "X-Request-ID"}
	config.ExposeHeaders = []string{"X-Request-ID"}

	router.Use(cors.New(config))

	// Health endpoint
	router.GET("/health", r.handlers.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/", r.handlers.GetAPIInfo)
		v1.GET("", r.handlers.GetAPIInfo)

		// Storefront
		products := v1.Group("/products")
		{
			products.GET("/:id/purchase", r.handlers.GetPurchaseQuote)
			products.POST("/:id/purchase", r.handlers.Purchase)
		}
		v1.POST("/orders/history", r.handlers.SendOrderHistory)

		// Admin
		admin := v1.Group("/admin")
		{
			admin.GET("/dashboard", r.handlers.GetDashboard)
			admin.GET("/dashboard/ranges", r.handlers.GetDashboardRanges)

			codes := admin.Group("/discount-codes")
			{
				codes.GET("", r.handlers.ListDiscountCodes)
				codes.POST("", r.handlers.CreateDiscountCode)
				codes.PATCH("/:id/active", r.handlers.SetDiscountCodeActive)
				codes.DELETE("/:id", r.handlers.DeleteDiscountCode)
			}

			catalog := admin.Group("/products")
			{
				catalog.GET("", r.handlers.ListProducts)
				catalog.POST("", r.handlers.CreateProduct)
				catalog.PATCH("/:id/availability", r.handlers.SetProductAvailability)
			}

			admin.GET("/orders", r.handlers.ListOrders)
			admin.DELETE("/orders/:id", r.handlers.DeleteOrder)

			admin.GET("/users", r.handlers.ListUsers)
			admin.DELETE("/users/:id", r.handlers.DeleteUser)
		}
	}

	// Prometheus metrics endpoint
	router.GET("/metrics", middleware.PrometheusHandler(r.gatherer))

	return router
}
