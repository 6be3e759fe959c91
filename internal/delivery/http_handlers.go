package delivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"storefront/internal/domain"
	"storefront/internal/usecase"
	"storefront/pkg/logger"

	"github.com/gin-gonic/gin"
)

// handles HTTP requests
type HTTPHandlers struct {
	dashboard *usecase.DashboardService
	checkout  *usecase.CheckoutService
	discounts *usecase.DiscountService
	catalog   *usecase.CatalogService
	customers *usecase.CustomerService
	logger    *logger.Logger
}

func NewHTTPHandlers(
	dashboard *usecase.DashboardService,
	checkout *usecase.CheckoutService,
	discounts *usecase.DiscountService,
	catalog *usecase.CatalogService,
	customers *usecase.CustomerService,
	logger *logger.Logger,
) *HTTPHandlers {
	return &HTTPHandlers{
		dashboard: dashboard,
		checkout:  checkout,
		discounts: discounts,
		catalog:   catalog,
		customers: customers,
		logger:    logger,
	}
}

// GetAPIInfo returns API v1 information and available endpoints
func (h *HTTPHandlers) GetAPIInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"api_version": "v1",
		"service":     "Storefront Service",
		"version":     "1.0.0",
		"description": "Discount pricing, checkout and sales analytics for a digital storefront",
		"endpoints": gin.H{
			"checkout": gin.H{
				"quote":    "GET /api/v1/products/:id/purchase?coupon=CODE",
				"purchase": "POST /api/v1/products/:id/purchase",
				"history":  "POST /api/v1/orders/history",
			},
			"dashboard": gin.H{
				"dashboard": "GET /api/v1/admin/dashboard?totalSalesRange=&newCustomersRange=&revenueByProductRange=",
				"ranges":    "GET /api/v1/admin/dashboard/ranges",
			},
			"discount_codes": gin.H{
				"list":   "GET /api/v1/admin/discount-codes",
				"create": "POST /api/v1/admin/discount-codes",
				"toggle": "PATCH /api/v1/admin/discount-codes/:id/active",
				"delete": "DELETE /api/v1/admin/discount-codes/:id",
			},
			"products": gin.H{
				"list":         "GET /api/v1/admin/products",
				"create":       "POST /api/v1/admin/products",
				"availability": "PATCH /api/v1/admin/products/:id/availability",
			},
			"orders": gin.H{
				"list":   "GET /api/v1/admin/orders",
				"delete": "DELETE /api/v1/admin/orders/:id",
			},
			"users": gin.H{
				"list":   "GET /api/v1/admin/users",
				"delete": "DELETE /api/v1/admin/users/:id",
			},
		},
		"request_id": c.GetString("request_id"),
	})
}

// HealthCheck returns the health status of the service
func (h *HTTPHandlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"service":    "storefront",
		"version":    "1.0.0",
		"request_id": c.GetString("request_id"),
	})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "Invalid input"
	case errors.Is(err, domain.ErrDuplicateCode),
		errors.Is(err, domain.ErrDiscountCodeInUse),
		errors.Is(err, domain.ErrDiscountCodeUnusable):
		return http.StatusConflict, "Conflict"
	case errors.Is(err, domain.ErrProductUnavailable):
		return http.StatusUnprocessableEntity, "Product unavailable"
	case errors.Is(err, domain.ErrMailerUnavailable):
		return http.StatusServiceUnavailable, "Mailer unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout, "Request timeout"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// respondError maps a service error onto its status code
func (h *HTTPHandlers) respondError(c *gin.Context, err error) {
	status, title := statusFor(err)

	body := gin.H{
		"error":      title,
		"request_id": c.GetString("request_id"),
	}
	if status == http.StatusInternalServerError {
		h.logger.WithContext(c.Request.Context()).WithError(err).WithField("path", c.FullPath()).Error("Request failed")
	} else {
		body["message"] = err.Error()
	}

	c.JSON(status, body)
}

// respondBindError reports a malformed request body
func (h *HTTPHandlers) respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":      "Invalid request body",
		"message":    err.Error(),
		"request_id": c.GetString("request_id"),
	})
}
