package delivery

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/gin-gonic/gin"
)

// GetDashboard builds the admin dashboard. Each section takes its own range
// preset; unknown keys fall back to that section's default.
func (h *HTTPHandlers) GetDashboard(c *gin.Context) {
	ranges := usecase.DashboardRanges{
		TotalSales:       c.Query("totalSalesRange"),
		NewCustomers:     c.Query("newCustomersRange"),
		RevenueByProduct: c.Query("revenueByProductRange"),
	}

	dashboard, err := h.dashboard.GetDashboard(c.Request.Context(), ranges)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

func (h *HTTPHandlers) GetDashboardRanges(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": h.dashboard.RangePresets(),
		"defaults": gin.H{
			"totalSalesRange":       usecase.DefaultSalesRange.Key,
			"newCustomersRange":     usecase.DefaultCustomersRange.Key,
			"revenueByProductRange": usecase.DefaultRevenueByProductRange.Key,
		},
	})
}
