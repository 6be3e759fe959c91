package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type purchaseRequest struct {
	Email  string `json:"email" binding:"required,email"`
	Coupon string `json:"coupon"`
}

type orderHistoryRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *HTTPHandlers) GetPurchaseQuote(c *gin.Context) {
	quote, err := h.checkout.Quote(c.Request.Context(), c.Param("id"), c.Query("coupon"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

func (h *HTTPHandlers) Purchase(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	result, err := h.checkout.Purchase(c.Request.Context(), c.Param("id"), req.Email, req.Coupon)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// SendOrderHistory always answers 202 for a well-formed address
func (h *HTTPHandlers) SendOrderHistory(c *gin.Context) {
	var req orderHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	if err := h.customers.SendOrderHistory(c.Request.Context(), req.Email); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message":    "If that address has orders, their history is on its way",
		"request_id": c.GetString("request_id"),
	})
}
