package delivery

import (
	"net/http"
	"time"

	"storefront/internal/domain"
	"storefront/internal/usecase"

	"github.com/gin-gonic/gin"
)

type createDiscountCodeRequest struct {
	Code           string     `json:"code" binding:"required"`
	DiscountAmount int        `json:"discount_amount" binding:"required,gt=0"`
	DiscountType   string     `json:"discount_type" binding:"required,oneof=PERCENTAGE FIXED"`
	AllProducts    bool       `json:"all_products"`
	ProductIDs     []string   `json:"product_ids"`
	Limit          *int       `json:"limit" binding:"omitempty,gte=1"`
	ExpiresAt      *time.Time `json:"expires_at"`
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type createProductRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	PriceInCents int64  `json:"price_in_cents" binding:"required,gte=1"`
}

type setAvailabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}

// Discount codes

func (h *HTTPHandlers) ListDiscountCodes(c *gin.Context) {
	listing, err := h.discounts.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (h *HTTPHandlers) CreateDiscountCode(c *gin.Context) {
	var req createDiscountCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	code, err := h.discounts.Create(c.Request.Context(), usecase.CreateDiscountCodeInput{
		Code:           req.Code,
		DiscountAmount: req.DiscountAmount,
		DiscountType:   domain.DiscountType(req.DiscountType),
		AllProducts:    req.AllProducts,
		ProductIDs:     req.ProductIDs,
		Limit:          req.Limit,
		ExpiresAt:      req.ExpiresAt,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, code)
}

func (h *HTTPHandlers) SetDiscountCodeActive(c *gin.Context) {
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	if err := h.discounts.SetActive(c.Request.Context(), c.Param("id"), *req.Active); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HTTPHandlers) DeleteDiscountCode(c *gin.Context) {
	if err := h.discounts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Products

func (h *HTTPHandlers) ListProducts(c *gin.Context) {
	products, err := h.catalog.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": products, "total": len(products)})
}

func (h *HTTPHandlers) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	product, err := h.catalog.Create(c.Request.Context(), usecase.CreateProductInput{
		Name:         req.Name,
		Description:  req.Description,
		PriceInCents: req.PriceInCents,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *HTTPHandlers) SetProductAvailability(c *gin.Context) {
	var req setAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	if err := h.catalog.SetAvailable(c.Request.Context(), c.Param("id"), *req.Available); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Orders and users

func (h *HTTPHandlers) ListOrders(c *gin.Context) {
	orders, err := h.customers.ListOrders(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": orders, "total": len(orders)})
}

func (h *HTTPHandlers) DeleteOrder(c *gin.Context) {
	if err := h.customers.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HTTPHandlers) ListUsers(c *gin.Context) {
	users, err := h.customers.ListUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users, "total": len(users)})
}

func (h *HTTPHandlers) DeleteUser(c *gin.Context) {
	if err := h.customers.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
