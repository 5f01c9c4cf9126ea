package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parcelo/logistics/internal/pricing"
	"github.com/parcelo/logistics/internal/server/http/dto"
	"github.com/parcelo/logistics/internal/usecase"
)

// OrderHandler manages order lifecycle endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, invoice, err := h.facade.CreateOrder(c.Request.Context(), usecase.CreateInput{
		UserID:      req.UserID,
		Origin:      toAddress(req.Origin),
		Destination: toAddress(req.Destination),
		Package: pricing.Input{
			WeightKg:   req.WeightKg,
			WidthCm:    req.WidthCm,
			HeightCm:   req.HeightCm,
			LengthCm:   req.LengthCm,
			DistanceKm: req.DistanceKm,
			Priority:   req.Priority,
			Services:   req.Services,
		},
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateOrderResponse{
		Order:   toOrderResponse(order),
		Invoice: toInvoiceResponse(invoice),
	})
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	orders, err := h.facade.Orders(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Approve handles POST /api/orders/:id/approve.
func (h *OrderHandler) Approve(c *gin.Context) {
	var req dto.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	order, err := h.facade.ApproveOrder(c.Request.Context(), c.Param("id"), req.ActorID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Reject handles POST /api/orders/:id/reject.
func (h *OrderHandler) Reject(c *gin.Context) {
	var req dto.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	order, err := h.facade.RejectOrder(c.Request.Context(), c.Param("id"), req.ActorID, req.Reason)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Cancel handles POST /api/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	var req dto.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	order, err := h.facade.CancelOrder(c.Request.Context(), c.Param("id"), req.ActorID, req.Reason)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}
