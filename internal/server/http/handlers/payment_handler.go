package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parcelo/logistics/internal/domain/model"
	"github.com/parcelo/logistics/internal/server/http/dto"
)

// PaymentHandler manages payment endpoints.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Pay handles POST /api/invoices/:id/payments.
func (h *PaymentHandler) Pay(c *gin.Context) {
	var req dto.PayInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	payment, err := h.facade.PayInvoice(c.Request.Context(), c.Param("id"), model.PaymentMethod{
		Type:      req.Type,
		Provider:  req.Provider,
		MaskedRef: req.MaskedRef,
	})
	if err != nil {
		// A declined attempt still returns the FAILED record alongside 402.
		if payment != nil {
			c.JSON(http.StatusPaymentRequired, toPaymentResponse(payment))
			return
		}
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPaymentResponse(payment))
}

// Refund handles POST /api/payments/:id/refund.
func (h *PaymentHandler) Refund(c *gin.Context) {
	payment, err := h.facade.RefundPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponse(payment))
}
