package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parcelo/logistics/internal/domain/model"
	"github.com/parcelo/logistics/internal/server/http/dto"
	"github.com/parcelo/logistics/internal/usecase"
)

// ShipmentHandler manages delivery endpoints.
type ShipmentHandler struct {
	facade ShipmentFacade
}

// NewShipmentHandler constructs ShipmentHandler.
func NewShipmentHandler(facade ShipmentFacade) *ShipmentHandler {
	return &ShipmentHandler{facade: facade}
}

// Get handles GET /api/shipments/:id.
func (h *ShipmentHandler) Get(c *gin.Context) {
	shipment, err := h.facade.Shipment(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toShipmentResponse(shipment))
}

// ChangeStatus handles POST /api/shipments/:id/status.
func (h *ShipmentHandler) ChangeStatus(c *gin.Context) {
	var req dto.ChangeShipmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	shipment, err := h.facade.ChangeShipmentStatus(c.Request.Context(), c.Param("id"),
		model.ShipmentStatus(req.Status), req.Reason, req.ActorID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toShipmentResponse(shipment))
}

// AssignCourier handles POST /api/shipments/:id/assign-courier.
func (h *ShipmentHandler) AssignCourier(c *gin.Context) {
	var req dto.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	shipment, err := h.facade.AssignDeliveryPerson(c.Request.Context(), c.Param("id"), req.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toShipmentResponse(shipment))
}

// AssignVehicle handles POST /api/shipments/:id/assign-vehicle.
func (h *ShipmentHandler) AssignVehicle(c *gin.Context) {
	var req dto.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	shipment, err := h.facade.AssignVehicle(c.Request.Context(), c.Param("id"), req.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toShipmentResponse(shipment))
}

// ReportIncident handles POST /api/shipments/:id/incidents.
func (h *ShipmentHandler) ReportIncident(c *gin.Context) {
	var req dto.ReportIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	shipment, err := h.facade.ReportIncident(c.Request.Context(), c.Param("id"), usecase.IncidentInput{
		Type:        model.IncidentType(req.Type),
		Description: req.Description,
		ReporterID:  req.ReporterID,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toShipmentResponse(shipment))
}
