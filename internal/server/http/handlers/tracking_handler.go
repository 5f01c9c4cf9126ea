package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TrackingHandler serves the merged lifecycle timelines.
type TrackingHandler struct {
	facade TrackingFacade
}

// NewTrackingHandler constructs TrackingHandler.
func NewTrackingHandler(facade TrackingFacade) *TrackingHandler {
	return &TrackingHandler{facade: facade}
}

// ByOrder handles GET /api/orders/:id/timeline.
func (h *TrackingHandler) ByOrder(c *gin.Context) {
	events, err := h.facade.OrderTimeline(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTimelineResponse(events))
}

// ByShipment handles GET /api/shipments/:id/timeline.
func (h *TrackingHandler) ByShipment(c *gin.Context) {
	events, err := h.facade.ShipmentTimeline(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTimelineResponse(events))
}
