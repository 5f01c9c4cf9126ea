package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/parcelo/logistics/internal/domain/errors"
	"github.com/parcelo/logistics/internal/domain/model"
	"github.com/parcelo/logistics/internal/server/http/dto"
)

// abortWithError maps domain sentinel errors onto HTTP status codes. Anything
// outside the taxonomy is a 500.
func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domainErrors.ErrInvalidTransition),
		errors.Is(err, domainErrors.ErrDuplicatePayment),
		errors.Is(err, domainErrors.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domainErrors.ErrPaymentDeclined):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	default:
		c.Status(http.StatusInternalServerError)
	}
}

func toAddress(p dto.AddressPayload) model.Address {
	return model.Address{Street: p.Street, City: p.City, State: p.State, Zip: p.Zip, Country: p.Country}
}

func toHistoryResponse(history []model.StatusChange) []dto.StatusChangeResponse {
	out := make([]dto.StatusChangeResponse, 0, len(history))
	for _, change := range history {
		out = append(out, dto.StatusChangeResponse{
			Status:  change.Status,
			At:      change.At,
			ActorID: change.ActorID,
			Reason:  change.Reason,
		})
	}
	return out
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:         order.ID,
		UserID:     order.UserID,
		Status:     string(order.Status),
		InvoiceID:  order.InvoiceID,
		PaymentID:  order.PaymentID,
		ShipmentID: order.ShipmentID,
		CreatedAt:  order.CreatedAt,
		History:    toHistoryResponse(order.History),
	}
}

func toInvoiceResponse(invoice *model.Invoice) dto.InvoiceResponse {
	items := make([]dto.LineItemResponse, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		items = append(items, dto.LineItemResponse{Description: item.Description, Amount: item.Amount})
	}
	return dto.InvoiceResponse{ID: invoice.ID, OrderID: invoice.OrderID, Items: items, Total: invoice.Total}
}

func toPaymentResponse(payment *model.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:        payment.ID,
		InvoiceID: payment.InvoiceID,
		Amount:    payment.Amount,
		Status:    string(payment.Status),
		At:        payment.At,
	}
}

func toShipmentResponse(shipment *model.Shipment) dto.ShipmentResponse {
	resp := dto.ShipmentResponse{
		ID:                shipment.ID,
		OrderID:           shipment.OrderID,
		Status:            string(shipment.Status),
		DeliveryPersonID:  shipment.DeliveryPersonID,
		VehicleID:         shipment.VehicleID,
		EstimatedDelivery: shipment.EstimatedDelivery,
		DeliveredAt:       shipment.DeliveredAt,
		CreatedAt:         shipment.CreatedAt,
		History:           toHistoryResponse(shipment.History),
	}
	if shipment.Incident != nil {
		resp.Incident = &dto.IncidentResponse{
			ID:          shipment.Incident.ID,
			Type:        string(shipment.Incident.Type),
			Description: shipment.Incident.Description,
			ReporterID:  shipment.Incident.ReporterID,
			At:          shipment.Incident.At,
		}
	}
	return resp
}

func toTimelineResponse(events []model.TrackingEvent) []dto.TimelineEventResponse {
	out := make([]dto.TimelineEventResponse, 0, len(events))
	for _, event := range events {
		out = append(out, dto.TimelineEventResponse{
			Key:         event.Key,
			Label:       event.Label,
			Color:       event.Color,
			Completed:   event.Completed,
			At:          event.At,
			Origin:      string(event.Origin),
			Description: event.Description,
		})
	}
	return out
}
