package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/parcelo/logistics/internal/server/http/handlers"
	"github.com/parcelo/logistics/internal/server/http/middleware"
)

// Setup configures the gin router with handlers and middleware.
func Setup(facade handlers.LogisticsFacade, pinger handlers.Pinger, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	orderHandler := handlers.NewOrderHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	shipmentHandler := handlers.NewShipmentHandler(facade)
	trackingHandler := handlers.NewTrackingHandler(facade)
	healthHandler := handlers.NewHealthHandler(pinger)

	engine.GET("/ping", healthHandler.Ping)

	api := engine.Group("/api")

	orders := api.Group("/orders")
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.POST("/:id/approve", orderHandler.Approve)
	orders.POST("/:id/reject", orderHandler.Reject)
	orders.POST("/:id/cancel", orderHandler.Cancel)
	orders.GET("/:id/timeline", trackingHandler.ByOrder)

	api.POST("/invoices/:id/payments", paymentHandler.Pay)
	api.POST("/payments/:id/refund", paymentHandler.Refund)

	shipments := api.Group("/shipments")
	shipments.GET("/:id", shipmentHandler.Get)
	shipments.POST("/:id/status", shipmentHandler.ChangeStatus)
	shipments.POST("/:id/assign-courier", shipmentHandler.AssignCourier)
	shipments.POST("/:id/assign-vehicle", shipmentHandler.AssignVehicle)
	shipments.POST("/:id/incidents", shipmentHandler.ReportIncident)
	shipments.GET("/:id/timeline", trackingHandler.ByShipment)

	return engine
}
