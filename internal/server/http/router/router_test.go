package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/parcelo/logistics/internal/server/http/handlers"
	"github.com/parcelo/logistics/internal/server/http/handlertest"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	engine := Setup(handlertest.LogisticsFacadeStub{}, handlertest.PingerStub{}, logger)

	body, _ := json.Marshal(map[string]any{
		"user_id": "user-1",
		"origin":  map[string]string{"street": "1 Main St", "city": "Boston", "zip": "02101", "country": "US"},
		"destination": map[string]string{
			"street": "2 Oak Ave", "city": "New York", "zip": "10001", "country": "US",
		},
		"weight_kg": 2, "width_cm": 30, "height_cm": 20, "length_cm": 10, "distance_km": 15,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201 for order create, got %d", resp.Code)
	}

	routes := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/ping", "", http.StatusOK},
		{http.MethodGet, "/api/orders?user_id=user-1", "", http.StatusOK},
		{http.MethodGet, "/api/orders/order-1", "", http.StatusOK},
		{http.MethodPost, "/api/orders/order-1/approve", `{"actor_id":"admin-1"}`, http.StatusOK},
		{http.MethodPost, "/api/orders/order-1/reject", `{"actor_id":"admin-1","reason":"r"}`, http.StatusOK},
		{http.MethodPost, "/api/orders/order-1/cancel", `{"actor_id":"user-1","reason":"r"}`, http.StatusOK},
		{http.MethodGet, "/api/orders/order-1/timeline", "", http.StatusOK},
		{http.MethodPost, "/api/invoices/inv-1/payments", `{"type":"card","provider":"acme-pay"}`, http.StatusCreated},
		{http.MethodPost, "/api/payments/pay-1/refund", "", http.StatusOK},
		{http.MethodGet, "/api/shipments/ship-1", "", http.StatusOK},
		{http.MethodPost, "/api/shipments/ship-1/status", `{"status":"IN_TRANSIT","actor_id":"courier-1"}`, http.StatusOK},
		{http.MethodPost, "/api/shipments/ship-1/assign-courier", `{"id":"courier-1"}`, http.StatusOK},
		{http.MethodPost, "/api/shipments/ship-1/assign-vehicle", `{"id":"van-7"}`, http.StatusOK},
		{http.MethodPost, "/api/shipments/ship-1/incidents", `{"type":"DELAY","reporter_id":"courier-1"}`, http.StatusCreated},
		{http.MethodGet, "/api/shipments/ship-1/timeline", "", http.StatusOK},
	}

	for _, rt := range routes {
		var reader io.Reader
		if rt.body != "" {
			reader = bytes.NewReader([]byte(rt.body))
		}
		req := httptest.NewRequest(rt.method, rt.path, reader)
		if rt.body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		resp := httptest.NewRecorder()
		engine.ServeHTTP(resp, req)
		if resp.Code != rt.status {
			t.Fatalf("%s %s: expected status %d, got %d", rt.method, rt.path, rt.status, resp.Code)
		}
	}
}

var _ handlers.LogisticsFacade = (*handlertest.LogisticsFacadeStub)(nil)
