package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"

	"github.com/parcelo/logistics/internal/domain/model"
)

// ErrDeclined indicates the provider refused the charge.
var ErrDeclined = errors.New("authorization declined")

// Client exposes the payment authorization round-trip.
type Client interface {
	Authorize(ctx context.Context, payment *model.Payment) error
}

// HTTPClient authorizes payments against an external provider API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// request mirrors the JSON payload sent to the provider.
type request struct {
	PaymentID string `json:"payment_id"`
	InvoiceID string `json:"invoice_id"`
	Amount    int64  `json:"amount"`
	Method    string `json:"method"`
	Provider  string `json:"provider"`
	MaskedRef string `json:"masked_ref"`
}

// response mirrors the JSON payload returned by the provider.
type response struct {
	Approved bool   `json:"approved"`
	Reason   string `json:"reason,omitempty"`
}

// NewHTTPClient creates a provider client. Timeouts are driven by the caller
// context: the payment manager bounds every authorization wait.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse provider url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("provider url must be absolute")
	}
	return &HTTPClient{
		baseURL:    parsed,
		logger:     logger,
		httpClient: &http.Client{},
	}, nil
}

// Authorize submits the payment for authorization.
func (c *HTTPClient) Authorize(ctx context.Context, payment *model.Payment) error {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/authorize")

	body, err := json.Marshal(request{
		PaymentID: payment.ID,
		InvoiceID: payment.InvoiceID,
		Amount:    payment.Amount,
		Method:    payment.Method.Type,
		Provider:  payment.Method.Provider,
		MaskedRef: payment.Method.MaskedRef,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		var data response
		if err := json.Unmarshal(raw, &data); err != nil {
			return err
		}
		if !data.Approved {
			return fmt.Errorf("%w: %s", ErrDeclined, data.Reason)
		}
		return nil
	case http.StatusPaymentRequired, http.StatusUnprocessableEntity:
		return ErrDeclined
	default:
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("provider request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
		return fmt.Errorf("provider error: %s", resp.Status)
	}
}
