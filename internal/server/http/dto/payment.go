package dto

import "time"

// PayInvoiceRequest submits a payment attempt for an invoice.
type PayInvoiceRequest struct {
	Type      string `json:"type"`
	Provider  string `json:"provider"`
	MaskedRef string `json:"masked_ref,omitempty"`
}

// PaymentResponse represents one payment attempt.
type PaymentResponse struct {
	ID        string    `json:"id"`
	InvoiceID string    `json:"invoice_id"`
	Amount    int64     `json:"amount"`
	Status    string    `json:"status"`
	At        time.Time `json:"at"`
}
