package model

import "time"

// PaymentStatus describes the payment attempt lifecycle.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusApproved PaymentStatus = "APPROVED"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// PaymentMethod describes how a payment is charged without exposing the account.
type PaymentMethod struct {
	Type      string
	Provider  string
	MaskedRef string
}

// Payment records one payment attempt against an invoice.
type Payment struct {
	ID        string
	InvoiceID string
	Method    PaymentMethod
	Amount    int64
	Status    PaymentStatus
	At        time.Time
}
