package model

import "time"

// LineItem is one priced entry of an invoice.
type LineItem struct {
	Description string
	Amount      int64
}

// Invoice is the immutable priced breakdown backing a payment.
// Amounts are in minor currency units.
type Invoice struct {
	ID        string
	OrderID   string
	Items     []LineItem
	Total     int64
	CreatedAt time.Time
}
