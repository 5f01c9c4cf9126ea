package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/parcelo/logistics/internal/domain/errors"
	"github.com/parcelo/logistics/internal/domain/model"
)

// OrderRepositoryStub keeps orders in memory with copy semantics close to a
// real store: values handed out are independent of the stored ones.
type OrderRepositoryStub struct {
	mu     sync.Mutex
	Orders map[string]*model.Order
	Err    error
}

// NewOrderRepositoryStub constructs an empty stub.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[string]*model.Order)}
}

func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, exists := s.Orders[order.ID]; exists {
		return domainErrors.ErrAlreadyExists
	}
	s.Orders[order.ID] = copyOrder(order)
	return nil
}

func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	order, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return copyOrder(order), nil
}

func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Order
	for _, order := range s.Orders {
		if order.UserID == userID {
			result = append(result, *copyOrder(order))
		}
	}
	return result, nil
}

func (s *OrderRepositoryStub) Update(ctx context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Orders[order.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	s.Orders[order.ID] = copyOrder(order)
	return nil
}

// ShipmentRepositoryStub keeps shipments in memory.
type ShipmentRepositoryStub struct {
	mu        sync.Mutex
	Shipments map[string]*model.Shipment
	Err       error
}

// NewShipmentRepositoryStub constructs an empty stub.
func NewShipmentRepositoryStub() *ShipmentRepositoryStub {
	return &ShipmentRepositoryStub{Shipments: make(map[string]*model.Shipment)}
}

func (s *ShipmentRepositoryStub) Create(ctx context.Context, shipment *model.Shipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, exists := s.Shipments[shipment.ID]; exists {
		return domainErrors.ErrAlreadyExists
	}
	s.Shipments[shipment.ID] = copyShipment(shipment)
	return nil
}

func (s *ShipmentRepositoryStub) GetByID(ctx context.Context, id string) (*model.Shipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	shipment, ok := s.Shipments[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return copyShipment(shipment), nil
}

func (s *ShipmentRepositoryStub) GetByOrderID(ctx context.Context, orderID string) (*model.Shipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, shipment := range s.Shipments {
		if shipment.OrderID == orderID {
			return copyShipment(shipment), nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *ShipmentRepositoryStub) Update(ctx context.Context, shipment *model.Shipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Shipments[shipment.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	s.Shipments[shipment.ID] = copyShipment(shipment)
	return nil
}

// InvoiceRepositoryStub keeps invoices in memory.
type InvoiceRepositoryStub struct {
	mu       sync.Mutex
	Invoices map[string]*model.Invoice
	Err      error
}

// NewInvoiceRepositoryStub constructs an empty stub.
func NewInvoiceRepositoryStub() *InvoiceRepositoryStub {
	return &InvoiceRepositoryStub{Invoices: make(map[string]*model.Invoice)}
}

func (s *InvoiceRepositoryStub) Create(ctx context.Context, invoice *model.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, exists := s.Invoices[invoice.ID]; exists {
		return domainErrors.ErrAlreadyExists
	}
	stored := *invoice
	stored.Items = append([]model.LineItem(nil), invoice.Items...)
	s.Invoices[invoice.ID] = &stored
	return nil
}

func (s *InvoiceRepositoryStub) GetByID(ctx context.Context, id string) (*model.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	invoice, ok := s.Invoices[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := *invoice
	out.Items = append([]model.LineItem(nil), invoice.Items...)
	return &out, nil
}

// PaymentRepositoryStub keeps payments in memory.
type PaymentRepositoryStub struct {
	mu       sync.Mutex
	Payments map[string]*model.Payment
	Err      error
}

// NewPaymentRepositoryStub constructs an empty stub.
func NewPaymentRepositoryStub() *PaymentRepositoryStub {
	return &PaymentRepositoryStub{Payments: make(map[string]*model.Payment)}
}

func (s *PaymentRepositoryStub) Create(ctx context.Context, payment *model.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, exists := s.Payments[payment.ID]; exists {
		return domainErrors.ErrAlreadyExists
	}
	stored := *payment
	s.Payments[payment.ID] = &stored
	return nil
}

func (s *PaymentRepositoryStub) GetByID(ctx context.Context, id string) (*model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	payment, ok := s.Payments[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := *payment
	return &out, nil
}

func (s *PaymentRepositoryStub) GetApprovedByInvoice(ctx context.Context, invoiceID string) (*model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, payment := range s.Payments {
		if payment.InvoiceID == invoiceID && payment.Status == model.PaymentStatusApproved {
			out := *payment
			return &out, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *PaymentRepositoryStub) UpdateStatus(ctx context.Context, paymentID string, status model.PaymentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	payment, ok := s.Payments[paymentID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	payment.Status = status
	return nil
}

func (s *PaymentRepositoryStub) ListPendingOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Payment
	for _, payment := range s.Payments {
		if payment.Status == model.PaymentStatusPending && payment.At.Before(cutoff) {
			result = append(result, *payment)
			if len(result) == limit {
				break
			}
		}
	}
	return result, nil
}

func copyOrder(order *model.Order) *model.Order {
	out := *order
	out.History = model.CloneHistory(order.History)
	return &out
}

func copyShipment(shipment *model.Shipment) *model.Shipment {
	out := *shipment
	out.History = model.CloneHistory(shipment.History)
	if shipment.Incident != nil {
		incident := *shipment.Incident
		out.Incident = &incident
	}
	return &out
}
