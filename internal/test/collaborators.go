package test

import (
	"context"
	"sync"

	"github.com/parcelo/logistics/internal/domain/model"
)

// Notification captures one emitted notification.
type Notification struct {
	UserID   string
	Title    string
	Message  string
	Severity string
}

// NotifierStub records notifications for assertions.
type NotifierStub struct {
	mu            sync.Mutex
	Notifications []Notification
}

func (s *NotifierStub) Notify(ctx context.Context, userID, title, message, severity string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Notifications = append(s.Notifications, Notification{UserID: userID, Title: title, Message: message, Severity: severity})
}

// Sent returns a snapshot of recorded notifications.
func (s *NotifierStub) Sent() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Notification(nil), s.Notifications...)
}

// AuthorizerStub approves or declines according to its Err field.
type AuthorizerStub struct {
	mu    sync.Mutex
	Err   error
	Calls int
}

func (s *AuthorizerStub) Authorize(ctx context.Context, payment *model.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	return s.Err
}

// ObserverStub records payment-approved signals.
type ObserverStub struct {
	mu       sync.Mutex
	Approved [][2]string
}

func (s *ObserverStub) PaymentApproved(ctx context.Context, orderID, paymentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Approved = append(s.Approved, [2]string{orderID, paymentID})
}

// Count returns the number of recorded approvals.
func (s *ObserverStub) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Approved)
}
