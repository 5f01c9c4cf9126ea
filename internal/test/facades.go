package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/parcelo/logistics/internal/domain/model"
)

// ReaperFacadeStub mimics worker interactions with the payment facade.
type ReaperFacadeStub struct {
	Batches       [][]model.Payment
	ListFn        func(context.Context, int) ([]model.Payment, error)
	ExpireFn      func(context.Context, string) error
	Expired       []string
	mu            sync.Mutex
	listCallCount int32
}

// Lock exposes the internal mutex for external synchronization.
func (s *ReaperFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases a previously acquired lock.
func (s *ReaperFacadeStub) Unlock() { s.mu.Unlock() }

// ListStalePending returns batches from the configured queue.
func (s *ReaperFacadeStub) ListStalePending(ctx context.Context, limit int) ([]model.Payment, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.listCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// ExpirePending records expiration requests.
func (s *ReaperFacadeStub) ExpirePending(ctx context.Context, paymentID string) error {
	if s.ExpireFn != nil {
		return s.ExpireFn(ctx, paymentID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Expired = append(s.Expired, paymentID)
	return nil
}
