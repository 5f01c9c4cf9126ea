package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/parcelo/logistics/internal/domain/model"
)

// PaymentFacade exposes the subset of application functionality required by the reaper.
type PaymentFacade interface {
	ListStalePending(ctx context.Context, limit int) ([]model.Payment, error)
	ExpirePending(ctx context.Context, paymentID string) error
}

// PaymentReaper periodically sweeps payments stuck in PENDING past the
// authorization timeout and marks them FAILED so the invoice can be paid again.
type PaymentReaper struct {
	facade       PaymentFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Payment
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPaymentReaper constructs the reaper worker pool.
func NewPaymentReaper(facade PaymentFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *PaymentReaper {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &PaymentReaper{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Payment, batchSize*workers),
	}
}

// Start launches background processing.
func (p *PaymentReaper) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *PaymentReaper) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *PaymentReaper) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *PaymentReaper) fetchAndDispatch(ctx context.Context) {
	payments, err := p.facade.ListStalePending(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch stale payments failed", slog.String("error", err.Error()))
		return
	}
	for _, payment := range payments {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- payment:
		}
	}
}

func (p *PaymentReaper) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case payment, ok := <-p.jobs:
			if !ok {
				return
			}
			p.expire(ctx, payment)
		}
	}
}

func (p *PaymentReaper) expire(ctx context.Context, payment model.Payment) {
	if err := p.facade.ExpirePending(ctx, payment.ID); err != nil {
		p.logger.Error("expire pending payment failed",
			slog.String("payment_id", payment.ID), slog.String("error", err.Error()))
		return
	}
	p.logger.Info("pending payment expired",
		slog.String("payment_id", payment.ID), slog.String("invoice_id", payment.InvoiceID))
}
