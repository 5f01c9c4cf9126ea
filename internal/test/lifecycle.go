package test

import (
	"sync/atomic"

	"go.uber.org/fx"
)

// LifecycleRecorder collects fx hooks so tests can invoke them directly.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append registers hook without scheduling it.
func (r *LifecycleRecorder) Append(hook fx.Hook) {
	r.Hooks = append(r.Hooks, hook)
}

// ShutdownerStub counts Shutdown invocations and signals on Called.
type ShutdownerStub struct {
	Called chan struct{}
	calls  int32
}

// Shutdown records the invocation and notifies any waiter.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	atomic.AddInt32(&s.calls, 1)
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}

// Calls reports how many times Shutdown ran.
func (s *ShutdownerStub) Calls() int {
	return int(atomic.LoadInt32(&s.calls))
}
