package notify

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/IBM/sarama/mocks"
	"go.uber.org/fx/fxtest"

	"github.com/parcelo/logistics/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestLogSinkNotify(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(slog.New(slog.NewJSONHandler(&buf, nil)))

	sink.Notify(context.Background(), "user-1", "Order approved", "Your order is on its way", "info")

	out := buf.String()
	for _, want := range []string{`"user_id":"user-1"`, `"title":"Order approved"`, `"severity":"info"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected log to contain %s, got %s", want, out)
		}
	}
}

func TestKafkaSinkNotify(t *testing.T) {
	producer := mocks.NewAsyncProducer(t, nil)
	producer.ExpectInputAndSucceed()

	sink := &KafkaSink{producer: producer, topic: "notifications", logger: discardLogger()}
	sink.Notify(context.Background(), "user-1", "Order approved", "Your order is on its way", "info")

	if err := sink.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestKafkaSinkDrainsPublishErrors(t *testing.T) {
	producer := mocks.NewAsyncProducer(t, nil)
	producer.ExpectInputAndFail(errors.New("broker down"))

	buf := &syncBuffer{}
	sink := &KafkaSink{producer: producer, topic: "notifications", logger: slog.New(slog.NewJSONHandler(buf, nil))}
	go sink.drainErrors()

	sink.Notify(context.Background(), "user-1", "Shipment returned", "A delivery incident was reported", "warning")

	if err := sink.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deadline := time.After(time.Second)
	for !strings.Contains(buf.String(), "notification publish failed") {
		select {
		case <-deadline:
			t.Fatalf("expected publish failure to be logged, got %s", buf.String())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestNewSinkSelection(t *testing.T) {
	lc := fxtest.NewLifecycle(t)

	sink, err := newSink(sinkParams{Lifecycle: lc, Config: &config.Config{}, Logger: discardLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := sink.(*LogSink); !ok {
		t.Fatalf("expected log sink, got %T", sink)
	}

	if _, err := newSink(sinkParams{
		Lifecycle: lc,
		Config:    &config.Config{KafkaBrokers: []string{"127.0.0.1:1"}, NotificationTopic: "notifications"},
		Logger:    discardLogger(),
	}); err == nil {
		t.Fatal("expected error for unreachable broker")
	}
}
