package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/parcelo/logistics/internal/pricing"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress             string
	DatabaseURI            string
	PaymentProviderAddress string
	PaymentAuthTimeout     time.Duration
	KafkaBrokers           []string
	NotificationTopic      string
	PaymentPollInterval    time.Duration
	WorkerPoolSize         int
	MaxPaymentsBatch       int
	ShutdownTimeout        time.Duration
	Tariff                 pricing.Tariff
}

const (
	defaultRunAddress          = ":8080"
	defaultPaymentAuthTimeout  = 15 * time.Second
	defaultNotificationTopic   = "logistics-notifications"
	defaultPaymentPollInterval = 5 * time.Second
	defaultWorkerPoolSize      = 4
	defaultMaxPaymentsBatch    = 32
	defaultShutdownTimeout     = 10 * time.Second

	defaultBaseCost          = 5000
	defaultPerKmRate         = 800
	defaultPerKgRate         = 1500
	defaultPerM3Rate         = 200000
	defaultPrioritySurcharge = 3000
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:             getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:            getString(lookup, "DATABASE_URI", ""),
		PaymentProviderAddress: getString(lookup, "PAYMENT_PROVIDER_ADDRESS", ""),
		PaymentAuthTimeout:     getDuration(lookup, "PAYMENT_AUTH_TIMEOUT", defaultPaymentAuthTimeout),
		NotificationTopic:      getString(lookup, "NOTIFICATION_TOPIC", defaultNotificationTopic),
		PaymentPollInterval:    getDuration(lookup, "PAYMENT_POLL_INTERVAL", defaultPaymentPollInterval),
		WorkerPoolSize:         getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		MaxPaymentsBatch:       getInt(lookup, "POLL_BATCH_SIZE", defaultMaxPaymentsBatch),
		ShutdownTimeout:        getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		Tariff: pricing.Tariff{
			BaseCost:          getInt64(lookup, "TARIFF_BASE_COST", defaultBaseCost),
			PerKmRate:         getInt64(lookup, "TARIFF_PER_KM_RATE", defaultPerKmRate),
			PerKgRate:         getInt64(lookup, "TARIFF_PER_KG_RATE", defaultPerKgRate),
			PerM3Rate:         getInt64(lookup, "TARIFF_PER_M3_RATE", defaultPerM3Rate),
			PrioritySurcharge: getInt64(lookup, "TARIFF_PRIORITY_SURCHARGE", defaultPrioritySurcharge),
		},
	}

	brokers := getString(lookup, "KAFKA_BROKERS", "")

	fs := flag.NewFlagSet("logistics", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		authTimeoutStr     = cfg.PaymentAuthTimeout.String()
		pollIntervalStr    = cfg.PaymentPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.PaymentProviderAddress, "p", cfg.PaymentProviderAddress, "Payment provider base URL (empty for simulated authorization)")
	fs.StringVar(&brokers, "kafka-brokers", brokers, "Comma-separated Kafka brokers for notifications (empty for log sink)")
	fs.StringVar(&cfg.NotificationTopic, "notification-topic", cfg.NotificationTopic, "Kafka topic for notification events")
	fs.StringVar(&authTimeoutStr, "payment-timeout", authTimeoutStr, "Bounded wait for payment authorization")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between stale payment sweeps")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent reaper workers")
	fs.IntVar(&cfg.MaxPaymentsBatch, "poll-batch", cfg.MaxPaymentsBatch, "Maximum payments per sweep batch")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.PaymentAuthTimeout, err = time.ParseDuration(authTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid payment timeout: %w", err)
	}

	if cfg.PaymentPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if brokers != "" {
		for _, broker := range strings.Split(brokers, ",") {
			if broker = strings.TrimSpace(broker); broker != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, broker)
			}
		}
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.MaxPaymentsBatch <= 0 {
		cfg.MaxPaymentsBatch = defaultMaxPaymentsBatch
	}

	if cfg.PaymentAuthTimeout <= 0 {
		cfg.PaymentAuthTimeout = defaultPaymentAuthTimeout
	}

	if cfg.PaymentPollInterval <= 0 {
		cfg.PaymentPollInterval = defaultPaymentPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.Tariff.BaseCost < 0 || cfg.Tariff.PerKmRate < 0 || cfg.Tariff.PerKgRate < 0 ||
		cfg.Tariff.PerM3Rate < 0 || cfg.Tariff.PrioritySurcharge < 0 {
		return nil, fmt.Errorf("tariff rates must not be negative")
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getInt64(lookup envLookup, key string, def int64) int64 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
