package config

import (
	"testing"
	"time"
)

func lookupFrom(values map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(nil, lookupFrom(map[string]string{
		"DATABASE_URI": "postgres://localhost/logistics",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.RunAddress != defaultRunAddress {
		t.Fatalf("unexpected run address %s", cfg.RunAddress)
	}
	if cfg.PaymentAuthTimeout != defaultPaymentAuthTimeout {
		t.Fatalf("unexpected payment timeout %s", cfg.PaymentAuthTimeout)
	}
	if cfg.Tariff.BaseCost != defaultBaseCost {
		t.Fatalf("unexpected base cost %d", cfg.Tariff.BaseCost)
	}
	if len(cfg.KafkaBrokers) != 0 {
		t.Fatalf("expected no brokers by default, got %v", cfg.KafkaBrokers)
	}
}

func TestLoadRequiresDatabaseURI(t *testing.T) {
	if _, err := load(nil, lookupFrom(nil)); err == nil {
		t.Fatal("expected error for missing database URI")
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	cfg, err := load(nil, lookupFrom(map[string]string{
		"DATABASE_URI":        "postgres://localhost/logistics",
		"KAFKA_BROKERS":       "broker-1:9092, broker-2:9092",
		"PAYMENT_AUTH_TIMEOUT": "3s",
		"TARIFF_BASE_COST":    "7000",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "broker-2:9092" {
		t.Fatalf("unexpected brokers %v", cfg.KafkaBrokers)
	}
	if cfg.PaymentAuthTimeout != 3*time.Second {
		t.Fatalf("unexpected payment timeout %s", cfg.PaymentAuthTimeout)
	}
	if cfg.Tariff.BaseCost != 7000 {
		t.Fatalf("unexpected base cost %d", cfg.Tariff.BaseCost)
	}
}

func TestLoadFlagOverrides(t *testing.T) {
	cfg, err := load([]string{"-a", ":9999", "-d", "postgres://db/logistics", "-payment-timeout", "2s"}, lookupFrom(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.RunAddress != ":9999" {
		t.Fatalf("unexpected run address %s", cfg.RunAddress)
	}
	if cfg.PaymentAuthTimeout != 2*time.Second {
		t.Fatalf("unexpected payment timeout %s", cfg.PaymentAuthTimeout)
	}
}

func TestLoadRejectsNegativeTariff(t *testing.T) {
	if _, err := load(nil, lookupFrom(map[string]string{
		"DATABASE_URI":     "postgres://localhost/logistics",
		"TARIFF_BASE_COST": "-1",
	})); err == nil {
		t.Fatal("expected error for negative tariff rate")
	}
}
