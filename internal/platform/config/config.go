// Package config builds process configuration from environment variables so
// main stays lean.
package config

import (
	"os"
	"strings"
)

// Config captures everything the server wires at startup.
type Config struct {
	Addr        string
	ProductName string

	// JWTSigningKey guards the action-execution surface.
	JWTSigningKey string

	// AuditStore selects the audit backend: memory, redis, or postgres.
	AuditStore  string
	RedisURL    string
	PostgresURL string

	// KafkaBrokers enables the audit fan-out sink when non-empty.
	KafkaBrokers []string
	KafkaTopic   string

	// Demo replays the reference household scenario at startup.
	Demo bool
}

// FromEnv reads GUARDIAN_* variables with development defaults.
func FromEnv() Config {
	cfg := Config{
		Addr:          envOr("GUARDIAN_ADDR", ":8080"),
		ProductName:   envOr("GUARDIAN_PRODUCT_NAME", "Ring Guardian Prototype"),
		JWTSigningKey: envOr("GUARDIAN_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		AuditStore:    envOr("GUARDIAN_AUDIT_STORE", "memory"),
		RedisURL:      os.Getenv("GUARDIAN_REDIS_URL"),
		PostgresURL:   os.Getenv("GUARDIAN_POSTGRES_URL"),
		KafkaTopic:    envOr("GUARDIAN_KAFKA_TOPIC", "guardian.audit"),
		Demo:          os.Getenv("GUARDIAN_DEMO") == "true",
	}
	if brokers := os.Getenv("GUARDIAN_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
