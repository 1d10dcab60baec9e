package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures process-level configuration. Read once in main from the
// environment so the rest of the tree receives plain values.
type Config struct {
	Addr string

	// PostgresDSN selects the durable stores; empty means in-memory stores
	// (dev and test wiring).
	PostgresDSN string

	// RedisURL selects the distributed run lock; empty means the in-process
	// lock (single-instance deployments).
	RedisURL string

	// KafkaBrokers and KafkaTopic enable the Kafka audit publisher when set.
	KafkaBrokers []string
	KafkaTopic   string

	// KnowledgeBaseURL points at the knowledge-service REST API used for
	// query invocation and transformation. Empty means the in-memory fakes.
	KnowledgeBaseURL string

	// ScorerConcurrency caps parallel query invocations within one
	// validation stage.
	ScorerConcurrency int

	// ExternalCallTimeout bounds every knowledge-service call.
	ExternalCallTimeout time.Duration
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	cfg := Config{
		Addr:                envOr("JULEE_ADDR", ":8080"),
		PostgresDSN:         os.Getenv("JULEE_POSTGRES_DSN"),
		RedisURL:            os.Getenv("JULEE_REDIS_URL"),
		KafkaTopic:          envOr("JULEE_KAFKA_AUDIT_TOPIC", "julee.audit"),
		KnowledgeBaseURL:    os.Getenv("JULEE_KNOWLEDGE_URL"),
		ScorerConcurrency:   envIntOr("JULEE_SCORER_CONCURRENCY", 8),
		ExternalCallTimeout: envDurationOr("JULEE_EXTERNAL_CALL_TIMEOUT", 30*time.Second),
	}
	if brokers := os.Getenv("JULEE_KAFKA_BROKERS"); brokers != "" {
		for _, broker := range strings.Split(brokers, ",") {
			if trimmed := strings.TrimSpace(broker); trimmed != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, trimmed)
			}
		}
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}
