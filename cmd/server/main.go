package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"julee/internal/knowledge"
	"julee/internal/platform/config"
	"julee/internal/platform/httpserver"
	"julee/internal/platform/logger"
	"julee/internal/platform/postgres"
	platformredis "julee/internal/platform/redis"
	"julee/internal/validation/handler"
	"julee/internal/validation/metrics"
	"julee/internal/validation/passrule"
	"julee/internal/validation/ports"
	"julee/internal/validation/scorer"
	"julee/internal/validation/service"
	documentstore "julee/internal/validation/store/document"
	policystore "julee/internal/validation/store/policy"
	runlockstore "julee/internal/validation/store/runlock"
	validationstore "julee/internal/validation/store/validation"
	"julee/pkg/platform/audit"
	auditkafka "julee/pkg/platform/audit/publishers/kafka"
	auditmemory "julee/pkg/platform/audit/store/memory"
	auditpostgres "julee/pkg/platform/audit/store/postgres"
	auditworker "julee/pkg/platform/audit/worker"
)

// main wires dependencies from configuration: stores (memory or Postgres),
// the run lock (in-process or Redis), the audit sink (memory, Postgres, or
// Kafka), and the knowledge-service adapters (HTTP or in-process fakes).
// Business logic lives in internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	var (
		records   ports.ValidationStore
		policies  ports.PolicyStore
		documents ports.DocumentStore
	)

	memDocuments := documentstore.NewInMemory()
	documents = memDocuments

	var db *sql.DB
	if cfg.PostgresDSN != "" {
		var err error
		db, err = postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		records = validationstore.NewPostgres(db)
		policies = policystore.NewPostgres(db)
		log.Info("using postgres stores")
	} else {
		records = validationstore.NewInMemory()
		policies = policystore.NewInMemory()
		log.Info("using in-memory stores")
	}

	var locker ports.RunLocker
	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		locker, err = runlockstore.NewRedis(redisClient.Client)
		if err != nil {
			return err
		}
		log.Info("using redis run lock")
	} else {
		locker = runlockstore.NewInMemory()
	}

	publisher, closePublisher, err := buildAuditPublisher(ctx, cfg, db, log)
	if err != nil {
		return err
	}
	defer closePublisher()

	var (
		invoker  ports.QueryInvoker
		executor ports.TransformationExecutor
	)
	if cfg.KnowledgeBaseURL != "" {
		client, err := knowledge.New(cfg.KnowledgeBaseURL, knowledge.WithTimeout(cfg.ExternalCallTimeout))
		if err != nil {
			return err
		}
		invoker, executor = client, client
		log.Info("using knowledge service", "base_url", cfg.KnowledgeBaseURL)
	} else {
		static := knowledge.NewStatic(75, memDocuments)
		invoker, executor = static, static
		log.Warn("no knowledge service configured, using static scores")
	}

	sc, err := scorer.New(invoker,
		scorer.WithConcurrency(cfg.ScorerConcurrency),
		scorer.WithLogger(log),
	)
	if err != nil {
		return err
	}

	m := metrics.New()
	svc, err := service.New(records, policies, documents,
		sc, executor, passrule.NewPerQueryMinimum(),
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithLocker(locker),
		service.WithAuditPublisher(publisher),
	)
	if err != nil {
		return err
	}

	router := chi.NewRouter()
	handler.New(svc, log, 2*cfg.ExternalCallTimeout).Register(router)
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting validation engine", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("shutdown complete")
	return nil
}

// buildAuditPublisher picks the audit sink: Kafka when brokers are
// configured, Postgres-backed otherwise when a database is open, in-memory
// as the dev fallback. Store-backed sinks go through a drain worker so event
// persistence stays off the request path; the returned close function stops
// the worker after a final flush.
func buildAuditPublisher(ctx context.Context, cfg config.Config, db *sql.DB, log *slog.Logger) (ports.AuditPublisher, func(), error) {
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := auditkafka.New(ctx, cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return nil, nil, err
		}
		log.Info("audit events publishing to kafka", "topic", cfg.KafkaTopic)
		return kafkaPublisher, kafkaPublisher.Close, nil
	}

	var store audit.Store
	if db != nil {
		store = auditpostgres.New(db)
		log.Info("audit events persisting to postgres")
	} else {
		store = auditmemory.NewInMemoryStore()
	}

	w := auditworker.New(store, auditworker.WithLogger(log))
	workerCtx, stopWorker := context.WithCancel(context.Background())
	go func() {
		_ = w.Run(workerCtx)
	}()
	return w, func() {
		stopWorker()
		w.Wait()
	}, nil
}
