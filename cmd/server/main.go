// Command server wires the guardian core: household context, event bus,
// decision engine, action registry, and the audit pipeline, exposed over
// HTTP. Business logic lives in the internal packages.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"guardian/internal/action"
	"guardian/internal/action/builtin"
	"guardian/internal/adapter"
	"guardian/internal/audit"
	"guardian/internal/audit/publisher"
	auditmemory "guardian/internal/audit/store/memory"
	auditpostgres "guardian/internal/audit/store/postgres"
	auditredis "guardian/internal/audit/store/redis"
	"guardian/internal/decision"
	"guardian/internal/dispatch"
	"guardian/internal/event"
	"guardian/internal/guardian"
	"guardian/internal/household"
	"guardian/internal/jwttoken"
	"guardian/internal/learning"
	"guardian/internal/platform/config"
	"guardian/internal/platform/httpserver"
	"guardian/internal/platform/logger"
	"guardian/internal/platform/metrics"
	platformredis "guardian/internal/platform/redis"
	httptransport "guardian/internal/transport/http"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, cleanup, err := buildAuditStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	manifest := audit.Manifest{
		"product": cfg.ProductName,
		"scope":   "home",
		"version": "1.0.0",
	}

	var auditOpts []audit.Option
	var sink chan audit.Entry
	var kafka *publisher.Kafka
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err = publisher.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return err
		}
		defer kafka.Close()
		sink = make(chan audit.Entry, 256)
		auditOpts = append(auditOpts, audit.WithSink(sink))
	}

	auditor, err := audit.NewAuditor(cfg.ProductName, manifest, store, log, auditOpts...)
	if err != nil {
		return err
	}

	m := metrics.New()
	registry := action.NewRegistry()
	executor := action.NewExecutor(registry, auditor, m, log)
	for _, def := range builtin.All() {
		if _, err := executor.RegisterAction(ctx, def); err != nil {
			return err
		}
	}

	hh := household.Default()
	learn := learning.NewEngine()
	engine := decision.NewEngine(hh, learn, log)
	dispatcher := dispatch.NewConsole(hh, os.Stdout)
	svc := guardian.NewService(engine, learn, dispatcher, m, log)

	bus := event.NewBus()
	svc.Bind(bus)

	jwtService := jwttoken.NewService(cfg.JWTSigningKey, "guardian")
	handler := httptransport.NewHandler(svc, learn, hh, registry, executor, auditor, log)
	router := httptransport.NewRouter(handler, jwtService, log)
	srv := httpserver.New(cfg.Addr, router)

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("starting guardian", "addr", cfg.Addr, "audit_store", cfg.AuditStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if kafka != nil {
		worker := audit.NewWorker(kafka, sink, log)
		group.Go(func() error {
			err := worker.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	if cfg.Demo {
		runDemo(ctx, bus)
	}

	return group.Wait()
}

func buildAuditStore(ctx context.Context, cfg config.Config) (audit.Store, func(), error) {
	noop := func() {}
	switch cfg.AuditStore {
	case "redis":
		client, err := platformredis.New(ctx, cfg.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		return auditredis.New(client.Client), func() { _ = client.Close() }, nil
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, noop, err
		}
		store := auditpostgres.New(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return store, pool.Close, nil
	default:
		return auditmemory.New(), noop, nil
	}
}

// runDemo replays the reference scenario: a departure with an unlocked door
// and a hot oven, a school dismissal, a store detour with parent approval,
// and an overdue-then-arrived child.
func runDemo(ctx context.Context, bus *event.Bus) {
	ring := adapter.NewRing(bus)
	locks := adapter.NewLock(bus)
	appliances := adapter.NewAppliance(bus)
	family := adapter.NewFamily(bus)
	manual := adapter.NewManual(bus)

	ring.Motion(ctx, "front-cam")
	locks.Unlocked(ctx, "front-lock", "departure")
	appliances.On(ctx, "oven", "departure")
	family.SchoolDismissal(ctx, "child-1", time.Now(), "school->home")
	family.StoreDetour(ctx, "child-1")
	manual.Respond(ctx, "Yes", event.Correlation{Kind: "parent_detour_approval", ChildID: "child-1"})
	family.ArrivalOverdue(ctx, "child-1")
	family.ArrivedHome(ctx, "child-1")
	ring.Doorbell(ctx, "front-cam")
}
