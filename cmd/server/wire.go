package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"healthsphere/internal/admin"
	"healthsphere/internal/doctor/adapters"
	doctorhandler "healthsphere/internal/doctor/handler"
	doctormetrics "healthsphere/internal/doctor/metrics"
	doctorservice "healthsphere/internal/doctor/service"
	doctorstore "healthsphere/internal/doctor/store"
	flowshandler "healthsphere/internal/flows/handler"
	flowsmetrics "healthsphere/internal/flows/metrics"
	flowsservice "healthsphere/internal/flows/service"
	"healthsphere/internal/platform/config"
	"healthsphere/internal/platform/database"
	"healthsphere/internal/platform/health"
	"healthsphere/internal/platform/kafka"
	"healthsphere/internal/platform/kafka/producer"
	"healthsphere/internal/platform/llm"
	platformredis "healthsphere/internal/platform/redis"
	"healthsphere/internal/verification/assessment"
	verificationhandler "healthsphere/internal/verification/handler"
	verificationmetrics "healthsphere/internal/verification/metrics"
	"healthsphere/internal/verification/registry"
	"healthsphere/internal/verification/registry/cache"
	verificationservice "healthsphere/internal/verification/service"
	"healthsphere/internal/platform/tracer"
	"healthsphere/pkg/platform/audit"
	auditmetrics "healthsphere/pkg/platform/audit/metrics"
	"healthsphere/pkg/platform/audit/publisher"
	kafkasink "healthsphere/pkg/platform/audit/sink/kafka"
	auditmemory "healthsphere/pkg/platform/audit/store/memory"
	auditpostgres "healthsphere/pkg/platform/audit/store/postgres"
	adminmw "healthsphere/pkg/platform/middleware/admin"
	"healthsphere/pkg/platform/middleware/request"
	"healthsphere/pkg/platform/validation"
)

const (
	auditBufferSize    = 1024
	poolStatsInterval  = 15 * time.Second
	cachePurgeInterval = time.Minute
)

// application holds the router and everything that must be released on exit.
type application struct {
	router  http.Handler
	closers []func()
}

func (a *application) onClose(fn func()) {
	a.closers = append(a.closers, fn)
}

// Close releases resources in reverse order of acquisition.
func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// build constructs every client, store and service from cfg. Background
// workers stop when ctx is cancelled.
func build(ctx context.Context, cfg config.Server, log *slog.Logger) (_ *application, err error) {
	app := &application{}
	defer func() {
		if err != nil {
			app.Close()
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	checks := health.New(cfg.Environment)

	pool, err := database.New(ctx, databaseConfig(cfg.Database), reg)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	var db *sql.DB
	if pool != nil {
		db = pool.DB()
		checks.RegisterCheck("postgres", pool.Health)
		app.onClose(func() { _ = pool.Close() })
		log.Info("using postgres stores")
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	lookupCache, err := buildLookupCache(ctx, app, cfg, reg, checks, log)
	if err != nil {
		return nil, err
	}

	auditLogger, auditReader, err := buildAudit(app, cfg, db, reg, checks, log)
	if err != nil {
		return nil, err
	}

	vMetrics := verificationmetrics.New(reg)
	lookup, err := registry.New(registry.Options{
		Config:  cfg.Registry,
		Cache:   lookupCache,
		Metrics: vMetrics,
		Logger:  log,
	})
	if err != nil {
		return nil, fmt.Errorf("registry: %w", err)
	}
	if hc, ok := lookup.(registry.HealthChecker); ok && cfg.Registry.Mode == config.RegistryModeHTTP {
		checks.RegisterOptionalCheck("registry", hc.Health)
	}

	generator, err := buildGenerator(ctx, cfg, reg)
	if err != nil {
		return nil, err
	}
	var assessor assessment.Assessor = assessment.NewStatic()
	if cfg.Assessor.Mode == config.AssessorModeGemini {
		assessor = assessment.NewModel(generator)
	}

	verifications := verificationservice.New(lookup, assessor,
		verificationservice.WithMetrics(vMetrics),
		verificationservice.WithLogger(log),
		verificationservice.WithTracer(tracer.NewOTel()),
		verificationservice.WithAuditor(auditLogger),
		verificationservice.WithTimeout(cfg.Verification.Timeout),
	)

	var store doctorservice.Store = doctorstore.NewInMemory()
	if db != nil {
		store = doctorstore.NewPostgres(db)
	}
	doctors := doctorservice.New(store, adapters.NewVerificationAdapter(verifications),
		doctorservice.WithMetrics(doctormetrics.New(reg)),
		doctorservice.WithLogger(log),
		doctorservice.WithAuditor(auditLogger),
		doctorservice.WithThreshold(cfg.Verification.AcceptanceThreshold),
	)

	r := chi.NewRouter()
	r.Use(request.Recovery(log))
	r.Use(request.RequestID)
	r.Use(request.ClientIP(cfg.TrustProxy))
	r.Use(request.Logger(log))
	r.Use(request.LatencyMiddleware(request.NewMetrics(reg)))

	checks.Register(r)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	doctorHandler := doctorhandler.New(doctors, log)
	r.Group(func(r chi.Router) {
		r.Use(request.BodyLimit(validation.MaxBodySize))
		r.Use(request.ContentTypes("application/json", "multipart/form-data"))
		r.Use(request.Timeout(cfg.Verification.Timeout + 10*time.Second))

		verificationhandler.New(verifications, cfg.Verification.AcceptanceThreshold, log).Register(r)
		doctorHandler.Register(r)
		if generator != nil {
			flows := flowsservice.New(generator,
				flowsservice.WithMetrics(flowsmetrics.New(reg)),
				flowsservice.WithLogger(log),
				flowsservice.WithTimeout(cfg.Verification.Timeout),
				flowsservice.WithTracer(tracer.NewOTel()),
			)
			flowshandler.New(flows, log).Register(r)
		} else {
			log.Warn("GEMINI_API_KEY not set, assistant flows are disabled")
		}
	})

	r.Group(func(r chi.Router) {
		r.Use(adminmw.RequireAdminToken(cfg.AdminAPIToken, log, auditLogger))
		r.Use(request.ContentTypeJSON)
		doctorHandler.RegisterAdmin(r)
		admin.New(admin.NewService(auditReader, doctors), log).Register(r)
	})
	if cfg.AdminAPIToken == "" {
		log.Warn("ADMIN_API_TOKEN not set, admin routes deny every request")
	}

	app.router = r
	return app, nil
}

func databaseConfig(cfg config.DatabaseConfig) database.Config {
	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.URL
	dbCfg.SkipMigrations = cfg.SkipMigrations
	return dbCfg
}

// buildLookupCache prefers Redis so lookups are shared across replicas.
func buildLookupCache(ctx context.Context, app *application, cfg config.Server, reg prometheus.Registerer, checks *health.Handler, log *slog.Logger) (registry.Cache, error) {
	client, err := platformredis.New(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	if client != nil {
		checks.RegisterOptionalCheck("redis", client.Health)
		app.onClose(func() { _ = client.Close() })
		go client.RunPoolStatsRecorder(ctx, poolStatsInterval, platformredis.NewPoolMetrics(reg))
		log.Info("using redis registry cache")
		return cache.NewRedis(client.Client, cfg.Registry.CacheTTL), nil
	}

	mem := cache.NewMemory(cfg.Registry.CacheTTL)
	go func() {
		ticker := time.NewTicker(cachePurgeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				mem.Purge()
			}
		}
	}()
	return mem, nil
}

// buildAudit persists events to Postgres when available and mirrors them to
// Kafka when brokers are configured.
func buildAudit(app *application, cfg config.Server, db *sql.DB, reg prometheus.Registerer, checks *health.Handler, log *slog.Logger) (*audit.Logger, admin.AuditReader, error) {
	var store audit.Store = auditmemory.NewInMemoryStore()
	if db != nil {
		store = auditpostgres.New(db)
	}

	opts := []publisher.PublisherOption{
		publisher.WithAsyncBuffer(auditBufferSize),
		publisher.WithPublisherLogger(log),
		publisher.WithMetrics(auditmetrics.New(reg)),
	}
	if cfg.Audit.KafkaBrokers != "" {
		prod, err := producer.New(kafka.DefaultProducerConfig(cfg.Audit.KafkaBrokers), log)
		if err != nil {
			return nil, nil, fmt.Errorf("kafka producer: %w", err)
		}
		// Registered first so it closes after the publisher has drained.
		app.onClose(func() { _ = prod.Close() })
		checks.RegisterOptionalCheck("kafka", prod.Health)
		opts = append(opts, publisher.WithSink("kafka", kafkasink.New(prod, cfg.Audit.Topic)))
		log.Info("shipping audit events to kafka", "topic", cfg.Audit.Topic)
	}

	pub := publisher.NewPublisher(store, opts...)
	app.onClose(pub.Close)
	return audit.NewLogger(log, pub), pub, nil
}

// buildGenerator returns nil when no Gemini key is configured.
func buildGenerator(ctx context.Context, cfg config.Server, reg prometheus.Registerer) (llm.Generator, error) {
	if cfg.Assessor.APIKey == "" {
		return nil, nil
	}
	gen, err := llm.NewGemini(ctx, llm.Config{
		APIKey:     cfg.Assessor.APIKey,
		Model:      cfg.Assessor.Model,
		Registerer: reg,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return gen, nil
}
