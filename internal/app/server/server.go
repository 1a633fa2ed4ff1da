package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrdesk/internal/domain/audit"
	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/core"
	"hrdesk/internal/domain/leave"
	"hrdesk/internal/domain/notifications"
	"hrdesk/internal/domain/payroll"
	"hrdesk/internal/domain/reports"
	"hrdesk/internal/platform/config"
	"hrdesk/internal/platform/crypto"
	"hrdesk/internal/platform/db"
	"hrdesk/internal/platform/email"
	"hrdesk/internal/platform/metrics"
	"hrdesk/internal/platform/storage"
	"hrdesk/internal/transport/http/api"
	audithandler "hrdesk/internal/transport/http/handlers/audit"
	authhandler "hrdesk/internal/transport/http/handlers/auth"
	corehandler "hrdesk/internal/transport/http/handlers/core"
	leavehandler "hrdesk/internal/transport/http/handlers/leave"
	notificationshandler "hrdesk/internal/transport/http/handlers/notifications"
	payrollhandler "hrdesk/internal/transport/http/handlers/payroll"
	reportshandler "hrdesk/internal/transport/http/handlers/reports"
	"hrdesk/internal/transport/http/middleware"
	"hrdesk/migrations"
)

type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Router  http.Handler
	Metrics *metrics.Collector
}

// New connects to Postgres, prepares the schema and assembles the HTTP router.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, migrations.FS); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	router, collector, err := NewRouter(ctx, cfg, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return &App{Config: cfg, DB: pool, Router: router, Metrics: collector}, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

// NewRouter wires stores, services and handlers on an existing pool.
func NewRouter(ctx context.Context, cfg config.Config, pool *pgxpool.Pool) (http.Handler, *metrics.Collector, error) {
	grants := core.LeaveBalance{Casual: cfg.LeaveGrants.Casual, Sick: cfg.LeaveGrants.Sick, Paid: cfg.LeaveGrants.Paid}

	coreStore := core.NewStore(pool)
	coreSvc := core.NewService(coreStore, grants)

	notesStore := notifications.NewStore(pool)
	notifySvc := notifications.New(notesStore, email.New(cfg), cfg.EmailFrom)

	leaveSvc := leave.NewService(leave.NewStore(pool, coreStore, notesStore), grants, notifySvc)

	docs, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("payslip storage: %w", err)
	}
	box, err := crypto.New(cfg.DataEncryptionKey)
	if err != nil {
		return nil, nil, err
	}
	payrollSvc := payroll.NewService(payroll.NewStore(pool), docs, box, notifySvc)

	authSvc := auth.NewService(auth.NewStore(pool), cfg.JWTSecret, cfg.TokenTTL)
	auditSvc := audit.New(pool)
	collector := metrics.New()
	perms := auth.StaticPermissions{}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.IdempotencyHeader, "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-Total-Count", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.Auth(cfg.JWTSecret, authSvc))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, map[string]string{"status": "ok"}, middleware.GetRequestID(r.Context()))
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		reqID := middleware.GetRequestID(r.Context())
		pingCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			api.Fail(w, http.StatusServiceUnavailable, "not_ready", "database unavailable", reqID)
			return
		}
		api.Success(w, map[string]string{"status": "ready"}, reqID)
	})
	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authSvc, coreSvc, collector).RegisterRoutes(r)
		corehandler.NewHandler(coreSvc, perms, auditSvc, collector).RegisterRoutes(r)
		leavehandler.NewHandler(leaveSvc, perms, auditSvc, collector).RegisterRoutes(r)
		payrollhandler.NewHandler(payrollSvc, perms, middleware.NewIdempotencyStore(pool), auditSvc, collector).RegisterRoutes(r)
		reportshandler.NewHandler(reports.NewService(reports.NewStore(pool)), perms).RegisterRoutes(r)
		notificationshandler.NewHandler(notifySvc).RegisterRoutes(r)
		audithandler.NewHandler(auditSvc, perms).RegisterRoutes(r)
	})

	return router, collector, nil
}
