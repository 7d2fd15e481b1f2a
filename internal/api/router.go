package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"time"

	"github.com/Harshitk-cp/cloudtail/internal/api/handlers"
	mw "github.com/Harshitk-cp/cloudtail/internal/api/middleware"
	"github.com/Harshitk-cp/cloudtail/internal/audit"
	"github.com/Harshitk-cp/cloudtail/internal/buildconfig"
	"github.com/Harshitk-cp/cloudtail/internal/classifier"
	"github.com/Harshitk-cp/cloudtail/internal/config"
	"github.com/Harshitk-cp/cloudtail/internal/domain"
	"github.com/Harshitk-cp/cloudtail/internal/engine"
	"github.com/Harshitk-cp/cloudtail/internal/service"
	"github.com/Harshitk-cp/cloudtail/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Deps are the collaborators the router is assembled from.
type Deps struct {
	Users      domain.UserStore
	Memories   domain.MemoryStore
	Classifier domain.EmotionClassifier
	Audit      domain.AuditSink
	// AuditReader is nil when the audit backend cannot be read back.
	AuditReader domain.AuditReader
	Engine      *engine.Engine
	// Ping backs /health. Nil reports healthy.
	Ping   func(ctx context.Context) error
	Logger *zap.Logger

	PlanetWindow   int
	RitualWindow   int
	Lookback       time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

// App holds the router and the resources that must be released on shutdown.
type App struct {
	Router    *chi.Mux
	metrics   *mw.MetricsCollector
	startTime time.Time
	cancel    context.CancelFunc
	closers   []io.Closer
}

// NewApp wires the postgres stores, the configured classifier and audit
// backend, and builds the router.
func NewApp(db *pgxpool.Pool, eng *engine.Engine, logger *zap.Logger) (*App, error) {
	ec, err := classifier.NewClient(config.ClassifierProvider(), config.ClassifierAPIKey(), config.ClassifierModel())
	if err != nil {
		// Memory creation still works without a classifier; recommend returns 503.
		logger.Warn("classifier initialization failed", zap.String("provider", config.ClassifierProvider()), zap.Error(err))
		ec = nil
	} else {
		logger.Info("classifier initialized", zap.String("provider", config.ClassifierProvider()))
	}

	sink, reader, closer, err := openAudit(config.AuditBackend(), db, logger)
	if err != nil {
		return nil, err
	}

	app, err := New(Deps{
		Users:          store.NewUserStore(db),
		Memories:       store.NewMemoryStore(db),
		Classifier:     ec,
		Audit:          sink,
		AuditReader:    reader,
		Engine:         eng,
		Ping:           db.Ping,
		Logger:         logger,
		PlanetWindow:   config.PlanetWindow(),
		RitualWindow:   config.RitualWindow(),
		Lookback:       config.HistoryLookback(),
		RateLimitRPS:   config.RateLimitRPS(),
		RateLimitBurst: config.RateLimitBurst(),
	})
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, err
	}
	if closer != nil {
		app.closers = append(app.closers, closer)
	}
	return app, nil
}

func openAudit(backend string, db *pgxpool.Pool, logger *zap.Logger) (domain.AuditSink, domain.AuditReader, io.Closer, error) {
	switch backend {
	case "postgres":
		s := store.NewAuditStore(db)
		return s, s, nil, nil
	case "sqlite":
		s, err := audit.NewSQLiteSink(config.AuditSQLitePath())
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open sqlite audit sink: %w", err)
		}
		logger.Info("sqlite audit sink opened", zap.String("path", config.AuditSQLitePath()))
		return s, s, s, nil
	case "log":
		return audit.NewLogSink(logger), nil, nil, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown audit backend %q (valid: postgres, sqlite, log)", backend)
	}
}

// New builds the router from explicit dependencies.
func New(d Deps) (*App, error) {
	if d.Engine == nil {
		return nil, errors.New("api: engine is required")
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.RateLimitRPS <= 0 {
		d.RateLimitRPS = 100
	}
	if d.RateLimitBurst <= 0 {
		d.RateLimitBurst = 20
	}

	planetAgg, err := d.Engine.Aggregator.WithWindow(d.PlanetWindow)
	if err != nil {
		return nil, fmt.Errorf("planet window: %w", err)
	}
	ritualAgg, err := d.Engine.Aggregator.WithWindow(d.RitualWindow)
	if err != nil {
		return nil, fmt.Errorf("ritual window: %w", err)
	}

	// Services
	userSvc := service.NewUserService(d.Users)
	memorySvc := service.NewMemoryService(d.Memories, d.Classifier, d.Engine.Canonicalizer, d.Audit, d.Logger)
	planetSvc := service.NewPlanetService(d.Memories, planetAgg, d.Lookback, d.Audit, d.Logger)
	ritualSvc := service.NewRitualService(d.Memories, d.Engine, ritualAgg, d.Audit, d.Logger)
	recommendSvc := service.NewRecommendService(d.Classifier, d.Engine.Canonicalizer, d.Logger)
	craftSvc := service.NewCraftingService(d.Engine.Canonicalizer)

	// Handlers
	userHandler := handlers.NewUserHandler(userSvc)
	memoryHandler := handlers.NewMemoryHandler(memorySvc)
	planetHandler := handlers.NewPlanetHandler(planetSvc)
	ritualHandler := handlers.NewRitualHandler(ritualSvc)
	recommendHandler := handlers.NewRecommendHandler(recommendSvc)
	craftHandler := handlers.NewCraftHandler(craftSvc)
	auditHandler := handlers.NewAuditHandler(d.AuditReader)

	ctx, cancel := context.WithCancel(context.Background())
	r := chi.NewRouter()
	app := &App{
		Router:    r,
		metrics:   mw.NewMetricsCollector(),
		startTime: time.Now(),
		cancel:    cancel,
	}

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(app.metrics.Middleware)
	r.Use(mw.Logging(d.Logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(ctx, d.RateLimitRPS, d.RateLimitBurst))

	// Unauthenticated
	r.Get("/health", healthHandler(d.Ping))
	r.Get("/metrics", app.metricsHandler())
	r.Get("/version", versionHandler)
	r.Post("/v1/users", userHandler.Create)

	r.Route("/v1", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(d.Users))

		r.Route("/memories", func(r chi.Router) {
			r.Post("/", memoryHandler.Create)
			r.Get("/", memoryHandler.List)
			r.Get("/{id}", memoryHandler.GetByID)
			r.Patch("/{id}", memoryHandler.Update)
			r.Delete("/{id}", memoryHandler.Delete)
		})

		r.Route("/planet", func(r chi.Router) {
			r.Get("/status", planetHandler.Status)
			r.Get("/preview", planetHandler.Preview)
			r.Get("/list", planetHandler.List)
		})

		r.Route("/rituals", func(r chi.Router) {
			r.Get("/", ritualHandler.List)
			r.Get("/perform", ritualHandler.Perform)
			r.Get("/recommend", ritualHandler.Recommend)
			r.Get("/{id}", ritualHandler.Get)
		})

		r.Post("/recommend", recommendHandler.Recommend)

		r.Route("/craft", func(r chi.Router) {
			r.Post("/", craftHandler.Craft)
			r.Get("/preview", craftHandler.Preview)
		})

		r.Get("/audit", auditHandler.List)
	})

	return app, nil
}

// Close stops background work and releases owned resources.
func (app *App) Close() error {
	app.cancel()
	var errs []error
	for _, c := range app.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

func healthHandler(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			if err := ping(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "error", "error": err.Error()})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func versionHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildconfig.Get())
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)
		snap := app.metrics.Snapshot()

		writeJSON(w, http.StatusOK, map[string]any{
			"uptime_seconds":     uptime.Seconds(),
			"uptime_human":       uptime.Round(time.Second).String(),
			"request_count":      snap.Requests,
			"client_error_count": snap.ClientErrors,
			"server_error_count": snap.ServerErrors,
			"goroutines":         runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb": float64(memStats.Alloc) / 1024 / 1024,
				"sys_mb":   float64(memStats.Sys) / 1024 / 1024,
				"num_gc":   memStats.NumGC,
			},
			"go_version": runtime.Version(),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Ensure stores and clients satisfy interfaces at compile time.
var (
	_ domain.UserStore         = (*store.UserStore)(nil)
	_ domain.MemoryStore       = (*store.MemoryStore)(nil)
	_ domain.AuditSink         = (*store.AuditStore)(nil)
	_ domain.AuditReader       = (*store.AuditStore)(nil)
	_ domain.AuditSink         = (*audit.SQLiteSink)(nil)
	_ domain.AuditReader       = (*audit.SQLiteSink)(nil)
	_ domain.AuditSink         = (*audit.LogSink)(nil)
	_ domain.EmotionClassifier = (*classifier.OpenAIClient)(nil)
	_ domain.EmotionClassifier = (*classifier.AnthropicClient)(nil)
	_ domain.EmotionClassifier = (*classifier.HuggingFaceClient)(nil)
	_ domain.EmotionClassifier = (*classifier.KeywordClassifier)(nil)
	_ domain.EmotionClassifier = (*classifier.MockClassifier)(nil)
)
