package server

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"leavehub/internal/domain/audit"
	"leavehub/internal/domain/auth"
	"leavehub/internal/domain/directory"
	"leavehub/internal/domain/leave"
	"leavehub/internal/domain/reports"
	"leavehub/internal/platform/config"
	"leavehub/internal/platform/db"
	"leavehub/internal/platform/metrics"
	authhandler "leavehub/internal/transport/http/handlers/auth"
	employeeshandler "leavehub/internal/transport/http/handlers/employees"
	leavehandler "leavehub/internal/transport/http/handlers/leave"
	reportshandler "leavehub/internal/transport/http/handlers/reports"
	"leavehub/internal/transport/http/middleware"
)

type App struct {
	Config    config.Config
	Logger    zerolog.Logger
	Pool      *pgxpool.Pool
	Router    http.Handler
	Collector *metrics.Collector
}

// New connects the pool, runs migrations and seed when configured, and
// assembles the router. The caller owns the pool and closes it on shutdown.
func New(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, err
		}
	}

	app := &App{
		Config:    cfg,
		Logger:    logger,
		Pool:      pool,
		Collector: metrics.New(),
	}
	app.Router = app.buildRouter()
	return app, nil
}

func (a *App) buildRouter() http.Handler {
	directoryStore := directory.NewStore(a.Pool)
	leaveStore := leave.NewStore(a.Pool)
	leaveService := leave.NewService(leaveStore, directoryStore)
	authStore := auth.NewStore(a.Pool)
	authService := auth.NewService(authStore, directoryStore, a.Config.JWTSecret)
	reportsService := reports.NewService(directoryStore, leaveService)
	auditService := audit.New(a.Pool)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(a.Logger, a.Collector))
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.SecureHeaders(a.Config.Environment == "production"))
	router.Use(middleware.BodyLimit(a.Config.MaxBodyBytes))
	router.Use(middleware.Auth(a.Config.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.Pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authService).RegisterRoutes(r)
		employeeshandler.NewHandler(directoryStore, auditService).RegisterRoutes(r)
		leavehandler.NewHandler(leaveService, auditService).RegisterRoutes(r)
		reportshandler.NewHandler(reportsService, auditService, a.Collector).RegisterRoutes(r)
	})

	router.Mount("/", spaHandler{staticPath: a.Config.FrontendDir, indexPath: "index.html"})
	return router
}

// Run blocks serving HTTP until the listener fails.
func (a *App) Run() error {
	a.Logger.Info().Str("addr", a.Config.Addr).Msg("server listening")
	server := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return server.ListenAndServe()
}

// spaHandler serves the built frontend, falling back to index.html so
// client-side routes resolve on refresh.
type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
