package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/chadmarket/backoffice/internal/handler"
	"github.com/chadmarket/backoffice/internal/model"
	"github.com/chadmarket/backoffice/internal/server/middleware"
	"github.com/chadmarket/backoffice/internal/service"
	"github.com/chadmarket/backoffice/internal/store"
	"github.com/chadmarket/backoffice/internal/ui"
)

// Config holds the HTTP server configuration.
type Config struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	EnableUI        bool
	SecureCookies   bool
	LoginRateLimit  int // requests per minute per IP
}

// DefaultConfig returns a Config with sensible production defaults.
func DefaultConfig() Config {
	return Config{
		Host:            "0.0.0.0",
		Port:            8080,
		ShutdownTimeout: 30 * time.Second,
		CORSOrigins:     []string{"*"},
		EnableUI:        true,
		SecureCookies:   true,
		LoginRateLimit:  10,
	}
}

// Services bundles the workflow services the server exposes.
type Services struct {
	Auth          *service.Auth
	Verifications *service.Verifications
	Moderation    *service.Moderation
	Directory     *service.Directory
	Dashboard     *service.Dashboard
}

// Server is the top-level HTTP server for the back office. It owns the Chi
// router, the store handle used for readiness checks, and the workflow
// services.
type Server struct {
	cfg        Config
	router     chi.Router
	store      *store.Store
	svc        Services
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a new Server, wires up all routes and middleware, and returns
// it ready to listen. Call ListenAndServe to start accepting connections.
func New(cfg Config, st *store.Store, svc Services, logger *slog.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		store:  st,
		svc:    svc,
		logger: logger,
	}
	s.setupRouter()
	return s
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// --- Global middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(chimw.Compress(5))

	// --- Health checks (no auth required) ---
	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)

	// --- API routes ---
	sessionHandler := handler.NewSessionHandler(s.svc.Auth, s.cfg.SecureCookies)

	r.Route("/api/v1", func(r chi.Router) {
		// Login is unauthenticated and rate limited; logout only needs the
		// cookie it is about to clear.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(s.cfg.LoginRateLimit))
			r.Post("/session", sessionHandler.Login)
		})
		r.Delete("/session", sessionHandler.Logout)

		// Everything else requires a valid session; the moderation and
		// review sections are additionally gated per role.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(s.svc.Auth))

			r.Get("/session", sessionHandler.Current)
			r.Get("/meta", handler.NewMetaHandler().Meta)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSection(model.SectionDashboard))
				dashboardHandler := handler.NewDashboardHandler(s.svc.Dashboard)
				r.Get("/dashboard/stats", dashboardHandler.Stats)
				r.Get("/dashboard/charts", dashboardHandler.Charts)
				r.Get("/dashboard/export", handler.NewExportHandler(s.svc.Dashboard).Export)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSection(model.SectionUsers))
				usersHandler := handler.NewUsersHandler(s.svc.Directory)
				r.Get("/users", usersHandler.List)
				r.Post("/users/{accountID}/ban", usersHandler.Ban)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSection(model.SectionVerifications))
				verificationsHandler := handler.NewVerificationsHandler(s.svc.Verifications)
				r.Get("/verifications", verificationsHandler.List)
				r.Get("/verifications/{accountID}/document", verificationsHandler.Document)
				r.Post("/verifications/{accountID}/approve", verificationsHandler.Approve)
				r.Post("/verifications/{accountID}/reject", verificationsHandler.Reject)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSection(model.SectionReports))
				reportsHandler := handler.NewReportsHandler(s.svc.Moderation)
				r.Get("/reports", reportsHandler.List)
				r.Post("/reports/{reportID}/dismiss", reportsHandler.Dismiss)
				r.Post("/reports/{reportID}/resolve", reportsHandler.Resolve)
			})
		})
	})

	// --- Embedded admin UI ---
	if s.cfg.EnableUI {
		staticFS, err := fs.Sub(ui.Static, "static")
		if err != nil {
			s.logger.Error("ui filesystem unavailable", "error", err)
		} else {
			fileServer := http.FileServer(http.FS(staticFS))
			r.Handle("/assets/*", fileServer)
			r.Get("/favicon.svg", func(w http.ResponseWriter, r *http.Request) {
				fileServer.ServeHTTP(w, r)
			})

			serveShell := func(name string) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					f, err := staticFS.Open(name)
					if err != nil {
						http.Error(w, "UI not available", http.StatusNotFound)
						return
					}
					defer f.Close()
					stat, _ := f.Stat()
					w.Header().Set("Content-Type", "text/html; charset=utf-8")
					http.ServeContent(w, r, name, stat.ModTime(), f.(io.ReadSeeker))
				}
			}

			// Page routes carry the session redirect rules; deep links into
			// any section land on the app shell, which asks the API for the
			// navigation its role allows.
			app := serveShell("index.html")
			r.Group(func(r chi.Router) {
				r.Use(middleware.Guard)
				r.Get("/login", serveShell("login.html"))
				r.Get("/", app)
				r.Get("/users", app)
				r.Get("/verifications", app)
				r.Get("/reports", app)
			})
		}
	}

	s.router = r
}

// handleHealthz is a liveness probe. Returns 200 if the process is running.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// handleReadyz is a readiness probe. Returns 200 when the relational store
// is reachable, or 503 otherwise.
func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	httpStatus := http.StatusOK
	checks := make(map[string]string)

	if err := s.store.Ping(r.Context()); err != nil {
		checks["store"] = "error: " + err.Error()
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["store"] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": status,
		"checks": checks,
	})
}

// ListenAndServe starts the HTTP server and blocks until a SIGINT or SIGTERM
// is received. It then performs a graceful shutdown, draining in-flight
// requests before closing the store.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server listen: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.store.Close()
	s.logger.Info("server stopped")
	return nil
}

// Router returns the underlying Chi router, useful for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ServeHTTP implements http.Handler, delegating to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
