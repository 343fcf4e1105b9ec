package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"autoClaims/internal/api/handlers/http/admin"
	"autoClaims/internal/api/handlers/http/pages"
	"autoClaims/internal/api/handlers/http/public"
	"autoClaims/internal/api/handlers/http/system"
	"autoClaims/internal/config"
	"autoClaims/internal/middleware"
)

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

type Handlers struct {
	Admin  *admin.Handler
	Public *public.Handler
	Pages  *pages.Handler
	System *system.Handler
}

func NewServer(cfg *config.Config, logger *slog.Logger, h Handlers) *Server {
	return &Server{
		logger: logger,
		router: InitRouter(cfg, h, logger),
		cfg:    *cfg,
	}
}

func (s *Server) Handler() http.Handler { return s.router }

func InitRouter(cfg *config.Config, h Handlers, logger *slog.Logger) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)

	r.Get("/", h.Pages.Landing)
	r.Get("/claim-success", h.Pages.ClaimSuccess)

	r.Route("/api/v1", func(api chi.Router) {
		// ADMIN
		api.Route("/admin", func(ar chi.Router) {
			ar.Use(middleware.APIKeyMiddleware(cfg.APIKey))
			ar.Use(middleware.Limit(2, 5, 10*time.Minute, logger))

			ar.Get("/stats", h.Admin.AdminStats)
			ar.Get("/dashboard", h.Admin.Dashboard)

			ar.Route("/claims", func(cr chi.Router) {
				cr.Get("/", h.Admin.ClaimList)
				cr.Get("/export", h.Admin.ClaimExport)

				cr.Route("/{id}", func(rr chi.Router) {
					rr.Get("/", h.Admin.ClaimGet)
					rr.Post("/approve", h.Admin.ClaimApprove)
					rr.Post("/reject", h.Admin.ClaimReject)
				})
			})
		})

		// PUBLIC
		api.Group(func(pr chi.Router) {
			pr.Use(middleware.Limit(10, 20, 5*time.Minute, logger))

			pr.Get("/photos/instructions/{angle}", h.Public.PhotoInstructions)

			pr.Route("/claims", func(cr chi.Router) {
				cr.Get("/eligibility", h.Public.Eligibility)
				cr.Post("/sessions", h.Public.SessionCreate)

				cr.Route("/sessions/{id}", func(sr chi.Router) {
					sr.Get("/", h.Public.SessionGet)
					sr.Patch("/", h.Public.SessionUpdate)
					sr.Post("/next", h.Public.SessionNext)
					sr.Post("/back", h.Public.SessionBack)
					sr.Post("/submit", h.Public.SessionSubmit)
					sr.Post("/photos/{angle}", h.Public.PhotoCapture)
					sr.Delete("/photos/{angle}", h.Public.PhotoRetake)
				})
			})
		})

		// SYSTEM
		api.Get("/health", h.System.SystemHealth)
	})

	return r
}

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Http.ReadTimeout,
		WriteTimeout: s.cfg.Http.WriteTimeout,
		IdleTimeout:  30 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("Starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
			slog.Duration("write_timeout", s.cfg.Http.WriteTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
