// Package server provides the HTTP routing layer over the content
// repository: it decodes path, query and body into repository requests and
// serializes the resulting records.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/inkwell-blog/inkwell/internal/storage"
	"github.com/inkwell-blog/inkwell/pkg/types"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    *storage.Store
	router   *chi.Mux
	validate *validator.Validate
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(store *storage.Store, logger *slog.Logger) *Server {
	s := &Server{
		store:    store,
		router:   chi.NewRouter(),
		validate: validator.New(),
		logger:   logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
}

// setupRoutes configures all HTTP routes. Posts and pages expose the same
// surface, scoped to their kind.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/posts", s.contentRoutes(types.KindPost))
		r.Route("/pages", s.contentRoutes(types.KindPage))
	})
}

// contentRoutes wires the per-kind route set. Listing endpoints come in
// published and /all variants, each with a /meta form that drops the body.
func (s *Server) contentRoutes(kind types.Kind) func(chi.Router) {
	return func(r chi.Router) {
		r.Post("/", s.handleCreate)

		r.Get("/", s.handleList(kind, true, false))
		r.Get("/meta", s.handleList(kind, true, true))
		r.Get("/all", s.handleList(kind, false, false))
		r.Get("/all/meta", s.handleList(kind, false, true))

		r.Get("/tag/{tag}", s.handleListByTag(kind, true, false))
		r.Get("/tag/{tag}/meta", s.handleListByTag(kind, true, true))
		r.Get("/all/tag/{tag}", s.handleListByTag(kind, false, false))
		r.Get("/all/tag/{tag}/meta", s.handleListByTag(kind, false, true))

		r.Route("/uid/{uid}", func(r chi.Router) {
			r.Get("/", s.handleGet(kind))
			r.Put("/", s.handleUpdate(kind))
			r.Delete("/", s.handleDelete(kind))
		})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
