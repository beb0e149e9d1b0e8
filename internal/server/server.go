package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ksk-aiko/ResumeWebsite/internal/site"
	"github.com/ksk-aiko/ResumeWebsite/internal/walker"
)

// Config holds server configuration.
type Config struct {
	Port      int
	PublicDir string        // directory holding pages, partials and assets
	AllowAll  bool          // allow all CORS origins
	Timeout   time.Duration // per-request timeout; zero disables it
}

// Server renders site pages on every request and serves the static files
// next to them.
type Server struct {
	cfg        Config
	renderer   *site.Renderer
	logger     *zap.Logger
	router     chi.Router
	files      http.Handler
	httpServer *http.Server
}

// New creates a new server.
func New(cfg Config, renderer *site.Renderer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:      cfg,
		renderer: renderer,
		logger:   logger,
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	if s.cfg.Timeout > 0 {
		r.Use(middleware.Timeout(s.cfg.Timeout))
	}

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Cache-Control", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/portfolio", s.handlePortfolio)

	s.files = staticFiles(s.cfg.PublicDir)
	r.Handle("/assets/*", s.files)
	r.Handle("/partials/*", s.files)

	r.Get("/*", s.handlePage)

	return r
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("resumesite server listening", zap.String("addr", addr), zap.String("public_dir", s.cfg.PublicDir))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// handlePortfolio returns the sorted portfolio items.
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	items, err := s.renderer.Portfolio().Load(r.Context())
	if err != nil {
		s.logger.Error("portfolio load failed", zap.Error(err))
		respondError(w, http.StatusBadGateway, "portfolio unavailable")
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
	respondJSON(w, http.StatusOK, items)
}

// handlePage renders the page for the request path, or serves the file
// directly when the path names something that is not a page.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	file, ok := resolvePage(s.cfg.PublicDir, r.URL.Path)
	if !ok {
		s.files.ServeHTTP(w, r)
		return
	}

	out, err := s.renderer.RenderFile(r.Context(), file, r.URL.Path)
	if err != nil {
		s.logger.Error("page render failed", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// resolvePage maps a URL path to a page file inside publicDir. "/" and
// directory paths resolve to index pages; extensionless paths try .html
// and .md siblings.
func resolvePage(publicDir, urlPath string) (string, bool) {
	rel := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if rel != "" && (!fs.ValidPath(rel) || walker.HiddenPath(rel)) {
		return "", false
	}

	var candidates []string
	switch {
	case rel == "" || strings.HasSuffix(urlPath, "/"):
		candidates = []string{path.Join(rel, "index.html"), path.Join(rel, "index.md")}
	case path.Ext(rel) == ".html" || path.Ext(rel) == ".htm":
		candidates = []string{rel, strings.TrimSuffix(rel, path.Ext(rel)) + ".md"}
	case path.Ext(rel) == ".md":
		candidates = []string{rel}
	case path.Ext(rel) == "":
		candidates = []string{
			rel + ".html",
			rel + ".md",
			path.Join(rel, "index.html"),
			path.Join(rel, "index.md"),
		}
	default:
		return "", false
	}

	for _, c := range candidates {
		p := filepath.Join(publicDir, filepath.FromSlash(c))
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}

// staticFiles serves regular files from dir with Cache-Control: no-cache.
// Unpublished paths and directories are not found, so serving exposes the
// same files a build copies.
func staticFiles(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rel := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if rel == "" || walker.HiddenPath(rel) {
			http.NotFound(w, r)
			return
		}
		info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
		if err != nil || !info.Mode().IsRegular() {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "no-cache")
		files.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request through zap.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info("request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())))
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
