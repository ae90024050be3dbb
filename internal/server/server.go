// Package server exposes the published documents over HTTP: the three JSON
// files under /api and the rendered HTML weekly report at the root.
package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"nephscope/internal/email"
	"nephscope/internal/logger"
	"nephscope/internal/store"
)

// Server serves the data directory documents.
type Server struct {
	addr string
	st   *store.Store
}

// New creates a dashboard server over the given store.
func New(addr string, st *store.Store) *Server {
	return &Server{addr: addr, st: st}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleHome)
	r.Get("/api/articles", s.serveDocument(s.st.ArticlesPath()))
	r.Get("/api/trends", s.serveDocument(s.st.TrendsPath()))
	r.Get("/api/summary", s.serveDocument(s.st.SummaryPath()))

	return r
}

// Start runs the server until the context is canceled.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("dashboard listening on %s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// serveDocument returns a handler streaming one published JSON document.
func (s *Server) serveDocument(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				writeError(w, http.StatusNotFound, "document not generated yet")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to read document")
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

// handleHome renders the weekly summary as the HTML report page.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	doc, err := s.st.LoadSummary()
	if err != nil {
		writeError(w, http.StatusNotFound, "weekly summary not generated yet")
		return
	}

	page, err := email.RenderHTML(doc)
	if err != nil {
		logger.Errorf(err, "failed to render report page")
		writeError(w, http.StatusInternalServerError, "failed to render report")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(page))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + msg + `"}`))
}
