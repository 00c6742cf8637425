package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/custodia-labs/docwatch/internal/core/domain"
	"github.com/custodia-labs/docwatch/internal/core/ports/driving"
	"github.com/custodia-labs/docwatch/internal/logger"
)

// shutdownTimeout bounds graceful shutdown once the context is cancelled.
const shutdownTimeout = 5 * time.Second

// Server is the HTTP front end of the document store.
type Server struct {
	docs   driving.DocumentService
	search driving.SearchService
	feed   driving.ChangeFeed
	router chi.Router
}

// NewServer creates a server over the given services.
func NewServer(docs driving.DocumentService, search driving.SearchService, feed driving.ChangeFeed) *Server {
	s := &Server{
		docs:   docs,
		search: search,
		feed:   feed,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/site", s.handleSite)
		r.Get("/documents", s.handleDocuments)
		r.Get("/document/{id}", s.handleDocument)
		r.Get("/search", s.handleSearch)
		r.Get("/events", s.handleEvents)
	})

	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. ready, if non-nil, receives the bound address.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	if ready != nil {
		ready(ln.Addr())
	}
	logger.Info("serving on http://%s", ln.Addr())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleSite(w http.ResponseWriter, _ *http.Request) {
	info := s.docs.SiteInfo()
	writeJSON(w, http.StatusOK, SiteJSON{
		Title:       info.Title,
		Description: info.Description,
		Version:     info.Version,
	})
}

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.docs.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]DocumentJSON, 0, len(docs))
	for i := range docs {
		out = append(out, s.documentJSON(r.Context(), &docs[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	id := domain.DocumentID(chi.URLParam(r, "id"))

	doc, err := s.docs.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.documentJSON(r.Context(), doc))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	var opts domain.SearchOptions
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, fmt.Errorf("%w: limit %q", domain.ErrInvalidInput, raw))
			return
		}
		opts.Limit = limit
	}

	results, err := s.search.Search(r.Context(), query, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := SearchResponseJSON{
		Query:   query,
		Results: make([]SearchResultJSON, 0, len(results)),
	}
	for i := range results {
		resp.Results = append(resp.Results, SearchResultJSON{
			Document:  s.documentJSON(r.Context(), &results[i].Document),
			Score:     results[i].Score,
			MatchType: string(results[i].MatchType),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) documentJSON(ctx context.Context, doc *domain.Document) DocumentJSON {
	link, err := s.docs.SourceLink(ctx, doc.ID)
	if err != nil {
		link = ""
	}
	return NewDocumentJSON(doc, link)
}

// requestLogger logs each request at debug level.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger.Debug("%s %s %d %s", r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}
