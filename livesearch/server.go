package livesearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/milden6/trie"
)

// RequestIDHeader carries the ID assigned to each request.
const RequestIDHeader = "X-Request-ID"

const searchPath = "/livesearch"

// Options controls how queries are answered.
type Options struct {
	// DefaultLimit is used when a query has no limit parameter.
	DefaultLimit int
	// MaxLimit caps the limit a query may ask for.
	MaxLimit int
	// AllowMutations enables PUT and DELETE on /words/{word}.
	AllowMutations bool
	// Title heads the search page. Empty means "Word Autocomplete".
	Title string
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		DefaultLimit: trie.DefaultMaxResults,
		MaxLimit:     50,
	}
}

// Server is the HTTP query service in front of a Store.
type Server struct {
	store  *Store
	opts   Options
	log    zerolog.Logger
	server *http.Server
}

// NewServer creates a server listening on addr once started.
func NewServer(addr string, store *Store, opts Options, log zerolog.Logger) *Server {
	s := &Server{
		store: store,
		opts:  opts,
		log:   log,
	}

	r := mux.NewRouter()
	r.Use(s.requestID, s.logRequests)

	r.HandleFunc("/", s.index).Methods(http.MethodGet)
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.HandleFunc(searchPath, s.livesearch).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/words/{word}", s.getWord).Methods(http.MethodGet)
	if opts.AllowMutations {
		r.HandleFunc("/words/{word}", s.putWord).Methods(http.MethodPut)
		r.HandleFunc("/words/{word}", s.deleteWord).Methods(http.MethodDelete)
	}

	s.server = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler returns the HTTP handler for the server
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Addr returns the address the server is configured to listen on
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start serves requests until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting livesearch server")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down livesearch server")
	return s.server.Shutdown(ctx)
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.log.Debug().
			Str("request_id", w.Header().Get(RequestIDHeader)).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("Handled request")
	})
}

func (s *Server) respond(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, err error) {
	s.respond(w, status, map[string]string{"error": err.Error()})
}

// limit reads the limit parameter, falling back to the default and clamping
// to the maximum.
func (s *Server) limit(r *http.Request) (int, error) {
	raw := r.FormValue("limit")
	if raw == "" {
		return s.opts.DefaultLimit, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid limit %q", raw)
	}
	if n < 0 {
		return 0, trie.ErrNegativeLimit
	}
	if n > s.opts.MaxLimit {
		n = s.opts.MaxLimit
	}
	return n, nil
}

// livesearch handles GET|POST /livesearch?text=...&limit=...
func (s *Server) livesearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}

	limit, err := s.limit(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}

	if _, ok := r.Form["text"]; !ok {
		s.respond(w, http.StatusOK, []string{})
		return
	}

	text := r.FormValue("text")
	words, err := s.store.Complete(text, limit)
	switch {
	case errors.Is(err, trie.ErrNegativeLimit), errors.Is(err, trie.ErrInvalidWord):
		s.respondError(w, http.StatusBadRequest, err)
		return
	case err != nil:
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}

	s.log.Debug().Str("text", text).Strs("words", words).Msg("Livesearch")
	s.respond(w, http.StatusOK, words)
}

type wordResponse struct {
	Word  string `json:"word"`
	Found bool   `json:"found"`
}

func (s *Server) getWord(w http.ResponseWriter, r *http.Request) {
	word := mux.Vars(r)["word"]
	s.respond(w, http.StatusOK, wordResponse{
		Word:  s.store.Canonical(word),
		Found: s.store.Contains(word),
	})
}

func (s *Server) putWord(w http.ResponseWriter, r *http.Request) {
	word := mux.Vars(r)["word"]
	if !s.store.Add(word) {
		s.respondError(w, http.StatusBadRequest, trie.ErrInvalidWord)
		return
	}
	s.log.Info().Str("word", s.store.Canonical(word)).Msg("Word added")
	s.respond(w, http.StatusOK, wordResponse{Word: s.store.Canonical(word), Found: true})
}

func (s *Server) deleteWord(w http.ResponseWriter, r *http.Request) {
	word := mux.Vars(r)["word"]
	if !s.store.Remove(word) {
		s.respondError(w, http.StatusNotFound, fmt.Errorf("word %q not found", s.store.Canonical(word)))
		return
	}
	s.log.Info().Str("word", s.store.Canonical(word)).Msg("Word removed")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"words":  s.store.NumWords(),
	})
}
