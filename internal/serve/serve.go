// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package serve re-exposes the market client over HTTP so other tooling can
// consume quotes without linking the library.
package serve

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"

	"github.com/staranto/smpctlgo/internal/market"
)

const (
	// DefaultPort is where the server listens unless told otherwise.
	DefaultPort = 8632

	readTimeout  = 10 * time.Second
	writeTimeout = 30 * time.Second
	idleTimeout  = 120 * time.Second
)

// PriceSource is the slice of the market client the server needs. Narrowed
// to an interface so handler tests can stub the upstream.
type PriceSource interface {
	ItemPrice(ctx context.Context, name string) (market.Quote, error)
	ItemPrices(ctx context.Context, names []string) map[string]market.Result
	AllPrices(ctx context.Context) ([]byte, error)
	LastAggregateFetch() time.Time
}

// Metrics tracks request counters for the health endpoint.
type Metrics struct {
	mu        sync.Mutex
	requests  int64
	errors    int64
	cacheHits int64
}

func (m *Metrics) record(cached bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests++
	if err != nil {
		m.errors++
	}
	if cached {
		m.cacheHits++
	}
}

// Stats is a point-in-time snapshot of the counters.
type Stats struct {
	Requests  int64 `json:"requests"`
	Errors    int64 `json:"errors"`
	CacheHits int64 `json:"cache_hits"`
}

// Snapshot returns the current counters.
func (m *Metrics) Snapshot() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{
		Requests:  m.requests,
		Errors:    m.errors,
		CacheHits: m.cacheHits,
	}
}

// Server exposes a PriceSource over HTTP.
type Server struct {
	source  PriceSource
	metrics *Metrics
	port    int
}

// New builds a Server around the given source. A zero port means
// DefaultPort.
func New(source PriceSource, port int) *Server {
	if port == 0 {
		port = DefaultPort
	}
	return &Server{
		source:  source,
		metrics: &Metrics{},
		port:    port,
	}
}

// Handler returns the route table. Split from ListenAndServe so tests can
// drive it with httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /price", s.handlePrice)
	mux.HandleFunc("GET /prices", s.handlePrices)
	mux.HandleFunc("GET /all", s.handleAll)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return mux
}

// ListenAndServe runs the server until the context is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on :%d", s.port)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		s.metrics.record(false, errors.New("missing name"))
		writeError(w, http.StatusBadRequest, "name query parameter is required")
		return
	}

	quote, err := s.source.ItemPrice(r.Context(), name)
	s.metrics.record(quote.Cached, err)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, quote)
}

func (s *Server) handlePrices(w http.ResponseWriter, r *http.Request) {
	spec := r.URL.Query().Get("names")
	if spec == "" {
		s.metrics.record(false, errors.New("missing names"))
		writeError(w, http.StatusBadRequest, "names query parameter is required")
		return
	}

	names := strings.Split(spec, ",")
	results := s.source.ItemPrices(r.Context(), names)

	type entry struct {
		market.Quote
		Error string `json:"error,omitempty"`
	}

	body := make(map[string]entry, len(results))
	var firstErr error
	cached := false
	for name, result := range results {
		e := entry{Quote: result.Quote}
		if result.Err != nil {
			e.Error = result.Err.Error()
			if firstErr == nil {
				firstErr = result.Err
			}
		}
		if result.Quote.Cached {
			cached = true
		}
		body[name] = e
	}
	s.metrics.record(cached, firstErr)

	// Per-item failures ride inside the map; the request itself is fine.
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleAll(w http.ResponseWriter, r *http.Request) {
	raw, err := s.source.AllPrices(r.Context())
	s.metrics.record(false, err)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(raw); err != nil {
		log.Errorf("failed to write response: %v", err)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	stats := s.metrics.Snapshot()

	lastFetch := "never"
	if t := s.source.LastAggregateFetch(); !t.IsZero() {
		lastFetch = t.Format(time.RFC3339)
	}

	response := fmt.Sprintf("ok - %d requests, %d errors, %d cache hits (last aggregate fetch: %s)\n",
		stats.Requests, stats.Errors, stats.CacheHits, lastFetch)

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(response)); err != nil {
		log.Errorf("failed to write health response: %v", err)
	}
}

// errorStatus maps client errors onto response codes: configuration problems
// are the caller's fault, upstream status codes pass through, everything
// else is a bad gateway.
func errorStatus(err error) int {
	if errors.Is(err, market.ErrConfiguration) {
		return http.StatusBadRequest
	}
	var statusErr *market.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code
	}
	return http.StatusBadGateway
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"error": message})
}
