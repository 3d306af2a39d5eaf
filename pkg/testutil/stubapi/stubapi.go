// Package stubapi is an in-process fake of the tender API for tests. Routes
// are chi patterns; every request is recorded for later assertions.
package stubapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Request is a recorded inbound request.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// DecodeBody unmarshals the recorded body into v.
func (r Request) DecodeBody(v any) error {
	return json.Unmarshal(r.Body, v)
}

type Server struct {
	*httptest.Server
	router chi.Router

	mu       sync.Mutex
	requests []Request
}

// New starts a server that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{router: chi.NewRouter()}
	s.router.Use(s.record)
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusNotFound, map[string]any{
			"success": false,
			"error":   "route not found: " + r.Method + " " + r.URL.Path,
			"code":    "NOT_FOUND",
		})
	})
	s.Server = httptest.NewServer(s.router)
	t.Cleanup(s.Close)
	return s
}

// Handle registers a handler. Register routes before issuing requests.
func (s *Server) Handle(method, pattern string, h http.HandlerFunc) {
	s.router.MethodFunc(method, pattern, h)
}

// JSON answers method+pattern with a fixed status and body.
func (s *Server) JSON(method, pattern string, status int, body any) {
	s.Handle(method, pattern, func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, status, body)
	})
}

// Success answers with a successful envelope around data.
func (s *Server) Success(method, pattern string, data any) {
	s.JSON(method, pattern, http.StatusOK, Success(data))
}

// Requests returns a copy of every recorded request.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// LastRequest returns the most recent request.
func (s *Server) LastRequest() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

// Success is the envelope of a successful response.
func Success(data any) map[string]any {
	return map[string]any{"success": true, "data": data}
}

// Failure is the envelope of a rejected request.
func Failure(message string) map[string]any {
	return map[string]any{"success": false, "error": message}
}

func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
