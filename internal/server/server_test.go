package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/tradeinsight/analytics/internal/registry"
	"github.com/tradeinsight/analytics/pkg/logger"
)

func testServer() *Server {
	s := &Server{
		router:  chi.NewRouter(),
		log:     logger.New(logger.Config{Level: "error"}),
		models:  registry.New(),
		started: time.Now(),
	}
	s.setupRoutes()
	return s
}

func TestHealthRoute(t *testing.T) {
	s := testServer()

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestUnknownRouteReturnsJSONError(t *testing.T) {
	s := testServer()

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"error":"route not found"`)
}

func TestWrongMethodReturnsJSONError(t *testing.T) {
	s := testServer()

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/health", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"method not allowed"`)
}
