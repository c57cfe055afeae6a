package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/innovators-hub-api/internal/service"
)

func TestMetricsHandlerReady(t *testing.T) {
	handler := NewMetricsHandler(nil, map[string]Pinger{
		"database": PingFunc(func(context.Context) error { return nil }),
	})

	rec := httptest.NewRecorder()
	c := newTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)
	handler.Ready(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready","checks":{"database":"ok"}}`, rec.Body.String())

	handler = NewMetricsHandler(nil, map[string]Pinger{
		"database": PingFunc(func(context.Context) error { return nil }),
		"cache":    PingFunc(func(context.Context) error { return errors.New("connection refused") }),
	})
	rec = httptest.NewRecorder()
	c = newTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)
	handler.Ready(c)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
}

func TestMetricsHandlerPrometheus(t *testing.T) {
	metrics := service.NewMetricsService()
	metrics.ObserveHTTPRequest(http.MethodGet, "/gallery", http.StatusOK, 5*time.Millisecond)
	handler := NewMetricsHandler(metrics, nil)

	rec := httptest.NewRecorder()
	c := newTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	handler.Prometheus(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `showcase_http_requests_total{method="GET",path="/gallery",status="200"} 1`))

	rec = httptest.NewRecorder()
	c = newTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	NewMetricsHandler(nil, nil).Prometheus(c)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
