package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (p *stubPinger) Ping(ctx context.Context) error {
	return p.err
}

func newTestServer(db DatabasePinger) *Server {
	return NewServer(Config{
		ServiceName: "courtline-test",
		Version:     "test",
		DB:          db,
	})
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(nil)
	rec := httptest.NewRecorder()

	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "courtline-test", body.Service)
}

func TestHandleReadyNotReady(t *testing.T) {
	s := newTestServer(&stubPinger{})
	rec := httptest.NewRecorder()

	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not_ready", body.Status)
	assert.Equal(t, "not_ready", body.Checks["service"])
	assert.Equal(t, "ok", body.Checks["database"])
}

func TestHandleReadyHealthy(t *testing.T) {
	s := newTestServer(&stubPinger{})
	s.SetReady(true)
	rec := httptest.NewRecorder()

	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
}

func TestHandleReadyDatabaseDown(t *testing.T) {
	s := newTestServer(&stubPinger{err: errors.New("connection refused")})
	s.SetReady(true)
	rec := httptest.NewRecorder()

	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Checks["database"], "connection refused")
}
