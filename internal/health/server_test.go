package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(ctx context.Context) error { return p.err }

type stubCorpus int

func (c stubCorpus) Len() int { return int(c) }

func TestHandleHealth(t *testing.T) {
	s := NewServer(Config{ServiceName: "data-ingestion", Version: "1.2.3"})

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "data-ingestion", body.Service)
	assert.Equal(t, "1.2.3", body.Version)
}

func TestHandleReady(t *testing.T) {
	readyBody := func(rec *httptest.ResponseRecorder) readyResponse {
		var body readyResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return body
	}

	t.Run("not ready until marked", func(t *testing.T) {
		s := NewServer(Config{ServiceName: "svc"})
		rec := httptest.NewRecorder()
		s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "not_ready", readyBody(rec).Status)
	})

	t.Run("ready with healthy checks", func(t *testing.T) {
		s := NewServer(Config{ServiceName: "svc", DB: stubPinger{}, Corpus: stubCorpus(42)})
		s.SetReady(true)

		rec := httptest.NewRecorder()
		s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := readyBody(rec)
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, "ok", body.Checks["database"])
		assert.Equal(t, "42 matches", body.Checks["corpus"])
	})

	t.Run("failing database ping degrades readiness", func(t *testing.T) {
		s := NewServer(Config{ServiceName: "svc", DB: stubPinger{err: fmt.Errorf("connection refused")}})
		s.SetReady(true)

		rec := httptest.NewRecorder()
		s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, readyBody(rec).Checks["database"], "connection refused")
	})

	t.Run("empty corpus degrades readiness", func(t *testing.T) {
		s := NewServer(Config{ServiceName: "svc", Corpus: stubCorpus(0)})
		s.SetReady(true)

		rec := httptest.NewRecorder()
		s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "empty", readyBody(rec).Checks["corpus"])
	})
}

func TestNewServerDefaults(t *testing.T) {
	s := NewServer(Config{ServiceName: "svc"})
	assert.Equal(t, "8080", s.port)
	assert.False(t, s.IsReady())
	s.SetReady(true)
	assert.True(t, s.IsReady())
}
