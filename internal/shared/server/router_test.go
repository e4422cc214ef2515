package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ats-backend/internal/analyses"
	"ats-backend/internal/scoring"
	"ats-backend/internal/services/health"
	"ats-backend/internal/shared/config"
)

type downDB struct{}

func (downDB) Ping(context.Context) error { return errors.New("connection refused") }

func testConfig() config.Config {
	return config.Config{Env: "dev", CORSAllowOrigin: []string{"*"}, RateLimitRPS: 1, RateLimitBurst: 2}
}

func TestAddr(t *testing.T) {
	assert.Equal(t, ":8080", Addr(""))
	assert.Equal(t, ":9090", Addr("9090"))
	assert.Equal(t, ":7000", Addr(":7000"))
}

func TestHealthReportsDatabase(t *testing.T) {
	gin.SetMode(gin.TestMode)

	up := NewRouter(RouterDeps{Config: testConfig(), Health: health.NewService(nil, "standard")})
	resp := httptest.NewRecorder()
	up.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"database":"memory"`)

	down := NewRouter(RouterDeps{Config: testConfig(), Health: health.NewService(downDB{}, "standard")})
	resp = httptest.NewRecorder()
	down.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Contains(t, resp.Body.String(), `"ok":false`)
}

func TestHealthIsNotRateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(RouterDeps{Config: testConfig()})

	for i := 0; i < 20; i++ {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
		require.Equal(t, http.StatusOK, resp.Code, "request %d", i)
	}
}

func TestScoringRoutesAreRateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := analyses.NewHandler(analyses.NewService(scoring.Default(), nil))
	r := NewRouter(RouterDeps{Config: testConfig(), AnalysisHandler: handler})

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", strings.NewReader(`{"mode":"BASIC","resumeText":"education"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Guest-Id", "burst")
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		return resp
	}

	require.Equal(t, http.StatusOK, post().Code)
	require.Equal(t, http.StatusOK, post().Code)
	limited := post()
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))
	assert.Contains(t, limited.Body.String(), `"rate_limited"`)
}

func TestMetricsAndNoRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(RouterDeps{Config: testConfig()})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "http_requests_total")

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), `"not_found"`)
}
