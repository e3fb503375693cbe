package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/covercall/internal/modules/strikes"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	log := zerolog.New(nil).Level(zerolog.Disabled)

	engine, err := strikes.NewEngine(strikes.DefaultConfig(), log)
	require.NoError(t, err)

	s := New(Config{Log: log, Engine: engine, Port: 0, DevMode: true})
	s.systemHandlers.sampleStats = func() (float64, float64) { return 12.5, 40 }
	return s
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "covercall", body["service"])
	assert.Equal(t, Version, body["version"])
}

func TestHandleSystemStatus(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/system/status", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp SystemStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.GoVersion)
	assert.Equal(t, 12.5, resp.SystemStats.CPUPercent)
	assert.Equal(t, 40.0, resp.SystemStats.RAMPercent)
	assert.GreaterOrEqual(t, resp.SystemStats.UptimeHours, 0.0)
	assert.Equal(t, strikes.DefaultTargetProbability, resp.Engine.DefaultTargetProbability)
	assert.Equal(t, []int{7, 14, 21, 30}, resp.Engine.DefaultHorizons)
}

func TestStrikeRoutesMountedUnderAPI(t *testing.T) {
	s := newTestServer(t)

	body := `{"ticker":"AAPL","stock_price":200,"implied_volatility":0.25,"days_to_expiry":14}`
	req := httptest.NewRequest(http.MethodPost, "/api/strikes/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var rec strikes.StrikeRecommendation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, 210.0, rec.StrikePrice)

	req = httptest.NewRequest(http.MethodPost, "/strikes/analyze", strings.NewReader(body))
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/strikes/analyze", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestStatusMonitor_CheckStatus(t *testing.T) {
	s := newTestServer(t)
	cpuLoad := 10.0
	s.systemHandlers.sampleStats = func() (float64, float64) { return cpuLoad, 50 }

	m := NewStatusMonitor(s.systemHandlers, zerolog.New(nil).Level(zerolog.Disabled))

	assert.True(t, m.checkStatus(), "first sample is always reported")
	assert.False(t, m.checkStatus(), "unchanged load is not reported")

	cpuLoad = 15
	assert.False(t, m.checkStatus(), "small moves are ignored")

	cpuLoad = 60
	assert.True(t, m.checkStatus())
}

func TestStatusMonitor_NilHandlers(t *testing.T) {
	m := NewStatusMonitor(nil, zerolog.New(nil).Level(zerolog.Disabled))
	assert.False(t, m.checkStatus())
}
