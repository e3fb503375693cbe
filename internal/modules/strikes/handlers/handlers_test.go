package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/covercall/internal/modules/strikes"
	"github.com/aristath/covercall/internal/utils"
)

func setupRouter(t *testing.T) *chi.Mux {
	t.Helper()
	logger := zerolog.New(nil).Level(zerolog.Disabled)

	engine, err := strikes.NewEngine(strikes.DefaultConfig(), logger)
	require.NoError(t, err)

	router := chi.NewRouter()
	NewHandler(engine, logger).RegisterRoutes(router)
	return router
}

func do(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleAnalyze(t *testing.T) {
	router := setupRouter(t)

	w := do(t, router, http.MethodPost, "/strikes/analyze",
		`{"ticker":"AAPL","stock_price":200,"implied_volatility":0.25,"days_to_expiry":14,"target_probability":0.84}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var rec strikes.StrikeRecommendation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, "AAPL", rec.Ticker)
	assert.Equal(t, 210.0, rec.StrikePrice)
	assert.Equal(t, strikes.RiskModerate, rec.RiskLabel)
	assert.InDelta(t, 0.115673, rec.AnnualizedReturnPct, 1e-5)
}

func TestHandleAnalyze_DefaultTargetProbability(t *testing.T) {
	router := setupRouter(t)

	w := do(t, router, http.MethodPost, "/strikes/analyze",
		`{"ticker":"AAPL","stock_price":200,"implied_volatility":0.25,"days_to_expiry":14}`)
	require.Equal(t, http.StatusOK, w.Code)

	var rec strikes.StrikeRecommendation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, strikes.DefaultTargetProbability, rec.TargetProbability)
}

func TestHandleAnalyze_InvalidInput(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"explicit zero target", `{"stock_price":200,"implied_volatility":0.25,"days_to_expiry":14,"target_probability":0}`, "target_probability"},
		{"target of one", `{"stock_price":200,"implied_volatility":0.25,"days_to_expiry":14,"target_probability":1}`, "target_probability"},
		{"negative volatility", `{"stock_price":200,"implied_volatility":-0.1,"days_to_expiry":14}`, "implied_volatility"},
		{"missing price", `{"implied_volatility":0.25,"days_to_expiry":14}`, "stock_price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, http.MethodPost, "/strikes/analyze", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp utils.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.field, resp.Field)
		})
	}
}

func TestHandleAnalyze_MalformedBody(t *testing.T) {
	router := setupRouter(t)

	w := do(t, router, http.MethodPost, "/strikes/analyze", `{"stock_price":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodPost, "/strikes/analyze", `{"stock_price":200,"iv_percent":25}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "unknown fields are rejected")
}

func TestHandleAnalyze_Msgpack(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/strikes/analyze",
		strings.NewReader(`{"stock_price":45,"implied_volatility":0.4,"days_to_expiry":21}`))
	req.Header.Set("Accept", utils.ContentTypeMsgpack)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, utils.ContentTypeMsgpack, w.Header().Get("Content-Type"))

	var got map[string]interface{}
	require.NoError(t, msgpack.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 0.5, got["tick_increment"])
	assert.Contains(t, got, "strike_price")
}

func TestHandleCompare(t *testing.T) {
	router := setupRouter(t)

	w := do(t, router, http.MethodPost, "/strikes/compare",
		`{"ticker":"AAPL","stock_price":200,"implied_volatility":0.25,"horizons":[7,14,30]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var cmp strikes.TimeframeComparison
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cmp))
	require.Len(t, cmp.Entries, 3)
	for i := 1; i < len(cmp.Entries); i++ {
		assert.GreaterOrEqual(t, cmp.Entries[i-1].AnnualizedReturnPct, cmp.Entries[i].AnnualizedReturnPct)
	}
	assert.Equal(t, 7, cmp.BestTotalReturnDays)
	assert.Equal(t, 7, cmp.BestRiskAdjustedDays)
	assert.Greater(t, cmp.Entries[0].RiskAdjustedReturnPct, 0.0)
}

func TestHandleCompare_PartialFailure(t *testing.T) {
	router := setupRouter(t)

	w := do(t, router, http.MethodPost, "/strikes/compare",
		`{"stock_price":200,"implied_volatility":0.25,"horizons":[7,0,30]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var cmp strikes.TimeframeComparison
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cmp))
	assert.Len(t, cmp.Entries, 2)
	assert.NotEmpty(t, cmp.Note)
}

func TestHandleCompare_AllFail(t *testing.T) {
	router := setupRouter(t)

	w := do(t, router, http.MethodPost, "/strikes/compare",
		`{"stock_price":200,"implied_volatility":0.25,"horizons":[0,-7]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleAnnualReturns(t *testing.T) {
	router := setupRouter(t)

	w := do(t, router, http.MethodGet, "/strikes/annual-returns?implied_volatility=0.30&days_to_expiry=14", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp AnnualReturnsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 0.150096, resp.AnnualizedReturnPct, 1e-5)
	assert.Equal(t, strikes.IVMedium, resp.Projection.IVCategory)
	assert.Equal(t, 26, resp.Projection.TradesPerYear)
}

func TestHandleAnnualReturns_BadParams(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name  string
		query string
		field string
	}{
		{"missing volatility", "days_to_expiry=14", "implied_volatility"},
		{"non-numeric volatility", "implied_volatility=high", "implied_volatility"},
		{"non-integer days", "implied_volatility=0.3&days_to_expiry=two", "days_to_expiry"},
		{"zero trades", "implied_volatility=0.3&trades_per_year=0", "trades_per_year"},
		{"target out of range", "implied_volatility=0.3&target_probability=1.5", "target_probability"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, http.MethodGet, "/strikes/annual-returns?"+tt.query, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp utils.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.field, resp.Field)
		})
	}
}

func TestHandleGetConfig(t *testing.T) {
	router := setupRouter(t)

	w := do(t, router, http.MethodGet, "/strikes/config", "")
	require.Equal(t, http.StatusOK, w.Code)

	var cfg strikes.Config
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))
	assert.Equal(t, strikes.DefaultConfig(), cfg)
}
