// Package handlers provides HTTP handlers for covered-call strike analysis.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/aristath/covercall/internal/modules/strikes"
	"github.com/aristath/covercall/internal/utils"
)

// maxBodyBytes bounds request bodies; requests are a handful of numbers.
const maxBodyBytes = 64 << 10

// Handler handles strike analysis HTTP requests
type Handler struct {
	engine *strikes.Engine
	log    zerolog.Logger
}

// NewHandler creates a new strike analysis handler
func NewHandler(engine *strikes.Engine, log zerolog.Logger) *Handler {
	return &Handler{
		engine: engine,
		log:    log.With().Str("handler", "strikes").Logger(),
	}
}

// AnalyzeRequest is the body of POST /api/strikes/analyze.
// A missing target_probability uses the configured default.
type AnalyzeRequest struct {
	Ticker            string   `json:"ticker"`
	StockPrice        float64  `json:"stock_price"`
	ImpliedVolatility float64  `json:"implied_volatility"`
	DaysToExpiry      int      `json:"days_to_expiry"`
	TargetProbability *float64 `json:"target_probability,omitempty"`
}

// CompareRequest is the body of POST /api/strikes/compare.
type CompareRequest struct {
	Ticker            string   `json:"ticker"`
	StockPrice        float64  `json:"stock_price"`
	ImpliedVolatility float64  `json:"implied_volatility"`
	Horizons          []int    `json:"horizons,omitempty"`
	TargetProbability *float64 `json:"target_probability,omitempty"`
}

// AnnualReturnsResponse is the body returned by GET /api/strikes/annual-returns.
type AnnualReturnsResponse struct {
	AnnualizedReturnPct float64                  `json:"annualized_return_pct"`
	Projection          strikes.IncomeProjection `json:"projection"`
}

// HandleAnalyze handles POST /api/strikes/analyze
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	defer utils.OperationTimer("strikes.analyze", h.log)()

	var req AnalyzeRequest
	if !h.decode(w, r, &req) {
		return
	}

	rec, err := h.engine.Analyze(strikes.PositionInput{
		Ticker:            req.Ticker,
		StockPrice:        req.StockPrice,
		ImpliedVolatility: req.ImpliedVolatility,
		DaysToExpiry:      req.DaysToExpiry,
		TargetProbability: h.targetOrDefault(req.TargetProbability),
	})
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	utils.WriteResponse(w, r, http.StatusOK, rec, h.log)
}

// HandleCompare handles POST /api/strikes/compare
func (h *Handler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	defer utils.OperationTimer("strikes.compare", h.log)()

	var req CompareRequest
	if !h.decode(w, r, &req) {
		return
	}

	cmp, err := h.engine.CompareTimeframes(strikes.TimeframeRequest{
		Ticker:            req.Ticker,
		StockPrice:        req.StockPrice,
		ImpliedVolatility: req.ImpliedVolatility,
		Horizons:          req.Horizons,
		TargetProbability: h.targetOrDefault(req.TargetProbability),
	})
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	utils.WriteResponse(w, r, http.StatusOK, cmp, h.log)
}

// HandleAnnualReturns handles GET /api/strikes/annual-returns
//
// Query parameters: implied_volatility (required), days_to_expiry (default 14),
// target_probability, trades_per_year (defaults from config).
func (h *Handler) HandleAnnualReturns(w http.ResponseWriter, r *http.Request) {
	cfg := h.engine.Config()
	q := r.URL.Query()

	iv, err := parseFloatParam(q.Get("implied_volatility"), 0, true)
	if err != nil {
		utils.WriteError(w, r, http.StatusBadRequest, err.Error(), "implied_volatility", h.log)
		return
	}
	days, err := parseIntParam(q.Get("days_to_expiry"), 14)
	if err != nil {
		utils.WriteError(w, r, http.StatusBadRequest, err.Error(), "days_to_expiry", h.log)
		return
	}
	target, err := parseFloatParam(q.Get("target_probability"), cfg.DefaultTargetProbability, false)
	if err != nil {
		utils.WriteError(w, r, http.StatusBadRequest, err.Error(), "target_probability", h.log)
		return
	}
	trades, err := parseIntParam(q.Get("trades_per_year"), cfg.DefaultTradesPerYear)
	if err != nil {
		utils.WriteError(w, r, http.StatusBadRequest, err.Error(), "trades_per_year", h.log)
		return
	}

	projection, err := h.engine.ProjectIncome(iv, days, trades, target)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	utils.WriteResponse(w, r, http.StatusOK, AnnualReturnsResponse{
		AnnualizedReturnPct: projection.AnnualizedReturnPct,
		Projection:          projection,
	}, h.log)
}

// HandleGetConfig handles GET /api/strikes/config
func (h *Handler) HandleGetConfig(w http.ResponseWriter, r *http.Request) {
	utils.WriteResponse(w, r, http.StatusOK, h.engine.Config(), h.log)
}

func (h *Handler) targetOrDefault(p *float64) float64 {
	if p == nil {
		return h.engine.Config().DefaultTargetProbability
	}
	return *p
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		h.log.Debug().Err(err).Msg("Rejected malformed request body")
		utils.WriteError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err), "", h.log)
		return false
	}
	return true
}

func (h *Handler) writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	var invalid *strikes.InvalidInputError
	if errors.As(err, &invalid) {
		utils.WriteError(w, r, http.StatusBadRequest, invalid.Error(), invalid.Field, h.log)
		return
	}
	h.log.Error().Err(err).Msg("Strike analysis failed")
	utils.WriteError(w, r, http.StatusInternalServerError, "internal error", "", h.log)
}

func parseFloatParam(raw string, fallback float64, required bool) (float64, error) {
	if raw == "" {
		if required {
			return 0, errors.New("parameter is required")
		}
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	return v, nil
}

func parseIntParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", raw)
	}
	return v, nil
}
