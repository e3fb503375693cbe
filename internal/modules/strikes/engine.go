// Package strikes recommends covered-call strikes from implied volatility.
//
// The pipeline is a chain of pure functions:
// Distribution (horizon sigma) -> SolveStrike (lognormal quantile, tick rounding)
// -> EstimatePremium (Black-Scholes call) -> ProjectReturns (compounded annualization, risk label).
// Engine wires them together with a Config and adds the multi-horizon comparison.
// Nothing here performs I/O or keeps state between calls, so an Engine is safe for
// concurrent use.
package strikes

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/covercall/pkg/formulas"
)

// normalizedStockPrice is used for price-independent projections. All ratios are
// scale invariant under zero drift, so any positive price works.
const normalizedStockPrice = 100.0

// Engine runs strike analyses under a fixed calibration.
type Engine struct {
	cfg Config
	log zerolog.Logger
}

// NewEngine validates cfg and creates an engine.
func NewEngine(cfg Config, log zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	return &Engine{
		cfg: cfg,
		log: log.With().Str("component", "strike_engine").Logger(),
	}, nil
}

// Config returns the engine's calibration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Analyze recommends a strike for one position and horizon.
func (e *Engine) Analyze(in PositionInput) (StrikeRecommendation, error) {
	return e.analyze(in, e.cfg.TickTable)
}

// EstimateAnnualReturns projects the compounded annual return of repeatedly selling
// calls at the target probability, independent of any ticker or price.
//
// targetProbability is not defaulted: pass Config().DefaultTargetProbability for the
// configured default. Zero is rejected as invalid input.
func (e *Engine) EstimateAnnualReturns(impliedVolatility float64, daysToExpiry int, targetProbability float64) (float64, error) {
	rec, err := e.analyze(PositionInput{
		StockPrice:        normalizedStockPrice,
		ImpliedVolatility: impliedVolatility,
		DaysToExpiry:      daysToExpiry,
		TargetProbability: targetProbability,
	}, nil)
	if err != nil {
		return 0, err
	}
	return rec.AnnualizedReturnPct, nil
}

func (e *Engine) analyze(in PositionInput, ticks []TickRule) (StrikeRecommendation, error) {
	dist, err := NewDistribution(in.StockPrice, in.ImpliedVolatility, in.DaysToExpiry)
	if err != nil {
		return StrikeRecommendation{}, err
	}

	sol, err := SolveStrike(dist, in.TargetProbability, ticks)
	if err != nil {
		return StrikeRecommendation{}, err
	}

	premium, err := EstimatePremium(in.StockPrice, sol.Strike, in.DaysToExpiry, in.ImpliedVolatility, e.cfg.RiskFreeRate)
	if err != nil {
		return StrikeRecommendation{}, err
	}

	proj, err := ProjectReturns(premium, in.StockPrice, in.DaysToExpiry, sol.ProbabilityOTM, e.cfg.RiskThresholds)
	if err != nil {
		return StrikeRecommendation{}, err
	}

	var warnings []string
	if in.ImpliedVolatility > e.cfg.VolatilityWarningLevel {
		warnings = append(warnings, fmt.Sprintf(
			"implied_volatility %.4g exceeds %.4g; check the volatility source",
			in.ImpliedVolatility, e.cfg.VolatilityWarningLevel))
		e.log.Warn().
			Str("ticker", in.Ticker).
			Float64("implied_volatility", in.ImpliedVolatility).
			Msg("Implied volatility above data-quality threshold")
	}
	if sol.AtTheMoney {
		warnings = append(warnings, fmt.Sprintf(
			"solved strike %.4f was not above the stock price; clamped to %.4f (at-the-money)",
			sol.RawStrike, sol.Strike))
		e.log.Warn().
			Str("ticker", in.Ticker).
			Float64("raw_strike", sol.RawStrike).
			Float64("strike", sol.Strike).
			Msg("Strike clamped above stock price")
	}

	expectedMove := formulas.ExpectedMove(in.StockPrice, in.ImpliedVolatility, in.DaysToExpiry)
	distance := sol.Strike - in.StockPrice

	rec := StrikeRecommendation{
		Ticker:            in.Ticker,
		StockPrice:        in.StockPrice,
		ImpliedVolatility: in.ImpliedVolatility,
		HorizonDays:       in.DaysToExpiry,

		StrikePrice:           sol.Strike,
		TickIncrement:         sol.Increment,
		AtTheMoney:            sol.AtTheMoney,
		TargetProbability:     in.TargetProbability,
		ProbabilityOTM:        sol.ProbabilityOTM,
		AssignmentProbability: 1 - sol.ProbabilityOTM,

		HorizonSigma:        dist.Sigma,
		ExpectedMove:        expectedMove,
		ExpectedMovePct:     expectedMove / in.StockPrice,
		DistanceToStrike:    distance,
		DistanceToStrikePct: distance / in.StockPrice,

		EstimatedPremium:      premium,
		ExpectedReturnPct:     proj.ExpectedReturnPct,
		AnnualizedReturnPct:   proj.AnnualizedReturnPct,
		RiskAdjustedReturnPct: proj.AnnualizedReturnPct * sol.ProbabilityOTM,
		RiskLabel:             proj.RiskLabel,

		Warnings: warnings,
	}

	e.log.Debug().
		Str("ticker", rec.Ticker).
		Int("days", rec.HorizonDays).
		Float64("strike", rec.StrikePrice).
		Float64("probability_otm", rec.ProbabilityOTM).
		Float64("premium", rec.EstimatedPremium).
		Float64("annualized_return", rec.AnnualizedReturnPct).
		Msg("Strike analyzed")

	return rec, nil
}
