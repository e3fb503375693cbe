package strikes

import (
	"github.com/aristath/covercall/pkg/formulas"
)

// ProjectIncome estimates the income a volatility level supports when the same
// trade is repeated tradesPerYear times. The per-trade figures come from the regular
// pipeline run on a normalized price without strike rounding. targetProbability is
// used as given; zero is invalid input.
func (e *Engine) ProjectIncome(impliedVolatility float64, daysToExpiry, tradesPerYear int, targetProbability float64) (IncomeProjection, error) {
	if tradesPerYear <= 0 {
		return IncomeProjection{}, invalidInput("trades_per_year", "> 0", tradesPerYear)
	}

	rec, err := e.analyze(PositionInput{
		StockPrice:        normalizedStockPrice,
		ImpliedVolatility: impliedVolatility,
		DaysToExpiry:      daysToExpiry,
		TargetProbability: targetProbability,
	}, nil)
	if err != nil {
		return IncomeProjection{}, err
	}

	return IncomeProjection{
		ImpliedVolatility: impliedVolatility,
		IVCategory:        e.cfg.IVCategories.Category(impliedVolatility),
		HorizonDays:       daysToExpiry,
		TargetProbability: targetProbability,
		TradesPerYear:     tradesPerYear,

		PerTradeReturnPct:            rec.ExpectedReturnPct,
		AnnualizedReturnPct:          rec.AnnualizedReturnPct,
		TradesCompoundedReturnPct:    formulas.CompoundRepeated(rec.ExpectedReturnPct, tradesPerYear),
		ProbabilityWeightedReturnPct: rec.AnnualizedReturnPct * targetProbability,
	}, nil
}
