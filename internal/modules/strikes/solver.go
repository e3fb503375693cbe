package strikes

import "math"

// StrikeSolution is the Strike Solver's output for one distribution and target.
type StrikeSolution struct {
	RawStrike      float64 // unrounded lognormal quantile
	Strike         float64
	Increment      float64
	AtTheMoney     bool
	ProbabilityOTM float64 // realized P(price <= Strike) after rounding
}

// SolveStrike finds the strike K with P(price at expiry <= K) = target, then rounds it
// to the nearest increment from the tick table.
//
// When the rounded strike is not strictly above the stock price, the strike is
// clamped to the next increment above it and flagged AtTheMoney. An empty tick table
// disables rounding; the clamp then lands exactly on the stock price.
func SolveStrike(dist Distribution, target float64, ticks []TickRule) (StrikeSolution, error) {
	if err := validateProbability(target); err != nil {
		return StrikeSolution{}, err
	}

	raw := dist.Quantile(target)
	inc := tickIncrement(ticks, dist.StockPrice)

	strike := RoundToIncrement(raw, inc)
	atm := false
	if strike <= dist.StockPrice {
		strike = NextStrikeAbove(dist.StockPrice, inc)
		atm = true
	}

	return StrikeSolution{
		RawStrike:      raw,
		Strike:         strike,
		Increment:      inc,
		AtTheMoney:     atm,
		ProbabilityOTM: dist.ProbabilityBelow(strike),
	}, nil
}

// RoundToIncrement rounds price to the nearest multiple of inc. A non-positive inc
// returns price unchanged.
func RoundToIncrement(price, inc float64) float64 {
	if inc <= 0 {
		return price
	}
	return math.Round(price/inc) * inc
}

// NextStrikeAbove returns the smallest multiple of inc strictly greater than price.
// A non-positive inc returns price itself.
func NextStrikeAbove(price, inc float64) float64 {
	if inc <= 0 {
		return price
	}
	next := (math.Floor(price/inc) + 1) * inc
	// Guard against price/inc landing a hair under an exact multiple.
	for next <= price {
		next += inc
	}
	return next
}
