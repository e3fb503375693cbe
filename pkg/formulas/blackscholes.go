package formulas

import "math"

// BlackScholesD1D2 returns the d1 and d2 terms of the Black-Scholes formula.
func BlackScholesD1D2(spot, strike, years, rate, sigma float64) (float64, float64) {
	sqrtT := math.Sqrt(years)
	d1 := (math.Log(spot/strike) + (rate+0.5*sigma*sigma)*years) / (sigma * sqrtT)
	return d1, d1 - sigma*sqrtT
}

// BlackScholesCall calculates the price of a European call with no dividend yield.
//
// Parameters:
//   - spot: spot price of the underlying
//   - strike: strike price of the option
//   - years: time to expiry in years
//   - rate: continuously compounded risk-free rate (annual)
//   - sigma: volatility of the underlying (annual, as a decimal)
//
// With rate == 0 the discount factor is exactly 1 and the price reduces to
// S*N(d1) - K*N(d2). If years or sigma is non-positive the intrinsic value is returned.
func BlackScholesCall(spot, strike, years, rate, sigma float64) float64 {
	if years <= 0 || sigma <= 0 {
		return math.Max(0, spot-strike) // intrinsic fallback
	}

	d1, d2 := BlackScholesD1D2(spot, strike, years, rate, sigma)

	discount := 1.0
	if rate != 0 {
		discount = math.Exp(-rate * years)
	}

	price := spot*NormCDF(d1) - strike*discount*NormCDF(d2)
	// Deep out-of-the-money calls can round a hair below zero.
	return math.Max(0, price)
}
