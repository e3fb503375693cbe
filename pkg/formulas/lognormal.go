package formulas

import "math"

// DaysPerYear is the calendar-day basis used for volatility scaling and annualization.
const DaysPerYear = 365.0

// YearFraction converts calendar days to years on a 365-day basis.
func YearFraction(days int) float64 {
	return float64(days) / DaysPerYear
}

// HorizonSigma scales an annualized volatility to the standard deviation of the
// log-return over the given number of calendar days.
//
// Formula: sigma_h = iv * sqrt(days / 365)
//
// Returns 0 when either input is non-positive.
func HorizonSigma(impliedVol float64, days int) float64 {
	if impliedVol <= 0 || days <= 0 {
		return 0
	}
	return impliedVol * math.Sqrt(YearFraction(days))
}

// ExpectedMove returns the one standard deviation price move over the horizon.
func ExpectedMove(spot, impliedVol float64, days int) float64 {
	return spot * HorizonSigma(impliedVol, days)
}

// LognormalQuantile returns the price K with P(S_T <= K) = p for a zero-drift
// lognormal terminal price whose log-return has standard deviation sigma.
//
// Formula: K = spot * exp(z(p)*sigma - sigma^2/2)
func LognormalQuantile(spot, sigma, p float64) float64 {
	return spot * math.Exp(NormInv(p)*sigma-0.5*sigma*sigma)
}

// LognormalCDF is the inverse of LognormalQuantile: the probability that the
// terminal price finishes at or below k.
func LognormalCDF(spot, sigma, k float64) float64 {
	if k <= 0 {
		return 0
	}
	if sigma <= 0 {
		// Degenerate distribution: all mass sits on spot.
		if k >= spot {
			return 1
		}
		return 0
	}
	z := (math.Log(k/spot) + 0.5*sigma*sigma) / sigma
	return NormCDF(z)
}
