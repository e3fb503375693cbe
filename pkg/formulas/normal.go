package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// NormCDF returns the standard normal cumulative distribution function at x.
func NormCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// NormInv returns the standard normal quantile z such that NormCDF(z) == p.
//
// gonum evaluates the quantile with Wichura's AS241 rational approximation
// (about 1e-16 relative accuracy) in a fixed number of operations.
//
// Args:
//   - p: Probability, expected in (0, 1)
//
// Returns:
//   - -Inf for p <= 0, +Inf for p >= 1, NaN for NaN input
func NormInv(p float64) float64 {
	switch {
	case math.IsNaN(p):
		return math.NaN()
	case p <= 0:
		return math.Inf(-1)
	case p >= 1:
		return math.Inf(1)
	}
	return distuv.UnitNormal.Quantile(p)
}
