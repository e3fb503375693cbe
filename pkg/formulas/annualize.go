package formulas

import "math"

// CompoundAnnualize converts a single-period return over the given number of
// calendar days into an equivalent compounded 365-day rate.
//
// Formula: (1 + periodReturn)^(365/days) - 1
//
// Returns 0 when days is non-positive.
func CompoundAnnualize(periodReturn float64, days int) float64 {
	if days <= 0 {
		return 0
	}
	periodsPerYear := DaysPerYear / float64(days)
	return math.Pow(1+periodReturn, periodsPerYear) - 1
}

// CompoundRepeated returns the total return of repeating a period return n times.
func CompoundRepeated(periodReturn float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return math.Pow(1+periodReturn, float64(n)) - 1
}
