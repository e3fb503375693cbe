package strikes

import (
	"math"

	"github.com/aristath/covercall/pkg/formulas"
)

// Distribution is the zero-drift lognormal law of the underlying at expiry.
type Distribution struct {
	StockPrice        float64
	ImpliedVolatility float64
	Days              int
	Sigma             float64 // standard deviation of the log-return over the horizon
}

// HorizonSigma returns implied_volatility * sqrt(days_to_expiry / 365).
func HorizonSigma(impliedVolatility float64, daysToExpiry int) (float64, error) {
	if err := validateVolatility(impliedVolatility); err != nil {
		return 0, err
	}
	if err := validateDays(daysToExpiry); err != nil {
		return 0, err
	}
	return formulas.HorizonSigma(impliedVolatility, daysToExpiry), nil
}

// NewDistribution parameterizes the terminal price distribution.
func NewDistribution(stockPrice, impliedVolatility float64, daysToExpiry int) (Distribution, error) {
	if err := validateStockPrice(stockPrice); err != nil {
		return Distribution{}, err
	}
	sigma, err := HorizonSigma(impliedVolatility, daysToExpiry)
	if err != nil {
		return Distribution{}, err
	}
	return Distribution{
		StockPrice:        stockPrice,
		ImpliedVolatility: impliedVolatility,
		Days:              daysToExpiry,
		Sigma:             sigma,
	}, nil
}

// Quantile returns the price the underlying stays at or below with probability p.
func (d Distribution) Quantile(p float64) float64 {
	return formulas.LognormalQuantile(d.StockPrice, d.Sigma, p)
}

// ProbabilityBelow returns P(price at expiry <= k).
func (d Distribution) ProbabilityBelow(k float64) float64 {
	return formulas.LognormalCDF(d.StockPrice, d.Sigma, k)
}

func validateStockPrice(v float64) error {
	if !(v > 0) || math.IsInf(v, 1) {
		return invalidInput("stock_price", "> 0", v)
	}
	return nil
}

func validateVolatility(v float64) error {
	if !(v > 0) || math.IsInf(v, 1) {
		return invalidInput("implied_volatility", "> 0", v)
	}
	return nil
}

func validateDays(v int) error {
	if v <= 0 {
		return invalidInput("days_to_expiry", "> 0", v)
	}
	return nil
}

func validateProbability(v float64) error {
	if !(v > 0 && v < 1) {
		return invalidInput("target_probability", "in (0, 1) exclusive", v)
	}
	return nil
}
