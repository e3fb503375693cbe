package strikes

import (
	"github.com/aristath/covercall/pkg/formulas"
)

// EstimatePremium prices a European call with the lognormal (Black-Scholes) closed
// form, no dividends. A zero rate drops the discount factor entirely.
func EstimatePremium(stockPrice, strike float64, daysToExpiry int, impliedVolatility, rate float64) (float64, error) {
	if err := validateStockPrice(stockPrice); err != nil {
		return 0, err
	}
	if !(strike > 0) {
		return 0, invalidInput("strike_price", "> 0", strike)
	}
	if err := validateVolatility(impliedVolatility); err != nil {
		return 0, err
	}
	if err := validateDays(daysToExpiry); err != nil {
		return 0, err
	}

	years := formulas.YearFraction(daysToExpiry)
	return formulas.BlackScholesCall(stockPrice, strike, years, rate, impliedVolatility), nil
}
