package strikes

import (
	"github.com/aristath/covercall/pkg/formulas"
)

// ReturnProjection converts a premium into return figures and a risk label.
type ReturnProjection struct {
	ExpectedReturnPct   float64
	PeriodsPerYear      float64
	AnnualizedReturnPct float64
	RiskLabel           RiskLabel
}

// ProjectReturns computes premium/stock_price, compounds it to a 365-day basis
// ((1+r)^(365/days) - 1), and labels the risk from the out-of-the-money probability.
func ProjectReturns(premium, stockPrice float64, daysToExpiry int, probabilityOTM float64, thresholds RiskThresholds) (ReturnProjection, error) {
	if err := validateStockPrice(stockPrice); err != nil {
		return ReturnProjection{}, err
	}
	if err := validateDays(daysToExpiry); err != nil {
		return ReturnProjection{}, err
	}

	expected := premium / stockPrice
	return ReturnProjection{
		ExpectedReturnPct:   expected,
		PeriodsPerYear:      formulas.DaysPerYear / float64(daysToExpiry),
		AnnualizedReturnPct: formulas.CompoundAnnualize(expected, daysToExpiry),
		RiskLabel:           thresholds.Label(probabilityOTM),
	}, nil
}
