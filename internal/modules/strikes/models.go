package strikes

// RiskLabel is a qualitative rating of assignment risk, ordered Low < Moderate < Elevated < High.
type RiskLabel string

const (
	RiskLow      RiskLabel = "Low"
	RiskModerate RiskLabel = "Moderate"
	RiskElevated RiskLabel = "Elevated"
	RiskHigh     RiskLabel = "High"
)

// IVCategory buckets implied volatility for income projections.
type IVCategory string

const (
	IVLow      IVCategory = "Low IV"
	IVMedium   IVCategory = "Medium IV"
	IVHigh     IVCategory = "High IV"
	IVVeryHigh IVCategory = "Very High IV"
)

// PositionInput is a caller-supplied analysis request. Volatility and probability
// are decimal fractions (0.25 = 25%).
type PositionInput struct {
	Ticker            string  `json:"ticker"`
	StockPrice        float64 `json:"stock_price"`
	ImpliedVolatility float64 `json:"implied_volatility"`
	DaysToExpiry      int     `json:"days_to_expiry"`
	TargetProbability float64 `json:"target_probability"`
}

// NewPositionInput builds a request with the default target probability.
func NewPositionInput(ticker string, stockPrice, impliedVolatility float64, daysToExpiry int) PositionInput {
	return PositionInput{
		Ticker:            ticker,
		StockPrice:        stockPrice,
		ImpliedVolatility: impliedVolatility,
		DaysToExpiry:      daysToExpiry,
		TargetProbability: DefaultTargetProbability,
	}
}

// StrikeRecommendation is the result of one analysis. It is built once and never mutated.
type StrikeRecommendation struct {
	Ticker            string  `json:"ticker"`
	StockPrice        float64 `json:"stock_price"`
	ImpliedVolatility float64 `json:"implied_volatility"`
	HorizonDays       int     `json:"horizon_days"`

	StrikePrice           float64 `json:"strike_price"`
	TickIncrement         float64 `json:"tick_increment"`
	AtTheMoney            bool    `json:"at_the_money"`
	TargetProbability     float64 `json:"target_probability"`
	ProbabilityOTM        float64 `json:"probability_otm"`
	AssignmentProbability float64 `json:"assignment_probability"`

	HorizonSigma        float64 `json:"horizon_sigma"`
	ExpectedMove        float64 `json:"expected_move"`
	ExpectedMovePct     float64 `json:"expected_move_pct"`
	DistanceToStrike    float64 `json:"distance_to_strike"`
	DistanceToStrikePct float64 `json:"distance_to_strike_pct"`

	EstimatedPremium      float64   `json:"estimated_premium"`
	ExpectedReturnPct     float64   `json:"expected_return_pct"`
	AnnualizedReturnPct   float64   `json:"annualized_return_pct"`
	RiskAdjustedReturnPct float64   `json:"risk_adjusted_return_pct"` // annualized return weighted by probability_otm
	RiskLabel             RiskLabel `json:"risk_label"`

	Warnings []string `json:"warnings,omitempty"`
}

// TimeframeRequest asks for the same position evaluated across several horizons.
type TimeframeRequest struct {
	Ticker            string  `json:"ticker"`
	StockPrice        float64 `json:"stock_price"`
	ImpliedVolatility float64 `json:"implied_volatility"`
	Horizons          []int   `json:"horizons"`
	TargetProbability float64 `json:"target_probability"`
}

// SkippedHorizon records a horizon omitted from a comparison and why.
type SkippedHorizon struct {
	HorizonDays int    `json:"horizon_days"`
	Reason      string `json:"reason"`
}

// TimeframeComparison holds one recommendation per evaluated horizon, ordered by
// annualized return descending with shorter horizons first on ties.
type TimeframeComparison struct {
	Ticker            string                 `json:"ticker"`
	StockPrice        float64                `json:"stock_price"`
	ImpliedVolatility float64                `json:"implied_volatility"`
	TargetProbability float64                `json:"target_probability"`
	Entries           []StrikeRecommendation `json:"entries"`
	Skipped           []SkippedHorizon       `json:"skipped,omitempty"`
	Note              string                 `json:"note,omitempty"`

	BestTotalReturnDays  int `json:"best_total_return_days"`
	BestRiskAdjustedDays int `json:"best_risk_adjusted_days"`
}

// Best returns the entry with the highest annualized return.
func (c TimeframeComparison) Best() (StrikeRecommendation, bool) {
	if len(c.Entries) == 0 {
		return StrikeRecommendation{}, false
	}
	return c.Entries[0], true
}

// BestRiskAdjusted returns the entry with the highest risk-adjusted return. Ties go
// to the entry ranked first.
func (c TimeframeComparison) BestRiskAdjusted() (StrikeRecommendation, bool) {
	if len(c.Entries) == 0 {
		return StrikeRecommendation{}, false
	}
	best := c.Entries[0]
	for _, e := range c.Entries[1:] {
		if e.RiskAdjustedReturnPct > best.RiskAdjustedReturnPct {
			best = e
		}
	}
	return best, true
}

// IncomeProjection is a price-independent view of the income a volatility level supports.
type IncomeProjection struct {
	ImpliedVolatility float64    `json:"implied_volatility"`
	IVCategory        IVCategory `json:"iv_category"`
	HorizonDays       int        `json:"horizon_days"`
	TargetProbability float64    `json:"target_probability"`
	TradesPerYear     int        `json:"trades_per_year"`

	PerTradeReturnPct            float64 `json:"per_trade_return_pct"`
	AnnualizedReturnPct          float64 `json:"annualized_return_pct"`
	TradesCompoundedReturnPct    float64 `json:"trades_compounded_return_pct"`
	ProbabilityWeightedReturnPct float64 `json:"probability_weighted_return_pct"`
}
