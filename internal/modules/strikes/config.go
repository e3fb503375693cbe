package strikes

import (
	"fmt"
	"math"
)

// DefaultTargetProbability is the default chance of the call expiring out of the money.
// It is a policy default, not an empirically validated success rate.
const DefaultTargetProbability = 0.84

// TickRule selects a strike increment for underlying prices below Below, or at
// Below too when Inclusive is set. A rule with Below <= 0 matches every price and
// must come last.
type TickRule struct {
	Below     float64 `json:"below"`
	Inclusive bool    `json:"inclusive,omitempty"`
	Increment float64 `json:"increment"`
}

func (r TickRule) matches(price float64) bool {
	if r.Below <= 0 {
		return true
	}
	return price < r.Below || (r.Inclusive && price == r.Below)
}

// RiskThresholds are the lower bounds (inclusive) of each risk label on probability_otm.
// Anything below Elevated is High.
type RiskThresholds struct {
	Low      float64 `json:"low"`
	Moderate float64 `json:"moderate"`
	Elevated float64 `json:"elevated"`
}

// Label maps a probability of expiring out of the money to a risk label.
func (t RiskThresholds) Label(probabilityOTM float64) RiskLabel {
	switch {
	case probabilityOTM >= t.Low:
		return RiskLow
	case probabilityOTM >= t.Moderate:
		return RiskModerate
	case probabilityOTM >= t.Elevated:
		return RiskElevated
	default:
		return RiskHigh
	}
}

// IVCategoryThresholds are the upper bounds (inclusive) of each implied volatility band.
type IVCategoryThresholds struct {
	Low    float64 `json:"low"`
	Medium float64 `json:"medium"`
	High   float64 `json:"high"`
}

// Category maps an annualized implied volatility to its band.
func (t IVCategoryThresholds) Category(iv float64) IVCategory {
	switch {
	case iv <= t.Low:
		return IVLow
	case iv <= t.Medium:
		return IVMedium
	case iv <= t.High:
		return IVHigh
	default:
		return IVVeryHigh
	}
}

// Config holds the engine's calibration. None of it is hardcoded into the algorithms.
type Config struct {
	TickTable                []TickRule           `json:"tick_table"`
	RiskThresholds           RiskThresholds       `json:"risk_thresholds"`
	IVCategories             IVCategoryThresholds `json:"iv_categories"`
	DefaultTargetProbability float64              `json:"default_target_probability"`
	DefaultHorizons          []int                `json:"default_horizons"`
	DefaultTradesPerYear     int                  `json:"default_trades_per_year"`
	RiskFreeRate             float64              `json:"risk_free_rate"`
	VolatilityWarningLevel   float64              `json:"volatility_warning_level"`
	MaxParallelHorizons      int                  `json:"max_parallel_horizons"`
}

// DefaultConfig returns the stock calibration: $0.50 strikes under $50,
// $1 strikes from $50 through $200, $5 strikes above $200.
func DefaultConfig() Config {
	return Config{
		TickTable: []TickRule{
			{Below: 50, Increment: 0.5},
			{Below: 200, Inclusive: true, Increment: 1},
			{Below: 0, Increment: 5},
		},
		RiskThresholds: RiskThresholds{
			Low:      0.90,
			Moderate: 0.75,
			Elevated: 0.50,
		},
		IVCategories: IVCategoryThresholds{
			Low:    0.25,
			Medium: 0.35,
			High:   0.50,
		},
		DefaultTargetProbability: DefaultTargetProbability,
		DefaultHorizons:          []int{7, 14, 21, 30},
		DefaultTradesPerYear:     26,
		RiskFreeRate:             0,
		VolatilityWarningLevel:   5.0,
		MaxParallelHorizons:      4,
	}
}

// TickIncrement returns the strike increment for an underlying price.
// It returns 0 when no rule matches, which disables rounding.
func (c Config) TickIncrement(price float64) float64 {
	return tickIncrement(c.TickTable, price)
}

func tickIncrement(table []TickRule, price float64) float64 {
	for _, rule := range table {
		if rule.matches(price) {
			return rule.Increment
		}
	}
	return 0
}

// Validate checks the calibration for internal consistency.
func (c Config) Validate() error {
	prevBelow := 0.0
	for i, rule := range c.TickTable {
		if !(rule.Increment > 0) {
			return fmt.Errorf("tick_table[%d]: increment must be > 0, got %v", i, rule.Increment)
		}
		if rule.Below <= 0 {
			if i != len(c.TickTable)-1 {
				return fmt.Errorf("tick_table[%d]: unbounded rule must be last", i)
			}
			continue
		}
		if rule.Below <= prevBelow {
			return fmt.Errorf("tick_table[%d]: bounds must increase, got %v after %v", i, rule.Below, prevBelow)
		}
		prevBelow = rule.Below
	}

	t := c.RiskThresholds
	if !(t.Low <= 1 && t.Moderate <= t.Low && t.Elevated <= t.Moderate && t.Elevated >= 0) {
		return fmt.Errorf("risk_thresholds must satisfy 0 <= elevated <= moderate <= low <= 1, got %+v", t)
	}

	iv := c.IVCategories
	if !(iv.Low > 0 && iv.Medium >= iv.Low && iv.High >= iv.Medium) {
		return fmt.Errorf("iv_categories must satisfy 0 < low <= medium <= high, got %+v", iv)
	}

	if !(c.DefaultTargetProbability > 0 && c.DefaultTargetProbability < 1) {
		return fmt.Errorf("default_target_probability must be in (0,1), got %v", c.DefaultTargetProbability)
	}
	for _, h := range c.DefaultHorizons {
		if h <= 0 {
			return fmt.Errorf("default_horizons must be positive, got %d", h)
		}
	}
	if c.DefaultTradesPerYear <= 0 {
		return fmt.Errorf("default_trades_per_year must be > 0, got %d", c.DefaultTradesPerYear)
	}
	if math.IsNaN(c.RiskFreeRate) || math.IsInf(c.RiskFreeRate, 0) {
		return fmt.Errorf("risk_free_rate must be finite, got %v", c.RiskFreeRate)
	}
	if !(c.VolatilityWarningLevel > 0) {
		return fmt.Errorf("volatility_warning_level must be > 0, got %v", c.VolatilityWarningLevel)
	}
	if c.MaxParallelHorizons <= 0 {
		return fmt.Errorf("max_parallel_horizons must be > 0, got %d", c.MaxParallelHorizons)
	}
	return nil
}
