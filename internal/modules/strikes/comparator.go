package strikes

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// CompareTimeframes runs the full analysis once per horizon and ranks the results by
// annualized return, descending, with the shorter horizon first on ties. It also
// names the horizon with the best risk-adjusted return (annualized return times
// probability_otm), which can differ from the top-ranked one.
//
// req.TargetProbability is used as given: a zero value is invalid input, not a
// request for the default. Use Config().DefaultTargetProbability to fill it.
//
// A horizon that fails validation is left out and listed in Skipped and Note; the
// rest are still returned. Only when every horizon fails is the first failure
// returned as the error. Empty Horizons fall back to the configured defaults and
// duplicate horizons are evaluated once.
func (e *Engine) CompareTimeframes(req TimeframeRequest) (TimeframeComparison, error) {
	horizons := uniqueHorizons(req.Horizons)
	if len(horizons) == 0 {
		horizons = uniqueHorizons(e.cfg.DefaultHorizons)
	}
	if len(horizons) == 0 {
		return TimeframeComparison{}, invalidInput("horizons", "non-empty", req.Horizons)
	}

	recs := make([]StrikeRecommendation, len(horizons))
	errs := make([]error, len(horizons))

	// Each horizon writes only its own slot.
	var g errgroup.Group
	g.SetLimit(e.cfg.MaxParallelHorizons)
	for i, days := range horizons {
		i, days := i, days
		g.Go(func() error {
			recs[i], errs[i] = e.Analyze(PositionInput{
				Ticker:            req.Ticker,
				StockPrice:        req.StockPrice,
				ImpliedVolatility: req.ImpliedVolatility,
				DaysToExpiry:      days,
				TargetProbability: req.TargetProbability,
			})
			return nil
		})
	}
	_ = g.Wait()

	entries := make([]StrikeRecommendation, 0, len(horizons))
	var skipped []SkippedHorizon
	for i, days := range horizons {
		if errs[i] != nil {
			skipped = append(skipped, SkippedHorizon{HorizonDays: days, Reason: errs[i].Error()})
			continue
		}
		entries = append(entries, recs[i])
	}

	if len(entries) == 0 {
		return TimeframeComparison{}, errs[0]
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].AnnualizedReturnPct != entries[j].AnnualizedReturnPct {
			return entries[i].AnnualizedReturnPct > entries[j].AnnualizedReturnPct
		}
		return entries[i].HorizonDays < entries[j].HorizonDays
	})

	cmp := TimeframeComparison{
		Ticker:            req.Ticker,
		StockPrice:        req.StockPrice,
		ImpliedVolatility: req.ImpliedVolatility,
		TargetProbability: req.TargetProbability,
		Entries:           entries,
		Skipped:           skipped,
	}
	best, _ := cmp.Best()
	cmp.BestTotalReturnDays = best.HorizonDays
	bestAdjusted, _ := cmp.BestRiskAdjusted()
	cmp.BestRiskAdjustedDays = bestAdjusted.HorizonDays

	if len(skipped) > 0 {
		cmp.Note = skippedNote(skipped, len(horizons))
		e.log.Warn().
			Str("ticker", req.Ticker).
			Int("skipped", len(skipped)).
			Int("evaluated", len(entries)).
			Msg("Some horizons were omitted from the comparison")
	}

	return cmp, nil
}

func uniqueHorizons(horizons []int) []int {
	seen := make(map[int]bool, len(horizons))
	out := make([]int, 0, len(horizons))
	for _, h := range horizons {
		if seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	return out
}

func skippedNote(skipped []SkippedHorizon, total int) string {
	parts := make([]string, len(skipped))
	for i, s := range skipped {
		parts[i] = fmt.Sprintf("%d days (%s)", s.HorizonDays, s.Reason)
	}
	return fmt.Sprintf("omitted %d of %d horizons: %s", len(skipped), total, strings.Join(parts, "; "))
}
