package strikes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectIncome(t *testing.T) {
	engine := newTestEngine(t)

	proj, err := engine.ProjectIncome(0.30, 14, 26, 0.84)
	require.NoError(t, err)

	assert.Equal(t, IVMedium, proj.IVCategory)
	assert.Equal(t, 26, proj.TradesPerYear)
	assert.Equal(t, 14, proj.HorizonDays)
	assert.InDelta(t, 0.0053783, proj.PerTradeReturnPct, 1e-6)
	assert.InDelta(t, 0.150096, proj.AnnualizedReturnPct, 1e-5)
	assert.InDelta(t, 0.149655, proj.TradesCompoundedReturnPct, 1e-5)
	assert.InDelta(t, proj.AnnualizedReturnPct*0.84, proj.ProbabilityWeightedReturnPct, 1e-12)

	annual, err := engine.EstimateAnnualReturns(0.30, 14, 0.84)
	require.NoError(t, err)
	assert.Equal(t, annual, proj.AnnualizedReturnPct)
}

func TestProjectIncome_Validation(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.ProjectIncome(0.30, 14, 0, 0.84)
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "trades_per_year", invalid.Field)

	_, err = engine.ProjectIncome(0, 14, 26, 0.84)
	assert.True(t, IsInvalidInput(err))
}

func TestIVCategoryThresholds_Category(t *testing.T) {
	categories := DefaultConfig().IVCategories

	tests := []struct {
		iv   float64
		want IVCategory
	}{
		{0.12, IVLow},
		{0.25, IVLow},
		{0.30, IVMedium},
		{0.35, IVMedium},
		{0.50, IVHigh},
		{0.75, IVVeryHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, categories.Category(tt.iv), "iv=%v", tt.iv)
	}
}
