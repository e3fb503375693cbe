package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormInv_QuantileTable(t *testing.T) {
	tests := []struct {
		name      string
		p         float64
		want      float64
		tolerance float64
	}{
		{"median", 0.5, 0.0, 1e-12},
		{"one sigma", 0.8413, 1.00, 1e-3},
		{"84th percentile", 0.84, 0.994458, 1e-6},
		{"90th percentile", 0.90, 1.281552, 1e-6},
		{"95th percentile", 0.95, 1.644854, 1e-6},
		{"97.5th percentile", 0.975, 1.959964, 1e-6},
		{"99th percentile", 0.99, 2.326348, 1e-6},
		{"lower tail", 0.025, -1.959964, 1e-6},
		{"deep lower tail", 0.001, -3.090232, 1e-6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NormInv(tt.p), tt.tolerance)
		})
	}
}

func TestNormInv_OutOfRange(t *testing.T) {
	assert.True(t, math.IsInf(NormInv(0), -1))
	assert.True(t, math.IsInf(NormInv(-0.2), -1))
	assert.True(t, math.IsInf(NormInv(1), 1))
	assert.True(t, math.IsInf(NormInv(1.5), 1))
	assert.True(t, math.IsNaN(NormInv(math.NaN())))
}

func TestNormCDF_KnownValues(t *testing.T) {
	assert.InDelta(t, 0.5, NormCDF(0), 1e-12)
	assert.InDelta(t, 0.841345, NormCDF(1), 1e-6)
	assert.InDelta(t, 0.158655, NormCDF(-1), 1e-6)
	assert.InDelta(t, 0.975002, NormCDF(1.96), 1e-6)
}

func TestNormCDF_NormInvRoundTrip(t *testing.T) {
	for p := 0.01; p < 0.99; p += 0.0005 {
		assert.InDelta(t, p, NormCDF(NormInv(p)), 1e-6, "p=%f", p)
	}

	for x := -4.0; x <= 4.0; x += 0.01 {
		assert.InDelta(t, x, NormInv(NormCDF(x)), 1e-6, "x=%f", x)
	}
}
