package core

import (
	"github.com/shopspring/decimal"
)

// DefaultShadingFactor is the demand-side discount applied to a source's
// ceiling price when no deployment-specific factor is configured. Keeping
// the submitted bid below the maximum willingness-to-pay is what gives the
// second-price mechanism headroom.
const DefaultShadingFactor = 0.9

// ShadePrice applies the shading factor to a ceiling price.
// Uses decimal arithmetic for precise calculation.
// A factor outside (0, 1] falls back to DefaultShadingFactor.
func ShadePrice(ceiling, factor float64) float64 {
	if factor <= 0 || factor > 1 {
		factor = DefaultShadingFactor
	}

	ceilingDecimal := decimal.NewFromFloat(ceiling)
	factorDecimal := decimal.NewFromFloat(factor)

	shaded, _ := ceilingDecimal.Mul(factorDecimal).Round(monetaryPrecision).Float64()
	return shaded
}
