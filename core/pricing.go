package core

import (
	"github.com/shopspring/decimal"
)

// DefaultPriceIncrement is the minimal currency increment added to the
// runner-up's price when no deployment-specific increment is configured.
const DefaultPriceIncrement = 0.01

// SecondPrice computes the clearing price for a resolved auction:
//
//   - runner-up present: runner-up's price plus one increment
//   - no runner-up, floor declared: the floor price
//   - no runner-up, no floor: one increment
//
// The result is clamped to the winner's own price so a winner never pays
// more than it bid, and holds floor <= clearing <= winner whenever a floor
// was declared. Callers guarantee winner is non-nil and, when a floor is
// declared, that the winner already met it.
func SecondPrice(winner, runnerUp *Bid, floor, increment float64) float64 {
	if increment <= 0 {
		increment = DefaultPriceIncrement
	}

	var clearing decimal.Decimal
	switch {
	case runnerUp != nil:
		clearing = decimal.NewFromFloat(runnerUp.Price).Add(decimal.NewFromFloat(increment))
	case floor > 0:
		clearing = decimal.NewFromFloat(floor)
	default:
		clearing = decimal.NewFromFloat(increment)
	}

	// A winner never pays more than its own bid.
	winnerPrice := decimal.NewFromFloat(winner.Price)
	if clearing.GreaterThan(winnerPrice) {
		clearing = winnerPrice
	}

	price, _ := clearing.Round(monetaryPrecision).Float64()
	return price
}
