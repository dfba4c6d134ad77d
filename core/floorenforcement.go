package core

import (
	"github.com/shopspring/decimal"
)

const monetaryPrecision int32 = 4 // 4 decimal places for CPM values (0.0001 precision)

// BidMeetsFloor returns true if the bid price meets or exceeds the floor price.
// Uses decimal arithmetic with monetaryPrecision to avoid floating-point errors.
func BidMeetsFloor(bidPrice, floorPrice float64) bool {
	bidPriceDecimal := decimal.NewFromFloat(bidPrice).Round(monetaryPrecision)
	floorDecimal := decimal.NewFromFloat(floorPrice).Round(monetaryPrecision)

	return bidPriceDecimal.GreaterThanOrEqual(floorDecimal)
}

// EnforceBidFloor filters bids against the impression's floor price.
// Returns eligible bids and IDs of rejected bids.
// A floor of zero (or less) means the impression declared no floor and all
// bids pass without enforcement.
func EnforceBidFloor(bids []Bid, floor float64) (eligible []Bid, rejectedBidIDs []string) {
	eligibleBids := make([]Bid, 0, len(bids))
	rejectedIDs := make([]string, 0)

	for _, bid := range bids {
		if floor <= 0 {
			eligibleBids = append(eligibleBids, bid)
			continue
		}

		if BidMeetsFloor(bid.Price, floor) {
			eligibleBids = append(eligibleBids, bid)
		} else {
			rejectedIDs = append(rejectedIDs, bid.ID)
		}
	}

	return eligibleBids, rejectedIDs
}
