package core

// RunAuction executes the core auction logic: floor enforcement → ranking →
// second-price clearing.
//
// Parameters:
//   - bids: Candidate bids collected from all demand sources
//   - floor: The impression's floor price (zero or less = no floor declared)
//   - priceIncrement: Minimal currency increment (zero or less = default)
//
// Returns:
//   - AuctionResult containing winner, runner-up, clearing price, eligible
//     bids, and floor-rejected bid IDs
//
// Processing flow:
//  1. Enforce the impression floor price
//  2. Rank eligible bids by price with deterministic tie-breaking
//  3. Extract winner and runner-up from ranking
//  4. Compute the second-price clearing price
//
// This function performs no I/O and is safe for arbitrarily many concurrent
// auctions; each call operates only on its own inputs.
func RunAuction(bids []Bid, floor, priceIncrement float64) *AuctionResult {
	// Step 1: Enforce the impression floor price
	eligibleBids, rejectedBidIDs := EnforceBidFloor(bids, floor)

	// Step 2: Rank eligible bids
	ranking := RankBids(eligibleBids)

	// Step 3: Extract winner and runner-up from ranking
	var winner, runnerUp *Bid
	if len(ranking.SortedSources) > 0 {
		winner = ranking.HighestBids[ranking.SortedSources[0]]
	}
	if len(ranking.SortedSources) > 1 {
		runnerUp = ranking.HighestBids[ranking.SortedSources[1]]
	}

	result := &AuctionResult{
		Winner:              winner,
		RunnerUp:            runnerUp,
		EligibleBids:        eligibleBids,
		FloorRejectedBidIDs: rejectedBidIDs,
	}

	// Step 4: Compute the second-price clearing price
	if winner != nil {
		result.ClearingPrice = SecondPrice(winner, runnerUp, floor, priceIncrement)
	}

	return result
}
