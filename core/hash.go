package core

import (
	"crypto/sha256"
	"fmt"
)

// ComputeBidHash computes the audit hash of one candidate bid.
//
// Formula: SHA256(bid_id + "|" + source + "|" + sprintf("%.6f", price))
//
// The price is formatted to exactly 6 decimal places to ensure consistent
// hashing regardless of how the float is represented in memory.
func ComputeBidHash(bidID, source string, price float64) string {
	data := fmt.Sprintf("%s|%s|%.6f", bidID, source, price)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// ComputeOutcomeHash computes the audit hash of a resolved auction. Two
// auctions with the same request, winner, and clearing price always produce
// the same hash, which lets log lines from independent replays be compared.
//
// Formula: SHA256(request_id + "|" + winner_source + "|" + winner_bid_id +
// "|" + sprintf("%.6f", clearing_price))
func ComputeOutcomeHash(requestID string, winner *Bid, clearingPrice float64) string {
	source, bidID := "none", "none"
	if winner != nil {
		source = winner.Source
		bidID = winner.ID
	}
	data := fmt.Sprintf("%s|%s|%s|%.6f", requestID, source, bidID, clearingPrice)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
