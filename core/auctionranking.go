package core

import (
	"sort"
)

// RankBids ranks the highest bid from each source by price, descending.
//
// Ties on price are broken by the lexicographically smallest source
// identity, so identical inputs always produce identical rankings. The
// auction outcome must be reproducible and auditable; it cannot depend on
// the incidental order in which adapters delivered their candidates.
func RankBids(bids []Bid) *RankingResult {
	if len(bids) == 0 {
		return &RankingResult{
			Ranks:         make(map[string]int),
			HighestBids:   make(map[string]*Bid),
			SortedSources: make([]string, 0),
		}
	}

	type bidEntry struct {
		source string
		bid    *Bid
	}

	// Find highest bid per source while preserving order of first occurrence
	sourceMap := make(map[string]*Bid)
	sourceOrder := make([]string, 0, len(bids))
	seenSources := make(map[string]bool)

	for i := range bids {
		bid := &bids[i]

		if !seenSources[bid.Source] {
			sourceOrder = append(sourceOrder, bid.Source)
			seenSources[bid.Source] = true
		}

		// Keep highest bid per source
		existing, exists := sourceMap[bid.Source]
		if !exists || bid.Price > existing.Price {
			sourceMap[bid.Source] = bid
		}
	}

	entries := make([]bidEntry, 0, len(sourceOrder))
	for _, source := range sourceOrder {
		entries = append(entries, bidEntry{
			source: source,
			bid:    sourceMap[source],
		})
	}

	// Sort by price descending; equal prices fall back to source identity
	// ascending for determinism.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].bid.Price != entries[j].bid.Price {
			return entries[i].bid.Price > entries[j].bid.Price
		}
		return entries[i].source < entries[j].source
	})

	result := &RankingResult{
		Ranks:         make(map[string]int, len(entries)),
		HighestBids:   make(map[string]*Bid, len(entries)),
		SortedSources: make([]string, len(entries)),
	}

	for rank, entry := range entries {
		rankValue := rank + 1
		result.Ranks[entry.source] = rankValue
		result.HighestBids[entry.source] = entry.bid
		result.SortedSources[rank] = entry.source
	}

	return result
}
