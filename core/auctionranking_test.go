package core

import (
	"testing"

	"github.com/peterldowns/testy/check"
)

func TestRankBids_Integration(t *testing.T) {
	bids := []Bid{
		{ID: "bid_a_001", Source: "source_a", Price: 2.50},
		{ID: "bid_b_001", Source: "source_b", Price: 2.25},
		{ID: "bid_c_001", Source: "source_c", Price: 2.75},
	}

	result := RankBids(bids)

	check.Equal(t, 3, len(result.SortedSources))
	check.Equal(t, "source_c", result.SortedSources[0]) // Highest (2.75)
	check.Equal(t, "source_a", result.SortedSources[1]) // Middle (2.50)
	check.Equal(t, "source_b", result.SortedSources[2]) // Lowest (2.25)

	check.Equal(t, 2.75, result.HighestBids["source_c"].Price)
	check.Equal(t, 2.50, result.HighestBids["source_a"].Price)
	check.Equal(t, 2.25, result.HighestBids["source_b"].Price)

	check.Equal(t, 1, result.Ranks["source_c"])
	check.Equal(t, 2, result.Ranks["source_a"])
	check.Equal(t, 3, result.Ranks["source_b"])
}

func TestRankBids_SingleBid(t *testing.T) {
	bids := []Bid{
		{ID: "bid1", Source: "source_a", Price: 2.00},
	}

	result := RankBids(bids)

	check.Equal(t, 1, len(result.SortedSources))
	check.Equal(t, "source_a", result.SortedSources[0])
	check.Equal(t, 2.00, result.HighestBids["source_a"].Price)
}

func TestRankBids_EmptyBids(t *testing.T) {
	result := RankBids([]Bid{})

	check.NotNil(t, result)
	check.Equal(t, 0, len(result.SortedSources))
	check.Equal(t, 0, len(result.HighestBids))
	check.Equal(t, 0, len(result.Ranks))
}

func TestRankBids_HighestBidPerSource(t *testing.T) {
	// Multiple bids from one source collapse to that source's highest.
	bids := []Bid{
		{ID: "bid1", Source: "source_a", Price: 1.00},
		{ID: "bid2", Source: "source_a", Price: 3.00},
		{ID: "bid3", Source: "source_a", Price: 2.00},
		{ID: "bid4", Source: "source_b", Price: 2.50},
	}

	result := RankBids(bids)

	check.Equal(t, 2, len(result.SortedSources))
	check.Equal(t, "source_a", result.SortedSources[0])
	check.Equal(t, "bid2", result.HighestBids["source_a"].ID)
	check.Equal(t, 3.00, result.HighestBids["source_a"].Price)
}

func TestRankBids_TieBreakIsLexicographic(t *testing.T) {
	bids := []Bid{
		{ID: "bid1", Source: "source_b", Price: 2.50},
		{ID: "bid2", Source: "source_a", Price: 2.50},
		{ID: "bid3", Source: "source_c", Price: 1.00},
	}

	result := RankBids(bids)

	check.Equal(t, 3, len(result.SortedSources))
	check.Equal(t, "source_a", result.SortedSources[0])
	check.Equal(t, "source_b", result.SortedSources[1])
	check.Equal(t, "source_c", result.SortedSources[2])
}

func TestRankBids_TieBreakIsDeterministic(t *testing.T) {
	// Repeated runs over permuted input always produce the same ranking.
	permutations := [][]Bid{
		{
			{ID: "bid1", Source: "zeta", Price: 4.0},
			{ID: "bid2", Source: "alpha", Price: 4.0},
			{ID: "bid3", Source: "mu", Price: 4.0},
		},
		{
			{ID: "bid3", Source: "mu", Price: 4.0},
			{ID: "bid1", Source: "zeta", Price: 4.0},
			{ID: "bid2", Source: "alpha", Price: 4.0},
		},
		{
			{ID: "bid2", Source: "alpha", Price: 4.0},
			{ID: "bid3", Source: "mu", Price: 4.0},
			{ID: "bid1", Source: "zeta", Price: 4.0},
		},
	}

	for _, bids := range permutations {
		result := RankBids(bids)
		check.Equal(t, []string{"alpha", "mu", "zeta"}, result.SortedSources)
	}
}

func TestRankBids_ThreeWayTieBelowWinner(t *testing.T) {
	bids := []Bid{
		{ID: "bid1", Source: "source_d", Price: 5.00},
		{ID: "bid2", Source: "source_c", Price: 2.50},
		{ID: "bid3", Source: "source_b", Price: 2.50},
		{ID: "bid4", Source: "source_a", Price: 2.50},
	}

	result := RankBids(bids)

	check.Equal(t, []string{"source_d", "source_a", "source_b", "source_c"}, result.SortedSources)
}
