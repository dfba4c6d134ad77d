package core

// Bid represents a single candidate bid in the auction system.
// Candidates are ephemeral: they exist for the lifetime of one auction
// resolution and are never persisted.
type Bid struct {
	ID         string  `json:"id"`
	Source     string  `json:"source"` // internal campaign ID or external bidder name
	ImpID      string  `json:"imp_id"`
	Price      float64 `json:"price"` // CPM in the request currency
	Currency   string  `json:"currency"`
	CreativeID string  `json:"creative_id,omitempty"`
	AdMarkup   string  `json:"adm,omitempty"`
	W          int64   `json:"w,omitempty"`
	H          int64   `json:"h,omitempty"`
}

// RankingResult contains the ranked sources and their highest bids.
type RankingResult struct {
	Ranks         map[string]int  `json:"ranks"`
	HighestBids   map[string]*Bid `json:"highest_bids"`
	SortedSources []string        `json:"sorted_sources"`
}

// AuctionResult contains the complete results of running one auction.
type AuctionResult struct {
	// Winner is the highest-ranked bid (nil if no valid bids)
	Winner *Bid

	// RunnerUp is the second-highest-ranked bid (nil if less than 2 valid bids)
	RunnerUp *Bid

	// ClearingPrice is the price the winner actually pays. Zero when there
	// is no winner.
	ClearingPrice float64

	// EligibleBids contains all bids that passed floor enforcement and were
	// included in ranking
	EligibleBids []Bid

	// FloorRejectedBidIDs contains IDs of bids that failed floor enforcement
	FloorRejectedBidIDs []string
}
