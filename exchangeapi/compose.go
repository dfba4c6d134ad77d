package exchangeapi

import (
	"github.com/prebid/openrtb/v20/openrtb2"

	"github.com/cloudx-io/openexchange/core"
)

// ComposeResponse maps a resolved auction onto the wire response: the
// request ID is echoed, the currency set, and exactly one seat with exactly
// one bid is emitted. The bid's price is the clearing price, never the raw
// winning bid; the seat carries the winning source's identity.
//
// A no-bid outcome has no response at all; callers signal it out of band
// (HTTP 204) so "nobody won" stays distinguishable from an empty response.
func ComposeResponse(req *openrtb2.BidRequest, winner *core.Bid, clearingPrice float64, currency string) *openrtb2.BidResponse {
	bid := openrtb2.Bid{
		ID:    winner.ID,
		ImpID: winner.ImpID,
		Price: clearingPrice,
		AdM:   winner.AdMarkup,
		CrID:  winner.CreativeID,
		W:     winner.W,
		H:     winner.H,
	}

	return &openrtb2.BidResponse{
		ID:  req.ID,
		Cur: currency,
		SeatBid: []openrtb2.SeatBid{
			{
				Seat: winner.Source,
				Bid:  []openrtb2.Bid{bid},
			},
		},
	}
}
