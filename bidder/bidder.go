// Package bidder defines the external demand-source contract and its HTTP
// implementation. Each configured external endpoint is one Bidder; failures
// and timeouts are the caller's to degrade, never to propagate.
package bidder

import (
	"context"
	"errors"

	"github.com/prebid/openrtb/v20/openrtb2"

	"github.com/cloudx-io/openexchange/core"
)

// ErrNoBid is returned when a bidder declines the opportunity. It is a
// clean outcome, distinct from transport or protocol failures.
var ErrNoBid = errors.New("bidder declined to bid")

// Bidder solicits one candidate bid from one external demand source.
type Bidder interface {
	Name() string

	// RequestBid carries the opportunity to the bidder and returns its
	// priced candidate. ErrNoBid means the bidder declined; any other error
	// is a failure the caller treats as a decline after logging it.
	RequestBid(ctx context.Context, req *openrtb2.BidRequest) (*core.Bid, error)
}
