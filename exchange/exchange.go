// Package exchange orchestrates one second-price auction per bid request:
// validation, concurrent aggregation of internal and external demand under
// the request deadline, resolution, and response composition.
package exchange

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/golang/glog"
	"github.com/prebid/openrtb/v20/openrtb2"

	"github.com/cloudx-io/openexchange/bidder"
	"github.com/cloudx-io/openexchange/core"
	"github.com/cloudx-io/openexchange/demand"
	"github.com/cloudx-io/openexchange/exchangeapi"
)

// internalAdapterName labels the internal demand adapter in degradation logs.
const internalAdapterName = "internal"

// AdapterResult is the outcome of one adapter: candidates or a failure.
// A failed adapter degrades to zero candidates; the error is carried so the
// aggregator can log it and tests can tell "zero bids" from "adapter
// errored".
type AdapterResult struct {
	Name string
	Bids []core.Bid
	Err  error
}

// Options carries the deployment-tunable auction parameters.
type Options struct {
	// DefaultTimeout applies when the request declares no tmax.
	DefaultTimeout time.Duration
	// PriceIncrement is the minimal currency increment added to the
	// runner-up's price. Zero means core.DefaultPriceIncrement.
	PriceIncrement float64
	// DefaultCurrency applies when the request declares no currency.
	DefaultCurrency string
}

// Exchange resolves bid opportunities. It holds no per-request state and is
// safe for arbitrarily many concurrent auctions.
type Exchange struct {
	internal *demand.Adapter
	bidders  []bidder.Bidder
	opts     Options
}

func New(internal *demand.Adapter, bidders []bidder.Bidder, opts Options) *Exchange {
	return &Exchange{
		internal: internal,
		bidders:  bidders,
		opts:     opts,
	}
}

// HoldAuction runs one auction. A nil response with a nil error is the
// no-bid outcome: the auction ran and nobody won. An *exchangeapi.
// InvalidRequest error means the request never reached aggregation.
func (e *Exchange) HoldAuction(ctx context.Context, req *openrtb2.BidRequest) (*openrtb2.BidResponse, error) {
	if err := exchangeapi.ValidateRequest(req); err != nil {
		return nil, err
	}

	// tmax is the whole-request budget; everything past it is abandoned.
	ctx, cancel := context.WithTimeout(ctx, exchangeapi.Timeout(req, e.opts.DefaultTimeout))
	defer cancel()

	candidates := e.collectBids(ctx, req)
	if len(candidates) == 0 {
		glog.V(1).Infof("auction %s: no eligible bids", req.ID)
		return nil, nil
	}

	imp := &req.Imp[0]
	result := core.RunAuction(candidates, imp.BidFloor, e.opts.PriceIncrement)
	if result.Winner == nil {
		glog.V(1).Infof("auction %s: %d candidate(s), none cleared the floor %.4f",
			req.ID, len(candidates), imp.BidFloor)
		return nil, nil
	}

	if glog.V(2) {
		glog.Infof("auction %s: winner=%s bid=%.4f clearing=%.4f candidates=%d rejected=%d hash=%s",
			req.ID, result.Winner.Source, result.Winner.Price, result.ClearingPrice,
			len(candidates), len(result.FloorRejectedBidIDs),
			core.ComputeOutcomeHash(req.ID, result.Winner, result.ClearingPrice))
	}

	currency := exchangeapi.Currency(req, e.opts.DefaultCurrency)
	return exchangeapi.ComposeResponse(req, result.Winner, result.ClearingPrice, currency), nil
}

// collectBids fans out to the internal adapter and every external bidder
// concurrently and fans their candidates back in. Adapters still
// outstanding when ctx expires are abandoned: the channel is buffered for
// every producer, so late sends never block and their results are simply
// never read.
func (e *Exchange) collectBids(ctx context.Context, req *openrtb2.BidRequest) []core.Bid {
	pending := len(e.bidders) + 1
	results := make(chan AdapterResult, pending)

	go func() {
		results <- e.internalBids(ctx, req)
	}()
	for _, b := range e.bidders {
		go func(b bidder.Bidder) {
			results <- e.externalBid(ctx, b, req)
		}(b)
	}

	candidates := make([]core.Bid, 0, pending)
	for pending > 0 {
		select {
		case r := <-results:
			pending--
			if r.Err != nil {
				glog.Warningf("auction %s: adapter %s degraded to no bid: %v", req.ID, r.Name, r.Err)
				continue
			}
			candidates = append(candidates, r.Bids...)
		case <-ctx.Done():
			glog.Warningf("auction %s: deadline elapsed with %d adapter(s) outstanding", req.ID, pending)
			return candidates
		}
	}
	return candidates
}

func (e *Exchange) internalBids(ctx context.Context, req *openrtb2.BidRequest) (res AdapterResult) {
	res.Name = internalAdapterName
	defer recoverAdapterPanic(req.ID, internalAdapterName, &res)

	bids, err := e.internal.CandidateBids(ctx, req)
	res.Bids, res.Err = bids, err
	return res
}

func (e *Exchange) externalBid(ctx context.Context, b bidder.Bidder, req *openrtb2.BidRequest) (res AdapterResult) {
	res.Name = b.Name()
	defer recoverAdapterPanic(req.ID, res.Name, &res)

	bid, err := b.RequestBid(ctx, req)
	if err != nil {
		if errors.Is(err, bidder.ErrNoBid) {
			return res // clean decline
		}
		res.Err = err
		return res
	}
	if bid == nil {
		return res
	}

	// External prices get the same floor check internal demand gets.
	floor := req.Imp[0].BidFloor
	if floor > 0 && !core.BidMeetsFloor(bid.Price, floor) {
		glog.V(2).Infof("auction %s: bidder %s price %.4f below floor %.4f", req.ID, res.Name, bid.Price, floor)
		return res
	}

	res.Bids = []core.Bid{*bid}
	return res
}

// A panicking adapter must not take the auction down with it.
func recoverAdapterPanic(requestID, name string, res *AdapterResult) {
	if r := recover(); r != nil {
		glog.Errorf("auction %s: recovered panic from adapter %s: %v\n%s", requestID, name, r, debug.Stack())
		res.Bids = nil
		res.Err = fmt.Errorf("adapter %s panicked: %v", name, r)
	}
}
