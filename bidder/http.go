package bidder

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prebid/openrtb/v20/openrtb2"

	"github.com/cloudx-io/openexchange/core"
	"github.com/cloudx-io/openexchange/exchangeapi"
)

// Responses larger than this are treated as protocol failures.
const maxResponseBytes = 1 << 20

// HTTPBidder calls one external bidding endpoint. The endpoint receives the
// OpenRTB request in the configured encoding and answers with a bid response
// (HTTP 200) or a decline (HTTP 204 or an empty seatbid).
type HTTPBidder struct {
	name     string
	endpoint string
	encoding exchangeapi.Encoding
	timeout  time.Duration
	client   *http.Client
}

// NewHTTPBidder wires one endpoint. timeout, when positive, caps this
// endpoint's share of the auction deadline; client may be shared across
// bidders and defaults to http.DefaultClient.
func NewHTTPBidder(name, endpoint string, encoding exchangeapi.Encoding, timeout time.Duration, client *http.Client) *HTTPBidder {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPBidder{
		name:     name,
		endpoint: endpoint,
		encoding: encoding,
		timeout:  timeout,
		client:   client,
	}
}

func (b *HTTPBidder) Name() string {
	return b.name
}

func (b *HTTPBidder) RequestBid(ctx context.Context, req *openrtb2.BidRequest) (*core.Bid, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	body, err := exchangeapi.EncodeBidRequest(req, b.encoding)
	if err != nil {
		return nil, fmt.Errorf("bidder %s: encode request: %w", b.name, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("bidder %s: build request: %w", b.name, err)
	}
	httpReq.Header.Set("Content-Type", b.encoding.ContentType())
	httpReq.Header.Set("Accept", b.encoding.ContentType())

	httpResp, err := b.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("bidder %s: %w", b.name, err)
	}
	defer httpResp.Body.Close()

	switch httpResp.StatusCode {
	case http.StatusOK:
	case http.StatusNoContent:
		return nil, ErrNoBid
	default:
		return nil, fmt.Errorf("bidder %s: unexpected status %d", b.name, httpResp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("bidder %s: read response: %w", b.name, err)
	}

	resp, err := exchangeapi.DecodeBidResponse(data, b.encoding)
	if err != nil {
		return nil, fmt.Errorf("bidder %s: decode response: %w", b.name, err)
	}

	return b.toCandidate(req, resp)
}

// toCandidate extracts the first bid of the first seat. An empty or
// unpriced response is a decline.
func (b *HTTPBidder) toCandidate(req *openrtb2.BidRequest, resp *openrtb2.BidResponse) (*core.Bid, error) {
	if resp == nil || len(resp.SeatBid) == 0 || len(resp.SeatBid[0].Bid) == 0 {
		return nil, ErrNoBid
	}

	seat := resp.SeatBid[0]
	wire := seat.Bid[0]
	if wire.Price <= 0 {
		return nil, ErrNoBid
	}

	// Prefer the declared seat identity; fall back to the configured name.
	source := seat.Seat
	if source == "" {
		source = b.name
	}
	bidID := wire.ID
	if bidID == "" {
		bidID = uuid.NewString()
	}
	impID := wire.ImpID
	if impID == "" {
		impID = req.Imp[0].ID
	}

	w, h := wire.W, wire.H
	if w == 0 || h == 0 {
		w, h = exchangeapi.CreativeSize(&req.Imp[0])
	}

	return &core.Bid{
		ID:         bidID,
		Source:     source,
		ImpID:      impID,
		Price:      wire.Price,
		Currency:   exchangeapi.Currency(req, resp.Cur),
		CreativeID: wire.CrID,
		AdMarkup:   wire.AdM,
		W:          w,
		H:          h,
	}, nil
}
