// Package exchangeapi is the wire-protocol boundary of the auction engine:
// OpenRTB request validation, deadline extraction, response composition, and
// the codecs used on the bidder transport.
package exchangeapi

import (
	"fmt"
	"time"

	"github.com/prebid/openrtb/v20/openrtb2"
)

// DefaultTimeout bounds auctions whose request does not declare tmax.
const DefaultTimeout = 500 * time.Millisecond

// InvalidRequest marks a structurally malformed bid request. Callers map it
// to a client error; it never reaches aggregation.
type InvalidRequest struct {
	Reason string
}

func (e *InvalidRequest) Error() string {
	return e.Reason
}

// ValidateRequest rejects malformed opportunities before aggregation begins.
// The structural minimum is a request ID and at least one impression, each
// with its own ID.
func ValidateRequest(req *openrtb2.BidRequest) error {
	if req == nil {
		return &InvalidRequest{Reason: "request is empty"}
	}
	if req.ID == "" {
		return &InvalidRequest{Reason: `request missing required field: "id"`}
	}
	if len(req.Imp) == 0 {
		return &InvalidRequest{Reason: "request.imp must contain at least one element"}
	}
	for i := range req.Imp {
		if req.Imp[i].ID == "" {
			return &InvalidRequest{Reason: fmt.Sprintf(`request.imp[%d] missing required field: "id"`, i)}
		}
		if req.Imp[i].BidFloor < 0 {
			return &InvalidRequest{Reason: fmt.Sprintf("request.imp[%d].bidfloor must not be negative", i)}
		}
	}
	return nil
}

// Timeout returns the auction time budget: the request's tmax when declared,
// otherwise def, otherwise DefaultTimeout.
func Timeout(req *openrtb2.BidRequest, def time.Duration) time.Duration {
	if req != nil && req.TMax > 0 {
		return time.Duration(req.TMax) * time.Millisecond
	}
	if def > 0 {
		return def
	}
	return DefaultTimeout
}
