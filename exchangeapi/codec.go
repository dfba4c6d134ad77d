package exchangeapi

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/prebid/openrtb/v20/openrtb2"
)

// Encoding selects the wire encoding used when talking to an external
// bidding endpoint. JSON is the interoperable default; CBOR is offered for
// endpoints that prefer a compact binary exchange.
type Encoding string

const (
	EncodingJSON Encoding = "json"
	EncodingCBOR Encoding = "cbor"
)

// ParseEncoding maps a configuration value onto an Encoding. The empty
// string means JSON.
func ParseEncoding(s string) (Encoding, error) {
	switch Encoding(s) {
	case "", EncodingJSON:
		return EncodingJSON, nil
	case EncodingCBOR:
		return EncodingCBOR, nil
	}
	return "", fmt.Errorf("unknown bidder encoding %q", s)
}

// ContentType returns the MIME type sent alongside the encoded payload.
func (e Encoding) ContentType() string {
	if e == EncodingCBOR {
		return "application/cbor"
	}
	return "application/json"
}

// EncodeBidRequest serializes a bid request for the bidder transport.
func EncodeBidRequest(req *openrtb2.BidRequest, enc Encoding) ([]byte, error) {
	if enc == EncodingCBOR {
		return cbor.Marshal(req)
	}
	return json.Marshal(req)
}

// DecodeBidRequest deserializes a bid request from the bidder transport.
func DecodeBidRequest(data []byte, enc Encoding) (*openrtb2.BidRequest, error) {
	var req openrtb2.BidRequest
	var err error
	if enc == EncodingCBOR {
		err = cbor.Unmarshal(data, &req)
	} else {
		err = json.Unmarshal(data, &req)
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// EncodeBidResponse serializes a bidder's response.
func EncodeBidResponse(resp *openrtb2.BidResponse, enc Encoding) ([]byte, error) {
	if enc == EncodingCBOR {
		return cbor.Marshal(resp)
	}
	return json.Marshal(resp)
}

// DecodeBidResponse deserializes a bidder's response.
func DecodeBidResponse(data []byte, enc Encoding) (*openrtb2.BidResponse, error) {
	var resp openrtb2.BidResponse
	var err error
	if enc == EncodingCBOR {
		err = cbor.Unmarshal(data, &resp)
	} else {
		err = json.Unmarshal(data, &resp)
	}
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
