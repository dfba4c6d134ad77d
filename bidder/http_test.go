package bidder

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/peterldowns/testy/check"
	"github.com/prebid/openrtb/v20/openrtb2"

	"github.com/cloudx-io/openexchange/exchangeapi"
)

func testRequest() *openrtb2.BidRequest {
	return &openrtb2.BidRequest{
		ID:  "req1",
		Imp: []openrtb2.Imp{{ID: "imp1", BidFloor: 1.0}},
	}
}

func bidServer(t *testing.T, enc exchangeapi.Encoding, resp *openrtb2.BidResponse) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		check.Equal(t, enc.ContentType(), r.Header.Get("Content-Type"))

		data, err := exchangeapi.EncodeBidResponse(resp, enc)
		check.NoError(t, err)
		w.Header().Set("Content-Type", enc.ContentType())
		_, _ = w.Write(data)
	}))
}

func TestHTTPBidder_PricedBid(t *testing.T) {
	for _, enc := range []exchangeapi.Encoding{exchangeapi.EncodingJSON, exchangeapi.EncodingCBOR} {
		t.Run(string(enc), func(t *testing.T) {
			srv := bidServer(t, enc, &openrtb2.BidResponse{
				ID:  "req1",
				Cur: "USD",
				SeatBid: []openrtb2.SeatBid{{
					Seat: "dsp-east",
					Bid:  []openrtb2.Bid{{ID: "b1", ImpID: "imp1", Price: 25.0, AdM: "<div/>", W: 300, H: 250}},
				}},
			})
			defer srv.Close()

			b := NewHTTPBidder("dsp", srv.URL, enc, 0, srv.Client())
			bid, err := b.RequestBid(context.Background(), testRequest())

			check.NoError(t, err)
			check.NotNil(t, bid)
			check.Equal(t, "dsp-east", bid.Source) // declared seat identity wins
			check.Equal(t, 25.0, bid.Price)
			check.Equal(t, "imp1", bid.ImpID)
		})
	}
}

func TestHTTPBidder_DeclineViaNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	b := NewHTTPBidder("dsp", srv.URL, exchangeapi.EncodingJSON, 0, srv.Client())
	bid, err := b.RequestBid(context.Background(), testRequest())

	check.Nil(t, bid)
	check.True(t, errors.Is(err, ErrNoBid))
}

func TestHTTPBidder_DeclineViaEmptySeatBid(t *testing.T) {
	srv := bidServer(t, exchangeapi.EncodingJSON, &openrtb2.BidResponse{ID: "req1"})
	defer srv.Close()

	b := NewHTTPBidder("dsp", srv.URL, exchangeapi.EncodingJSON, 0, srv.Client())
	_, err := b.RequestBid(context.Background(), testRequest())

	check.True(t, errors.Is(err, ErrNoBid))
}

func TestHTTPBidder_UnpricedBidIsDecline(t *testing.T) {
	srv := bidServer(t, exchangeapi.EncodingJSON, &openrtb2.BidResponse{
		ID:      "req1",
		SeatBid: []openrtb2.SeatBid{{Seat: "dsp", Bid: []openrtb2.Bid{{ID: "b1", Price: 0}}}},
	})
	defer srv.Close()

	b := NewHTTPBidder("dsp", srv.URL, exchangeapi.EncodingJSON, 0, srv.Client())
	_, err := b.RequestBid(context.Background(), testRequest())

	check.True(t, errors.Is(err, ErrNoBid))
}

func TestHTTPBidder_ServerErrorIsNotNoBid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	b := NewHTTPBidder("dsp", srv.URL, exchangeapi.EncodingJSON, 0, srv.Client())
	_, err := b.RequestBid(context.Background(), testRequest())

	check.Error(t, err)
	check.False(t, errors.Is(err, ErrNoBid))
}

func TestHTTPBidder_TimeoutAborts(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()
	defer close(release)

	b := NewHTTPBidder("dsp", srv.URL, exchangeapi.EncodingJSON, 20*time.Millisecond, srv.Client())

	start := time.Now()
	_, err := b.RequestBid(context.Background(), testRequest())

	check.Error(t, err)
	check.False(t, errors.Is(err, ErrNoBid))
	check.True(t, time.Since(start) < time.Second)
}

func TestHTTPBidder_FallbackIdentityAndSize(t *testing.T) {
	srv := bidServer(t, exchangeapi.EncodingJSON, &openrtb2.BidResponse{
		ID:      "req1",
		SeatBid: []openrtb2.SeatBid{{Bid: []openrtb2.Bid{{Price: 3.5}}}},
	})
	defer srv.Close()

	b := NewHTTPBidder("dsp-west", srv.URL, exchangeapi.EncodingJSON, 0, srv.Client())
	bid, err := b.RequestBid(context.Background(), testRequest())

	check.NoError(t, err)
	check.Equal(t, "dsp-west", bid.Source) // configured name when no seat declared
	check.NotEqual(t, "", bid.ID)          // generated bid ID
	check.Equal(t, "imp1", bid.ImpID)
	check.Equal(t, int64(300), bid.W)
	check.Equal(t, int64(250), bid.H)
}
