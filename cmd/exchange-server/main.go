package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang/glog"
	"github.com/julienschmidt/httprouter"
	"github.com/prebid/openrtb/v20/openrtb2"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cloudx-io/openexchange/bidder"
	"github.com/cloudx-io/openexchange/config"
	"github.com/cloudx-io/openexchange/demand"
	"github.com/cloudx-io/openexchange/exchange"
	"github.com/cloudx-io/openexchange/exchangeapi"
)

const maxRequestBytes = 1 << 20

func main() {
	flag.Parse() // glog flags

	v := viper.New()
	config.SetupViper(v, "openexchange")
	cfg, err := config.New(v)
	if err != nil {
		glog.Exitf("configuration error: %v", err)
	}

	reader, err := newDemandReader(cfg)
	if err != nil {
		glog.Exitf("demand store error: %v", err)
	}

	bidders, err := newBidders(cfg)
	if err != nil {
		glog.Exitf("bidder configuration error: %v", err)
	}

	ex := exchange.New(
		demand.NewAdapter(reader, cfg.Auction.ShadingFactor),
		bidders,
		exchange.Options{
			DefaultTimeout:  cfg.Auction.DefaultTimeout(),
			PriceIncrement:  cfg.Auction.PriceIncrement,
			DefaultCurrency: cfg.Auction.DefaultCurrency,
		},
	)

	router := httprouter.New()
	router.POST("/openrtb2/auction", handleAuction(ex))
	router.GET("/status", handleStatus)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	glog.Infof("openexchange listening on %s (%d external bidder(s))", addr, len(bidders))
	glog.Exit(http.ListenAndServe(addr, router))
}

// handleAuction maps auction outcomes onto the wire: 400 for malformed
// requests, 204 for a clean no-bid, 200 with a bid response for a win.
func handleAuction(ex *exchange.Exchange) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		defer r.Body.Close()

		body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}

		var req openrtb2.BidRequest
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
			return
		}

		resp, err := ex.HoldAuction(r.Context(), &req)
		if err != nil {
			var invalid *exchangeapi.InvalidRequest
			if errors.As(err, &invalid) {
				http.Error(w, invalid.Error(), http.StatusBadRequest)
				return
			}
			glog.Errorf("auction %s failed: %v", req.ID, err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if resp == nil {
			// Ran the auction, nobody won.
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			glog.Errorf("auction %s: failed to write response: %v", resp.ID, err)
		}
	}
}

func handleStatus(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.WriteHeader(http.StatusNoContent)
}

// newDemandReader connects to the campaign-management store, or serves an
// empty in-memory snapshot when none is configured.
func newDemandReader(cfg *config.Config) (demand.Reader, error) {
	if cfg.Mongo.URI == "" {
		glog.Warning("no mongo.uri configured; using empty in-memory demand store")
		return demand.NewMemoryReader(nil), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	reader := demand.NewMongoReader(client, cfg.Mongo.Database, cfg.Mongo.Collection)
	if err := reader.EnsureIndexes(ctx); err != nil {
		glog.Warningf("failed to ensure demand source indexes: %v", err)
	}
	return reader, nil
}

func newBidders(cfg *config.Config) ([]bidder.Bidder, error) {
	// One shared client: per-call deadlines come from the auction context.
	client := &http.Client{}

	bidders := make([]bidder.Bidder, 0, len(cfg.Bidders))
	for _, bc := range cfg.Bidders {
		encoding, err := exchangeapi.ParseEncoding(bc.Encoding)
		if err != nil {
			return nil, fmt.Errorf("bidder %s: %w", bc.Name, err)
		}
		bidders = append(bidders, bidder.NewHTTPBidder(bc.Name, bc.Endpoint, encoding, bc.Timeout(), client))
	}
	return bidders, nil
}
