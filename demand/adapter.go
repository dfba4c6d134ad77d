package demand

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/prebid/openrtb/v20/openrtb2"

	"github.com/cloudx-io/openexchange/core"
	"github.com/cloudx-io/openexchange/exchangeapi"
)

// Adapter converts eligible internal demand into candidate bids for one
// opportunity. Per-source problems (targeting mismatch, missing creative,
// shaded price below floor) skip the source; only a total store failure
// returns an error, which the aggregator degrades to zero candidates.
type Adapter struct {
	reader        Reader
	shadingFactor float64
}

func NewAdapter(reader Reader, shadingFactor float64) *Adapter {
	if shadingFactor <= 0 || shadingFactor > 1 {
		shadingFactor = core.DefaultShadingFactor
	}
	return &Adapter{
		reader:        reader,
		shadingFactor: shadingFactor,
	}
}

// CandidateBids returns one bid per eligible source for the request's first
// impression.
func (a *Adapter) CandidateBids(ctx context.Context, req *openrtb2.BidRequest) ([]core.Bid, error) {
	sources, err := a.reader.ListActiveSources(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active demand sources: %w", err)
	}

	imp := &req.Imp[0]
	city := exchangeapi.DeviceCity(req)
	w, h := exchangeapi.CreativeSize(imp)
	currency := exchangeapi.Currency(req, "")

	bids := make([]core.Bid, 0, len(sources))
	for i := range sources {
		src := &sources[i]
		if src.MaxBid <= 0 {
			continue
		}
		if !src.AllowsCity(city) {
			continue
		}
		creative := src.UsableCreative()
		if creative == nil {
			// Nothing to render; the source cannot serve an ad.
			continue
		}

		price := core.ShadePrice(src.MaxBid, a.shadingFactor)
		if imp.BidFloor > 0 && !core.BidMeetsFloor(price, imp.BidFloor) {
			continue
		}

		bids = append(bids, core.Bid{
			ID:         uuid.NewString(),
			Source:     src.ID,
			ImpID:      imp.ID,
			Price:      price,
			Currency:   currency,
			CreativeID: creative.ID,
			AdMarkup:   creative.AdMarkup,
			W:          w,
			H:          h,
		})
	}
	return bids, nil
}
