package exchangeapi

import (
	"github.com/prebid/openrtb/v20/openrtb2"
)

// Standard banner size used when the impression omits explicit dimensions.
const (
	DefaultBannerW int64 = 300
	DefaultBannerH int64 = 250
)

// DefaultCurrency applies when neither the request nor the deployment
// configuration names one.
const DefaultCurrency = "USD"

// CreativeSize returns the banner dimensions declared by the impression,
// preferring the banner's own W/H, then its first format entry, and falling
// back to the standard 300x250 banner.
func CreativeSize(imp *openrtb2.Imp) (w, h int64) {
	if imp != nil && imp.Banner != nil {
		b := imp.Banner
		if b.W != nil && b.H != nil && *b.W > 0 && *b.H > 0 {
			return *b.W, *b.H
		}
		if len(b.Format) > 0 && b.Format[0].W > 0 && b.Format[0].H > 0 {
			return b.Format[0].W, b.Format[0].H
		}
	}
	return DefaultBannerW, DefaultBannerH
}

// DeviceCity returns the city of the request's device context, or "" when
// unknown. An unknown city never excludes a demand source.
func DeviceCity(req *openrtb2.BidRequest) string {
	if req == nil || req.Device == nil || req.Device.Geo == nil {
		return ""
	}
	return req.Device.Geo.City
}

// Currency returns the request's first declared currency, then def, then
// DefaultCurrency.
func Currency(req *openrtb2.BidRequest, def string) string {
	if req != nil && len(req.Cur) > 0 && req.Cur[0] != "" {
		return req.Cur[0]
	}
	if def != "" {
		return def
	}
	return DefaultCurrency
}
