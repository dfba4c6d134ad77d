// Package demand reads internal demand sources (budgeted campaigns owned by
// the campaign-management subsystem) and converts them into candidate bids.
// Everything here is read-only: the auction engine never mutates demand
// state.
package demand

import (
	"strings"
)

// StatusActive marks sources eligible to bid. The campaign-management
// subsystem owns the status lifecycle.
const StatusActive = "active"

// Targeting restricts where a source's ads may serve. A nil or empty slice
// means no restriction on that dimension.
type Targeting struct {
	Cities    []string `bson:"cities,omitempty" json:"cities,omitempty"`
	Interests []string `bson:"interests,omitempty" json:"interests,omitempty"`
}

// Creative is the renderable ad attached to a source.
type Creative struct {
	ID       string `bson:"id" json:"id"`
	AdMarkup string `bson:"adm" json:"adm"`
	W        int64  `bson:"w,omitempty" json:"w,omitempty"`
	H        int64  `bson:"h,omitempty" json:"h,omitempty"`
}

// Source is one internal campaign able to offer a candidate bid: a ceiling
// price, optional targeting, and at least one creative.
type Source struct {
	ID          string     `bson:"_id" json:"id"`
	Name        string     `bson:"name" json:"name"`
	Status      string     `bson:"status" json:"status"`
	MaxBid      float64    `bson:"max_bid" json:"max_bid"` // ceiling CPM
	DailyBudget float64    `bson:"daily_budget" json:"daily_budget"`
	Targeting   Targeting  `bson:"targeting,omitempty" json:"targeting,omitempty"`
	Creatives   []Creative `bson:"creatives,omitempty" json:"creatives,omitempty"`
}

// AllowsCity reports whether the source may serve in the given city. A
// source with no city allow-list is eligible everywhere, and an unknown
// device city never excludes a source.
func (s *Source) AllowsCity(city string) bool {
	if len(s.Targeting.Cities) == 0 || city == "" {
		return true
	}
	for _, c := range s.Targeting.Cities {
		if strings.EqualFold(c, city) {
			return true
		}
	}
	return false
}

// UsableCreative returns the first creative with markup, or nil when the
// source has nothing to render.
func (s *Source) UsableCreative() *Creative {
	for i := range s.Creatives {
		if s.Creatives[i].AdMarkup != "" {
			return &s.Creatives[i]
		}
	}
	return nil
}
