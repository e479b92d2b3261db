package dto

import (
	"stayquote/internal/domain/availability"
	"stayquote/internal/domain/pricing"
)

type Profile struct {
	ScopeID         string `json:"scope_id"`
	BasePrice       int64  `json:"base_price"`
	BestDealPrice   int64  `json:"best_deal_price"`
	PeakSeasonPrice int64  `json:"peak_season_price"`
	Currency        string `json:"currency"`
}

func MapProfile(scope availability.ScopeID, p pricing.Profile) Profile {
	return Profile{
		ScopeID:         string(scope),
		BasePrice:       p.Base.Amount,
		BestDealPrice:   p.BestDeal.Amount,
		PeakSeasonPrice: p.PeakSeason.Amount,
		Currency:        p.Base.Currency,
	}
}
