package dto

import (
	"stayquote/internal/domain/availability"
)

type ResolvedNight struct {
	Date     string `json:"date"`
	Type     string `json:"type"`
	Price    int64  `json:"price"`
	Currency string `json:"currency"`
	Bookable bool   `json:"bookable"`
}

type Quote struct {
	ScopeID       string          `json:"scope_id"`
	CheckIn       string          `json:"check_in"`
	CheckOut      string          `json:"check_out"`
	Nights        []ResolvedNight `json:"nights"`
	TotalPrice    int64           `json:"total_price"`
	Currency      string          `json:"currency"`
	Bookable      bool            `json:"bookable"`
	BlockingDates []string        `json:"blocking_dates"`
}

func MapQuote(scope availability.ScopeID, q availability.RangeQuote) Quote {
	nights := make([]ResolvedNight, 0, len(q.Nights))
	for _, n := range q.Nights {
		nights = append(nights, MapNight(n))
	}
	blocking := make([]string, 0, len(q.BlockingDates))
	for _, d := range q.BlockingDates {
		blocking = append(blocking, d.String())
	}
	return Quote{
		ScopeID:       string(scope),
		CheckIn:       q.CheckIn.String(),
		CheckOut:      q.CheckOut.String(),
		Nights:        nights,
		TotalPrice:    q.Total.Amount,
		Currency:      q.Total.Currency,
		Bookable:      q.Bookable,
		BlockingDates: blocking,
	}
}

func MapNight(n availability.ResolvedNight) ResolvedNight {
	return ResolvedNight{
		Date:     n.Date.String(),
		Type:     string(n.Type),
		Price:    n.Price.Amount,
		Currency: n.Price.Currency,
		Bookable: n.Bookable,
	}
}
