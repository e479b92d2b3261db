package dto

import (
	"stayquote/internal/domain/availability"
)

type Calendar struct {
	ScopeID string          `json:"scope_id"`
	From    string          `json:"from"`
	To      string          `json:"to"`
	Nights  []ResolvedNight `json:"nights"`
}

func MapCalendar(scope availability.ScopeID, from, to string, nights []availability.ResolvedNight) Calendar {
	mapped := make([]ResolvedNight, 0, len(nights))
	for _, n := range nights {
		mapped = append(mapped, MapNight(n))
	}
	return Calendar{ScopeID: string(scope), From: from, To: to, Nights: mapped}
}
