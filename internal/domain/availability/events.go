package availability

import (
	"time"

	"stayquote/internal/domain/pricing"
	"stayquote/internal/domain/shared/daterange"
)

type OverrideApplied struct {
	Scope    string
	Date     daterange.Date
	Type     pricing.PriceType
	HasPrice bool
	At       time.Time
}

func (e OverrideApplied) EventName() string     { return "calendar.override_applied" }
func (e OverrideApplied) AggregateID() string   { return e.Scope }
func (e OverrideApplied) OccurredAt() time.Time { return e.At }

type ProfileUpdated struct {
	Scope          string
	BaseAmount     int64
	BestDealAmount int64
	PeakAmount     int64
	Currency       string
	At             time.Time
}

func (e ProfileUpdated) EventName() string     { return "pricing.profile_updated" }
func (e ProfileUpdated) AggregateID() string   { return e.Scope }
func (e ProfileUpdated) OccurredAt() time.Time { return e.At }

func OverrideAppliedEvent(scope ScopeID, o Override, at time.Time) OverrideApplied {
	return OverrideApplied{
		Scope:    string(scope),
		Date:     o.Date,
		Type:     o.Type,
		HasPrice: o.Price != nil,
		At:       at,
	}
}

func ProfileUpdatedEvent(scope ScopeID, p pricing.Profile, at time.Time) ProfileUpdated {
	return ProfileUpdated{
		Scope:          string(scope),
		BaseAmount:     p.Base.Amount,
		BestDealAmount: p.BestDeal.Amount,
		PeakAmount:     p.PeakSeason.Amount,
		Currency:       p.Base.Currency,
		At:             at,
	}
}
