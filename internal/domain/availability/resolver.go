package availability

import (
	"stayquote/internal/domain/pricing"
	"stayquote/internal/domain/shared/daterange"
	"stayquote/internal/domain/shared/money"
)

// ResolvedNight is the effective price and status of one calendar date.
// Sold-out nights keep their price populated for display even though they
// cannot be booked.
type ResolvedNight struct {
	Date     daterange.Date
	Type     pricing.PriceType
	Price    money.Money
	Bookable bool
}

// RangeQuote is the ephemeral result of pricing a stay. A non-bookable quote
// is a normal outcome, not an error: BlockingDates lists every sold-out night
// in ascending order so callers can surface all conflicts at once.
type RangeQuote struct {
	CheckIn       daterange.Date
	CheckOut      daterange.Date
	Nights        []ResolvedNight
	Total         money.Money
	Bookable      bool
	BlockingDates []daterange.Date
}

// Resolve determines the effective (price, status) of a single date.
//
// The override's type is authoritative when present. The price falls back in
// two levels: the override's explicit price, then the tier price derived from
// the type, then the base rate for dates with no override at all. Bulk-seeded
// calendars can therefore store only a status and lean on the profile for the
// number, while a specific date may still carry a bespoke price.
//
// Pure and idempotent; safe to memoize by (scope, date).
func Resolve(profile pricing.ValidatedProfile, overrides Overrides, date daterange.Date) (ResolvedNight, error) {
	if profile.IsZero() {
		return ResolvedNight{}, pricing.ErrProfileInvalid
	}

	override, ok := overrides[date]
	if !ok {
		return ResolvedNight{
			Date:     date,
			Type:     pricing.TypeAvailable,
			Price:    profile.Profile().Base,
			Bookable: true,
		}, nil
	}

	price := money.Money{}
	if override.Price != nil {
		price = *override.Price
	} else {
		tier, err := profile.TierPrice(override.Type)
		if err != nil {
			return ResolvedNight{}, err
		}
		price = tier
	}

	return ResolvedNight{
		Date:     date,
		Type:     override.Type,
		Price:    price,
		Bookable: override.Type.Bookable(),
	}, nil
}

// QuoteRange resolves every night of the half-open stay [checkIn, checkOut)
// in ascending order and aggregates the result. The range must already have
// passed daterange validation, so it always covers at least one night.
func QuoteRange(profile pricing.ValidatedProfile, overrides Overrides, dr daterange.DateRange) (RangeQuote, error) {
	if profile.IsZero() {
		return RangeQuote{}, pricing.ErrProfileInvalid
	}
	if err := dr.Validate(); err != nil {
		return RangeQuote{}, err
	}

	quote := RangeQuote{
		CheckIn:  dr.CheckIn,
		CheckOut: dr.CheckOut,
		Nights:   make([]ResolvedNight, 0, dr.Nights()),
		Bookable: true,
	}

	for _, date := range dr.Dates() {
		night, err := Resolve(profile, overrides, date)
		if err != nil {
			return RangeQuote{}, err
		}
		quote.Nights = append(quote.Nights, night)

		if quote.Total.Currency == "" {
			quote.Total = night.Price
		} else {
			total, err := quote.Total.Add(night.Price)
			if err != nil {
				return RangeQuote{}, err
			}
			quote.Total = total
		}

		if !night.Bookable {
			quote.Bookable = false
			quote.BlockingDates = append(quote.BlockingDates, night.Date)
		}
	}

	return quote, nil
}
