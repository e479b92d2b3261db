package pricing

import (
	"errors"

	"stayquote/internal/domain/shared/money"
)

var (
	ErrNonPositivePrice  = errors.New("pricing: prices must be strictly positive")
	ErrInvalidBestDeal   = errors.New("pricing: best deal price must be below the base price")
	ErrInvalidPeakSeason = errors.New("pricing: peak season price must be above the base price")
	ErrProfileInvalid    = errors.New("pricing: profile has not passed validation")
	ErrUnknownPriceType  = errors.New("pricing: unknown price type")
)

// PriceType tags a calendar date with exactly one pricing status.
type PriceType string

const (
	TypeAvailable  PriceType = "available"
	TypeSoldOut    PriceType = "sold_out"
	TypePeakSeason PriceType = "peak_season"
	TypeBestDeal   PriceType = "best_deal"
)

// Valid reports whether the tag belongs to the closed set.
func (t PriceType) Valid() bool {
	switch t {
	case TypeAvailable, TypeSoldOut, TypePeakSeason, TypeBestDeal:
		return true
	}
	return false
}

// Bookable reports whether a night carrying this tag can be booked.
// Sold-out nights keep their price for display but are not bookable.
func (t PriceType) Bookable() bool {
	return t != TypeSoldOut
}

// Profile holds the three named price tiers of a scope. The seasonal tiers
// bound guest-facing pricing on either side of the base rate: best deal must
// always save money, peak season must always cost more.
type Profile struct {
	Base       money.Money
	BestDeal   money.Money
	PeakSeason money.Money
}

// Validate enforces the tier inequality bestDeal < base < peakSeason and
// rejects non-positive amounts. It is a hard precondition for resolution,
// not a warning.
func (p Profile) Validate() error {
	if !p.Base.IsPositive() || !p.BestDeal.IsPositive() || !p.PeakSeason.IsPositive() {
		return ErrNonPositivePrice
	}
	dealBelow, err := p.BestDeal.LessThan(p.Base)
	if err != nil {
		return err
	}
	if !dealBelow {
		return ErrInvalidBestDeal
	}
	baseBelow, err := p.Base.LessThan(p.PeakSeason)
	if err != nil {
		return err
	}
	if !baseBelow {
		return ErrInvalidPeakSeason
	}
	return nil
}

// ValidatedProfile is a Profile that passed Validate. Resolution accepts only
// this type, so the inequality check runs once per profile write instead of
// once per night.
type ValidatedProfile struct {
	profile Profile
}

// NewValidatedProfile runs validation and wraps the profile on success.
func NewValidatedProfile(p Profile) (ValidatedProfile, error) {
	if err := p.Validate(); err != nil {
		return ValidatedProfile{}, err
	}
	return ValidatedProfile{profile: p}, nil
}

// IsZero reports whether the value was built without passing validation.
func (v ValidatedProfile) IsZero() bool {
	return v.profile == (Profile{})
}

// Profile returns the underlying tier triple.
func (v ValidatedProfile) Profile() Profile {
	return v.profile
}

// TierPrice maps a status tag to its nightly amount. Sold-out and available
// nights bill at the base rate.
func (v ValidatedProfile) TierPrice(t PriceType) (money.Money, error) {
	switch t {
	case TypeBestDeal:
		return v.profile.BestDeal, nil
	case TypePeakSeason:
		return v.profile.PeakSeason, nil
	case TypeAvailable, TypeSoldOut:
		return v.profile.Base, nil
	default:
		return money.Money{}, ErrUnknownPriceType
	}
}
