package availability

import (
	"context"
	"errors"
	"time"

	"stayquote/internal/domain/pricing"
	"stayquote/internal/domain/shared/daterange"
	"stayquote/internal/domain/shared/events"
	"stayquote/internal/domain/shared/money"
)

var (
	ErrCalendarNotFound = errors.New("availability: calendar not found")
	ErrInvalidOverride  = errors.New("availability: override needs a date and a known price type")
)

// ScopeID identifies the property or room a calendar belongs to.
type ScopeID string

// Override pins a single date to a status and, optionally, a bespoke price
// independent of the three standard tiers (holiday surcharges and the like).
type Override struct {
	Date  daterange.Date
	Type  pricing.PriceType
	Price *money.Money
}

func (o Override) validate() error {
	if o.Date.IsZero() || !o.Type.Valid() {
		return ErrInvalidOverride
	}
	return nil
}

// Overrides is the collapsed per-date view of a calendar, at most one entry
// per date.
type Overrides map[daterange.Date]Override

// CollapseOverrides reduces an append-only entry log to one override per
// date. Upstream seed data carries no uniqueness guarantee, so duplicates are
// resolved explicitly: the most recently written entry wins.
func CollapseOverrides(entries []Override) Overrides {
	out := make(Overrides, len(entries))
	for _, e := range entries {
		out[e.Date] = e
	}
	return out
}

// Calendar is the pricing/availability aggregate for one scope: the tier
// profile plus the append-only override log written by pricing-management
// flows.
type Calendar struct {
	Scope   ScopeID
	Profile pricing.Profile
	Entries []Override
	Version int64
	events.EventRecorder

	validated pricing.ValidatedProfile
}

// Repository loads and stores calendars. The resolution engine itself only
// ever reads through it.
type Repository interface {
	Calendar(ctx context.Context, scope ScopeID) (*Calendar, error)
	Save(ctx context.Context, calendar *Calendar) error
}

// NewCalendar builds a calendar with a validated profile.
func NewCalendar(scope ScopeID, profile pricing.Profile) (*Calendar, error) {
	validated, err := pricing.NewValidatedProfile(profile)
	if err != nil {
		return nil, err
	}
	return &Calendar{Scope: scope, Profile: profile, validated: validated}, nil
}

// SetProfile replaces the tier profile. Invalid profiles are rejected before
// they can reach resolution.
func (c *Calendar) SetProfile(profile pricing.Profile, now time.Time) error {
	validated, err := pricing.NewValidatedProfile(profile)
	if err != nil {
		return err
	}
	c.Profile = profile
	c.validated = validated
	c.Record(ProfileUpdatedEvent(c.Scope, profile, now))
	return nil
}

// Apply appends one override to the entry log.
func (c *Calendar) Apply(o Override, now time.Time) error {
	if err := o.validate(); err != nil {
		return err
	}
	c.Entries = append(c.Entries, o)
	c.Record(OverrideAppliedEvent(c.Scope, o, now))
	return nil
}

// ApplyBulk appends a batch of overrides, used by bulk seeding flows. The
// batch is all-or-nothing: a bad entry rejects the whole call before any
// entry is appended.
func (c *Calendar) ApplyBulk(overrides []Override, now time.Time) error {
	for _, o := range overrides {
		if err := o.validate(); err != nil {
			return err
		}
	}
	for _, o := range overrides {
		c.Entries = append(c.Entries, o)
		c.Record(OverrideAppliedEvent(c.Scope, o, now))
	}
	return nil
}

// Overrides collapses the entry log, last write winning per date.
func (c *Calendar) Overrides() Overrides {
	return CollapseOverrides(c.Entries)
}

// ValidatedProfile returns the profile proof captured at write time. A
// calendar rehydrated from storage revalidates lazily.
func (c *Calendar) ValidatedProfile() (pricing.ValidatedProfile, error) {
	if !c.validated.IsZero() {
		return c.validated, nil
	}
	validated, err := pricing.NewValidatedProfile(c.Profile)
	if err != nil {
		return pricing.ValidatedProfile{}, err
	}
	c.validated = validated
	return validated, nil
}

// Night resolves a single date against this calendar.
func (c *Calendar) Night(date daterange.Date) (ResolvedNight, error) {
	validated, err := c.ValidatedProfile()
	if err != nil {
		return ResolvedNight{}, err
	}
	return Resolve(validated, c.Overrides(), date)
}

// Quote resolves a whole stay against this calendar.
func (c *Calendar) Quote(dr daterange.DateRange) (RangeQuote, error) {
	validated, err := c.ValidatedProfile()
	if err != nil {
		return RangeQuote{}, err
	}
	return QuoteRange(validated, c.Overrides(), dr)
}
