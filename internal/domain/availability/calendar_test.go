package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayquote/internal/domain/pricing"
	"stayquote/internal/domain/shared/daterange"
	"stayquote/internal/domain/shared/money"
)

func validTestProfile() pricing.Profile {
	return pricing.Profile{
		Base:       money.Must(100, "USD"),
		BestDeal:   money.Must(80, "USD"),
		PeakSeason: money.Must(150, "USD"),
	}
}

func TestNewCalendar(t *testing.T) {
	cal, err := NewCalendar("room-12", validTestProfile())
	require.NoError(t, err)
	assert.Equal(t, ScopeID("room-12"), cal.Scope)

	_, err = NewCalendar("room-12", pricing.Profile{
		Base:       money.Must(100, "USD"),
		BestDeal:   money.Must(100, "USD"),
		PeakSeason: money.Must(150, "USD"),
	})
	assert.ErrorIs(t, err, pricing.ErrInvalidBestDeal)
}

func TestCalendar_SetProfile(t *testing.T) {
	now := time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)
	cal, err := NewCalendar("room-12", validTestProfile())
	require.NoError(t, err)

	next := pricing.Profile{
		Base:       money.Must(120, "USD"),
		BestDeal:   money.Must(90, "USD"),
		PeakSeason: money.Must(200, "USD"),
	}
	require.NoError(t, cal.SetProfile(next, now))
	assert.Equal(t, next, cal.Profile)

	evs := cal.PendingEvents()
	require.Len(t, evs, 1)
	assert.Equal(t, "pricing.profile_updated", evs[0].EventName())
	assert.Equal(t, "room-12", evs[0].AggregateID())

	bad := pricing.Profile{
		Base:       money.Must(120, "USD"),
		BestDeal:   money.Must(90, "USD"),
		PeakSeason: money.Must(110, "USD"),
	}
	assert.ErrorIs(t, cal.SetProfile(bad, now), pricing.ErrInvalidPeakSeason)
	assert.Equal(t, next, cal.Profile, "rejected profile must not stick")
}

func TestCalendar_Apply(t *testing.T) {
	now := time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)
	cal, err := NewCalendar("room-12", validTestProfile())
	require.NoError(t, err)

	d, err := daterange.ParseDate("2025-06-01")
	require.NoError(t, err)
	require.NoError(t, cal.Apply(Override{Date: d, Type: pricing.TypeSoldOut}, now))
	assert.Len(t, cal.Entries, 1)

	err = cal.Apply(Override{Date: d, Type: pricing.PriceType("blocked")}, now)
	assert.ErrorIs(t, err, ErrInvalidOverride)
	err = cal.Apply(Override{Type: pricing.TypeSoldOut}, now)
	assert.ErrorIs(t, err, ErrInvalidOverride)
	assert.Len(t, cal.Entries, 1)
}

func TestCalendar_ApplyBulk_AllOrNothing(t *testing.T) {
	now := time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)
	cal, err := NewCalendar("room-12", validTestProfile())
	require.NoError(t, err)

	d1, _ := daterange.ParseDate("2025-06-01")
	d2, _ := daterange.ParseDate("2025-06-02")
	batch := []Override{
		{Date: d1, Type: pricing.TypePeakSeason},
		{Date: d2, Type: pricing.PriceType("nope")},
	}
	assert.ErrorIs(t, cal.ApplyBulk(batch, now), ErrInvalidOverride)
	assert.Empty(t, cal.Entries)
	assert.Empty(t, cal.PendingEvents())

	batch[1].Type = pricing.TypeBestDeal
	require.NoError(t, cal.ApplyBulk(batch, now))
	assert.Len(t, cal.Entries, 2)
	assert.Len(t, cal.PendingEvents(), 2)
}

func TestCalendar_OverridesLastWriteWins(t *testing.T) {
	now := time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)
	cal, err := NewCalendar("room-12", validTestProfile())
	require.NoError(t, err)

	d, _ := daterange.ParseDate("2025-06-01")
	require.NoError(t, cal.Apply(Override{Date: d, Type: pricing.TypeAvailable}, now))
	require.NoError(t, cal.Apply(Override{Date: d, Type: pricing.TypeSoldOut}, now))

	collapsed := cal.Overrides()
	require.Len(t, collapsed, 1)
	assert.Equal(t, pricing.TypeSoldOut, collapsed[d].Type)
}

func TestCalendar_QuoteThroughAggregate(t *testing.T) {
	now := time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)
	cal, err := NewCalendar("room-12", validTestProfile())
	require.NoError(t, err)

	d1, _ := daterange.ParseDate("2025-06-01")
	d2, _ := daterange.ParseDate("2025-06-02")
	require.NoError(t, cal.ApplyBulk([]Override{
		{Date: d1, Type: pricing.TypeSoldOut},
		{Date: d2, Type: pricing.TypeBestDeal},
	}, now))

	dr, err := daterange.ParseRange("2025-06-01", "2025-06-04")
	require.NoError(t, err)
	quote, err := cal.Quote(dr)
	require.NoError(t, err)

	assert.Equal(t, int64(280), quote.Total.Amount)
	assert.False(t, quote.Bookable)
	require.Len(t, quote.BlockingDates, 1)
	assert.Equal(t, "2025-06-01", quote.BlockingDates[0].String())
}

func TestCalendar_RehydratedProfileRevalidates(t *testing.T) {
	// Simulates a calendar loaded straight from storage, bypassing NewCalendar.
	cal := &Calendar{Scope: "room-12", Profile: validTestProfile()}

	d, _ := daterange.ParseDate("2025-06-01")
	night, err := cal.Night(d)
	require.NoError(t, err)
	assert.Equal(t, int64(100), night.Price.Amount)

	corrupt := &Calendar{Scope: "room-13", Profile: pricing.Profile{
		Base:       money.Must(100, "USD"),
		BestDeal:   money.Must(100, "USD"),
		PeakSeason: money.Must(150, "USD"),
	}}
	_, err = corrupt.Night(d)
	assert.ErrorIs(t, err, pricing.ErrInvalidBestDeal)
}
