package profiles

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainavailability "stayquote/internal/domain/availability"
	"stayquote/internal/domain/pricing"
	"stayquote/internal/domain/shared/money"
	"stayquote/internal/infra/storage/memory"
)

func TestUpdateProfileHandler_CreatesCalendar(t *testing.T) {
	repo := memory.NewCalendarRepository()
	box := memory.NewOutbox()
	handler := &UpdateProfileHandler{
		UoWFactory: memory.Factory{CalendarRepo: repo},
		Outbox:     box,
	}

	result, err := handler.Handle(context.Background(), UpdateProfileCommand{
		CommandID:       "cmd-1",
		ScopeID:         "prop-1",
		BasePrice:       100,
		BestDealPrice:   80,
		PeakSeasonPrice: 150,
		Currency:        "USD",
	})
	require.NoError(t, err)
	assert.Equal(t, "prop-1", result.Profile.ScopeID)
	assert.Equal(t, int64(100), result.Profile.BasePrice)

	calendar, err := repo.Calendar(context.Background(), "prop-1")
	require.NoError(t, err)
	assert.Equal(t, int64(150), calendar.Profile.PeakSeason.Amount)

	records := box.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "pricing.profile_updated", records[0].Name)
}

func TestUpdateProfileHandler_ReplacesProfile(t *testing.T) {
	repo := memory.NewCalendarRepository()
	calendar, err := domainavailability.NewCalendar("prop-1", pricing.Profile{
		Base:       money.Must(100, "USD"),
		BestDeal:   money.Must(80, "USD"),
		PeakSeason: money.Must(150, "USD"),
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), calendar))

	handler := &UpdateProfileHandler{UoWFactory: memory.Factory{CalendarRepo: repo}}
	_, err = handler.Handle(context.Background(), UpdateProfileCommand{
		ScopeID:         "prop-1",
		BasePrice:       120,
		BestDealPrice:   90,
		PeakSeasonPrice: 200,
		Currency:        "USD",
	})
	require.NoError(t, err)

	stored, err := repo.Calendar(context.Background(), "prop-1")
	require.NoError(t, err)
	assert.Equal(t, int64(120), stored.Profile.Base.Amount)
	assert.Equal(t, int64(90), stored.Profile.BestDeal.Amount)
}

func TestUpdateProfileHandler_RejectsBadTiers(t *testing.T) {
	repo := memory.NewCalendarRepository()
	handler := &UpdateProfileHandler{UoWFactory: memory.Factory{CalendarRepo: repo}}

	tests := []struct {
		name    string
		cmd     UpdateProfileCommand
		wantErr error
	}{
		{
			name:    "missing scope",
			cmd:     UpdateProfileCommand{BasePrice: 100, BestDealPrice: 80, PeakSeasonPrice: 150, Currency: "USD"},
			wantErr: ErrScopeRequired,
		},
		{
			name:    "best deal not below base",
			cmd:     UpdateProfileCommand{ScopeID: "prop-1", BasePrice: 100, BestDealPrice: 100, PeakSeasonPrice: 150, Currency: "USD"},
			wantErr: pricing.ErrInvalidBestDeal,
		},
		{
			name:    "peak not above base",
			cmd:     UpdateProfileCommand{ScopeID: "prop-1", BasePrice: 100, BestDealPrice: 80, PeakSeasonPrice: 100, Currency: "USD"},
			wantErr: pricing.ErrInvalidPeakSeason,
		},
		{
			name:    "zero base",
			cmd:     UpdateProfileCommand{ScopeID: "prop-1", BasePrice: 0, BestDealPrice: 0, PeakSeasonPrice: 1, Currency: "USD"},
			wantErr: pricing.ErrNonPositivePrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Handle(context.Background(), tt.cmd)
			assert.ErrorIs(t, err, tt.wantErr)

			_, lookupErr := repo.Calendar(context.Background(), "prop-1")
			assert.ErrorIs(t, lookupErr, domainavailability.ErrCalendarNotFound, "rejected updates must not create a calendar")
		})
	}
}
