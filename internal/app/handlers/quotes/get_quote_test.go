package quotes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainavailability "stayquote/internal/domain/availability"
	"stayquote/internal/domain/pricing"
	"stayquote/internal/domain/shared/daterange"
	"stayquote/internal/domain/shared/money"
	"stayquote/internal/infra/storage/memory"
)

func seedRepo(t *testing.T) *memory.CalendarRepository {
	t.Helper()
	repo := memory.NewCalendarRepository()
	calendar, err := domainavailability.NewCalendar("prop-1", pricing.Profile{
		Base:       money.Must(100, "USD"),
		BestDeal:   money.Must(80, "USD"),
		PeakSeason: money.Must(150, "USD"),
	})
	require.NoError(t, err)

	now := time.Now().UTC()
	soldOut, _ := daterange.ParseDate("2025-06-01")
	deal, _ := daterange.ParseDate("2025-06-02")
	require.NoError(t, calendar.ApplyBulk([]domainavailability.Override{
		{Date: soldOut, Type: pricing.TypeSoldOut},
		{Date: deal, Type: pricing.TypeBestDeal},
	}, now))
	require.NoError(t, repo.Save(context.Background(), calendar))
	return repo
}

func TestGetQuoteHandler(t *testing.T) {
	handler := &GetQuoteHandler{UoWFactory: memory.Factory{CalendarRepo: seedRepo(t)}}

	quote, err := handler.Handle(context.Background(), GetQuoteQuery{
		ScopeID:  "prop-1",
		CheckIn:  "2025-06-01",
		CheckOut: "2025-06-04",
	})
	require.NoError(t, err)

	assert.Equal(t, "prop-1", quote.ScopeID)
	require.Len(t, quote.Nights, 3)
	assert.Equal(t, int64(280), quote.TotalPrice)
	assert.Equal(t, "USD", quote.Currency)
	assert.False(t, quote.Bookable)
	assert.Equal(t, []string{"2025-06-01"}, quote.BlockingDates)
	assert.Equal(t, "sold_out", quote.Nights[0].Type)
	assert.Equal(t, int64(100), quote.Nights[0].Price, "sold-out nights keep their display price")
}

func TestGetQuoteHandler_Validation(t *testing.T) {
	handler := &GetQuoteHandler{UoWFactory: memory.Factory{CalendarRepo: seedRepo(t)}}

	tests := []struct {
		name    string
		query   GetQuoteQuery
		wantErr error
	}{
		{
			name:    "missing scope",
			query:   GetQuoteQuery{CheckIn: "2025-06-01", CheckOut: "2025-06-02"},
			wantErr: ErrScopeRequired,
		},
		{
			name:    "zero night stay",
			query:   GetQuoteQuery{ScopeID: "prop-1", CheckIn: "2025-06-10", CheckOut: "2025-06-10"},
			wantErr: daterange.ErrInvertedRange,
		},
		{
			name:    "impossible date",
			query:   GetQuoteQuery{ScopeID: "prop-1", CheckIn: "2025-02-30", CheckOut: "2025-03-02"},
			wantErr: daterange.ErrMalformedDate,
		},
		{
			name:    "unknown scope",
			query:   GetQuoteQuery{ScopeID: "prop-9", CheckIn: "2025-06-01", CheckOut: "2025-06-02"},
			wantErr: domainavailability.ErrCalendarNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Handle(context.Background(), tt.query)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetQuoteQuery_Validate(t *testing.T) {
	assert.NoError(t, GetQuoteQuery{ScopeID: "prop-1", CheckIn: "2025-06-01", CheckOut: "2025-06-02"}.Validate())
	assert.ErrorIs(t, GetQuoteQuery{ScopeID: " ", CheckIn: "2025-06-01", CheckOut: "2025-06-02"}.Validate(), ErrScopeRequired)
	assert.ErrorIs(t, GetQuoteQuery{ScopeID: "prop-1", CheckIn: "bad", CheckOut: "2025-06-02"}.Validate(), daterange.ErrMalformedDate)
}
