package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayquote/internal/domain/shared/money"
)

func TestProfile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		wantErr error
	}{
		{
			name: "best deal below base below peak passes",
			profile: Profile{
				Base:       money.Must(10000, "USD"),
				BestDeal:   money.Must(8000, "USD"),
				PeakSeason: money.Must(15000, "USD"),
			},
		},
		{
			name: "best deal equal to base fails",
			profile: Profile{
				Base:       money.Must(10000, "USD"),
				BestDeal:   money.Must(10000, "USD"),
				PeakSeason: money.Must(15000, "USD"),
			},
			wantErr: ErrInvalidBestDeal,
		},
		{
			name: "best deal above base fails",
			profile: Profile{
				Base:       money.Must(10000, "USD"),
				BestDeal:   money.Must(12000, "USD"),
				PeakSeason: money.Must(15000, "USD"),
			},
			wantErr: ErrInvalidBestDeal,
		},
		{
			name: "peak season equal to base fails",
			profile: Profile{
				Base:       money.Must(10000, "USD"),
				BestDeal:   money.Must(8000, "USD"),
				PeakSeason: money.Must(10000, "USD"),
			},
			wantErr: ErrInvalidPeakSeason,
		},
		{
			name: "peak season below base fails",
			profile: Profile{
				Base:       money.Must(10000, "USD"),
				BestDeal:   money.Must(8000, "USD"),
				PeakSeason: money.Must(9000, "USD"),
			},
			wantErr: ErrInvalidPeakSeason,
		},
		{
			name: "zero base fails",
			profile: Profile{
				Base:       money.Money{Amount: 0, Currency: "USD"},
				BestDeal:   money.Must(8000, "USD"),
				PeakSeason: money.Must(15000, "USD"),
			},
			wantErr: ErrNonPositivePrice,
		},
		{
			name: "negative best deal fails",
			profile: Profile{
				Base:       money.Must(10000, "USD"),
				BestDeal:   money.Must(-1, "USD"),
				PeakSeason: money.Must(15000, "USD"),
			},
			wantErr: ErrNonPositivePrice,
		},
		{
			name: "mixed currencies fail",
			profile: Profile{
				Base:       money.Must(10000, "USD"),
				BestDeal:   money.Must(8000, "EUR"),
				PeakSeason: money.Must(15000, "USD"),
			},
			wantErr: money.ErrCurrencyMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewValidatedProfile(t *testing.T) {
	profile := Profile{
		Base:       money.Must(10000, "USD"),
		BestDeal:   money.Must(8000, "USD"),
		PeakSeason: money.Must(15000, "USD"),
	}

	validated, err := NewValidatedProfile(profile)
	require.NoError(t, err)
	assert.False(t, validated.IsZero())
	assert.Equal(t, profile, validated.Profile())

	_, err = NewValidatedProfile(Profile{
		Base:       money.Must(10000, "USD"),
		BestDeal:   money.Must(10000, "USD"),
		PeakSeason: money.Must(15000, "USD"),
	})
	assert.ErrorIs(t, err, ErrInvalidBestDeal)

	var zero ValidatedProfile
	assert.True(t, zero.IsZero())
}

func TestValidatedProfile_TierPrice(t *testing.T) {
	validated, err := NewValidatedProfile(Profile{
		Base:       money.Must(10000, "USD"),
		BestDeal:   money.Must(8000, "USD"),
		PeakSeason: money.Must(15000, "USD"),
	})
	require.NoError(t, err)

	tests := []struct {
		priceType PriceType
		want      int64
	}{
		{TypeAvailable, 10000},
		{TypeSoldOut, 10000},
		{TypeBestDeal, 8000},
		{TypePeakSeason, 15000},
	}
	for _, tt := range tests {
		t.Run(string(tt.priceType), func(t *testing.T) {
			price, err := validated.TierPrice(tt.priceType)
			require.NoError(t, err)
			assert.Equal(t, tt.want, price.Amount)
		})
	}

	_, err = validated.TierPrice(PriceType("closed"))
	assert.ErrorIs(t, err, ErrUnknownPriceType)
}

func TestPriceType(t *testing.T) {
	assert.True(t, TypeAvailable.Valid())
	assert.True(t, TypeSoldOut.Valid())
	assert.False(t, PriceType("blocked").Valid())

	assert.True(t, TypeBestDeal.Bookable())
	assert.True(t, TypePeakSeason.Bookable())
	assert.False(t, TypeSoldOut.Bookable())
}
