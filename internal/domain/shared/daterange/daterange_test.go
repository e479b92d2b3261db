package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid date", input: "2025-06-01"},
		{name: "leap day", input: "2024-02-29"},
		{name: "impossible day matching the pattern", input: "2025-02-30", wantErr: true},
		{name: "thirteenth month", input: "2025-13-01", wantErr: true},
		{name: "missing zero padding", input: "2025-6-1", wantErr: true},
		{name: "slashes", input: "2025/06/01", wantErr: true},
		{name: "trailing garbage", input: "2025-06-01T00:00:00Z", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, d.String())
		})
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		wantErr  error
	}{
		{name: "valid three night range", checkIn: "2025-06-01", checkOut: "2025-06-04"},
		{name: "single night", checkIn: "2025-06-10", checkOut: "2025-06-11"},
		{name: "zero nights rejected", checkIn: "2025-06-10", checkOut: "2025-06-10", wantErr: ErrInvertedRange},
		{name: "checkout before checkin", checkIn: "2025-06-10", checkOut: "2025-06-05", wantErr: ErrInvertedRange},
		{name: "malformed checkin", checkIn: "2025-02-30", checkOut: "2025-03-02", wantErr: ErrMalformedDate},
		{name: "malformed checkout", checkIn: "2025-03-01", checkOut: "not-a-date", wantErr: ErrMalformedDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dr, err := ParseRange(tt.checkIn, tt.checkOut)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.checkIn, dr.CheckIn.String())
			assert.Equal(t, tt.checkOut, dr.CheckOut.String())
		})
	}
}

func TestDateRange_Nights(t *testing.T) {
	dr, err := ParseRange("2025-06-01", "2025-06-04")
	require.NoError(t, err)
	assert.Equal(t, 3, dr.Nights())

	long, err := ParseRange("2025-01-01", "2026-01-01")
	require.NoError(t, err)
	assert.Equal(t, 365, long.Nights())
}

func TestDateRange_Dates(t *testing.T) {
	dr, err := ParseRange("2025-06-01", "2025-06-04")
	require.NoError(t, err)

	dates := dr.Dates()
	require.Len(t, dates, 3)
	assert.Equal(t, "2025-06-01", dates[0].String())
	assert.Equal(t, "2025-06-02", dates[1].String())
	assert.Equal(t, "2025-06-03", dates[2].String())
}

func TestDateRange_DatesCrossMonthBoundary(t *testing.T) {
	dr, err := ParseRange("2025-01-30", "2025-02-02")
	require.NoError(t, err)

	dates := dr.Dates()
	require.Len(t, dates, 3)
	assert.Equal(t, "2025-01-31", dates[1].String())
	assert.Equal(t, "2025-02-01", dates[2].String())
}

func TestDate_Normalization(t *testing.T) {
	fromClock := DateOf(time.Date(2025, time.June, 1, 17, 45, 12, 0, time.UTC))
	fromParts := NewDate(2025, time.June, 1)
	parsed, err := ParseDate("2025-06-01")
	require.NoError(t, err)

	// Normalized dates compare with == so they can key override maps.
	assert.True(t, fromClock == fromParts)
	assert.True(t, parsed == fromParts)
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2025, time.June, 1)
	raw, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2025-06-01"`, string(raw))

	var decoded Date
	require.NoError(t, decoded.UnmarshalJSON(raw))
	assert.True(t, decoded.Equal(d))

	var bad Date
	assert.ErrorIs(t, bad.UnmarshalJSON([]byte(`"2025-02-30"`)), ErrMalformedDate)
}

func TestDateRange_Contains(t *testing.T) {
	dr, err := ParseRange("2025-06-01", "2025-06-04")
	require.NoError(t, err)

	assert.True(t, dr.Contains(NewDate(2025, time.June, 1)))
	assert.True(t, dr.Contains(NewDate(2025, time.June, 3)))
	assert.False(t, dr.Contains(NewDate(2025, time.June, 4)), "checkout day is excluded")
	assert.False(t, dr.Contains(NewDate(2025, time.May, 31)))
}
