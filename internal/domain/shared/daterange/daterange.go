package daterange

import (
	"errors"
	"time"
)

const dateLayout = "2006-01-02"

var (
	ErrMalformedDate = errors.New("daterange: date must be a real calendar date in YYYY-MM-DD form")
	ErrInvertedRange = errors.New("daterange: checkout must be strictly after checkin")
)

// Date is a calendar day at UTC midnight. Values built through this package
// are normalized, so Date is safe to compare with == and to use as a map key.
type Date struct {
	t time.Time
}

// NewDate builds a Date from calendar components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its UTC calendar day.
func DateOf(t time.Time) Date {
	t = t.UTC()
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a strict YYYY-MM-DD string. Impossible dates such as
// 2025-02-30 fail even though they match the pattern.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return Date{}, ErrMalformedDate
	}
	return DateOf(t), nil
}

func (d Date) IsZero() bool       { return d.t.IsZero() }
func (d Date) Time() time.Time    { return d.t }
func (d Date) String() string     { return d.t.Format(dateLayout) }
func (d Date) AddDays(n int) Date { return DateOf(d.t.AddDate(0, 0, n)) }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }

// DaysUntil counts whole days from d to other; negative when other is earlier.
func (d Date) DaysUntil(other Date) int {
	return int(other.t.Sub(d.t) / (24 * time.Hour))
}

// MarshalJSON encodes the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a strict YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return ErrMalformedDate
	}
	parsed, err := ParseDate(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DateRange represents a half-open night interval [checkIn, checkOut).
// The checkout day itself is never billed.
type DateRange struct {
	CheckIn  Date
	CheckOut Date
}

// New validates that checkout falls strictly after checkin.
func New(checkIn, checkOut Date) (DateRange, error) {
	dr := DateRange{CheckIn: checkIn, CheckOut: checkOut}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

// ParseRange validates and parses a pair of YYYY-MM-DD strings. A zero-night
// stay (checkout equal to checkin) is rejected as an inverted range.
func ParseRange(checkIn, checkOut string) (DateRange, error) {
	in, err := ParseDate(checkIn)
	if err != nil {
		return DateRange{}, err
	}
	out, err := ParseDate(checkOut)
	if err != nil {
		return DateRange{}, err
	}
	return New(in, out)
}

func (dr DateRange) Validate() error {
	if dr.CheckIn.IsZero() || dr.CheckOut.IsZero() {
		return ErrMalformedDate
	}
	if !dr.CheckOut.After(dr.CheckIn) {
		return ErrInvertedRange
	}
	return nil
}

// Nights counts billable nights in the range.
func (dr DateRange) Nights() int {
	return dr.CheckIn.DaysUntil(dr.CheckOut)
}

// Dates enumerates every night in ascending order, checkout day excluded.
func (dr DateRange) Dates() []Date {
	nights := dr.Nights()
	if nights <= 0 {
		return nil
	}
	out := make([]Date, 0, nights)
	for d := dr.CheckIn; d.Before(dr.CheckOut); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}

// Contains reports whether the date falls inside the half-open interval.
func (dr DateRange) Contains(d Date) bool {
	return !d.Before(dr.CheckIn) && d.Before(dr.CheckOut)
}

// Overlaps reports whether two half-open ranges share at least one night.
func (dr DateRange) Overlaps(other DateRange) bool {
	return dr.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(dr.CheckOut)
}
