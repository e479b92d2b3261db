package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m, err := New(1500, "usd")
	require.NoError(t, err)
	assert.Equal(t, "USD", m.Currency)
	assert.Equal(t, int64(1500), m.Amount)

	_, err = New(1500, "dollars")
	assert.ErrorIs(t, err, ErrInvalidCurrency)
}

func TestAdd(t *testing.T) {
	a := Must(100, "USD")
	b := Must(250, "USD")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, int64(350), sum.Amount)

	_, err = a.Add(Must(10, "EUR"))
	assert.ErrorIs(t, err, ErrCurrencyMismatch)

	_, err = a.Add(Money{Amount: 10})
	assert.ErrorIs(t, err, ErrInvalidCurrency)
}

func TestComparisons(t *testing.T) {
	a := Must(100, "USD")
	b := Must(250, "USD")

	less, err := a.LessThan(b)
	require.NoError(t, err)
	assert.True(t, less)

	less, err = b.LessThan(a)
	require.NoError(t, err)
	assert.False(t, less)

	_, err = a.LessThan(Must(10, "EUR"))
	assert.ErrorIs(t, err, ErrCurrencyMismatch)

	assert.True(t, Must(1, "USD").IsPositive())
	assert.False(t, Must(-1, "USD").IsPositive())
	assert.True(t, Money{Currency: "USD"}.IsZero())
}

func TestMultiply(t *testing.T) {
	m := Must(100, "USD").Multiply(3)
	assert.Equal(t, int64(300), m.Amount)
	assert.Equal(t, "USD", m.Currency)
}
