package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/internal/domain/shared/money"
)

func TestBreakdownRecalculateTotal(t *testing.T) {
	b := StayBreakdown{
		Nights:        3,
		SubtotalCents: 13000,
		Currency:      "USD",
		Fees: []Fee{
			{Name: "service_fee", Amount: money.Must(1560, "USD")},
			{Name: "cleaning_fee", Amount: money.Must(2500, "USD")},
		},
		Discounts: []Discount{
			{Name: "weekly", Amount: money.Must(1300, "USD")},
		},
	}
	require.NoError(t, b.RecalculateTotal())
	assert.Equal(t, int64(13000+1560+2500-1300), b.Total.Amount)
	assert.Equal(t, "USD", b.Total.Currency)
}

func TestBreakdownNormalizesDiscountSign(t *testing.T) {
	positive := StayBreakdown{
		Nights: 1, SubtotalCents: 5000, Currency: "USD",
		Discounts: []Discount{{Name: "promo", Amount: money.Must(500, "USD")}},
	}
	negative := StayBreakdown{
		Nights: 1, SubtotalCents: 5000, Currency: "USD",
		Discounts: []Discount{{Name: "promo", Amount: money.Must(-500, "USD")}},
	}
	require.NoError(t, positive.RecalculateTotal())
	require.NoError(t, negative.RecalculateTotal())
	assert.Equal(t, positive.Total, negative.Total)
}

func TestBreakdownClampsAtZero(t *testing.T) {
	b := StayBreakdown{
		Nights: 1, SubtotalCents: 1000, Currency: "USD",
		Discounts: []Discount{{Name: "comp", Amount: money.Must(5000, "USD")}},
	}
	require.NoError(t, b.RecalculateTotal())
	assert.Zero(t, b.Total.Amount)
}

func TestBreakdownRejectsBadInput(t *testing.T) {
	noCurrency := StayBreakdown{Nights: 1, SubtotalCents: 100}
	assert.ErrorIs(t, noCurrency.RecalculateTotal(), ErrCurrencyUnset)

	noNights := StayBreakdown{SubtotalCents: 100, Currency: "USD"}
	assert.ErrorIs(t, noNights.RecalculateTotal(), ErrNoNights)

	negativeFee := StayBreakdown{
		Nights: 1, SubtotalCents: 100, Currency: "USD",
		Fees: []Fee{{Name: "oops", Amount: money.Must(-10, "USD")}},
	}
	assert.ErrorIs(t, negativeFee.RecalculateTotal(), ErrNegativeComponent)
}

func TestBreakdownCopyIsIndependent(t *testing.T) {
	b := StayBreakdown{
		Nights: 2, SubtotalCents: 8000, Currency: "USD",
		Fees: []Fee{{Name: "service_fee", Amount: money.Must(960, "USD")}},
	}
	clone := b.Copy()
	clone.Fees[0].Name = "changed"
	assert.Equal(t, "service_fee", b.Fees[0].Name)
}
