package policies

import (
	"math"

	"staybook/internal/domain/pricing"
	"staybook/internal/domain/shared/money"
)

// FeeSchedule produces the fee lines added on top of a stay subtotal. The
// per-night pricing itself never sees fees; they are a checkout concern.
type FeeSchedule interface {
	Fees(subtotalCents int64, nights int, currency string) []pricing.Fee
}

// StandardFees is the marketplace default: a percentage service fee plus a
// flat cleaning fee for multi-night stays.
type StandardFees struct {
	ServiceFeePercent float64
	CleaningFeeCents  int64
}

func (s StandardFees) Fees(subtotalCents int64, nights int, currency string) []pricing.Fee {
	var fees []pricing.Fee
	if s.ServiceFeePercent > 0 && subtotalCents > 0 {
		amount := int64(math.Round(float64(subtotalCents) * s.ServiceFeePercent / 100))
		fees = append(fees, pricing.Fee{Name: "service_fee", Amount: money.Money{Amount: amount, Currency: currency}})
	}
	if s.CleaningFeeCents > 0 && nights > 1 {
		fees = append(fees, pricing.Fee{Name: "cleaning_fee", Amount: money.Money{Amount: s.CleaningFeeCents, Currency: currency}})
	}
	return fees
}
