package pricing

import (
	"errors"

	"staybook/internal/domain/shared/money"
)

var (
	ErrNegativeComponent = errors.New("pricing: fee components cannot be negative, model reductions as discounts")
	ErrCurrencyUnset     = errors.New("pricing: currency must be defined")
	ErrNoNights          = errors.New("pricing: nights must be positive")
)

type Fee struct {
	Name   string
	Amount money.Money
}

type Discount struct {
	Name   string
	Amount money.Money
}

// StayBreakdown is the fee-level quote for a concrete stay: the per-night
// subtotal from the availability calendar, plus fees and discounts on top.
// Amounts here keep full cent precision; only headline prices get floored.
type StayBreakdown struct {
	Nights        int
	SubtotalCents int64
	Currency      string
	Fees          []Fee
	Discounts     []Discount
	Total         money.Money
}

func (b *StayBreakdown) Validate() error {
	if b.Currency == "" {
		return ErrCurrencyUnset
	}
	if b.Nights <= 0 {
		return ErrNoNights
	}
	return nil
}

// RecalculateTotal derives Total from the subtotal, fees and discounts. A
// discount larger than everything else clamps the total at zero rather than
// producing a negative charge.
func (b *StayBreakdown) RecalculateTotal() error {
	if err := b.Validate(); err != nil {
		return err
	}
	total := money.Money{Amount: b.SubtotalCents, Currency: b.Currency}
	for _, fee := range b.Fees {
		if fee.Amount.Amount < 0 {
			return ErrNegativeComponent
		}
		sum, err := total.Add(fee.Amount)
		if err != nil {
			return err
		}
		total = sum
	}
	for _, discount := range b.Discounts {
		amount := discount.Amount
		if amount.Amount > 0 {
			amount = amount.Neg()
		}
		sum, err := total.Add(amount)
		if err != nil {
			return err
		}
		total = sum
	}
	if total.Amount < 0 {
		total.Amount = 0
	}
	b.Total = total
	return nil
}

func (b StayBreakdown) Copy() StayBreakdown {
	clone := b
	clone.Fees = append([]Fee(nil), b.Fees...)
	clone.Discounts = append([]Discount(nil), b.Discounts...)
	return clone
}
