// Package calc prices an order from its subtotal.
package calc

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Options struct {
	DeliveryFee     decimal.Decimal
	PlatformFeeRate decimal.Decimal
	TaxRate         decimal.Decimal
	// DiscountPercent is on a 0-100 scale.
	DiscountPercent decimal.Decimal
}

func DefaultOptions() Options {
	return Options{
		DeliveryFee:     DefaultDeliveryFee,
		PlatformFeeRate: DefaultPlatformFeeRate,
		TaxRate:         DefaultTaxRate,
		DiscountPercent: decimal.Zero,
	}
}

type Breakdown struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	PlatformFee     decimal.Decimal `json:"platformFee"`
	DeliveryFee     decimal.Decimal `json:"deliveryFee"`
	TaxAmount       decimal.Decimal `json:"taxAmount"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	FinalAmount     decimal.Decimal `json:"finalAmount"`
}

func (b Breakdown) FreeDelivery() bool {
	return b.DeliveryFee.IsZero()
}

// Calculate derives fees, tax, discount and the final amount. Each derived
// amount is rounded to cents before the final sum, which is rounded again.
// Negative inputs or a discount outside 0-100 panic.
func Calculate(subtotal decimal.Decimal, opts Options) Breakdown {
	mustNotBeNegative("subtotal", subtotal)
	mustNotBeNegative("delivery fee", opts.DeliveryFee)
	mustNotBeNegative("platform fee rate", opts.PlatformFeeRate)
	mustNotBeNegative("tax rate", opts.TaxRate)
	mustNotBeNegative("discount percent", opts.DiscountPercent)
	if opts.DiscountPercent.GreaterThan(hundred) {
		panic(fmt.Sprintf("calc: discount percent %s exceeds 100", opts.DiscountPercent))
	}

	platformFee := CalculatePlatformFee(subtotal, opts.PlatformFeeRate)
	taxAmount := CalculateTax(subtotal, opts.TaxRate)
	discountAmount := CalculateDiscount(subtotal, opts.DiscountPercent)

	return Breakdown{
		Subtotal:        subtotal,
		PlatformFee:     platformFee,
		DeliveryFee:     opts.DeliveryFee,
		TaxAmount:       taxAmount,
		DiscountPercent: opts.DiscountPercent,
		DiscountAmount:  discountAmount,
		FinalAmount:     CalculateGrandTotal(subtotal, platformFee, opts.DeliveryFee, taxAmount, discountAmount),
	}
}

func mustNotBeNegative(name string, d decimal.Decimal) {
	if d.IsNegative() {
		panic(fmt.Sprintf("calc: %s must not be negative, got %s", name, d))
	}
}
