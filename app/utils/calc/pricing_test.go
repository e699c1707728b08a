package calc

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name         string
		subtotal     string
		deliveryFee  string
		discount     string
		wantPlatform string
		wantTax      string
		wantDiscount string
		wantFinal    string
	}{
		{
			name:         "hundred dollars",
			subtotal:     "100.00",
			deliveryFee:  "4.99",
			discount:     "0",
			wantPlatform: "5.00",
			wantTax:      "8.25",
			wantDiscount: "0",
			wantFinal:    "118.24",
		},
		{
			name:         "empty subtotal still pays delivery",
			subtotal:     "0",
			deliveryFee:  "4.99",
			discount:     "0",
			wantPlatform: "0",
			wantTax:      "0",
			wantDiscount: "0",
			wantFinal:    "4.99",
		},
		{
			name:         "subscription discount with half-cent tax",
			subtotal:     "50.00",
			deliveryFee:  "4.99",
			discount:     "20",
			wantPlatform: "2.50",
			wantTax:      "4.13",
			wantDiscount: "10.00",
			wantFinal:    "51.62",
		},
		{
			name:         "free delivery",
			subtotal:     "30.00",
			deliveryFee:  "0",
			discount:     "25",
			wantPlatform: "1.50",
			wantTax:      "2.48",
			wantDiscount: "7.50",
			wantFinal:    "26.48",
		},
		{
			name:         "odd cents",
			subtotal:     "12.34",
			deliveryFee:  "4.99",
			discount:     "0",
			wantPlatform: "0.62",
			wantTax:      "1.02",
			wantDiscount: "0",
			wantFinal:    "18.97",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.DeliveryFee = d(tt.deliveryFee)
			opts.DiscountPercent = d(tt.discount)

			got := Calculate(d(tt.subtotal), opts)

			checks := []struct {
				field string
				got   decimal.Decimal
				want  string
			}{
				{"platform fee", got.PlatformFee, tt.wantPlatform},
				{"tax", got.TaxAmount, tt.wantTax},
				{"discount", got.DiscountAmount, tt.wantDiscount},
				{"final", got.FinalAmount, tt.wantFinal},
			}
			for _, c := range checks {
				if !c.got.Equal(d(c.want)) {
					t.Errorf("expected %s %s, got %s", c.field, c.want, c.got)
				}
			}
		})
	}
}

func TestCalculate_FinalIsSumOfRoundedParts(t *testing.T) {
	for _, s := range []string{"0.01", "7.77", "19.99", "123.45", "999.99"} {
		b := Calculate(d(s), DefaultOptions())
		sum := b.Subtotal.Add(b.PlatformFee).Add(b.DeliveryFee).Add(b.TaxAmount).Sub(b.DiscountAmount).Round(2)
		if !b.FinalAmount.Equal(sum) {
			t.Errorf("subtotal %s: expected final %s, got %s", s, sum, b.FinalAmount)
		}
		if b.PlatformFee.Exponent() < -2 || b.TaxAmount.Exponent() < -2 {
			t.Errorf("subtotal %s: derived amounts not rounded to cents: %s %s", s, b.PlatformFee, b.TaxAmount)
		}
	}
}

func TestBreakdown_FreeDelivery(t *testing.T) {
	opts := DefaultOptions()
	if Calculate(d("10"), opts).FreeDelivery() {
		t.Errorf("expected standard delivery to not be free")
	}
	opts.DeliveryFee = decimal.Zero
	if !Calculate(d("10"), opts).FreeDelivery() {
		t.Errorf("expected zero delivery fee to be free")
	}
}

func TestCalculate_PanicsOnInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		subtotal string
		mutate   func(*Options)
	}{
		{name: "negative subtotal", subtotal: "-1", mutate: func(o *Options) {}},
		{name: "negative tax rate", subtotal: "1", mutate: func(o *Options) { o.TaxRate = d("-0.1") }},
		{name: "negative delivery fee", subtotal: "1", mutate: func(o *Options) { o.DeliveryFee = d("-4.99") }},
		{name: "discount above 100", subtotal: "1", mutate: func(o *Options) { o.DiscountPercent = d("101") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic")
				}
			}()
			opts := DefaultOptions()
			tt.mutate(&opts)
			Calculate(d(tt.subtotal), opts)
		})
	}
}

func TestCalculateDiscount(t *testing.T) {
	if got := CalculateDiscount(d("33.33"), d("15")); !got.Equal(d("5.00")) {
		t.Errorf("expected 5.00, got %s", got)
	}
}
