package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var usd = accounting.Accounting{Symbol: "$", Precision: 2, Thousand: ",", Decimal: "."}

func USD(amount decimal.Decimal) string {
	return usd.FormatMoneyDecimal(amount.Round(2))
}

// DeliveryFee renders a zero fee as "Free".
func DeliveryFee(fee decimal.Decimal) string {
	if fee.IsZero() {
		return "Free"
	}
	return USD(fee)
}
