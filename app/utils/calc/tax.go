package calc

import "github.com/shopspring/decimal"

var (
	DefaultPlatformFeeRate = decimal.RequireFromString("0.05")
	DefaultTaxRate         = decimal.RequireFromString("0.0825")
	DefaultDeliveryFee     = decimal.RequireFromString("4.99")
)

func CalculateTax(baseTotal, taxRate decimal.Decimal) decimal.Decimal {
	return Round2(baseTotal.Mul(taxRate))
}

func CalculatePlatformFee(baseTotal, feeRate decimal.Decimal) decimal.Decimal {
	return Round2(baseTotal.Mul(feeRate))
}

func CalculateGrandTotal(baseTotal, platformFee, deliveryFee, taxAmount, discountAmount decimal.Decimal) decimal.Decimal {
	return Round2(baseTotal.Add(platformFee).Add(deliveryFee).Add(taxAmount).Sub(discountAmount))
}

// Round2 rounds to cents, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
