package calc

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// CalculateDiscount returns discountPercent of baseTotal, rounded to cents.
func CalculateDiscount(baseTotal, discountPercent decimal.Decimal) decimal.Decimal {
	return Round2(baseTotal.Mul(discountPercent).Div(hundred))
}
