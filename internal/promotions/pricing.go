package promotions

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// DiscountedPrice applies a percentage discount and rounds to cents:
// price * (100 - discount) / 100.
func DiscountedPrice(price, discount decimal.Decimal) decimal.Decimal {
	return price.Mul(hundred.Sub(discount)).Div(hundred).Round(2)
}
