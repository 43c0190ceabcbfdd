package promotions

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDiscountedPrice(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		price    string
		discount string
		want     string
	}{
		{name: "whole percent", price: "100", discount: "10", want: "90"},
		{name: "rounds half up to cents", price: "99.99", discount: "15", want: "84.99"},
		{name: "zero discount keeps price", price: "55.55", discount: "0", want: "55.55"},
		{name: "full discount", price: "120", discount: "100", want: "0"},
		{name: "fractional discount", price: "10", discount: "12.5", want: "8.75"},
		{name: "repeating decimal rounds", price: "10", discount: "33.33", want: "6.67"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			price := decimal.RequireFromString(tc.price)
			discount := decimal.RequireFromString(tc.discount)
			got := DiscountedPrice(price, discount)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
				"price %s discount %s: got %s want %s", tc.price, tc.discount, got, tc.want)
		})
	}
}
