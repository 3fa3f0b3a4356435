package handlers

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const defaultCurrency = money.USD

// formatAmount renders amount in the currency's display form, e.g. $1,250.00.
// Unknown currency codes fall back to USD.
func formatAmount(amount decimal.Decimal, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		cur = money.GetCurrency(defaultCurrency)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

func buyMessage(quantity int64, asset string, price, total decimal.Decimal, currency string) string {
	return fmt.Sprintf("Successfully purchased %d units of '%s' at %s per unit, for a total value of %s.",
		quantity, asset, formatAmount(price, currency), formatAmount(total, currency))
}

func sellMessage(quantity int64, asset string, price, total decimal.Decimal, currency string) string {
	return fmt.Sprintf("Successfully sold %d units of '%s' at %s per unit, for a total value of %s.",
		quantity, asset, formatAmount(price, currency), formatAmount(total, currency))
}
