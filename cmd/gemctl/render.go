package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Rhymond/go-money"
	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"gemtrade/internal/models"
)

func renderTop(w io.Writer, users []models.User) {
	table := tablewriter.NewWriter(w)
	table.Header("#", "User", "Username", "Gems", "Trades", "Rank")

	for i, u := range users {
		rank := "-"
		if u.Rank != nil {
			rank = strconv.Itoa(*u.Rank)
		}
		table.Append(
			strconv.Itoa(i+1),
			u.ID,
			u.Username,
			strconv.FormatInt(u.GemCount, 10),
			strconv.FormatInt(u.TradeCount, 10),
			rank,
		)
	}

	table.Render()
}

// renderHoldings prints holdings valued at prices (asset id -> price).
func renderHoldings(w io.Writer, holdings []models.Holding, prices map[string]decimal.Decimal, value decimal.Decimal, currency string) error {
	table := tablewriter.NewWriter(w)
	table.Header("Asset", "Quantity", "Avg cost", "Price", "Market value")

	for _, h := range holdings {
		price, ok := prices[h.AssetID]
		if !ok {
			return fmt.Errorf("no price for asset %s", h.AssetID)
		}
		table.Append(
			h.Name,
			strconv.FormatInt(h.Quantity, 10),
			display(h.AvgCost, currency),
			display(price, currency),
			display(h.MarketValue(price), currency),
		)
	}

	table.Render()
	_, err := fmt.Fprintf(w, "Portfolio value: %s\n", display(value, currency))
	return err
}

func display(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		cur = money.GetCurrency(money.USD)
	}
	return money.New(amount.Shift(int32(cur.Fraction)).Round(0).IntPart(), cur.Code).Display()
}
