package views

import (
	"lending/core"

	"github.com/shopspring/decimal"
)

// Bank bank view with derived pool numbers
type Bank struct {
	core.Bank
	AvailableLiquidity decimal.Decimal `json:"available_liquidity"`
	UtilizationRate    decimal.Decimal `json:"utilization_rate"`
	Borrowers          int64           `json:"borrowers"`
}

// Position position view with share balances priced back into amounts
type Position struct {
	core.Position
	Redeemable  decimal.Decimal `json:"redeemable"`
	Outstanding decimal.Decimal `json:"outstanding"`
}
