package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// ILendingService the four user operations
//
// every call is atomic: interest is accrued first, ledgers are mutated,
// borrow and withdraw re-check collateral, and any failure aborts the
// whole operation with no persisted side effects.
type ILendingService interface {
	Deposit(ctx context.Context, userID, assetID string, amount decimal.Decimal) error
	// Withdraw burns deposit shares; feedID overrides the bank's price
	// feed for the collateral re-check, pass "" for the default
	Withdraw(ctx context.Context, userID, assetID string, amount decimal.Decimal, feedID string) error
	Borrow(ctx context.Context, userID, assetID string, amount decimal.Decimal, feedID string) error
	// Repay returns the amount actually applied, which may be less than
	// the request when over-payments are clamped
	Repay(ctx context.Context, userID, assetID string, amount decimal.Decimal) (decimal.Decimal, error)
}
