package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AccountHealth point-in-time collateral evaluation of one user
type AccountHealth struct {
	UserID string `json:"user_id"`
	// sum of deposit values in USD, unweighted
	CollateralValue decimal.Decimal `json:"collateral_value"`
	// sum of each bank's collateral value times its max LTV
	BorrowableValue decimal.Decimal `json:"borrowable_value"`
	// sum of borrow values in USD
	DebtValue decimal.Decimal `json:"debt_value"`
	Healthy   bool            `json:"healthy"`
}

// HypotheticalDelta pending amount applied before the health comparison
//
// DepositDelta is negative for a withdrawal about to happen, BorrowDelta
// positive for a borrow about to happen. FeedID optionally overrides the
// bank's default price feed for the delta's asset.
type HypotheticalDelta struct {
	AssetID      string          `json:"asset_id"`
	FeedID       string          `json:"feed_id,omitempty"`
	DepositDelta decimal.Decimal `json:"deposit_delta"`
	BorrowDelta  decimal.Decimal `json:"borrow_delta"`
}

// IAccountService collateral evaluator interface
type IAccountService interface {
	// CheckHealth values the user's positions at t, applies delta if any,
	// and compares debt against LTV-weighted collateral. Every bank the
	// user touches is accrued (in memory) to t before valuation.
	CheckHealth(ctx context.Context, userID string, delta *HypotheticalDelta, t time.Time) (*AccountHealth, error)
}
