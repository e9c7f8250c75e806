package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Bank per-asset lending pool
//
// deposits and borrows are tracked as pool totals plus share totals;
// a user's real balance is always shares * (total amount / total shares),
// so accruing interest only ever touches the two amount columns.
type Bank struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID string `sql:"size:36;unique_index:asset_idx" json:"asset_id"`
	Symbol  string `sql:"size:20" json:"symbol"`
	// default feed the collateral evaluator reads when the caller
	// passes no explicit feed reference
	PriceFeedID        string          `sql:"size:80" json:"price_feed_id"`
	TotalDeposits      decimal.Decimal `sql:"type:decimal(32,8)" json:"total_deposits"`
	TotalBorrows       decimal.Decimal `sql:"type:decimal(32,8)" json:"total_borrows"`
	TotalDepositShares decimal.Decimal `sql:"type:decimal(32,8)" json:"total_deposit_shares"`
	TotalBorrowShares  decimal.Decimal `sql:"type:decimal(32,8)" json:"total_borrow_shares"`
	// protocol's cut of accrued interest, counted inside TotalDeposits
	// but excluded from the depositor redemption pool
	Reserves decimal.Decimal `sql:"type:decimal(32,8)" json:"reserves"`
	// annualized rates in basis points, fixed at bank creation
	DepositRateBps int64 `sql:"default:0" json:"deposit_rate_bps"`
	BorrowRateBps  int64 `sql:"default:0" json:"borrow_rate_bps"`
	MaxLTVBps      int64 `sql:"default:0" json:"max_ltv_bps"`
	// retained for liquidation tooling, unused by the four operations
	LiquidationThresholdBps int64     `sql:"default:0" json:"liquidation_threshold_bps"`
	LastAccruedAt           time.Time `json:"last_accrued_at"`
	Version                 int64     `sql:"default:0" json:"version"`
	CreatedAt               time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt               time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// AvailableLiquidity deposits not currently lent out
func (b *Bank) AvailableLiquidity() decimal.Decimal {
	return b.TotalDeposits.Sub(b.TotalBorrows)
}

// DepositorPool deposits owned by depositors, net of protocol reserves
func (b *Bank) DepositorPool() decimal.Decimal {
	return b.TotalDeposits.Sub(b.Reserves)
}

// MaxLTV max loan-to-value as a decimal fraction
func (b *Bank) MaxLTV() decimal.Decimal {
	return decimal.New(b.MaxLTVBps, -4)
}

// IBankStore bank store interface
type IBankStore interface {
	Create(ctx context.Context, bank *Bank) error
	Find(ctx context.Context, assetID string) (*Bank, error)
	All(ctx context.Context) ([]*Bank, error)
	AllAsMap(ctx context.Context) (map[string]*Bank, error)
	Update(ctx context.Context, tx *db.DB, bank *Bank) error
}

// IBankService bank service interface
type IBankService interface {
	// CreateBank validates the rate and risk parameters and persists a new bank
	CreateBank(ctx context.Context, bank *Bank) error
	// AccrueInterest advances the bank totals to t and persists the bank
	AccrueInterest(ctx context.Context, tx *db.DB, bank *Bank, t time.Time) error
}
