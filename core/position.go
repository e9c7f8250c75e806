package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Position user share balances in one bank
//
// created lazily on the first deposit or borrow and never deleted;
// a fully withdrawn or repaid position simply stays at zero.
type Position struct {
	ID            uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID        string          `sql:"size:36;unique_index:position_idx" json:"user_id"`
	AssetID       string          `sql:"size:36;unique_index:position_idx" json:"asset_id"`
	DepositShares decimal.Decimal `sql:"type:decimal(32,8)" json:"deposit_shares"`
	BorrowShares  decimal.Decimal `sql:"type:decimal(32,8)" json:"borrow_shares"`
	Version       int64           `sql:"default:0" json:"version"`
	CreatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IPositionStore position store interface
//
// Find returns an empty record with ID == 0 when the user has not
// touched the asset yet.
type IPositionStore interface {
	Create(ctx context.Context, tx *db.DB, position *Position) error
	Find(ctx context.Context, userID, assetID string) (*Position, error)
	FindByUser(ctx context.Context, userID string) ([]*Position, error)
	CountOfBorrowers(ctx context.Context, assetID string) (int64, error)
	Update(ctx context.Context, tx *db.DB, position *Position) error
}
