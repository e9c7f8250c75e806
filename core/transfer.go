package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Transfer queued custody payout
//
// borrow and withdraw enqueue one of these in the same transaction that
// mutates the ledgers; the cashier worker hands them to the wallet
// collaborator and deletes them once acknowledged.
type Transfer struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	CreatedAt time.Time       `json:"created_at,omitempty"`
	TraceID   string          `sql:"size:36;unique_index:trace_idx" json:"trace_id,omitempty"`
	UserID    string          `sql:"size:36" json:"user_id,omitempty"`
	AssetID   string          `sql:"size:36" json:"asset_id,omitempty"`
	Amount    decimal.Decimal `sql:"type:decimal(32,8)" json:"amount,omitempty"`
	Memo      string          `sql:"size:140" json:"memo,omitempty"`
	// extra receivers for split payouts, usually empty
	Opponents pq.StringArray `sql:"type:varchar(1024)" json:"opponents,omitempty"`
}

// ITransferStore transfer store interface
type ITransferStore interface {
	Create(ctx context.Context, tx *db.DB, transfer *Transfer) error
	Top(ctx context.Context, limit int) ([]*Transfer, error)
	Delete(ctx context.Context, tx *db.DB, ids ...uint64) error
}

// WalletService external custody collaborator
//
// moving tokens between the user account and the pool custody account is
// the host environment's job and assumed atomic and already authorized.
type WalletService interface {
	HandleTransfer(ctx context.Context, transfer *Transfer) error
}
