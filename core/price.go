package core

import (
	"context"
	"time"

	"github.com/fox-one/msgpack"
	"github.com/fox-one/pkg/store/db"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// PriceQuote normalized oracle read
//
// consumed once per collateral evaluation and never cached across
// operations; staleness is re-checked on every read.
type PriceQuote struct {
	FeedID      string          `json:"feed_id,omitempty"`
	Price       decimal.Decimal `json:"price,omitempty"`
	Confidence  decimal.Decimal `json:"confidence,omitempty"`
	PublishedAt time.Time       `json:"published_at,omitempty"`
}

// PriceRecord raw feed record as published by the oracle network
//
// price and confidence are fixed-point integers scaled by 10^expo,
// the way pyth-style feeds ship them.
type PriceRecord struct {
	ID          uint64         `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	FeedID      string         `sql:"size:80;unique_index:idx_feed_published" json:"feed_id,omitempty"`
	Price       int64          `sql:"default:0" json:"price,omitempty"`
	Conf        int64          `sql:"default:0" json:"conf,omitempty"`
	Expo        int32          `sql:"default:0" json:"expo,omitempty"`
	PublishedAt time.Time      `sql:"unique_index:idx_feed_published" json:"published_at,omitempty"`
	Content     types.JSONText `sql:"type:varchar(1024)" json:"content,omitempty"`
	// base64 aggregate signature over Payload plus the signer bitmask;
	// empty when the deployment runs without oracle signers
	Signature  string    `sql:"size:512" json:"signature,omitempty"`
	SignerMask uint64    `sql:"default:0" json:"signer_mask,omitempty"`
	Version    int64     `sql:"default:0" json:"version,omitempty"`
	CreatedAt  time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
}

// Payload deterministic bytes the oracle signers sign
func (r *PriceRecord) Payload() []byte {
	bts, _ := msgpack.Marshal([]interface{}{
		r.FeedID,
		r.Price,
		r.Conf,
		r.Expo,
		r.PublishedAt.Unix(),
	})
	return bts
}

// IPriceStore price record store interface
type IPriceStore interface {
	Save(ctx context.Context, record *PriceRecord) error
	FindLatest(ctx context.Context, feedID string) (*PriceRecord, error)
	DeleteByTime(ctx context.Context, tx *db.DB, t time.Time) error
}

// IPriceOracleService oracle adapter interface
type IPriceOracleService interface {
	// GetQuote reads the latest record of the feed and normalizes it,
	// rejecting stale or low-confidence data as of t
	GetQuote(ctx context.Context, feedID string, t time.Time) (*PriceQuote, error)
	// PullPriceRecords fetches fresh records for the feeds from the
	// oracle endpoint without persisting them
	PullPriceRecords(ctx context.Context, feedIDs []string, t time.Time) ([]*PriceRecord, error)
}
