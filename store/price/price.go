package price

import (
	"context"
	"time"

	"lending/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type priceStore struct {
	db *db.DB
}

// New new price store
func New(db *db.DB) core.IPriceStore {
	return &priceStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.PriceRecord{})
		if err := tx.AutoMigrate(core.PriceRecord{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *priceStore) Save(ctx context.Context, record *core.PriceRecord) error {
	return s.db.Update().Where("feed_id=? and published_at=?", record.FeedID, record.PublishedAt).FirstOrCreate(record).Error
}

func (s *priceStore) FindLatest(ctx context.Context, feedID string) (*core.PriceRecord, error) {
	var record core.PriceRecord
	if err := s.db.View().Where("feed_id=?", feedID).Order("published_at desc").First(&record).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.PriceRecord{FeedID: feedID}, nil
		}
		return nil, err
	}

	return &record, nil
}

func (s *priceStore) DeleteByTime(ctx context.Context, tx *db.DB, t time.Time) error {
	return tx.Update().Where("published_at < ?", t).Delete(core.PriceRecord{}).Error
}
