package bank

import (
	"context"

	"lending/core"

	"github.com/fox-one/pkg/store/db"
)

type bankStore struct {
	db *db.DB
}

// New new bank store
func New(db *db.DB) core.IBankStore {
	return &bankStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Bank{})
		if err := tx.AutoMigrate(core.Bank{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *bankStore) Create(ctx context.Context, bank *core.Bank) error {
	return s.db.Update().Where("asset_id=?", bank.AssetID).FirstOrCreate(bank).Error
}

func (s *bankStore) Find(ctx context.Context, assetID string) (*core.Bank, error) {
	var bank core.Bank
	if err := s.db.View().Where("asset_id=?", assetID).First(&bank).Error; err != nil {
		return nil, err
	}

	return &bank, nil
}

func (s *bankStore) All(ctx context.Context) ([]*core.Bank, error) {
	var banks []*core.Bank
	if err := s.db.View().Find(&banks).Error; err != nil {
		return nil, err
	}
	return banks, nil
}

func (s *bankStore) AllAsMap(ctx context.Context) (map[string]*core.Bank, error) {
	banks, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	maps := make(map[string]*core.Bank)
	for _, b := range banks {
		maps[b.AssetID] = b
	}

	return maps, nil
}

func (s *bankStore) Update(ctx context.Context, tx *db.DB, bank *core.Bank) error {
	version := bank.Version
	bank.Version++
	return tx.Update().Model(core.Bank{}).Where("asset_id=? and version=?", bank.AssetID, version).Update(bank).Error
}
