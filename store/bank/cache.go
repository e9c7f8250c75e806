package bank

import (
	"context"
	"fmt"
	"time"

	"lending/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/store/db"
	"golang.org/x/sync/singleflight"
)

// Cache wraps a bank store with a read-through LRU cache.
//
// Cached entries are stored by value so callers can mutate the returned
// bank freely before deciding whether to persist it.
func Cache(store core.IBankStore, exp time.Duration) core.IBankStore {
	return &cacheBankStore{
		IBankStore: store,
		cache:      gcache.New(512).LRU().Expiration(exp).Build(),
		sf:         &singleflight.Group{},
	}
}

type cacheBankStore struct {
	core.IBankStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cacheBankStore) Create(ctx context.Context, bank *core.Bank) error {
	if err := s.IBankStore.Create(ctx, bank); err != nil {
		return err
	}
	s.cache.Set(s.bankKey(bank.AssetID), *bank)
	return nil
}

func (s *cacheBankStore) Find(ctx context.Context, assetID string) (*core.Bank, error) {
	key := s.bankKey(assetID)
	if v, err := s.cache.Get(key); err == nil {
		if bank, ok := v.(core.Bank); ok {
			return &bank, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		bank, err := s.IBankStore.Find(ctx, assetID)
		if err != nil {
			return nil, err
		}
		s.cache.Set(key, *bank)
		return *bank, nil
	})
	if err != nil {
		return nil, err
	}

	bank := v.(core.Bank)
	return &bank, nil
}

func (s *cacheBankStore) Update(ctx context.Context, tx *db.DB, bank *core.Bank) error {
	if err := s.IBankStore.Update(ctx, tx, bank); err != nil {
		return err
	}
	// the write may still roll back with the enclosing transaction
	s.cache.Remove(s.bankKey(bank.AssetID))
	return nil
}

func (s *cacheBankStore) bankKey(assetID string) string {
	return fmt.Sprintf("bank:asset:%s", assetID)
}
