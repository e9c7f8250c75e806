package oracle

import (
	"context"
	"testing"
	"time"

	"lending/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePriceStore struct {
	records map[string]*core.PriceRecord
}

func (s *fakePriceStore) Save(ctx context.Context, record *core.PriceRecord) error {
	s.records[record.FeedID] = record
	return nil
}

func (s *fakePriceStore) FindLatest(ctx context.Context, feedID string) (*core.PriceRecord, error) {
	if record, ok := s.records[feedID]; ok {
		r := *record
		return &r, nil
	}
	return &core.PriceRecord{FeedID: feedID}, nil
}

func (s *fakePriceStore) DeleteByTime(ctx context.Context, tx *db.DB, t time.Time) error {
	return nil
}

type fakeSignerStore struct{}

func (s *fakeSignerStore) Save(ctx context.Context, signerID, publicKey string) error { return nil }
func (s *fakeSignerStore) Delete(ctx context.Context, signerID string) error          { return nil }
func (s *fakeSignerStore) FindAll(ctx context.Context) ([]*core.OracleSigner, error) {
	return nil, nil
}

func newTestService(records ...*core.PriceRecord) core.IPriceOracleService {
	store := &fakePriceStore{records: map[string]*core.PriceRecord{}}
	for _, r := range records {
		store.records[r.FeedID] = r
	}

	cfg := &core.Config{}
	cfg.PriceOracle.MaxAgeSeconds = 60
	cfg.PriceOracle.MaxConfidenceBps = 200

	return New(cfg, store, &fakeSignerStore{})
}

func TestGetQuote(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	srv := newTestService(&core.PriceRecord{
		ID:          1,
		FeedID:      "btc-usd",
		Price:       6500012,
		Conf:        1200,
		Expo:        -2,
		PublishedAt: now.Add(-10 * time.Second),
	})

	quote, err := srv.GetQuote(ctx, "btc-usd", now)
	require.Nil(t, err)
	assert.Equal(t, "65000.12", quote.Price.String())
	assert.Equal(t, "12", quote.Confidence.String())
}

func TestGetQuoteMissingFeed(t *testing.T) {
	srv := newTestService()

	_, err := srv.GetQuote(context.Background(), "unknown", time.Now())
	assert.Equal(t, core.ErrStalePrice, err)
}

func TestGetQuoteStale(t *testing.T) {
	now := time.Now()

	srv := newTestService(&core.PriceRecord{
		ID:          1,
		FeedID:      "btc-usd",
		Price:       6500012,
		Expo:        -2,
		PublishedAt: now.Add(-2 * time.Minute),
	})

	_, err := srv.GetQuote(context.Background(), "btc-usd", now)
	assert.Equal(t, core.ErrStalePrice, err)
}

func TestGetQuoteInvalidPrice(t *testing.T) {
	now := time.Now()

	srv := newTestService(&core.PriceRecord{
		ID:          1,
		FeedID:      "btc-usd",
		Price:       0,
		Expo:        -2,
		PublishedAt: now.Add(-time.Second),
	})

	_, err := srv.GetQuote(context.Background(), "btc-usd", now)
	assert.Equal(t, core.ErrInvalidPrice, err)
}

func TestGetQuoteLowConfidence(t *testing.T) {
	now := time.Now()

	// confidence is 10% of the price, cap is 2%
	srv := newTestService(&core.PriceRecord{
		ID:          1,
		FeedID:      "btc-usd",
		Price:       1000,
		Conf:        100,
		Expo:        -2,
		PublishedAt: now.Add(-time.Second),
	})

	_, err := srv.GetQuote(context.Background(), "btc-usd", now)
	assert.Equal(t, core.ErrLowConfidence, err)
}
