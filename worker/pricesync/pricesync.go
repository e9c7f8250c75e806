package pricesync

import (
	"context"
	"time"

	"lending/core"
	"lending/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
)

const (
	checkpointKey = "pricesync_checkpoint"
	// records older than this window are dead weight for quoting
	retainWindow = 24 * time.Hour
)

// Worker pulls fresh feed records from the oracle endpoint and prunes
// expired ones
type Worker struct {
	worker.TickWorker
	db            *db.DB
	bankStore     core.IBankStore
	priceStore    core.IPriceStore
	oracleService core.IPriceOracleService
	propertyStore property.Store
}

// New new price sync worker
func New(
	db *db.DB,
	bankStore core.IBankStore,
	priceStore core.IPriceStore,
	oracleService core.IPriceOracleService,
	propertyStore property.Store,
) *Worker {
	return &Worker{
		TickWorker: worker.TickWorker{
			Delay:    5 * time.Second,
			ErrDelay: 10 * time.Second,
		},
		db:            db,
		bankStore:     bankStore,
		priceStore:    priceStore,
		oracleService: oracleService,
		propertyStore: propertyStore,
	}
}

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "pricesync")

	banks, err := w.bankStore.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("banks.All")
		return err
	}

	feedIDs := make([]string, 0, len(banks))
	seen := make(map[string]bool)
	for _, bank := range banks {
		if bank.PriceFeedID == "" || seen[bank.PriceFeedID] {
			continue
		}
		seen[bank.PriceFeedID] = true
		feedIDs = append(feedIDs, bank.PriceFeedID)
	}

	if len(feedIDs) == 0 {
		return nil
	}

	now := time.Now()
	records, err := w.oracleService.PullPriceRecords(ctx, feedIDs, now)
	if err != nil {
		log.WithError(err).Errorln("oracle.PullPriceRecords")
		return err
	}

	for _, record := range records {
		if record.Price <= 0 || record.PublishedAt.IsZero() {
			log.WithField("feed", record.FeedID).Errorln("skip invalid record")
			continue
		}

		if err := w.priceStore.Save(ctx, record); err != nil {
			log.WithError(err).Errorln("prices.Save")
			return err
		}
	}

	if err := w.propertyStore.Save(ctx, checkpointKey, now.Unix()); err != nil {
		log.WithError(err).Errorln("property.Save", checkpointKey)
		return err
	}

	return w.db.Tx(func(tx *db.DB) error {
		return w.priceStore.DeleteByTime(ctx, tx, now.Add(-retainWindow))
	})
}
