package interest

import (
	"context"
	"time"

	"lending/core"
	"lending/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

// Worker rolls every bank forward so redemption rates stay current even
// when an asset sees no operations for a while
type Worker struct {
	worker.TickWorker
	db          *db.DB
	bankStore   core.IBankStore
	bankService core.IBankService
}

// New new interest worker
func New(db *db.DB, bankStore core.IBankStore, bankService core.IBankService) *Worker {
	return &Worker{
		TickWorker: worker.TickWorker{
			Delay:    10 * time.Second,
			ErrDelay: 30 * time.Second,
		},
		db:          db,
		bankStore:   bankStore,
		bankService: bankService,
	}
}

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "interest")

	banks, err := w.bankStore.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("banks.All")
		return err
	}

	now := time.Now()
	for _, bank := range banks {
		bank := bank
		err := w.db.Tx(func(tx *db.DB) error {
			return w.bankService.AccrueInterest(ctx, tx, bank, now)
		})
		if err != nil {
			log.WithError(err).WithField("asset", bank.AssetID).Errorln("accrue")
			return err
		}
	}

	return nil
}
