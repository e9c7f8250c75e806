package cashier

import (
	"context"
	"errors"
	"time"

	"lending/core"
	"lending/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

const batchLimit = 100

// Cashier drains the queued payouts into the custody collaborator
type Cashier struct {
	worker.TickWorker
	db            *db.DB
	transferStore core.ITransferStore
	walletService core.WalletService
}

// New new cashier
func New(db *db.DB, transferStore core.ITransferStore, walletService core.WalletService) *Cashier {
	return &Cashier{
		TickWorker: worker.TickWorker{
			Delay:    500 * time.Millisecond,
			ErrDelay: 3 * time.Second,
		},
		db:            db,
		transferStore: transferStore,
		walletService: walletService,
	}
}

// Run run worker
func (w *Cashier) Run(ctx context.Context) error {
	return w.StartTick(ctx, func(ctx context.Context) error {
		err := w.onWork(ctx)
		if err != nil && errors.Is(err, errEOF) {
			return nil
		}
		return err
	})
}

var errEOF = errors.New("EOF")

func (w *Cashier) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "cashier")

	transfers, err := w.transferStore.Top(ctx, batchLimit)
	if err != nil {
		log.WithError(err).Errorln("transfers.Top")
		return err
	}

	if len(transfers) == 0 {
		return errEOF
	}

	for _, transfer := range transfers {
		if err := w.handleTransfer(ctx, transfer); err != nil {
			return err
		}
	}

	return nil
}

func (w *Cashier) handleTransfer(ctx context.Context, transfer *core.Transfer) error {
	log := logger.FromContext(ctx).WithField("trace", transfer.TraceID)

	if err := w.walletService.HandleTransfer(ctx, transfer); err != nil {
		log.WithError(err).Errorln("wallet.HandleTransfer")
		return err
	}

	return w.db.Tx(func(tx *db.DB) error {
		return w.transferStore.Delete(ctx, tx, transfer.ID)
	})
}
