package bank

import (
	"context"
	"time"

	"lending/core"
	"lending/internal/lending"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type bankService struct {
	banks core.IBankStore
}

// New new bank service
func New(banks core.IBankStore) core.IBankService {
	return &bankService{banks: banks}
}

func (s *bankService) CreateBank(ctx context.Context, bank *core.Bank) error {
	log := logger.FromContext(ctx).WithField("asset", bank.AssetID)

	if bank.AssetID == "" {
		return core.ErrInvalidAmount
	}

	if bank.DepositRateBps < 0 || bank.BorrowRateBps < 0 ||
		bank.DepositRateBps > bank.BorrowRateBps {
		return core.ErrOperationForbidden
	}

	// without this the borrow side could never cover the deposit side
	if bank.MaxLTVBps < 0 || bank.MaxLTVBps >= bank.LiquidationThresholdBps ||
		bank.LiquidationThresholdBps > 10000 {
		return core.ErrOperationForbidden
	}

	existing, err := s.banks.Find(ctx, bank.AssetID)
	if err != nil && !gorm.IsRecordNotFoundError(err) {
		log.WithError(err).Errorln("banks.Find")
		return err
	}

	if existing != nil && existing.ID > 0 {
		return core.ErrBankExists
	}

	if bank.LastAccruedAt.IsZero() {
		bank.LastAccruedAt = time.Now()
	}

	if err := s.banks.Create(ctx, bank); err != nil {
		log.WithError(err).Errorln("banks.Create")
		return err
	}

	log.Infoln("bank created")
	return nil
}

func (s *bankService) AccrueInterest(ctx context.Context, tx *db.DB, bank *core.Bank, t time.Time) error {
	lending.Accrue(bank, t)

	if !lending.WithinRange(bank.TotalDeposits) || !lending.WithinRange(bank.TotalBorrows) {
		return core.ErrOverflow
	}

	if err := s.banks.Update(ctx, tx, bank); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("banks.Update")
		return err
	}

	return nil
}
