package lending

import (
	"context"
	"fmt"
	"time"

	"lending/core"
	"lending/internal/lending"
	"lending/pkg/id"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type lendingService struct {
	db        *db.DB
	config    *core.Config
	banks     core.IBankStore
	positions core.IPositionStore
	users     core.IUserStore
	transfers core.ITransferStore
	account   core.IAccountService
}

// New new lending service
func New(
	db *db.DB,
	config *core.Config,
	banks core.IBankStore,
	positions core.IPositionStore,
	users core.IUserStore,
	transfers core.ITransferStore,
	account core.IAccountService,
) core.ILendingService {
	return &lendingService{
		db:        db,
		config:    config,
		banks:     banks,
		positions: positions,
		users:     users,
		transfers: transfers,
		account:   account,
	}
}

func (s *lendingService) Deposit(ctx context.Context, userID, assetID string, amount decimal.Decimal) error {
	return s.db.Tx(func(tx *db.DB) error {
		return s.deposit(ctx, tx, userID, assetID, amount, time.Now())
	})
}

func (s *lendingService) Withdraw(ctx context.Context, userID, assetID string, amount decimal.Decimal, feedID string) error {
	return s.db.Tx(func(tx *db.DB) error {
		return s.withdraw(ctx, tx, userID, assetID, amount, feedID, time.Now())
	})
}

func (s *lendingService) Borrow(ctx context.Context, userID, assetID string, amount decimal.Decimal, feedID string) error {
	return s.db.Tx(func(tx *db.DB) error {
		return s.borrow(ctx, tx, userID, assetID, amount, feedID, time.Now())
	})
}

func (s *lendingService) Repay(ctx context.Context, userID, assetID string, amount decimal.Decimal) (decimal.Decimal, error) {
	var repaid decimal.Decimal
	err := s.db.Tx(func(tx *db.DB) error {
		var err error
		repaid, err = s.repay(ctx, tx, userID, assetID, amount, time.Now())
		return err
	})
	return repaid, err
}

func (s *lendingService) deposit(ctx context.Context, tx *db.DB, userID, assetID string, amount decimal.Decimal, at time.Time) error {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"op":     "deposit",
		"user":   userID,
		"asset":  assetID,
		"amount": amount,
	})

	amount = amount.Truncate(lending.MaxPrecision)
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	if _, err := s.mustGetUser(ctx, userID); err != nil {
		return err
	}

	bank, err := s.mustGetBank(ctx, assetID)
	if err != nil {
		return err
	}

	lending.Accrue(bank, at)

	shares := lending.SharesForAmount(amount, bank.DepositorPool(), bank.TotalDepositShares)
	if !shares.IsPositive() {
		return core.ErrInvalidAmount
	}

	bank.TotalDeposits = bank.TotalDeposits.Add(amount)
	bank.TotalDepositShares = bank.TotalDepositShares.Add(shares)
	if !lending.WithinRange(bank.TotalDeposits) || !lending.WithinRange(bank.TotalDepositShares) {
		return core.ErrOverflow
	}

	position, err := s.positions.Find(ctx, userID, assetID)
	if err != nil {
		log.WithError(err).Errorln("positions.Find")
		return err
	}

	if err := s.banks.Update(ctx, tx, bank); err != nil {
		log.WithError(err).Errorln("banks.Update")
		return err
	}

	position.DepositShares = position.DepositShares.Add(shares)
	if err := s.savePosition(ctx, tx, position); err != nil {
		log.WithError(err).Errorln("positions save")
		return err
	}

	log.WithField("shares", shares).Infoln("deposited")
	return nil
}

func (s *lendingService) withdraw(ctx context.Context, tx *db.DB, userID, assetID string, amount decimal.Decimal, feedID string, at time.Time) error {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"op":     "withdraw",
		"user":   userID,
		"asset":  assetID,
		"amount": amount,
	})

	amount = amount.Truncate(lending.MaxPrecision)
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	if _, err := s.mustGetUser(ctx, userID); err != nil {
		return err
	}

	bank, err := s.mustGetBank(ctx, assetID)
	if err != nil {
		return err
	}

	lending.Accrue(bank, at)

	position, err := s.positions.Find(ctx, userID, assetID)
	if err != nil {
		log.WithError(err).Errorln("positions.Find")
		return err
	}

	if position.ID == 0 || position.DepositShares.IsZero() {
		return core.ErrPositionNotFound
	}

	redeemable := lending.AmountForShares(position.DepositShares, bank.DepositorPool(), bank.TotalDepositShares)
	if amount.GreaterThan(redeemable) {
		return core.ErrInsufficientBalance
	}

	if amount.GreaterThan(bank.AvailableLiquidity()) {
		return core.ErrInsufficientLiquidity
	}

	// the collateral re-check runs against the stored ledgers plus the
	// pending outflow, before anything is persisted
	health, err := s.account.CheckHealth(ctx, userID, &core.HypotheticalDelta{
		AssetID:      assetID,
		FeedID:       feedID,
		DepositDelta: amount.Neg(),
	}, at)
	if err != nil {
		return err
	}
	if !health.Healthy {
		return core.ErrWithdrawalUnderCollateral
	}

	shares := lending.BurnShares(amount, bank.DepositorPool(), bank.TotalDepositShares)
	if amount.Equal(redeemable) {
		// a full exit burns every share so rounding dust cannot strand
		shares = position.DepositShares
	}
	if shares.GreaterThan(position.DepositShares) {
		shares = position.DepositShares
	}

	bank.TotalDeposits = bank.TotalDeposits.Sub(amount)
	bank.TotalDepositShares = bank.TotalDepositShares.Sub(shares)
	position.DepositShares = position.DepositShares.Sub(shares)

	if err := s.banks.Update(ctx, tx, bank); err != nil {
		log.WithError(err).Errorln("banks.Update")
		return err
	}

	if err := s.positions.Update(ctx, tx, position); err != nil {
		log.WithError(err).Errorln("positions.Update")
		return err
	}

	if err := s.enqueueTransfer(ctx, tx, "withdraw", userID, assetID, amount, at); err != nil {
		log.WithError(err).Errorln("transfers.Create")
		return err
	}

	log.WithField("shares", shares).Infoln("withdrawn")
	return nil
}

func (s *lendingService) borrow(ctx context.Context, tx *db.DB, userID, assetID string, amount decimal.Decimal, feedID string, at time.Time) error {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"op":     "borrow",
		"user":   userID,
		"asset":  assetID,
		"amount": amount,
	})

	amount = amount.Truncate(lending.MaxPrecision)
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	if _, err := s.mustGetUser(ctx, userID); err != nil {
		return err
	}

	bank, err := s.mustGetBank(ctx, assetID)
	if err != nil {
		return err
	}

	lending.Accrue(bank, at)

	if amount.GreaterThan(bank.AvailableLiquidity()) {
		return core.ErrInsufficientLiquidity
	}

	health, err := s.account.CheckHealth(ctx, userID, &core.HypotheticalDelta{
		AssetID:     assetID,
		FeedID:      feedID,
		BorrowDelta: amount,
	}, at)
	if err != nil {
		return err
	}
	if !health.Healthy {
		return core.ErrBorrowExceedsCollateral
	}

	shares := lending.SharesForAmount(amount, bank.TotalBorrows, bank.TotalBorrowShares)
	if !shares.IsPositive() {
		return core.ErrInvalidAmount
	}

	bank.TotalBorrows = bank.TotalBorrows.Add(amount)
	bank.TotalBorrowShares = bank.TotalBorrowShares.Add(shares)
	if !lending.WithinRange(bank.TotalBorrows) || !lending.WithinRange(bank.TotalBorrowShares) {
		return core.ErrOverflow
	}

	position, err := s.positions.Find(ctx, userID, assetID)
	if err != nil {
		log.WithError(err).Errorln("positions.Find")
		return err
	}

	if err := s.banks.Update(ctx, tx, bank); err != nil {
		log.WithError(err).Errorln("banks.Update")
		return err
	}

	position.BorrowShares = position.BorrowShares.Add(shares)
	if err := s.savePosition(ctx, tx, position); err != nil {
		log.WithError(err).Errorln("positions save")
		return err
	}

	if err := s.enqueueTransfer(ctx, tx, "borrow", userID, assetID, amount, at); err != nil {
		log.WithError(err).Errorln("transfers.Create")
		return err
	}

	log.WithField("shares", shares).Infoln("borrowed")
	return nil
}

func (s *lendingService) repay(ctx context.Context, tx *db.DB, userID, assetID string, amount decimal.Decimal, at time.Time) (decimal.Decimal, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"op":     "repay",
		"user":   userID,
		"asset":  assetID,
		"amount": amount,
	})

	amount = amount.Truncate(lending.MaxPrecision)
	if !amount.IsPositive() {
		return decimal.Zero, core.ErrInvalidAmount
	}

	if _, err := s.mustGetUser(ctx, userID); err != nil {
		return decimal.Zero, err
	}

	bank, err := s.mustGetBank(ctx, assetID)
	if err != nil {
		return decimal.Zero, err
	}

	lending.Accrue(bank, at)

	position, err := s.positions.Find(ctx, userID, assetID)
	if err != nil {
		log.WithError(err).Errorln("positions.Find")
		return decimal.Zero, err
	}

	if position.ID == 0 || position.BorrowShares.IsZero() {
		return decimal.Zero, core.ErrPositionNotFound
	}

	outstanding := lending.AmountForShares(position.BorrowShares, bank.TotalBorrows, bank.TotalBorrowShares)
	if amount.GreaterThan(outstanding) {
		if s.config.App.StrictRepay {
			return decimal.Zero, core.ErrRepayExceedsDebt
		}
		amount = outstanding
	}

	shares := lending.BurnShares(amount, bank.TotalBorrows, bank.TotalBorrowShares)
	if amount.Equal(outstanding) {
		shares = position.BorrowShares
	}
	if shares.GreaterThan(position.BorrowShares) {
		shares = position.BorrowShares
	}

	bank.TotalBorrows = bank.TotalBorrows.Sub(amount)
	bank.TotalBorrowShares = bank.TotalBorrowShares.Sub(shares)
	position.BorrowShares = position.BorrowShares.Sub(shares)

	if err := s.banks.Update(ctx, tx, bank); err != nil {
		log.WithError(err).Errorln("banks.Update")
		return decimal.Zero, err
	}

	if err := s.positions.Update(ctx, tx, position); err != nil {
		log.WithError(err).Errorln("positions.Update")
		return decimal.Zero, err
	}

	log.WithField("repaid", amount).Infoln("repaid")
	return amount, nil
}

func (s *lendingService) mustGetUser(ctx context.Context, userID string) (*core.User, error) {
	user, err := s.users.Find(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("users.Find")
		return nil, err
	}

	if user.ID == 0 {
		return nil, core.ErrUserNotFound
	}

	return user, nil
}

func (s *lendingService) mustGetBank(ctx context.Context, assetID string) (*core.Bank, error) {
	bank, err := s.banks.Find(ctx, assetID)
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.ErrBankNotFound
		}
		logger.FromContext(ctx).WithError(err).Errorln("banks.Find")
		return nil, err
	}

	return bank, nil
}

func (s *lendingService) savePosition(ctx context.Context, tx *db.DB, position *core.Position) error {
	if position.ID == 0 {
		return s.positions.Create(ctx, tx, position)
	}
	return s.positions.Update(ctx, tx, position)
}

func (s *lendingService) enqueueTransfer(ctx context.Context, tx *db.DB, op, userID, assetID string, amount decimal.Decimal, at time.Time) error {
	transfer := &core.Transfer{
		TraceID:   id.TraceIDFrom(fmt.Sprintf("%s|%s|%s|%s|%d", op, userID, assetID, amount, at.UnixNano())),
		CreatedAt: at,
		UserID:    userID,
		AssetID:   assetID,
		Amount:    amount,
		Memo:      op,
		Opponents: []string{userID},
	}

	return s.transfers.Create(ctx, tx, transfer)
}
