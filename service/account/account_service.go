package account

import (
	"context"
	"time"

	"lending/core"
	"lending/internal/lending"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

type accountService struct {
	banks     core.IBankStore
	positions core.IPositionStore
	oracle    core.IPriceOracleService
}

// New new account service
func New(banks core.IBankStore, positions core.IPositionStore, oracle core.IPriceOracleService) core.IAccountService {
	return &accountService{
		banks:     banks,
		positions: positions,
		oracle:    oracle,
	}
}

func (s *accountService) CheckHealth(ctx context.Context, userID string, delta *core.HypotheticalDelta, t time.Time) (*core.AccountHealth, error) {
	log := logger.FromContext(ctx).WithField("user", userID)

	positions, err := s.positions.FindByUser(ctx, userID)
	if err != nil {
		log.WithError(err).Errorln("positions.FindByUser")
		return nil, err
	}

	banks, err := s.banks.AllAsMap(ctx)
	if err != nil {
		log.WithError(err).Errorln("banks.AllAsMap")
		return nil, err
	}

	type exposure struct {
		deposits decimal.Decimal
		borrows  decimal.Decimal
	}

	exposures := make(map[string]*exposure)
	for _, position := range positions {
		if position.DepositShares.IsZero() && position.BorrowShares.IsZero() {
			continue
		}

		bank, ok := banks[position.AssetID]
		if !ok {
			return nil, core.ErrBankNotFound
		}

		// value against totals accrued to t, without touching the
		// stored bank
		b := *bank
		lending.Accrue(&b, t)

		exposures[position.AssetID] = &exposure{
			deposits: lending.AmountForShares(position.DepositShares, b.DepositorPool(), b.TotalDepositShares),
			borrows:  lending.AmountForShares(position.BorrowShares, b.TotalBorrows, b.TotalBorrowShares),
		}
	}

	if delta != nil {
		if _, ok := banks[delta.AssetID]; !ok {
			return nil, core.ErrBankNotFound
		}

		e, ok := exposures[delta.AssetID]
		if !ok {
			e = &exposure{}
			exposures[delta.AssetID] = e
		}

		e.deposits = e.deposits.Add(delta.DepositDelta)
		if e.deposits.IsNegative() {
			e.deposits = decimal.Zero
		}
		e.borrows = e.borrows.Add(delta.BorrowDelta)
	}

	health := &core.AccountHealth{UserID: userID}
	for assetID, e := range exposures {
		if e.deposits.IsZero() && e.borrows.IsZero() {
			continue
		}

		bank := banks[assetID]
		feedID := bank.PriceFeedID
		if delta != nil && delta.AssetID == assetID && delta.FeedID != "" {
			feedID = delta.FeedID
		}

		quote, err := s.oracle.GetQuote(ctx, feedID, t)
		if err != nil {
			log.WithError(err).WithField("feed", feedID).Errorln("oracle.GetQuote")
			return nil, err
		}

		collateral := e.deposits.Mul(quote.Price)
		health.CollateralValue = health.CollateralValue.Add(collateral)
		health.BorrowableValue = health.BorrowableValue.Add(collateral.Mul(bank.MaxLTV()))
		health.DebtValue = health.DebtValue.Add(e.borrows.Mul(quote.Price))
	}

	health.Healthy = health.DebtValue.LessThanOrEqual(health.BorrowableValue)
	return health, nil
}
