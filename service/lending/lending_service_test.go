package lending

import (
	"context"
	"testing"
	"time"

	"lending/core"
	lendingmath "lending/internal/lending"
	accountservice "lending/service/account"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBankStore struct {
	banks map[string]*core.Bank
}

func (s *fakeBankStore) Create(ctx context.Context, bank *core.Bank) error {
	b := *bank
	s.banks[bank.AssetID] = &b
	return nil
}

func (s *fakeBankStore) Find(ctx context.Context, assetID string) (*core.Bank, error) {
	if bank, ok := s.banks[assetID]; ok {
		b := *bank
		return &b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeBankStore) All(ctx context.Context) ([]*core.Bank, error) {
	banks := make([]*core.Bank, 0, len(s.banks))
	for _, bank := range s.banks {
		b := *bank
		banks = append(banks, &b)
	}
	return banks, nil
}

func (s *fakeBankStore) AllAsMap(ctx context.Context) (map[string]*core.Bank, error) {
	maps := make(map[string]*core.Bank, len(s.banks))
	for assetID, bank := range s.banks {
		b := *bank
		maps[assetID] = &b
	}
	return maps, nil
}

func (s *fakeBankStore) Update(ctx context.Context, tx *db.DB, bank *core.Bank) error {
	bank.Version++
	b := *bank
	s.banks[bank.AssetID] = &b
	return nil
}

type fakePositionStore struct {
	positions []*core.Position
}

func (s *fakePositionStore) Create(ctx context.Context, tx *db.DB, position *core.Position) error {
	position.ID = uint64(len(s.positions) + 1)
	p := *position
	s.positions = append(s.positions, &p)
	return nil
}

func (s *fakePositionStore) Find(ctx context.Context, userID, assetID string) (*core.Position, error) {
	for _, position := range s.positions {
		if position.UserID == userID && position.AssetID == assetID {
			p := *position
			return &p, nil
		}
	}
	return &core.Position{UserID: userID, AssetID: assetID}, nil
}

func (s *fakePositionStore) FindByUser(ctx context.Context, userID string) ([]*core.Position, error) {
	var positions []*core.Position
	for _, position := range s.positions {
		if position.UserID == userID {
			p := *position
			positions = append(positions, &p)
		}
	}
	return positions, nil
}

func (s *fakePositionStore) CountOfBorrowers(ctx context.Context, assetID string) (int64, error) {
	var count int64
	for _, position := range s.positions {
		if position.AssetID == assetID && position.BorrowShares.IsPositive() {
			count++
		}
	}
	return count, nil
}

func (s *fakePositionStore) Update(ctx context.Context, tx *db.DB, position *core.Position) error {
	for idx, item := range s.positions {
		if item.UserID == position.UserID && item.AssetID == position.AssetID {
			position.Version++
			p := *position
			s.positions[idx] = &p
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeUserStore struct {
	users map[string]*core.User
}

func (s *fakeUserStore) Create(ctx context.Context, user *core.User) error {
	user.ID = uint64(len(s.users) + 1)
	u := *user
	s.users[user.UserID] = &u
	return nil
}

func (s *fakeUserStore) Find(ctx context.Context, userID string) (*core.User, error) {
	if user, ok := s.users[userID]; ok {
		u := *user
		return &u, nil
	}
	return &core.User{UserID: userID}, nil
}

func (s *fakeUserStore) All(ctx context.Context) ([]*core.User, error) {
	users := make([]*core.User, 0, len(s.users))
	for _, user := range s.users {
		u := *user
		users = append(users, &u)
	}
	return users, nil
}

type fakeTransferStore struct {
	transfers []*core.Transfer
}

func (s *fakeTransferStore) Create(ctx context.Context, tx *db.DB, transfer *core.Transfer) error {
	transfer.ID = uint64(len(s.transfers) + 1)
	t := *transfer
	s.transfers = append(s.transfers, &t)
	return nil
}

func (s *fakeTransferStore) Top(ctx context.Context, limit int) ([]*core.Transfer, error) {
	if limit > len(s.transfers) {
		limit = len(s.transfers)
	}
	return s.transfers[:limit], nil
}

func (s *fakeTransferStore) Delete(ctx context.Context, tx *db.DB, ids ...uint64) error {
	return nil
}

type fakeOracle struct {
	prices map[string]decimal.Decimal
}

func (s *fakeOracle) GetQuote(ctx context.Context, feedID string, t time.Time) (*core.PriceQuote, error) {
	price, ok := s.prices[feedID]
	if !ok {
		return nil, core.ErrStalePrice
	}
	return &core.PriceQuote{FeedID: feedID, Price: price, PublishedAt: t}, nil
}

func (s *fakeOracle) PullPriceRecords(ctx context.Context, feedIDs []string, t time.Time) ([]*core.PriceRecord, error) {
	return nil, nil
}

type testEnv struct {
	srv       *lendingService
	banks     *fakeBankStore
	positions *fakePositionStore
	transfers *fakeTransferStore
	t0        time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t0 := time.Now()

	banks := &fakeBankStore{banks: map[string]*core.Bank{
		"usd": {
			ID:             1,
			AssetID:        "usd",
			Symbol:         "USD",
			PriceFeedID:    "usd-feed",
			DepositRateBps: 300,
			BorrowRateBps:  500,
			MaxLTVBps:      8000,
			LastAccruedAt:  t0,
		},
		"btc": {
			ID:             2,
			AssetID:        "btc",
			Symbol:         "BTC",
			PriceFeedID:    "btc-feed",
			DepositRateBps: 300,
			BorrowRateBps:  500,
			MaxLTVBps:      5000,
			LastAccruedAt:  t0,
		},
	}}

	positions := &fakePositionStore{}
	users := &fakeUserStore{users: map[string]*core.User{
		"alice": {ID: 1, UserID: "alice"},
		"bob":   {ID: 2, UserID: "bob"},
	}}
	transfers := &fakeTransferStore{}

	oracle := &fakeOracle{prices: map[string]decimal.Decimal{
		"usd-feed": decimal.NewFromInt(1),
		"btc-feed": decimal.NewFromInt(50),
	}}

	cfg := &core.Config{}

	srv := &lendingService{
		config:    cfg,
		banks:     banks,
		positions: positions,
		users:     users,
		transfers: transfers,
		account:   accountservice.New(banks, positions, oracle),
	}

	return &testEnv{
		srv:       srv,
		banks:     banks,
		positions: positions,
		transfers: transfers,
		t0:        t0,
	}
}

func (env *testEnv) bank() *core.Bank {
	return env.banks.banks["usd"]
}

func (env *testEnv) position(userID string) *core.Position {
	for _, position := range env.positions.positions {
		if position.UserID == userID && position.AssetID == "usd" {
			return position
		}
	}
	return nil
}

func TestDeposit(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	err := env.srv.deposit(ctx, nil, "alice", "usd", decimal.NewFromInt(10000), env.t0)
	require.Nil(t, err)

	bank := env.bank()
	assert.True(t, bank.TotalDeposits.Equal(decimal.NewFromInt(10000)))
	assert.True(t, bank.TotalDepositShares.Equal(decimal.NewFromInt(10000)))

	position := env.position("alice")
	require.NotNil(t, position)
	assert.True(t, position.DepositShares.Equal(decimal.NewFromInt(10000)))

	redeemable := lendingmath.AmountForShares(position.DepositShares, bank.TotalDeposits, bank.TotalDepositShares)
	assert.True(t, redeemable.Equal(decimal.NewFromInt(10000)))
}

func TestDepositValidation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	err := env.srv.deposit(ctx, nil, "alice", "usd", decimal.Zero, env.t0)
	assert.Equal(t, core.ErrInvalidAmount, err)

	err = env.srv.deposit(ctx, nil, "alice", "usd", decimal.NewFromInt(-5), env.t0)
	assert.Equal(t, core.ErrInvalidAmount, err)

	err = env.srv.deposit(ctx, nil, "alice", "doge", decimal.NewFromInt(5), env.t0)
	assert.Equal(t, core.ErrBankNotFound, err)

	err = env.srv.deposit(ctx, nil, "carol", "usd", decimal.NewFromInt(5), env.t0)
	assert.Equal(t, core.ErrUserNotFound, err)
}

func TestWithdrawFullCycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	require.Nil(t, env.srv.deposit(ctx, nil, "alice", "usd", decimal.NewFromInt(10000), env.t0))
	require.Nil(t, env.srv.withdraw(ctx, nil, "alice", "usd", decimal.NewFromInt(10000), "", env.t0))

	bank := env.bank()
	assert.True(t, bank.TotalDeposits.IsZero())
	assert.True(t, bank.TotalDepositShares.IsZero())

	position := env.position("alice")
	require.NotNil(t, position)
	assert.True(t, position.DepositShares.IsZero())

	require.Len(t, env.transfers.transfers, 1)
	transfer := env.transfers.transfers[0]
	assert.Equal(t, "withdraw", transfer.Memo)
	assert.True(t, transfer.Amount.Equal(decimal.NewFromInt(10000)))
}

func TestWithdrawOverBalance(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	require.Nil(t, env.srv.deposit(ctx, nil, "alice", "usd", decimal.NewFromInt(100), env.t0))

	err := env.srv.withdraw(ctx, nil, "alice", "usd", decimal.RequireFromString("100.00000001"), "", env.t0)
	assert.Equal(t, core.ErrInsufficientBalance, err)

	err = env.srv.withdraw(ctx, nil, "bob", "usd", decimal.NewFromInt(1), "", env.t0)
	assert.Equal(t, core.ErrPositionNotFound, err)

	// nothing moved
	assert.True(t, env.bank().TotalDeposits.Equal(decimal.NewFromInt(100)))
	assert.Len(t, env.transfers.transfers, 0)
}

func TestBorrowAgainstCollateral(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	require.Nil(t, env.srv.deposit(ctx, nil, "alice", "usd", decimal.NewFromInt(10000), env.t0))

	require.Nil(t, env.srv.borrow(ctx, nil, "alice", "usd", decimal.NewFromInt(1), "", env.t0))

	bank := env.bank()
	assert.True(t, bank.TotalBorrows.Equal(decimal.NewFromInt(1)))
	assert.True(t, bank.TotalBorrowShares.Equal(decimal.NewFromInt(1)))

	position := env.position("alice")
	require.NotNil(t, position)
	assert.True(t, position.BorrowShares.Equal(decimal.NewFromInt(1)))

	require.Len(t, env.transfers.transfers, 1)
	assert.Equal(t, "borrow", env.transfers.transfers[0].Memo)
}

func TestBorrowExceedsCollateral(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	require.Nil(t, env.srv.deposit(ctx, nil, "alice", "usd", decimal.NewFromInt(10000), env.t0))

	// borrowable is 8000 at 80% ltv
	err := env.srv.borrow(ctx, nil, "alice", "usd", decimal.RequireFromString("8000.00000001"), "", env.t0)
	assert.Equal(t, core.ErrBorrowExceedsCollateral, err)

	// denial leaves the ledgers untouched
	bank := env.bank()
	assert.True(t, bank.TotalBorrows.IsZero())
	assert.True(t, bank.TotalBorrowShares.IsZero())
	assert.Len(t, env.transfers.transfers, 0)

	require.Nil(t, env.srv.borrow(ctx, nil, "alice", "usd", decimal.NewFromInt(8000), "", env.t0))
}

func TestBorrowInsufficientLiquidity(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	require.Nil(t, env.srv.deposit(ctx, nil, "alice", "usd", decimal.NewFromInt(100), env.t0))

	err := env.srv.borrow(ctx, nil, "alice", "usd", decimal.NewFromInt(200), "", env.t0)
	assert.Equal(t, core.ErrInsufficientLiquidity, err)
}

func TestWithdrawUnderCollateral(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	require.Nil(t, env.srv.deposit(ctx, nil, "alice", "usd", decimal.NewFromInt(10000), env.t0))
	require.Nil(t, env.srv.borrow(ctx, nil, "alice", "usd", decimal.NewFromInt(8000), "", env.t0))

	err := env.srv.withdraw(ctx, nil, "alice", "usd", decimal.NewFromInt(100), "", env.t0)
	assert.Equal(t, core.ErrWithdrawalUnderCollateral, err)

	// denial leaves the ledgers untouched
	bank := env.bank()
	assert.True(t, bank.TotalDeposits.Equal(decimal.NewFromInt(10000)))
	assert.True(t, bank.TotalBorrows.Equal(decimal.NewFromInt(8000)))
}

func TestRepay(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	require.Nil(t, env.srv.deposit(ctx, nil, "alice", "usd", decimal.NewFromInt(10000), env.t0))
	require.Nil(t, env.srv.borrow(ctx, nil, "alice", "usd", decimal.NewFromInt(5000), "", env.t0))

	repaid, err := env.srv.repay(ctx, nil, "alice", "usd", decimal.NewFromInt(3000), env.t0)
	require.Nil(t, err)
	assert.True(t, repaid.Equal(decimal.NewFromInt(3000)))
	assert.True(t, env.bank().TotalBorrows.Equal(decimal.NewFromInt(2000)))

	// over-payment clamps to the outstanding debt
	repaid, err = env.srv.repay(ctx, nil, "alice", "usd", decimal.NewFromInt(9999), env.t0)
	require.Nil(t, err)
	assert.True(t, repaid.Equal(decimal.NewFromInt(2000)))

	bank := env.bank()
	assert.True(t, bank.TotalBorrows.IsZero())
	assert.True(t, bank.TotalBorrowShares.IsZero())

	position := env.position("alice")
	require.NotNil(t, position)
	assert.True(t, position.BorrowShares.IsZero())
}

func TestRepayStrict(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.srv.config.App.StrictRepay = true

	require.Nil(t, env.srv.deposit(ctx, nil, "alice", "usd", decimal.NewFromInt(10000), env.t0))
	require.Nil(t, env.srv.borrow(ctx, nil, "alice", "usd", decimal.NewFromInt(5000), "", env.t0))

	_, err := env.srv.repay(ctx, nil, "alice", "usd", decimal.NewFromInt(5001), env.t0)
	assert.Equal(t, core.ErrRepayExceedsDebt, err)

	assert.True(t, env.bank().TotalBorrows.Equal(decimal.NewFromInt(5000)))
}

func TestRepayNoDebt(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	require.Nil(t, env.srv.deposit(ctx, nil, "alice", "usd", decimal.NewFromInt(100), env.t0))

	_, err := env.srv.repay(ctx, nil, "alice", "usd", decimal.NewFromInt(1), env.t0)
	assert.Equal(t, core.ErrPositionNotFound, err)
}

func TestInterestAccruesAcrossOperations(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	require.Nil(t, env.srv.deposit(ctx, nil, "alice", "usd", decimal.NewFromInt(10000), env.t0))
	require.Nil(t, env.srv.borrow(ctx, nil, "alice", "usd", decimal.NewFromInt(5000), "", env.t0))

	// one year later the debt carries 5% and deposits earned 3%, both
	// on the borrowed base
	t1 := env.t0.Add(time.Duration(lendingmath.SecondsPerYear) * time.Second)

	repaid, err := env.srv.repay(ctx, nil, "alice", "usd", decimal.NewFromInt(6000), t1)
	require.Nil(t, err)
	assert.True(t, repaid.Equal(decimal.NewFromInt(5250)))

	bank := env.bank()
	assert.True(t, bank.TotalBorrows.IsZero())
	assert.True(t, bank.TotalDeposits.Equal(decimal.NewFromInt(10250)))
	assert.True(t, bank.Reserves.Equal(decimal.NewFromInt(100)))

	// depositor's claim grew with the pool net of reserves
	position := env.position("alice")
	redeemable := lendingmath.AmountForShares(position.DepositShares, bank.DepositorPool(), bank.TotalDepositShares)
	assert.True(t, redeemable.Equal(decimal.NewFromInt(10150)))
}

func TestPoolInvariantHolds(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	require.Nil(t, env.srv.deposit(ctx, nil, "alice", "usd", decimal.NewFromInt(10000), env.t0))
	require.Nil(t, env.srv.deposit(ctx, nil, "bob", "usd", decimal.NewFromInt(500), env.t0))
	require.Nil(t, env.srv.borrow(ctx, nil, "alice", "usd", decimal.NewFromInt(8000), "", env.t0))

	t1 := env.t0.Add(30 * 24 * time.Hour)
	_, err := env.srv.repay(ctx, nil, "alice", "usd", decimal.NewFromInt(100), t1)
	require.Nil(t, err)

	bank := env.bank()
	assert.True(t, bank.TotalBorrows.LessThanOrEqual(bank.TotalDeposits))
	assert.True(t, bank.TotalDeposits.Sub(bank.TotalBorrows).IsPositive())
}

func TestPoolInvariantAtFullUtilization(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	// bob funds the btc bank, alice borrows it dry against usd collateral
	require.Nil(t, env.srv.deposit(ctx, nil, "bob", "btc", decimal.NewFromInt(100), env.t0))
	require.Nil(t, env.srv.deposit(ctx, nil, "alice", "usd", decimal.NewFromInt(10000), env.t0))
	require.Nil(t, env.srv.borrow(ctx, nil, "alice", "btc", decimal.NewFromInt(100), "", env.t0))

	btc := env.banks.banks["btc"]
	assert.True(t, btc.AvailableLiquidity().IsZero())

	// a year at full utilization must not push borrows past deposits
	t1 := env.t0.Add(time.Duration(lendingmath.SecondsPerYear) * time.Second)
	_, err := env.srv.repay(ctx, nil, "alice", "btc", decimal.NewFromInt(1), t1)
	require.Nil(t, err)

	btc = env.banks.banks["btc"]
	assert.True(t, btc.TotalBorrows.LessThanOrEqual(btc.TotalDeposits))

	// bob's claim stays covered by what depositors actually own
	bobShares := decimal.Zero
	for _, p := range env.positions.positions {
		if p.UserID == "bob" && p.AssetID == "btc" {
			bobShares = p.DepositShares
		}
	}
	redeemable := lendingmath.AmountForShares(bobShares, btc.DepositorPool(), btc.TotalDepositShares)
	assert.True(t, redeemable.LessThanOrEqual(btc.DepositorPool()))
	assert.True(t, redeemable.GreaterThan(decimal.NewFromInt(100)))
}
