package lending

import (
	"testing"
	"time"

	"lending/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newTestBank(t0 time.Time) *core.Bank {
	return &core.Bank{
		AssetID:            "btc",
		TotalDeposits:      decimal.NewFromInt(10000),
		TotalBorrows:       decimal.NewFromInt(5000),
		TotalDepositShares: decimal.NewFromInt(10000),
		TotalBorrowShares:  decimal.NewFromInt(5000),
		DepositRateBps:     300,
		BorrowRateBps:      500,
		LastAccruedAt:      t0,
	}
}

func TestInterestAccrued(t *testing.T) {
	// 5% on 5000 over one full year
	interest := InterestAccrued(decimal.NewFromInt(5000), 500, SecondsPerYear)
	assert.True(t, interest.Equal(decimal.NewFromInt(250)))

	assert.True(t, InterestAccrued(decimal.Zero, 500, SecondsPerYear).IsZero())
	assert.True(t, InterestAccrued(decimal.NewFromInt(5000), 0, SecondsPerYear).IsZero())
	assert.True(t, InterestAccrued(decimal.NewFromInt(5000), 500, 0).IsZero())
}

func TestAccrueBothLegsOnBorrowBase(t *testing.T) {
	t0 := time.Now()
	bank := newTestBank(t0)

	Accrue(bank, t0.Add(time.Duration(SecondsPerYear)*time.Second))

	// borrowers owe 5% of 5000; deposits carry the full borrow interest
	// with the rate spread booked into reserves
	assert.True(t, bank.TotalBorrows.Equal(decimal.NewFromInt(5250)))
	assert.True(t, bank.TotalDeposits.Equal(decimal.NewFromInt(10250)))
	assert.True(t, bank.Reserves.Equal(decimal.NewFromInt(100)))

	// depositors redeem against the pool net of reserves, earning 3%
	assert.True(t, bank.DepositorPool().Equal(decimal.NewFromInt(10150)))

	// share totals never move on accrual
	assert.True(t, bank.TotalDepositShares.Equal(decimal.NewFromInt(10000)))
	assert.True(t, bank.TotalBorrowShares.Equal(decimal.NewFromInt(5000)))
}

func TestAccrueKeepsLiquidityGap(t *testing.T) {
	t0 := time.Now()
	bank := newTestBank(t0)
	gap := bank.AvailableLiquidity()

	Accrue(bank, t0.Add(time.Duration(SecondsPerYear)*time.Second))

	assert.True(t, bank.AvailableLiquidity().Equal(gap))
}

func TestAccrueIdempotent(t *testing.T) {
	t0 := time.Now()
	t1 := t0.Add(time.Hour)

	bank := newTestBank(t0)
	Accrue(bank, t1)

	deposits := bank.TotalDeposits
	borrows := bank.TotalBorrows

	Accrue(bank, t1)
	assert.True(t, bank.TotalDeposits.Equal(deposits))
	assert.True(t, bank.TotalBorrows.Equal(borrows))

	// going backwards is a no-op too
	Accrue(bank, t0)
	assert.True(t, bank.TotalBorrows.Equal(borrows))
}

func TestAccrueSplitIntervalClose(t *testing.T) {
	t0 := time.Now()
	mid := t0.Add(12 * time.Hour)
	end := t0.Add(24 * time.Hour)

	oneShot := newTestBank(t0)
	Accrue(oneShot, end)

	split := newTestBank(t0)
	Accrue(split, mid)
	Accrue(split, end)

	// splitting compounds slightly, the drift stays under a rounding step
	diff := split.TotalBorrows.Sub(oneShot.TotalBorrows).Abs()
	assert.True(t, diff.LessThan(decimal.RequireFromString("0.01")))
}

func TestAccrueNoBorrowsNoInterest(t *testing.T) {
	t0 := time.Now()
	bank := newTestBank(t0)
	bank.TotalBorrows = decimal.Zero

	Accrue(bank, t0.Add(time.Duration(SecondsPerYear)*time.Second))

	assert.True(t, bank.TotalDeposits.Equal(decimal.NewFromInt(10000)))
	assert.True(t, bank.TotalBorrows.IsZero())
}
