package lending

import (
	"time"

	"lending/core"

	"github.com/shopspring/decimal"
)

// InterestAccrued simple pro-rated interest over elapsed seconds
//
// interest = principal * rate_bps / 10000 * elapsed / seconds_per_year,
// rounded down
func InterestAccrued(principal decimal.Decimal, rateBps int64, elapsed int64) decimal.Decimal {
	if rateBps <= 0 || elapsed <= 0 || !principal.IsPositive() {
		return decimal.Zero
	}

	return principal.
		Mul(decimal.New(rateBps, -4)).
		Mul(decimal.NewFromInt(elapsed)).
		DivRound(decimal.NewFromInt(SecondsPerYear), MaxPrecision+1).
		Truncate(MaxPrecision)
}

// Accrue advances the bank totals to t
//
// Both interest legs are computed on the borrow base: borrowers owe the
// borrow rate, depositors receive the deposit rate, and the spread is
// booked into Reserves. TotalDeposits is credited with the full borrow
// interest so TotalDeposits - TotalBorrows is constant under accrual
// even at full utilization; depositors only redeem against the pool net
// of reserves. Share totals are untouched, only redemption rates move.
// A second call with the same timestamp is a no-op.
func Accrue(bank *core.Bank, t time.Time) {
	elapsed := t.Unix() - bank.LastAccruedAt.Unix()
	if elapsed <= 0 {
		return
	}

	borrowInterest := InterestAccrued(bank.TotalBorrows, bank.BorrowRateBps, elapsed)
	depositInterest := InterestAccrued(bank.TotalBorrows, bank.DepositRateBps, elapsed)

	bank.TotalBorrows = bank.TotalBorrows.Add(borrowInterest)
	bank.TotalDeposits = bank.TotalDeposits.Add(borrowInterest)
	bank.Reserves = bank.Reserves.Add(borrowInterest.Sub(depositInterest))
	bank.LastAccruedAt = t
}
