package lending

import (
	"lending/pkg/number"

	"github.com/shopspring/decimal"
)

var (
	// MaxPrecision max precision for amounts and shares
	MaxPrecision int32 = 8
	// MaxTotal cap on any running pool total
	MaxTotal = decimal.New(1, 18)
	// SecondsPerYear seconds per year
	SecondsPerYear int64 = 31536000
)

// SharesForAmount shares minted for adding amount to one pool side
//
// the first participant bootstraps 1:1; after that shares are
// amount-weighted and rounded down so a join can never over-credit:
// shares = amount * total_shares / total_amount
func SharesForAmount(amount, totalAmount, totalShares decimal.Decimal) decimal.Decimal {
	if totalShares.IsZero() || totalAmount.IsZero() {
		return amount
	}

	return amount.Mul(totalShares).DivRound(totalAmount, MaxPrecision+1).Truncate(MaxPrecision)
}

// BurnShares shares burned when removing amount from one pool side
//
// burns round up so a partial exit never under-burns and dilutes the
// remaining share holders; the dust lands on the exiting side
func BurnShares(amount, totalAmount, totalShares decimal.Decimal) decimal.Decimal {
	if totalShares.IsZero() || totalAmount.IsZero() {
		return amount
	}

	return number.Ceil(amount.Mul(totalShares).Div(totalAmount), MaxPrecision)
}

// AmountForShares redeemable amount at the current redemption rate
//
// amount = shares * total_amount / total_shares, rounded down
func AmountForShares(shares, totalAmount, totalShares decimal.Decimal) decimal.Decimal {
	if totalShares.IsZero() {
		return decimal.Zero
	}

	return shares.Mul(totalAmount).DivRound(totalShares, MaxPrecision+1).Truncate(MaxPrecision)
}

// WithinRange reports whether a running total stays representable
func WithinRange(d decimal.Decimal) bool {
	return d.LessThanOrEqual(MaxTotal)
}
