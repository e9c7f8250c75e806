package lending

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSharesForAmountBootstrap(t *testing.T) {
	amount := decimal.NewFromInt(10000)

	shares := SharesForAmount(amount, decimal.Zero, decimal.Zero)
	assert.True(t, shares.Equal(amount))

	// a drained pool with leftover shares also restarts 1:1
	shares = SharesForAmount(amount, decimal.Zero, decimal.NewFromInt(5))
	assert.True(t, shares.Equal(amount))
}

func TestSharesForAmountProportional(t *testing.T) {
	totalAmount := decimal.NewFromInt(2000)
	totalShares := decimal.NewFromInt(1000)

	// rate is 2, so 500 buys 250 shares
	shares := SharesForAmount(decimal.NewFromInt(500), totalAmount, totalShares)
	assert.True(t, shares.Equal(decimal.NewFromInt(250)))
}

func TestSharesForAmountRoundsDown(t *testing.T) {
	totalAmount := decimal.NewFromInt(3)
	totalShares := decimal.NewFromInt(1)

	shares := SharesForAmount(decimal.NewFromInt(1), totalAmount, totalShares)
	assert.Equal(t, "0.33333333", shares.String())
}

func TestBurnSharesRoundsUp(t *testing.T) {
	totalAmount := decimal.NewFromInt(3)
	totalShares := decimal.NewFromInt(1)

	shares := BurnShares(decimal.NewFromInt(1), totalAmount, totalShares)
	assert.Equal(t, "0.33333334", shares.String())

	// exact ratios burn exactly
	shares = BurnShares(decimal.NewFromInt(500), decimal.NewFromInt(2000), decimal.NewFromInt(1000))
	assert.True(t, shares.Equal(decimal.NewFromInt(250)))

	// a drained pool burns 1:1
	shares = BurnShares(decimal.NewFromInt(10), decimal.Zero, decimal.Zero)
	assert.True(t, shares.Equal(decimal.NewFromInt(10)))
}

func TestBurnSharesNeverUnderBurns(t *testing.T) {
	totalAmount := decimal.RequireFromString("1234.56789")
	totalShares := decimal.RequireFromString("987.654321")
	amount := decimal.RequireFromString("11.11111111")

	burned := BurnShares(amount, totalAmount, totalShares)
	assert.True(t, burned.GreaterThanOrEqual(SharesForAmount(amount, totalAmount, totalShares)))

	// the per-share value of the holders who stay never shrinks
	one := decimal.NewFromInt(1)
	before := AmountForShares(one, totalAmount, totalShares)
	after := AmountForShares(one, totalAmount.Sub(amount), totalShares.Sub(burned))
	assert.True(t, after.GreaterThanOrEqual(before))
}

func TestAmountForShares(t *testing.T) {
	totalAmount := decimal.NewFromInt(2000)
	totalShares := decimal.NewFromInt(1000)

	amount := AmountForShares(decimal.NewFromInt(250), totalAmount, totalShares)
	assert.True(t, amount.Equal(decimal.NewFromInt(500)))

	assert.True(t, AmountForShares(decimal.NewFromInt(10), decimal.Zero, decimal.Zero).IsZero())
}

func TestMintThenRedeemNeverGains(t *testing.T) {
	totalAmount := decimal.RequireFromString("1234.56789")
	totalShares := decimal.RequireFromString("987.654321")
	amount := decimal.RequireFromString("11.11111111")

	shares := SharesForAmount(amount, totalAmount, totalShares)
	back := AmountForShares(shares, totalAmount.Add(amount), totalShares.Add(shares))

	assert.True(t, back.LessThanOrEqual(amount))
}
