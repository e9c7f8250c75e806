package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001

	// ErrBankNotFound no bank for the asset
	ErrBankNotFound ErrorCode = 100100
	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100101
	// ErrPositionNotFound no position for the user and asset
	ErrPositionNotFound ErrorCode = 100102
	// ErrInsufficientBalance redeemable balance too low
	ErrInsufficientBalance ErrorCode = 100103
	// ErrInsufficientShares share burn would go below zero
	ErrInsufficientShares ErrorCode = 100104
	// ErrInsufficientLiquidity pool has too little un-lent cash
	ErrInsufficientLiquidity ErrorCode = 100105
	// ErrBorrowExceedsCollateral borrow denied by the collateral check
	ErrBorrowExceedsCollateral ErrorCode = 100106
	// ErrWithdrawalUnderCollateral withdraw denied by the collateral check
	ErrWithdrawalUnderCollateral ErrorCode = 100107
	// ErrRepayExceedsDebt repay amount over the outstanding debt
	ErrRepayExceedsDebt ErrorCode = 100108
	// ErrStalePrice price record missing or older than the max age
	ErrStalePrice ErrorCode = 100109
	// ErrLowConfidence price confidence interval too wide
	ErrLowConfidence ErrorCode = 100110
	// ErrInvalidPrice invalid price
	ErrInvalidPrice ErrorCode = 100111
	// ErrOverflow pool total over the representable range
	ErrOverflow ErrorCode = 100112
	// ErrBankExists bank already initialized
	ErrBankExists ErrorCode = 100113
	// ErrUserExists user already initialized
	ErrUserExists ErrorCode = 100114
	// ErrUserNotFound no user record
	ErrUserNotFound ErrorCode = 100115
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}
