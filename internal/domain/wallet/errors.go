package wallet

import "errors"

// Precondition errors. These are checked locally and returned before any
// network round-trip happens.
var (
	ErrProviderMissing = errors.New("wallet: no signing provider detected")
	ErrNotConnected    = errors.New("wallet: not connected")
	ErrInvalidAddress  = errors.New("wallet: invalid address")
	ErrInvalidAmount   = errors.New("wallet: amount must be greater than zero")
)

// Classified upstream errors. Downstream provider/RPC failures are matched
// against known message shapes and mapped onto one of these kinds; anything
// unmatched falls through to one of the generic *Failed errors below with the
// original message preserved via %w wrapping.
var (
	ErrUserRejected        = errors.New("wallet: user rejected the request")
	ErrInsufficientBalance = errors.New("wallet: insufficient token balance")
	ErrTokenAccountMissing = errors.New("wallet: token account not found, get funds first")
	ErrFaucetRateLimited   = errors.New("wallet: faucet rate limited")
	ErrInvalidRequest      = errors.New("wallet: invalid request")
)

// Generic wrapped failures, one per operation boundary.
var (
	ErrConnectFailed = errors.New("wallet: connect failed")
	ErrBalanceQuery  = errors.New("wallet: balance query failed")
	ErrMintFailed    = errors.New("wallet: test fund request failed")
	ErrBurnFailed    = errors.New("wallet: burn failed")
)
