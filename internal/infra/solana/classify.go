package solana

import (
	"errors"
	"fmt"
	"strings"

	walletdom "rugacha/internal/domain/wallet"
)

// Upstream errors arrive as text, so classification matches on known message
// shapes from the RPC node and wallet providers. Anything unmatched is wrapped
// with the operation's generic kind, preserving the original message. A future
// structured-error source only needs to replace these helpers; the public
// error kinds stay as they are.

func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") ||
		strings.Contains(msg, "could not find account") ||
		strings.Contains(msg, "invalid param") ||
		strings.Contains(msg, "account does not exist")
}

func isUserRejection(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "user rejected") ||
		strings.Contains(msg, "user declined") ||
		strings.Contains(msg, "rejected the request")
}

func isInsufficientFunds(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "insufficient funds") ||
		strings.Contains(msg, "insufficient lamports") ||
		strings.Contains(msg, "debit an account")
}

func isRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "airdrop limit") ||
		strings.Contains(msg, "429")
}

// classifyBurn maps a signing/submission failure onto the burn taxonomy.
func classifyBurn(err error) error {
	if errors.Is(err, walletdom.ErrProviderMissing) || errors.Is(err, walletdom.ErrNotConnected) {
		return err
	}
	switch {
	case isUserRejection(err):
		return walletdom.ErrUserRejected
	case isInsufficientFunds(err):
		return walletdom.ErrInsufficientBalance
	case isNotFound(err):
		return walletdom.ErrTokenAccountMissing
	default:
		return fmt.Errorf("%w: %v", walletdom.ErrBurnFailed, err)
	}
}

// classifyAirdrop maps a faucet failure onto the test-funds taxonomy.
func classifyAirdrop(err error) error {
	switch {
	case isRateLimited(err):
		return walletdom.ErrFaucetRateLimited
	case strings.Contains(strings.ToLower(err.Error()), "invalid param"):
		return walletdom.ErrInvalidRequest
	default:
		return fmt.Errorf("%w: %v", walletdom.ErrMintFailed, err)
	}
}

// classifyConnect maps a provider connect failure.
func classifyConnect(err error) error {
	if isUserRejection(err) {
		return walletdom.ErrUserRejected
	}
	return fmt.Errorf("%w: %v", walletdom.ErrConnectFailed, err)
}

// maskShort shortens an address or signature for logs.
func maskShort(s string) string {
	t := strings.TrimSpace(s)
	if len(t) <= 10 {
		return t
	}
	return t[:4] + "***" + t[len(t)-4:]
}
