package wallet

import (
	"regexp"
	"strings"

	"github.com/mr-tron/base58"
)

// State is the connection state of a wallet session. Exactly one live State
// exists per service instance; callers only ever receive copies of it, so a
// State in caller hands is a plain value and safe to read at any time.
type State struct {
	Connected bool
	Address   string
}

// Solana-like base58 address shape (approximation; the decode below is the
// authoritative check).
var base58Re = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)

// ValidAddress reports whether s is a well-formed base58 address decoding to
// a 32-byte public key.
func ValidAddress(s string) bool {
	s = strings.TrimSpace(s)
	if !base58Re.MatchString(s) {
		return false
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return false
	}
	return len(raw) == 32
}

// CheckAddress returns ErrInvalidAddress for empty or malformed addresses.
func CheckAddress(s string) error {
	if !ValidAddress(s) {
		return ErrInvalidAddress
	}
	return nil
}

// CheckAmount returns ErrInvalidAmount for a zero amount. Amounts are in the
// token's smallest unit and unsigned, so zero is the only invalid value.
func CheckAmount(amount uint64) error {
	if amount == 0 {
		return ErrInvalidAmount
	}
	return nil
}
