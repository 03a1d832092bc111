package solana

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/blocto/solana-go-sdk/types"
)

var (
	ErrProviderSignerEmpty   = errors.New("signing provider: signer is nil")
	ErrProviderInvalidKey    = errors.New("signing provider: invalid private key bytes")
	ErrProviderNotConnected  = errors.New("signing provider: not connected")
	ErrProviderInvalidSigner = errors.New("signing provider: invalid signer material")
)

// SigningProvider is the capability the wallet service uses to reach a
// user-controlled signer. Identity is a pure self-identification check;
// SignTransaction is the only human-interactive call and may block until the
// user approves or rejects. OnDisconnect registers a callback fired when the
// provider drops the session on its own.
type SigningProvider interface {
	Identity() string
	Connect(ctx context.Context) (string, error)
	Disconnect(ctx context.Context) error
	SignTransaction(ctx context.Context, msg types.Message) (types.Transaction, error)
	OnDisconnect(fn func())
}

// KeypairProvider signs with a locally held ed25519 keypair. It auto-approves
// every sign request, which makes it suitable for test clusters and CLI use,
// not custody.
type KeypairProvider struct {
	account   types.Account
	connected bool
}

var _ SigningProvider = (*KeypairProvider)(nil)

// NewKeypairProvider wraps an existing account.
func NewKeypairProvider(acc types.Account) *KeypairProvider {
	return &KeypairProvider{account: acc}
}

// KeypairProviderFromJSON accepts the JSON int-array secret format
// ("[12,34,...]", 64 bytes) used by solana-keygen and most wallet exports.
func KeypairProviderFromJSON(data []byte) (*KeypairProvider, error) {
	s := strings.TrimSpace(string(data))
	if s == "" {
		return nil, ErrProviderSignerEmpty
	}
	var ints []int
	if err := json.Unmarshal([]byte(s), &ints); err != nil {
		return nil, fmt.Errorf("%w: not a json int array: %v", ErrProviderInvalidSigner, err)
	}
	b := make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("%w: byte out of range at %d: %d", ErrProviderInvalidKey, i, v)
		}
		b[i] = byte(v)
	}
	if len(b) != 64 {
		return nil, fmt.Errorf("%w: want 64 bytes, got %d", ErrProviderInvalidKey, len(b))
	}
	acc, err := types.AccountFromBytes(b)
	if err != nil {
		return nil, fmt.Errorf("signing provider: AccountFromBytes: %w", err)
	}
	return NewKeypairProvider(acc), nil
}

// KeypairProviderFromFile reads a solana-keygen style keypair file.
func KeypairProviderFromFile(path string) (*KeypairProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("signing provider: read keypair %s: %w", path, err)
	}
	return KeypairProviderFromJSON(data)
}

func (p *KeypairProvider) Identity() string { return "keypair" }

func (p *KeypairProvider) Connect(ctx context.Context) (string, error) {
	p.connected = true
	return p.account.PublicKey.ToBase58(), nil
}

func (p *KeypairProvider) Disconnect(ctx context.Context) error {
	p.connected = false
	return nil
}

func (p *KeypairProvider) SignTransaction(ctx context.Context, msg types.Message) (types.Transaction, error) {
	if !p.connected {
		return types.Transaction{}, ErrProviderNotConnected
	}
	tx, err := types.NewTransaction(types.NewTransactionParam{
		Message: msg,
		Signers: []types.Account{p.account},
	})
	if err != nil {
		return types.Transaction{}, fmt.Errorf("signing provider: NewTransaction: %w", err)
	}
	return tx, nil
}

// OnDisconnect is a no-op: a local keypair never drops the session on its
// own.
func (p *KeypairProvider) OnDisconnect(fn func()) {}
