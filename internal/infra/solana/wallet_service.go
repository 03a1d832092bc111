package solana

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/associated_token_account"
	"github.com/blocto/solana-go-sdk/program/token"
	"github.com/blocto/solana-go-sdk/types"

	walletdom "rugacha/internal/domain/wallet"
)

// DefaultAirdropLamports is the conventional faucet request size (1 SOL).
const DefaultAirdropLamports uint64 = 1_000_000_000

// Config fixes the process-wide addresses a WalletService operates against.
// Zero values fall back to the package defaults.
type Config struct {
	Incinerator string // burn destination owner address
	DefaultMint string // token burned when the caller names none
}

// WalletService is the single stateful gateway between the application, a
// signing provider, and the ledger RPC endpoint. It owns one wallet State;
// everything financial is re-read from the ledger on demand, never cached.
//
// The service provides no cross-call mutual exclusion: two concurrent Burn
// calls for the same owner may race at the ledger, which remains the sole
// authority on double spends.
type WalletService struct {
	chain    ChainClient
	provider SigningProvider

	incinerator string
	defaultMint string

	mu    sync.Mutex
	state walletdom.State
}

// NewWalletService wires a service. chain must be non-nil; provider may be
// nil, in which case every operation needing a signer fails with
// ErrProviderMissing.
func NewWalletService(chain ChainClient, provider SigningProvider, cfg Config) *WalletService {
	inc := strings.TrimSpace(cfg.Incinerator)
	if inc == "" {
		inc = IncineratorAddress
	}
	mint := strings.TrimSpace(cfg.DefaultMint)
	if mint == "" {
		mint = DefaultMintAddress
	}
	return &WalletService{
		chain:       chain,
		provider:    provider,
		incinerator: inc,
		defaultMint: mint,
	}
}

// ProviderAvailable reports whether a signing provider is present and
// self-identifies. Pure check, no side effects.
func (s *WalletService) ProviderAvailable() bool {
	return s.provider != nil && s.provider.Identity() != ""
}

// State returns a copy of the wallet state. Callers never see the live
// value, so reads are never torn by the async disconnect callback.
func (s *WalletService) State() walletdom.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Connect requests a session from the provider, verifies the RPC endpoint is
// alive via a genesis-hash query, and transitions to Connected. It registers
// a disconnect listener with the provider; re-registering on reconnect is
// acceptable.
func (s *WalletService) Connect(ctx context.Context) (string, error) {
	if !s.ProviderAvailable() {
		return "", fmt.Errorf("%w: install a wallet to continue", walletdom.ErrProviderMissing)
	}

	addr, err := s.provider.Connect(ctx)
	if err != nil {
		return "", classifyConnect(err)
	}

	if _, err := s.chain.GenesisHash(ctx); err != nil {
		return "", classifyConnect(err)
	}

	s.mu.Lock()
	s.state = walletdom.State{Connected: true, Address: addr}
	s.mu.Unlock()

	s.provider.OnDisconnect(func() {
		s.mu.Lock()
		s.state = walletdom.State{}
		s.mu.Unlock()
		log.Printf("[wallet_service] provider disconnected")
	})

	log.Printf("[wallet_service] connected addr=%s", maskShort(addr))
	return addr, nil
}

// Disconnect is best-effort towards the provider: provider failures are
// logged and swallowed, local state always ends up cleared.
func (s *WalletService) Disconnect(ctx context.Context) error {
	if s.provider != nil {
		if err := s.provider.Disconnect(ctx); err != nil {
			log.Printf("[wallet_service] provider disconnect failed (ignored): %v", err)
		}
	}
	s.mu.Lock()
	s.state = walletdom.State{}
	s.mu.Unlock()
	return nil
}

// TokenAccount derives the associated token account for (owner, mint). The
// account may or may not exist on the ledger; it is always re-derived, never
// stored.
func (s *WalletService) TokenAccount(owner, mint string) (string, error) {
	mint = s.mintOrDefault(mint)
	if err := walletdom.CheckAddress(owner); err != nil {
		return "", err
	}
	ata, _, err := common.FindAssociatedTokenAddress(
		common.PublicKeyFromString(owner),
		common.PublicKeyFromString(mint),
	)
	if err != nil {
		return "", fmt.Errorf("%w: derive token account: %v", walletdom.ErrInvalidAddress, err)
	}
	return ata.ToBase58(), nil
}

// Balance returns the owner's balance of mint in smallest units. An absent
// token account is a zero balance, not an error; so is the narrow race where
// the account vanishes between the existence probe and the balance fetch.
func (s *WalletService) Balance(ctx context.Context, owner, mint string) (uint64, error) {
	mint = s.mintOrDefault(mint)
	ata, err := s.TokenAccount(owner, mint)
	if err != nil {
		return 0, err
	}

	exists, err := s.chain.AccountExists(ctx, ata)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", walletdom.ErrBalanceQuery, err)
	}
	if !exists {
		return 0, nil
	}

	bal, err := s.chain.TokenBalance(ctx, ata)
	if err != nil {
		if isNotFound(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %v", walletdom.ErrBalanceQuery, err)
	}
	return bal, nil
}

// EnsureAccount returns the owner's token account address for mint, creating
// it on the ledger when missing (payer = fee payer = owner). Creation needs a
// connected session; when the account already exists the call is a pure read.
func (s *WalletService) EnsureAccount(ctx context.Context, owner, mint string) (string, error) {
	mint = s.mintOrDefault(mint)
	ata, err := s.TokenAccount(owner, mint)
	if err != nil {
		return "", err
	}

	exists, err := s.chain.AccountExists(ctx, ata)
	if err != nil {
		return "", fmt.Errorf("%w: %v", walletdom.ErrBalanceQuery, err)
	}
	if exists {
		return ata, nil
	}

	if !s.State().Connected {
		return "", walletdom.ErrNotConnected
	}

	ownerPub := common.PublicKeyFromString(owner)
	ins := []types.Instruction{
		associated_token_account.CreateAssociatedTokenAccount(
			associated_token_account.CreateAssociatedTokenAccountParam{
				Funder:                 ownerPub,
				Owner:                  ownerPub,
				Mint:                   common.PublicKeyFromString(mint),
				AssociatedTokenAccount: common.PublicKeyFromString(ata),
			},
		),
	}

	sig, err := s.signAndSubmit(ctx, ownerPub, ins)
	if err != nil {
		return "", classifyBurn(err)
	}
	if err := s.confirmAfterSubmit(ctx, sig); err != nil {
		return "", fmt.Errorf("%w: %v", walletdom.ErrBurnFailed, err)
	}

	log.Printf("[wallet_service] created token account ata=%s owner=%s tx=%s",
		maskShort(ata), maskShort(owner), maskShort(sig))
	return ata, nil
}

// RequestTestFunds asks the network faucet to credit owner with lamports and
// waits for confirmation. The confirmation blockhash is fetched after the
// airdrop submission so a slow faucet cannot outlive the validity window.
func (s *WalletService) RequestTestFunds(ctx context.Context, owner string, lamports uint64) (string, error) {
	if err := walletdom.CheckAddress(owner); err != nil {
		return "", err
	}
	if err := walletdom.CheckAmount(lamports); err != nil {
		return "", err
	}

	sig, err := s.chain.RequestAirdrop(ctx, owner, lamports)
	if err != nil {
		return "", classifyAirdrop(err)
	}

	if err := s.confirmAfterSubmit(ctx, sig); err != nil {
		return "", fmt.Errorf("%w: %v", walletdom.ErrMintFailed, err)
	}

	log.Printf("[wallet_service] airdrop owner=%s lamports=%d tx=%s",
		maskShort(owner), lamports, maskShort(sig))
	return sig, nil
}

// Burn moves amount of mint from owner to the incinerator's token account.
//
// Order of operations is load-bearing: every local precondition and the
// balance pre-check resolve before the transaction is built, so a doomed burn
// never reaches the signer. The signature request is the only interactive
// suspension point. Confirmation uses a blockhash fetched after submission,
// not the one baked into the transaction.
func (s *WalletService) Burn(ctx context.Context, amount uint64, mint, owner string) (string, error) {
	if err := walletdom.CheckAddress(owner); err != nil {
		return "", err
	}
	if err := walletdom.CheckAmount(amount); err != nil {
		return "", err
	}
	if !s.State().Connected {
		return "", walletdom.ErrNotConnected
	}
	mint = s.mintOrDefault(mint)

	balance, err := s.Balance(ctx, owner, mint)
	if err != nil {
		return "", err
	}
	if balance < amount {
		return "", fmt.Errorf("%w: have %d, need %d", walletdom.ErrInsufficientBalance, balance, amount)
	}

	srcATA, err := s.TokenAccount(owner, mint)
	if err != nil {
		return "", err
	}
	dstATA, err := s.TokenAccount(s.incinerator, mint)
	if err != nil {
		return "", err
	}

	ownerPub := common.PublicKeyFromString(owner)
	ins := []types.Instruction{
		token.Transfer(token.TransferParam{
			From:   common.PublicKeyFromString(srcATA),
			To:     common.PublicKeyFromString(dstATA),
			Auth:   ownerPub,
			Amount: amount,
		}),
	}

	log.Printf("[wallet_service] burn start amount=%d mint=%s owner=%s dst=%s",
		amount, maskShort(mint), maskShort(owner), maskShort(dstATA))

	sig, err := s.signAndSubmit(ctx, ownerPub, ins)
	if err != nil {
		return "", classifyBurn(err)
	}

	if err := s.confirmAfterSubmit(ctx, sig); err != nil {
		return "", fmt.Errorf("%w: %v", walletdom.ErrBurnFailed, err)
	}

	log.Printf("[wallet_service] burn confirmed tx=%s", maskShort(sig))
	return sig, nil
}

// signAndSubmit builds a transaction around ins with a fresh blockhash and
// feePayer, requests the provider's signature, and submits it.
func (s *WalletService) signAndSubmit(ctx context.Context, feePayer common.PublicKey, ins []types.Instruction) (string, error) {
	if s.provider == nil {
		return "", walletdom.ErrProviderMissing
	}

	recent, err := s.chain.LatestBlockhash(ctx)
	if err != nil {
		return "", fmt.Errorf("getLatestBlockhash: %w", err)
	}

	msg := types.NewMessage(types.NewMessageParam{
		FeePayer:        feePayer,
		RecentBlockhash: recent.Hash,
		Instructions:    ins,
	})

	tx, err := s.provider.SignTransaction(ctx, msg)
	if err != nil {
		return "", err
	}

	return s.chain.SendTransaction(ctx, tx)
}

// confirmAfterSubmit fetches a post-submission blockhash pair and waits for
// the signature to confirm within its validity window.
func (s *WalletService) confirmAfterSubmit(ctx context.Context, sig string) error {
	expiry, err := s.chain.LatestBlockhash(ctx)
	if err != nil {
		return fmt.Errorf("getLatestBlockhash: %w", err)
	}
	return waitForConfirmation(ctx, s.chain, sig, expiry)
}

func (s *WalletService) mintOrDefault(mint string) string {
	if strings.TrimSpace(mint) == "" {
		return s.defaultMint
	}
	return mint
}
