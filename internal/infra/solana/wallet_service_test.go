package solana

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/blocto/solana-go-sdk/types"

	walletdom "rugacha/internal/domain/wallet"
)

// Well-formed base58 addresses for test wallets.
const (
	testOwner = "Vote111111111111111111111111111111111111111"
	testMint  = "So11111111111111111111111111111111111111112"
)

// fakeChain is an in-memory ChainClient recording the order of RPC calls.
type fakeChain struct {
	calls []string

	exists     map[string]bool
	balances   map[string]uint64
	balanceErr error
	sendErr    error
	airdropErr error
	genesisErr error
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		exists:   make(map[string]bool),
		balances: make(map[string]uint64),
	}
}

func (f *fakeChain) record(call string) { f.calls = append(f.calls, call) }

func (f *fakeChain) GenesisHash(ctx context.Context) (string, error) {
	f.record("genesis")
	if f.genesisErr != nil {
		return "", f.genesisErr
	}
	return "genesis-hash", nil
}

func (f *fakeChain) AccountExists(ctx context.Context, address string) (bool, error) {
	f.record("exists")
	return f.exists[address], nil
}

func (f *fakeChain) TokenBalance(ctx context.Context, tokenAccount string) (uint64, error) {
	f.record("balance")
	if f.balanceErr != nil {
		return 0, f.balanceErr
	}
	return f.balances[tokenAccount], nil
}

func (f *fakeChain) LatestBlockhash(ctx context.Context) (Blockhash, error) {
	f.record("blockhash")
	return Blockhash{Hash: "hash", LastValidBlockHeight: 100}, nil
}

func (f *fakeChain) SendTransaction(ctx context.Context, tx types.Transaction) (string, error) {
	f.record("send")
	if f.sendErr != nil {
		return "", f.sendErr
	}
	return "test-signature", nil
}

func (f *fakeChain) RequestAirdrop(ctx context.Context, address string, lamports uint64) (string, error) {
	f.record("airdrop")
	if f.airdropErr != nil {
		return "", f.airdropErr
	}
	return "airdrop-signature", nil
}

func (f *fakeChain) SignatureStatus(ctx context.Context, signature string) (SignatureStatus, error) {
	f.record("status")
	return SignatureStatus{Confirmed: true}, nil
}

func (f *fakeChain) BlockHeight(ctx context.Context) (uint64, error) {
	f.record("height")
	return 1, nil
}

// fakeProvider is a scriptable SigningProvider. It shares the chain's call
// log so cross-boundary ordering can be asserted.
type fakeProvider struct {
	chain         *fakeChain
	identity      string
	addr          string
	connectErr    error
	signErr       error
	disconnectErr error

	signCalls    int
	disconnectCb func()
}

func newFakeProvider(chain *fakeChain) *fakeProvider {
	return &fakeProvider{chain: chain, identity: "fake", addr: testOwner}
}

func (p *fakeProvider) Identity() string { return p.identity }

func (p *fakeProvider) Connect(ctx context.Context) (string, error) {
	if p.connectErr != nil {
		return "", p.connectErr
	}
	return p.addr, nil
}

func (p *fakeProvider) Disconnect(ctx context.Context) error { return p.disconnectErr }

func (p *fakeProvider) SignTransaction(ctx context.Context, msg types.Message) (types.Transaction, error) {
	p.signCalls++
	p.chain.record("sign")
	if p.signErr != nil {
		return types.Transaction{}, p.signErr
	}
	return types.Transaction{}, nil
}

func (p *fakeProvider) OnDisconnect(fn func()) { p.disconnectCb = fn }

func newTestService(t *testing.T) (*WalletService, *fakeChain, *fakeProvider) {
	t.Helper()
	chain := newFakeChain()
	provider := newFakeProvider(chain)
	return NewWalletService(chain, provider, Config{}), chain, provider
}

func connect(t *testing.T, svc *WalletService) {
	t.Helper()
	if _, err := svc.Connect(context.Background()); err != nil {
		t.Fatalf("Connect: %v", err)
	}
}

func indexOf(calls []string, name string) int {
	for i, c := range calls {
		if c == name {
			return i
		}
	}
	return -1
}

func TestConnectStateTransitions(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if got := svc.State(); got.Connected || got.Address != "" {
		t.Fatalf("initial state = %+v", got)
	}

	addr, err := svc.Connect(ctx)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if addr != testOwner {
		t.Fatalf("addr=%s", addr)
	}

	st := svc.State()
	if !st.Connected || st.Address != addr {
		t.Fatalf("state after connect = %+v", st)
	}

	if err := svc.Disconnect(ctx); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
	if st := svc.State(); st.Connected || st.Address != "" {
		t.Fatalf("state after disconnect = %+v", st)
	}
}

func TestConnectWithoutProvider(t *testing.T) {
	svc := NewWalletService(newFakeChain(), nil, Config{})
	_, err := svc.Connect(context.Background())
	if !errors.Is(err, walletdom.ErrProviderMissing) {
		t.Fatalf("err=%v want ErrProviderMissing", err)
	}
	if st := svc.State(); st.Connected {
		t.Fatalf("state mutated on failed connect: %+v", st)
	}
}

func TestConnectUserRejected(t *testing.T) {
	svc, _, provider := newTestService(t)
	provider.connectErr = errors.New("User rejected the request.")
	_, err := svc.Connect(context.Background())
	if !errors.Is(err, walletdom.ErrUserRejected) {
		t.Fatalf("err=%v want ErrUserRejected", err)
	}
}

func TestConnectLivenessFailure(t *testing.T) {
	svc, chain, _ := newTestService(t)
	chain.genesisErr = errors.New("connection refused")
	_, err := svc.Connect(context.Background())
	if !errors.Is(err, walletdom.ErrConnectFailed) {
		t.Fatalf("err=%v want ErrConnectFailed", err)
	}
	if st := svc.State(); st.Connected {
		t.Fatalf("state mutated on failed liveness check: %+v", st)
	}
}

func TestDisconnectSwallowsProviderError(t *testing.T) {
	svc, _, provider := newTestService(t)
	connect(t, svc)
	provider.disconnectErr = errors.New("provider exploded")

	if err := svc.Disconnect(context.Background()); err != nil {
		t.Fatalf("Disconnect must not propagate provider errors, got %v", err)
	}
	if st := svc.State(); st.Connected || st.Address != "" {
		t.Fatalf("state after failed provider disconnect = %+v", st)
	}
}

func TestProviderPushedDisconnect(t *testing.T) {
	svc, _, provider := newTestService(t)
	connect(t, svc)

	if provider.disconnectCb == nil {
		t.Fatal("no disconnect listener registered")
	}
	provider.disconnectCb()

	if st := svc.State(); st.Connected || st.Address != "" {
		t.Fatalf("state after pushed disconnect = %+v", st)
	}
}

func TestStateReturnsCopies(t *testing.T) {
	svc, _, _ := newTestService(t)
	connect(t, svc)

	a := svc.State()
	a.Connected = false
	a.Address = "tampered"

	b := svc.State()
	if !b.Connected || b.Address != testOwner {
		t.Fatalf("caller mutation leaked into service state: %+v", b)
	}
}

func TestBalanceAbsentAccountIsZero(t *testing.T) {
	svc, chain, _ := newTestService(t)

	got, err := svc.Balance(context.Background(), testOwner, "")
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if got != 0 {
		t.Fatalf("balance=%d want 0", got)
	}
	if indexOf(chain.calls, "balance") != -1 {
		t.Fatal("balance fetched for an absent account")
	}
}

func TestBalanceNotFoundRaceIsZero(t *testing.T) {
	svc, chain, _ := newTestService(t)
	ata, err := svc.TokenAccount(testOwner, "")
	if err != nil {
		t.Fatal(err)
	}
	chain.exists[ata] = true
	chain.balanceErr = errors.New("rpc: could not find account")

	got, err := svc.Balance(context.Background(), testOwner, "")
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if got != 0 {
		t.Fatalf("balance=%d want 0", got)
	}
}

func TestBalanceOtherErrorsSurface(t *testing.T) {
	svc, chain, _ := newTestService(t)
	ata, _ := svc.TokenAccount(testOwner, "")
	chain.exists[ata] = true
	chain.balanceErr = errors.New("rpc: internal server error")

	_, err := svc.Balance(context.Background(), testOwner, "")
	if !errors.Is(err, walletdom.ErrBalanceQuery) {
		t.Fatalf("err=%v want ErrBalanceQuery", err)
	}
}

func TestBurnValidatesBeforeAnyIO(t *testing.T) {
	svc, chain, provider := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Burn(ctx, 0, "", testOwner); !errors.Is(err, walletdom.ErrInvalidAmount) {
		t.Fatalf("zero amount: err=%v", err)
	}
	if _, err := svc.Burn(ctx, 100, "", ""); !errors.Is(err, walletdom.ErrInvalidAddress) {
		t.Fatalf("empty owner: err=%v", err)
	}
	if _, err := svc.Burn(ctx, 100, "", "not-base58!!"); !errors.Is(err, walletdom.ErrInvalidAddress) {
		t.Fatalf("malformed owner: err=%v", err)
	}
	if len(chain.calls) != 0 {
		t.Fatalf("validation failures performed I/O: %v", chain.calls)
	}
	if provider.signCalls != 0 {
		t.Fatal("validation failures reached the signer")
	}
}

func TestBurnRequiresConnection(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Burn(context.Background(), 100, "", testOwner)
	if !errors.Is(err, walletdom.ErrNotConnected) {
		t.Fatalf("err=%v want ErrNotConnected", err)
	}
}

func TestBurnInsufficientBalanceSkipsSigner(t *testing.T) {
	svc, chain, provider := newTestService(t)
	connect(t, svc)
	ata, _ := svc.TokenAccount(testOwner, testMint)
	chain.exists[ata] = true
	chain.balances[ata] = 500_000

	_, err := svc.Burn(context.Background(), 1_000_000, testMint, testOwner)
	if !errors.Is(err, walletdom.ErrInsufficientBalance) {
		t.Fatalf("err=%v want ErrInsufficientBalance", err)
	}
	if provider.signCalls != 0 {
		t.Fatal("signer was called despite insufficient balance")
	}
	if indexOf(chain.calls, "send") != -1 {
		t.Fatal("transaction submitted despite insufficient balance")
	}
}

func TestBurnHappyPathOrdering(t *testing.T) {
	svc, chain, provider := newTestService(t)
	connect(t, svc)
	ata, _ := svc.TokenAccount(testOwner, testMint)
	chain.exists[ata] = true
	chain.balances[ata] = 2_000_000

	sig, err := svc.Burn(context.Background(), 1_000_000, testMint, testOwner)
	if err != nil {
		t.Fatalf("Burn: %v", err)
	}
	if sig != "test-signature" {
		t.Fatalf("sig=%s", sig)
	}
	if provider.signCalls != 1 {
		t.Fatalf("signCalls=%d want 1", provider.signCalls)
	}

	balanceAt := indexOf(chain.calls, "balance")
	signAt := indexOf(chain.calls, "sign")
	sendAt := indexOf(chain.calls, "send")
	statusAt := indexOf(chain.calls, "status")
	if balanceAt == -1 || signAt == -1 || sendAt == -1 || statusAt == -1 {
		t.Fatalf("missing calls: %v", chain.calls)
	}
	if !(balanceAt < signAt && signAt < sendAt && sendAt < statusAt) {
		t.Fatalf("wrong order: %v", chain.calls)
	}

	// confirmation must use a blockhash fetched after submission
	lastBlockhash := -1
	for i, c := range chain.calls {
		if c == "blockhash" {
			lastBlockhash = i
		}
	}
	if lastBlockhash < sendAt {
		t.Fatalf("no post-submission blockhash fetch: %v", chain.calls)
	}
}

func TestBurnUserRejectedStopsBeforeSubmit(t *testing.T) {
	svc, chain, provider := newTestService(t)
	connect(t, svc)
	ata, _ := svc.TokenAccount(testOwner, testMint)
	chain.exists[ata] = true
	chain.balances[ata] = 2_000_000
	provider.signErr = errors.New("User rejected the request.")

	_, err := svc.Burn(context.Background(), 1_000_000, testMint, testOwner)
	if !errors.Is(err, walletdom.ErrUserRejected) {
		t.Fatalf("err=%v want ErrUserRejected", err)
	}
	if indexOf(chain.calls, "send") != -1 {
		t.Fatalf("rejected burn was submitted: %v", chain.calls)
	}
}

func TestBurnClassifiesSubmitErrors(t *testing.T) {
	tests := []struct {
		sendErr error
		want    error
	}{
		{errors.New("Transaction simulation failed: insufficient funds"), walletdom.ErrInsufficientBalance},
		{errors.New("could not find account"), walletdom.ErrTokenAccountMissing},
		{errors.New("some novel rpc failure"), walletdom.ErrBurnFailed},
	}
	for _, tc := range tests {
		svc, chain, _ := newTestService(t)
		connect(t, svc)
		ata, _ := svc.TokenAccount(testOwner, testMint)
		chain.exists[ata] = true
		chain.balances[ata] = 2_000_000
		chain.sendErr = tc.sendErr

		_, err := svc.Burn(context.Background(), 1_000_000, testMint, testOwner)
		if !errors.Is(err, tc.want) {
			t.Errorf("sendErr=%v: got %v want %v", tc.sendErr, err, tc.want)
		}
	}
}

func TestEnsureAccountIdempotent(t *testing.T) {
	svc, chain, provider := newTestService(t)
	ata, _ := svc.TokenAccount(testOwner, "")
	chain.exists[ata] = true

	got, err := svc.EnsureAccount(context.Background(), testOwner, "")
	if err != nil {
		t.Fatalf("EnsureAccount: %v", err)
	}
	if got != ata {
		t.Fatalf("ata=%s want %s", got, ata)
	}
	if provider.signCalls != 0 || indexOf(chain.calls, "send") != -1 {
		t.Fatal("existing account triggered a write")
	}
}

func TestEnsureAccountRequiresConnectionToCreate(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.EnsureAccount(context.Background(), testOwner, "")
	if !errors.Is(err, walletdom.ErrNotConnected) {
		t.Fatalf("err=%v want ErrNotConnected", err)
	}
}

func TestEnsureAccountCreatesWhenMissing(t *testing.T) {
	svc, chain, provider := newTestService(t)
	connect(t, svc)

	ata, err := svc.EnsureAccount(context.Background(), testOwner, "")
	if err != nil {
		t.Fatalf("EnsureAccount: %v", err)
	}
	if ata == "" {
		t.Fatal("empty ata")
	}
	if provider.signCalls != 1 || indexOf(chain.calls, "send") == -1 {
		t.Fatalf("creation path did not sign+submit: %v", chain.calls)
	}
	if indexOf(chain.calls, "status") == -1 {
		t.Fatal("creation was not confirmed")
	}
}

func TestRequestTestFundsValidation(t *testing.T) {
	svc, chain, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.RequestTestFunds(ctx, "", DefaultAirdropLamports); !errors.Is(err, walletdom.ErrInvalidAddress) {
		t.Fatalf("empty owner: err=%v", err)
	}
	if _, err := svc.RequestTestFunds(ctx, testOwner, 0); !errors.Is(err, walletdom.ErrInvalidAmount) {
		t.Fatalf("zero amount: err=%v", err)
	}
	if len(chain.calls) != 0 {
		t.Fatalf("validation failures performed I/O: %v", chain.calls)
	}
}

func TestRequestTestFundsClassification(t *testing.T) {
	tests := []struct {
		airdropErr error
		want       error
	}{
		{errors.New("429 Too Many Requests"), walletdom.ErrFaucetRateLimited},
		{errors.New("airdrop limit reached for today"), walletdom.ErrFaucetRateLimited},
		{errors.New("invalid param: wrong size"), walletdom.ErrInvalidRequest},
		{errors.New("faucet is on fire"), walletdom.ErrMintFailed},
	}
	for _, tc := range tests {
		svc, chain, _ := newTestService(t)
		chain.airdropErr = tc.airdropErr
		_, err := svc.RequestTestFunds(context.Background(), testOwner, DefaultAirdropLamports)
		if !errors.Is(err, tc.want) {
			t.Errorf("airdropErr=%v: got %v want %v", tc.airdropErr, err, tc.want)
		}
	}
}

func TestRequestTestFundsConfirmsAfterSubmit(t *testing.T) {
	svc, chain, _ := newTestService(t)

	sig, err := svc.RequestTestFunds(context.Background(), testOwner, DefaultAirdropLamports)
	if err != nil {
		t.Fatalf("RequestTestFunds: %v", err)
	}
	if sig != "airdrop-signature" {
		t.Fatalf("sig=%s", sig)
	}
	airdropAt := indexOf(chain.calls, "airdrop")
	blockhashAt := indexOf(chain.calls, "blockhash")
	if blockhashAt < airdropAt {
		t.Fatalf("confirmation blockhash fetched before submission: %v", chain.calls)
	}
}

func TestWrappedErrorsKeepOriginalMessage(t *testing.T) {
	svc, chain, _ := newTestService(t)
	connect(t, svc)
	ata, _ := svc.TokenAccount(testOwner, testMint)
	chain.exists[ata] = true
	chain.balances[ata] = 2_000_000
	chain.sendErr = fmt.Errorf("rpc: very specific diagnostic detail")

	_, err := svc.Burn(context.Background(), 1, testMint, testOwner)
	if err == nil || !errors.Is(err, walletdom.ErrBurnFailed) {
		t.Fatalf("err=%v", err)
	}
	if want := "very specific diagnostic detail"; !strings.Contains(err.Error(), want) {
		t.Fatalf("original message lost: %v", err)
	}
}
