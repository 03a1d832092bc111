package solana

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/blocto/solana-go-sdk/rpc"
	"github.com/blocto/solana-go-sdk/types"
)

// Solana Devnet RPC endpoint (default).
const DevnetEndpoint = "https://api.devnet.solana.com"

// IncineratorAddress is the well-known unspendable burn destination.
const IncineratorAddress = "1nc1nerator11111111111111111111111111111111"

// DefaultMintAddress is the token burned when the caller does not name one
// (wrapped SOL).
const DefaultMintAddress = "So11111111111111111111111111111111111111112"

// Blockhash pairs a recent blockhash with the last block height at which it
// is still valid for confirmation.
type Blockhash struct {
	Hash                 string
	LastValidBlockHeight uint64
}

// SignatureStatus is the processed state of a submitted transaction.
// Confirmed means the cluster reached confirmed or finalized commitment;
// Err carries the on-chain execution error, if any.
type SignatureStatus struct {
	Confirmed bool
	Err       error
}

// ChainClient is the minimal ledger RPC surface the wallet service needs.
// The production implementation wraps the blocto SDK client; tests substitute
// an in-memory fake.
type ChainClient interface {
	GenesisHash(ctx context.Context) (string, error)
	AccountExists(ctx context.Context, address string) (bool, error)
	TokenBalance(ctx context.Context, tokenAccount string) (uint64, error)
	LatestBlockhash(ctx context.Context) (Blockhash, error)
	SendTransaction(ctx context.Context, tx types.Transaction) (string, error)
	RequestAirdrop(ctx context.Context, address string, lamports uint64) (string, error)
	SignatureStatus(ctx context.Context, signature string) (SignatureStatus, error)
	BlockHeight(ctx context.Context) (uint64, error)
}

// NodeClient is the ChainClient backed by a real RPC node.
type NodeClient struct {
	rpc *client.Client

	Timeout time.Duration // RPC timeout hint (best-effort)
}

var _ ChainClient = (*NodeClient)(nil)

// NewNodeClient builds a client against endpoint, falling back to devnet when
// endpoint is empty.
func NewNodeClient(endpoint string) *NodeClient {
	u := strings.TrimSpace(endpoint)
	if u == "" {
		u = DevnetEndpoint
	}
	return &NodeClient{
		rpc:     client.NewClient(u),
		Timeout: 20 * time.Second,
	}
}

func (c *NodeClient) GenesisHash(ctx context.Context) (string, error) {
	hash, err := c.rpc.GetGenesisHash(ctx)
	if err != nil {
		return "", fmt.Errorf("solana rpc: getGenesisHash: %w", err)
	}
	return hash, nil
}

// AccountExists probes an account. A "not found" class of RPC error means the
// account simply does not exist and is not reported as a failure.
func (c *NodeClient) AccountExists(ctx context.Context, address string) (bool, error) {
	addr := strings.TrimSpace(address)
	if addr == "" {
		return false, nil
	}
	_, err := c.rpc.GetAccountInfo(ctx, addr)
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, err
}

func (c *NodeClient) TokenBalance(ctx context.Context, tokenAccount string) (uint64, error) {
	bal, err := c.rpc.GetTokenAccountBalance(ctx, tokenAccount)
	if err != nil {
		return 0, err
	}
	return bal.Amount, nil
}

func (c *NodeClient) LatestBlockhash(ctx context.Context) (Blockhash, error) {
	latest, err := c.rpc.GetLatestBlockhash(ctx)
	if err != nil {
		return Blockhash{}, fmt.Errorf("solana rpc: getLatestBlockhash: %w", err)
	}
	return Blockhash{
		Hash:                 latest.Blockhash,
		LastValidBlockHeight: latest.LatestValidBlockHeight,
	}, nil
}

func (c *NodeClient) SendTransaction(ctx context.Context, tx types.Transaction) (string, error) {
	return c.rpc.SendTransaction(ctx, tx)
}

func (c *NodeClient) RequestAirdrop(ctx context.Context, address string, lamports uint64) (string, error) {
	return c.rpc.RequestAirdrop(ctx, address, lamports)
}

func (c *NodeClient) SignatureStatus(ctx context.Context, signature string) (SignatureStatus, error) {
	st, err := c.rpc.GetSignatureStatus(ctx, signature)
	if err != nil {
		return SignatureStatus{}, fmt.Errorf("solana rpc: getSignatureStatuses: %w", err)
	}
	if st == nil || st.ConfirmationStatus == nil {
		return SignatureStatus{}, nil
	}
	out := SignatureStatus{}
	switch *st.ConfirmationStatus {
	case rpc.CommitmentConfirmed, rpc.CommitmentFinalized:
		out.Confirmed = true
	}
	if st.Err != nil {
		out.Err = fmt.Errorf("solana rpc: transaction failed on chain: %v", st.Err)
	}
	return out, nil
}

func (c *NodeClient) BlockHeight(ctx context.Context) (uint64, error) {
	h, err := c.rpc.RpcClient.GetBlockHeight(ctx)
	if err != nil {
		return 0, fmt.Errorf("solana rpc: getBlockHeight: %w", err)
	}
	return h.GetResult(), nil
}
