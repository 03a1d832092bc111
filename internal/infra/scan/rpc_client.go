package scan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// SPL Token Program ID (Tokenkeg...).
const tokenProgramID = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"

// OwnedMint is one token holding in a wallet.
type OwnedMint struct {
	Mint     string
	Amount   string // string integer, smallest units
	Decimals int
}

// MintLister enumerates the token mints a wallet holds.
type MintLister interface {
	OwnedMints(ctx context.Context, owner string) ([]OwnedMint, error)
}

// JSONRPCClient is a small HTTP JSON-RPC client for the jsonParsed
// getTokenAccountsByOwner query, which the SDK client does not expose in
// parsed form.
type JSONRPCClient struct {
	Endpoint string
	HTTP     *http.Client
}

var _ MintLister = (*JSONRPCClient)(nil)

// NewJSONRPCClient builds a client against endpoint.
func NewJSONRPCClient(endpoint string) *JSONRPCClient {
	return &JSONRPCClient{
		Endpoint: strings.TrimSpace(endpoint),
		HTTP:     &http.Client{Timeout: 12 * time.Second},
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

func (c *JSONRPCClient) call(ctx context.Context, method string, params any, out any) error {
	if c == nil || c.Endpoint == "" || c.HTTP == nil {
		return fmt.Errorf("scan rpc: client not configured")
	}

	reqBody, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return fmt.Errorf("scan rpc: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("scan rpc: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("scan rpc: http do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("scan rpc: http status=%d", resp.StatusCode)
	}

	var rr rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return fmt.Errorf("scan rpc: decode response: %w", err)
	}
	if rr.Error != nil {
		return fmt.Errorf("scan rpc: error code=%d message=%s", rr.Error.Code, rr.Error.Message)
	}
	if out != nil {
		if err := json.Unmarshal(rr.Result, out); err != nil {
			return fmt.Errorf("scan rpc: unmarshal result: %w", err)
		}
	}
	return nil
}

// tokenAccountsResult is the decoded jsonParsed result of
// getTokenAccountsByOwner, reduced to the fields the scanner reads.
type tokenAccountsResult struct {
	Value []struct {
		Account struct {
			Data struct {
				Parsed struct {
					Info struct {
						Mint        string `json:"mint"`
						TokenAmount struct {
							Amount   string `json:"amount"`
							Decimals int    `json:"decimals"`
						} `json:"tokenAmount"`
					} `json:"info"`
				} `json:"parsed"`
			} `json:"data"`
		} `json:"account"`
	} `json:"value"`
}

// OwnedMints returns the deduplicated non-zero token holdings of owner, in
// the order the node reports them.
func (c *JSONRPCClient) OwnedMints(ctx context.Context, owner string) ([]OwnedMint, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, fmt.Errorf("scan rpc: owner is empty")
	}

	params := []any{
		owner,
		map[string]any{"programId": tokenProgramID},
		map[string]any{"commitment": "finalized", "encoding": "jsonParsed"},
	}

	var res tokenAccountsResult
	if err := c.call(ctx, "getTokenAccountsByOwner", params, &res); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(res.Value))
	out := make([]OwnedMint, 0, len(res.Value))
	for _, v := range res.Value {
		info := v.Account.Data.Parsed.Info
		mint := strings.TrimSpace(info.Mint)
		if mint == "" {
			continue
		}
		if strings.TrimSpace(info.TokenAmount.Amount) == "0" {
			continue
		}
		if _, ok := seen[mint]; ok {
			continue
		}
		seen[mint] = struct{}{}
		out = append(out, OwnedMint{
			Mint:     mint,
			Amount:   info.TokenAmount.Amount,
			Decimals: info.TokenAmount.Decimals,
		})
	}
	return out, nil
}
