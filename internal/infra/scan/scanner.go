package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// PriceClient looks up a token's current price by mint address. ok is false
// when the index has no quote for the mint.
type PriceClient interface {
	PriceByMint(ctx context.Context, mint string) (price float64, ok bool)
}

// RuggedCoin is one flagged holding.
type RuggedCoin struct {
	Mint   string
	Price  float64
	Reason string
}

// Scanner flags wallet holdings that look like losses: unquoted mints and
// mints priced under a threshold. Both upstreams are treated as unreliable;
// every failure degrades to "no results" rather than propagating.
type Scanner struct {
	Lister    MintLister
	Prices    PriceClient
	Threshold float64 // USD price under which a quoted mint counts as rugged
}

// NewScanner wires a scanner. A zero threshold disables the price cutoff and
// only unquoted mints are flagged.
func NewScanner(lister MintLister, prices PriceClient, threshold float64) *Scanner {
	return &Scanner{Lister: lister, Prices: prices, Threshold: threshold}
}

// Scan returns the owner's flagged holdings. It never returns an error: scan
// results are decorative, and a dead price index must not break the caller.
func (s *Scanner) Scan(ctx context.Context, owner string) []RuggedCoin {
	if s == nil || s.Lister == nil {
		return nil
	}

	mints, err := s.Lister.OwnedMints(ctx, owner)
	if err != nil {
		log.Printf("[scanner] owned mints lookup failed (ignored): %v", err)
		return nil
	}

	var out []RuggedCoin
	for _, m := range mints {
		if s.Prices == nil {
			continue
		}
		price, ok := s.Prices.PriceByMint(ctx, m.Mint)
		switch {
		case !ok:
			out = append(out, RuggedCoin{Mint: m.Mint, Reason: "no market data"})
		case s.Threshold > 0 && price < s.Threshold:
			out = append(out, RuggedCoin{Mint: m.Mint, Price: price, Reason: "price below threshold"})
		}
	}
	return out
}

// RESTPriceClient queries a price index over HTTP. Response shape:
// {"data": {"<mint>": {"price": 0.0012}}}.
type RESTPriceClient struct {
	httpClient *http.Client
	baseURL    string
}

var _ PriceClient = (*RESTPriceClient)(nil)

// NewRESTPriceClient builds a client against baseURL.
func NewRESTPriceClient(httpClient *http.Client, baseURL string) *RESTPriceClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 8 * time.Second}
	}
	return &RESTPriceClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}
}

type priceResponse struct {
	Data map[string]struct {
		Price float64 `json:"price"`
	} `json:"data"`
}

// PriceByMint is best-effort: any transport, status, or decode failure is
// reported as "no quote".
func (c *RESTPriceClient) PriceByMint(ctx context.Context, mint string) (float64, bool) {
	if c == nil || c.baseURL == "" {
		return 0, false
	}

	u := fmt.Sprintf("%s/price?ids=%s", c.baseURL, url.QueryEscape(mint))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, false
	}

	var pr priceResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return 0, false
	}
	q, ok := pr.Data[mint]
	if !ok {
		return 0, false
	}
	return q.Price, true
}
