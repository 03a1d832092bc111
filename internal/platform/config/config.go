package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config is the process configuration, resolved once from environment
// variables at startup.
type Config struct {
	RPCEndpoint     string  // SOLANA_RPC_ENDPOINT, defaults to devnet
	Incinerator     string  // BURN_ADDRESS, defaults to the well-known incinerator
	DefaultMint     string  // DEFAULT_MINT, token burned when none is named
	KeypairPath     string  // KEYPAIR_PATH, solana-keygen file for the local signer
	CatalogPath     string  // CATALOG_PATH, YAML catalog; empty uses the built-in one
	PriceAPIBaseURL string  // PRICE_API_URL, price index for the scanner; empty disables it
	RuggedThreshold float64 // RUGGED_PRICE_THRESHOLD, USD cutoff for the scanner
}

// Load reads the environment. Only malformed values error; absent ones take
// defaults.
func Load() (*Config, error) {
	c := &Config{
		RPCEndpoint:     os.Getenv("SOLANA_RPC_ENDPOINT"),
		Incinerator:     os.Getenv("BURN_ADDRESS"),
		DefaultMint:     os.Getenv("DEFAULT_MINT"),
		KeypairPath:     os.Getenv("KEYPAIR_PATH"),
		CatalogPath:     os.Getenv("CATALOG_PATH"),
		PriceAPIBaseURL: os.Getenv("PRICE_API_URL"),
		RuggedThreshold: 0.01,
	}

	if v := strings.TrimSpace(os.Getenv("RUGGED_PRICE_THRESHOLD")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return nil, fmt.Errorf("config: invalid RUGGED_PRICE_THRESHOLD %q", v)
		}
		c.RuggedThreshold = f
	}

	return c, nil
}
