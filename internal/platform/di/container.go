// internal/platform/di/container.go
package di

import (
	"fmt"
	"log"

	"rugacha/internal/application/usecase"
	"rugacha/internal/domain/gacha"
	"rugacha/internal/infra/scan"
	"rugacha/internal/infra/solana"
	"rugacha/internal/platform/config"
)

// Container is the bundle of wired dependencies handed to main. Its purpose
// is to keep main thin.
type Container struct {
	Wallet  *solana.WalletService
	Engine  *gacha.Engine
	Fortune *usecase.FortuneUsecase
	Scanner *scan.Scanner
	Config  *config.Config

	cleanupFn []func()
}

// Close releases any held resources.
func (c *Container) Close() {
	for _, fn := range c.cleanupFn {
		fn()
	}
}

// Build assembles the container from cfg.
//
// The signing provider is a local keypair when KEYPAIR_PATH is set; without
// one, the wallet service still constructs but every signing operation fails
// with the provider-missing kind, matching a browser with no wallet
// extension installed.
func Build(cfg *config.Config) (*Container, error) {
	chain := solana.NewNodeClient(cfg.RPCEndpoint)

	var provider solana.SigningProvider
	if cfg.KeypairPath != "" {
		kp, err := solana.KeypairProviderFromFile(cfg.KeypairPath)
		if err != nil {
			return nil, fmt.Errorf("di: load keypair: %w", err)
		}
		provider = kp
	} else {
		log.Printf("[di] no KEYPAIR_PATH set; running without a signing provider")
	}

	wallet := solana.NewWalletService(chain, provider, solana.Config{
		Incinerator: cfg.Incinerator,
		DefaultMint: cfg.DefaultMint,
	})

	catalog := gacha.DefaultCatalog()
	if cfg.CatalogPath != "" {
		loaded, err := gacha.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("di: %w", err)
		}
		catalog = loaded
	}
	engine := gacha.NewEngine(catalog)

	var prices scan.PriceClient
	if cfg.PriceAPIBaseURL != "" {
		prices = scan.NewRESTPriceClient(nil, cfg.PriceAPIBaseURL)
	}
	endpoint := cfg.RPCEndpoint
	if endpoint == "" {
		endpoint = solana.DevnetEndpoint
	}
	scanner := scan.NewScanner(scan.NewJSONRPCClient(endpoint), prices, cfg.RuggedThreshold)

	return &Container{
		Wallet:  wallet,
		Engine:  engine,
		Fortune: usecase.NewFortuneUsecase(wallet, engine),
		Scanner: scanner,
		Config:  cfg,
	}, nil
}
