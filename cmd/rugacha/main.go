// cmd/rugacha/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"rugacha/internal/domain/gacha"
	"rugacha/internal/infra/solana"
	"rugacha/internal/platform/config"
	"rugacha/internal/platform/di"
)

func main() {
	var (
		burnAmount = flag.Uint64("burn", 0, "burn this many base units of the mint, then draw a card")
		mint       = flag.String("mint", "", "mint address to burn (defaults to the configured mint)")
		airdrop    = flag.Bool("airdrop", false, "request test funds from the devnet faucet first")
		scanOnly   = flag.Bool("scan", false, "scan the wallet for rugged holdings and exit")
		drawOnly   = flag.Bool("draw-only", false, "draw a card without touching the chain")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	container, err := di.Build(cfg)
	if err != nil {
		log.Fatalf("init container: %v", err)
	}
	defer container.Close()

	if *drawOnly {
		printResult(container.Engine.Draw(), "")
		return
	}

	ctx := context.Background()

	owner, err := container.Wallet.Connect(ctx)
	if err != nil {
		log.Fatalf("connect wallet: %v", err)
	}
	defer container.Wallet.Disconnect(ctx)
	fmt.Printf("connected: %s\n", owner)

	if *scanOnly {
		for _, r := range container.Scanner.Scan(ctx, owner) {
			fmt.Printf("rugged: %s price=%g (%s)\n", r.Mint, r.Price, r.Reason)
		}
		return
	}

	if *airdrop {
		sig, err := container.Wallet.RequestTestFunds(ctx, owner, solana.DefaultAirdropLamports)
		if err != nil {
			log.Fatalf("airdrop: %v", err)
		}
		fmt.Printf("airdrop confirmed: %s\n", sig)
	}

	if *burnAmount == 0 {
		flag.Usage()
		os.Exit(2)
	}

	balance, err := container.Wallet.Balance(ctx, owner, *mint)
	if err != nil {
		log.Fatalf("balance: %v", err)
	}
	fmt.Printf("balance: %d\n", balance)

	out, err := container.Fortune.BurnForFortune(ctx, *burnAmount, *mint, owner)
	if err != nil {
		log.Fatalf("burn: %v", err)
	}
	printResult(out.Result, out.TxSignature)
}

func printResult(r gacha.Result, sig string) {
	fmt.Printf("\n=== %s ===\n", r.Tier.Label)
	fmt.Printf("%s (%s)\n", r.Entry.Name, r.Entry.Symbol)
	if r.Entry.Blurb != "" {
		fmt.Printf("%s\n", r.Entry.Blurb)
	}
	fmt.Printf("\nfortune: %s\nadvice:  %s\n", r.Fortune, r.Advice)
	fmt.Printf("draw id: %s at %s\n", r.ID, r.DrawnAt.Format("2006-01-02 15:04:05 MST"))
	if sig != "" {
		fmt.Printf("tx: https://explorer.solana.com/tx/%s?cluster=devnet\n", sig)
	}
}
