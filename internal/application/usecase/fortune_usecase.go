package usecase

import (
	"context"
	"errors"
	"log"

	"rugacha/internal/domain/gacha"
)

// The usecase defines the interfaces it needs; it does not depend on the
// infra packages directly.

// TokenBurner executes a token burn and returns the transaction signature.
type TokenBurner interface {
	Burn(ctx context.Context, amount uint64, mint, owner string) (string, error)
}

// FortuneDrawer resolves one gacha draw.
type FortuneDrawer interface {
	Draw() gacha.Result
}

// Outcome is a completed burn-and-draw: the on-chain receipt plus the card.
type Outcome struct {
	TxSignature string
	Result      gacha.Result
}

// FortuneUsecase is the application flow behind the "burn N tokens" button:
// the burn must confirm before a card is drawn, so every card a user holds
// was paid for on chain.
type FortuneUsecase struct {
	Burner TokenBurner
	Drawer FortuneDrawer
}

// NewFortuneUsecase wires the flow.
func NewFortuneUsecase(burner TokenBurner, drawer FortuneDrawer) *FortuneUsecase {
	return &FortuneUsecase{Burner: burner, Drawer: drawer}
}

// BurnForFortune burns amount of mint from owner and, on confirmation, draws
// one card. A failed burn yields no draw.
func (uc *FortuneUsecase) BurnForFortune(ctx context.Context, amount uint64, mint, owner string) (Outcome, error) {
	if uc == nil || uc.Burner == nil || uc.Drawer == nil {
		return Outcome{}, errors.New("fortune usecase: not configured")
	}

	sig, err := uc.Burner.Burn(ctx, amount, mint, owner)
	if err != nil {
		return Outcome{}, err
	}

	result := uc.Drawer.Draw()
	log.Printf("[fortune_usecase] draw id=%s tier=%s entry=%s tx=%s",
		result.ID, result.Tier.ID, result.Entry.Symbol, sig)

	return Outcome{TxSignature: sig, Result: result}, nil
}
