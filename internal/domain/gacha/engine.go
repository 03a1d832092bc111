package gacha

import (
	"time"

	"github.com/google/uuid"
)

// Result is one resolved draw. Values are assembled fresh per draw and never
// mutated afterwards; ownership transfers to the caller.
type Result struct {
	ID      string
	Entry   Entry
	Tier    Tier
	DrawnAt time.Time
	Fortune string
	Advice  string
}

// Engine resolves draws against a fixed catalog. Aside from its RandomSource
// it is stateless: every draw is an independent sample.
type Engine struct {
	catalog *Catalog
	rng     RandomSource
	now     func() time.Time
	newID   func() string
}

// NewEngine builds an engine over an already-validated catalog with the
// default (crypto-backed) randomness, wall clock, and uuid id source.
func NewEngine(catalog *Catalog) *Engine {
	return &Engine{
		catalog: catalog,
		rng:     DefaultRNG(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// WithRNG swaps the random source. Used by tests for deterministic draws.
func (e *Engine) WithRNG(r RandomSource) *Engine {
	if r != nil {
		e.rng = r
	}
	return e
}

// WithClock swaps the timestamp source.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	if now != nil {
		e.now = now
	}
	return e
}

// WithIDSource swaps the draw-id generator.
func (e *Engine) WithIDSource(newID func() string) *Engine {
	if newID != nil {
		e.newID = newID
	}
	return e
}

// Draw resolves one pull:
//
//  1. sample r in [0,1) and walk the tiers in declaration order, accumulating
//     weights; the first tier with r <= cumulative wins
//  2. pick uniformly within the winning tier
//  3. pick one fortune line and one advice line, each uniformly and
//     independently
//
// Floating-point accumulation can leave the cumulative total a hair under
// 1.0; a walk that exhausts all tiers selects the last one, so Draw is total.
func (e *Engine) Draw() Result {
	tiers := e.catalog.tiers

	r := e.rng.Float64()
	cumulative := 0.0
	tier := tiers[len(tiers)-1]
	for _, t := range tiers {
		cumulative += t.Weight
		if r <= cumulative {
			tier = t
			break
		}
	}

	entries := e.catalog.byTier[tier.ID]
	entry := entries[e.pick(len(entries))]
	fortune := e.catalog.fortunes[e.pick(len(e.catalog.fortunes))]
	advice := e.catalog.advice[e.pick(len(e.catalog.advice))]

	return Result{
		ID:      e.newID(),
		Entry:   entry,
		Tier:    tier,
		DrawnAt: e.now(),
		Fortune: fortune,
		Advice:  advice,
	}
}

// pick returns a uniform index in [0, n).
func (e *Engine) pick(n int) int {
	i := int(e.rng.Float64() * float64(n))
	if i >= n { // guard against Float64 sources returning exactly 1.0
		i = n - 1
	}
	return i
}
