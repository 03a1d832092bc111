package gacha

import (
	"errors"
	"fmt"
	"math"
)

// Catalog construction errors. A catalog violating these is a startup-time
// configuration error; the engine never re-validates per draw.
var (
	ErrNoTiers          = errors.New("gacha: catalog has no tiers")
	ErrWeightSum        = errors.New("gacha: tier weights must sum to 1.0")
	ErrBadWeight        = errors.New("gacha: tier weight must be in (0,1]")
	ErrDuplicateTier    = errors.New("gacha: duplicate tier id")
	ErrEmptyTier        = errors.New("gacha: tier has no entries")
	ErrUnknownTier      = errors.New("gacha: entry references unknown tier")
	ErrNoFortunes       = errors.New("gacha: fortune pool is empty")
	ErrNoAdvice         = errors.New("gacha: advice pool is empty")
	ErrMissingEntryID   = errors.New("gacha: entry id is empty")
	ErrDuplicateEntryID = errors.New("gacha: duplicate entry id")
)

// weightEpsilon bounds the floating-point slack allowed when checking that
// tier weights sum to exactly 1.0.
const weightEpsilon = 1e-9

// Tier is one rarity band. Weight is the probability mass of the band;
// weights across a catalog's tiers sum to 1.0.
type Tier struct {
	ID     string  `yaml:"id"`
	Label  string  `yaml:"label"`
	Weight float64 `yaml:"weight"`
}

// Entry is one drawable card: a crypto project that went to zero.
type Entry struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Symbol string `yaml:"symbol"`
	Blurb  string `yaml:"blurb"`
	Tier   string `yaml:"tier"`
}

// Catalog is the static prize table. It is immutable after construction;
// build one with NewCatalog, which is the only place the invariants are
// checked.
type Catalog struct {
	tiers    []Tier
	entries  []Entry
	byTier   map[string][]Entry
	fortunes []string
	advice   []string
}

// NewCatalog validates and assembles a catalog. Tier order is preserved as
// given; the draw walks tiers in exactly this order.
func NewCatalog(tiers []Tier, entries []Entry, fortunes, advice []string) (*Catalog, error) {
	if len(tiers) == 0 {
		return nil, ErrNoTiers
	}
	if len(fortunes) == 0 {
		return nil, ErrNoFortunes
	}
	if len(advice) == 0 {
		return nil, ErrNoAdvice
	}

	seen := make(map[string]struct{}, len(tiers))
	sum := 0.0
	for _, t := range tiers {
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTier, t.ID)
		}
		seen[t.ID] = struct{}{}
		if math.IsNaN(t.Weight) || t.Weight <= 0 || t.Weight > 1 {
			return nil, fmt.Errorf("%w: tier %s weight %v", ErrBadWeight, t.ID, t.Weight)
		}
		sum += t.Weight
	}
	if math.Abs(sum-1.0) > weightEpsilon {
		return nil, fmt.Errorf("%w: got %v", ErrWeightSum, sum)
	}

	byTier := make(map[string][]Entry, len(tiers))
	ids := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("%w: entry %q", ErrMissingEntryID, e.Name)
		}
		if _, dup := ids[e.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEntryID, e.ID)
		}
		ids[e.ID] = struct{}{}
		if _, ok := seen[e.Tier]; !ok {
			return nil, fmt.Errorf("%w: entry %s tier %q", ErrUnknownTier, e.ID, e.Tier)
		}
		byTier[e.Tier] = append(byTier[e.Tier], e)
	}
	for _, t := range tiers {
		if len(byTier[t.ID]) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyTier, t.ID)
		}
	}

	return &Catalog{
		tiers:    append([]Tier(nil), tiers...),
		entries:  append([]Entry(nil), entries...),
		byTier:   byTier,
		fortunes: append([]string(nil), fortunes...),
		advice:   append([]string(nil), advice...),
	}, nil
}

// Tiers returns the tiers in draw order.
func (c *Catalog) Tiers() []Tier {
	return append([]Tier(nil), c.tiers...)
}

// Entries returns every entry in the catalog.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// EntriesInTier returns the entries of one tier.
func (c *Catalog) EntriesInTier(tierID string) []Entry {
	return append([]Entry(nil), c.byTier[tierID]...)
}
