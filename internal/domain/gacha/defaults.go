package gacha

// Built-in catalog used when no catalog file is configured. Projects are
// fictional; any resemblance to coins that actually went to zero is the
// entire joke.

var defaultTiers = []Tier{
	{ID: "common", Label: "Common Rug", Weight: 0.50},
	{ID: "uncommon", Label: "Uncommon Rug", Weight: 0.30},
	{ID: "rare", Label: "Rare Rug", Weight: 0.15},
	{ID: "legendary", Label: "Legendary Rug", Weight: 0.05},
}

var defaultEntries = []Entry{
	{ID: "moonyacht", Name: "MoonYacht", Symbol: "YACHT", Tier: "common",
		Blurb: "Promised a yacht party at 100x. The deployer kept the yacht."},
	{ID: "safurai", Name: "SafuInu", Symbol: "SAFU", Tier: "common",
		Blurb: "Funds were safu for exactly eleven hours."},
	{ID: "gigafarm", Name: "GigaFarm", Symbol: "GFARM", Tier: "common",
		Blurb: "APY had five digits. So did the number of victims."},
	{ID: "pumpkin", Name: "PumpKing", Symbol: "PKNG", Tier: "common",
		Blurb: "The chart looked like a pumpkin. Then like a pancake."},
	{ID: "stablenot", Name: "NotStable", Symbol: "NSTB", Tier: "uncommon",
		Blurb: "An algorithmic stablecoin, stable in every direction but down."},
	{ID: "bridgegate", Name: "BridgeGate", Symbol: "BRDG", Tier: "uncommon",
		Blurb: "The bridge worked flawlessly, once, for the exploiter."},
	{ID: "daowow", Name: "DAOWow", Symbol: "WOW", Tier: "uncommon",
		Blurb: "Governance vote #1: send treasury to a multisig of one."},
	{ID: "metaplot", Name: "MetaPlot", Symbol: "PLOT", Tier: "rare",
		Blurb: "Virtual land next to a celebrity who turned out to be a bot."},
	{ID: "quantumfi", Name: "QuantumFi", Symbol: "QBIT", Tier: "rare",
		Blurb: "Whitepaper cited quantum entanglement. Audit cited nothing."},
	{ID: "rugzilla", Name: "Rugzilla", Symbol: "ZILLA", Tier: "legendary",
		Blurb: "The rug so large it has its own documentary."},
}

var defaultFortunes = []string{
	"A red candle today is a lesson tomorrow.",
	"The exit liquidity you seek is also seeking you.",
	"Your bags are heavy because they are full of experience.",
	"Not every dip is for buying. Some are for reflection.",
	"The whale you follow also follows someone. It is whales all the way down.",
	"Fortune favors the bold. Markets favor the market maker.",
	"You were not early. You were exactly on time for the dump.",
}

var defaultAdvice = []string{
	"Never burn more than you can laugh about.",
	"If the roadmap fits in a tweet, so will the obituary.",
	"Audit the auditors.",
	"When the Telegram goes quiet, be loud about leaving.",
	"A locked liquidity pool is only as honest as its unlock date.",
	"Diversify your regrets.",
}

// DefaultCatalog returns the built-in catalog, constructed through
// NewCatalog so the invariants guard the shipped data too.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultTiers, defaultEntries, defaultFortunes, defaultAdvice)
	if err != nil {
		panic("gacha: default catalog invalid: " + err.Error())
	}
	return c
}
