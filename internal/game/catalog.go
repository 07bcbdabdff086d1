package game

type CosmeticID string

const DefaultCosmetic CosmeticID = "default"

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Cosmetic is a hand skin. Exactly one of WinsRequired or Price gates it:
// a positive Price means it can only be bought.
type Cosmetic struct {
	ID           CosmeticID
	Name         string
	Rarity       Rarity
	WinsRequired int
	Price        int
}

func (c Cosmetic) Purchasable() bool {
	return c.Price > 0
}

var catalog = []Cosmetic{
	{ID: DefaultCosmetic, Name: "Classic Hands", Rarity: RarityCommon},
	{ID: "bronze", Name: "Bronze Fist", Rarity: RarityCommon, WinsRequired: 10},
	{ID: "silver", Name: "Silver Fist", Rarity: RarityRare, WinsRequired: 30},
	{ID: "golden", Name: "Golden Fist", Rarity: RarityEpic, WinsRequired: 50},
	{ID: "neon", Name: "Neon Glow", Rarity: RarityRare, Price: 200},
	{ID: "galaxy", Name: "Galaxy", Rarity: RarityEpic, Price: 500},
	{ID: "dragon", Name: "Dragon Claw", Rarity: RarityLegendary, Price: 1000},
}

// Catalog returns a copy of the cosmetic catalog in display order.
func Catalog() []Cosmetic {
	out := make([]Cosmetic, len(catalog))
	copy(out, catalog)
	return out
}

func LookupCosmetic(id CosmeticID) (Cosmetic, bool) {
	for _, c := range catalog {
		if c.ID == id {
			return c, true
		}
	}
	return Cosmetic{}, false
}

type Tier struct {
	Name    string
	MinWins int
}

var tiers = []Tier{
	{Name: "Bronze", MinWins: 0},
	{Name: "Silver", MinWins: 10},
	{Name: "Gold", MinWins: 30},
	{Name: "Platinum", MinWins: 60},
	{Name: "Diamond", MinWins: 100},
	{Name: "Master", MinWins: 200},
}

func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// TierFor returns the highest tier whose threshold wins has reached.
func TierFor(wins int) Tier {
	current := tiers[0]
	for _, t := range tiers[1:] {
		if wins < t.MinWins {
			break
		}
		current = t
	}
	return current
}
