package draft

import (
	"math"
	"testing"

	"github.com/draftforge/draftforge/internal/catalog"
)

func intPtr(n int) *int { return &n }

// creature builds a creature test card with tags derived from oracle text,
// the same ingestion path the loader uses.
func creature(name string, power, toughness, manaValue int, rarity catalog.Rarity, oracle string) catalog.Card {
	return catalog.Card{
		Name:      name,
		Types:     []catalog.CardType{catalog.TypeCreature},
		ManaValue: manaValue,
		Rarity:    rarity,
		Tags:      catalog.TagOracleText(oracle),
		Power:     intPtr(power),
		Toughness: intPtr(toughness),
	}
}

func spell(name string, cardType catalog.CardType, manaValue int, rarity catalog.Rarity, oracle string) catalog.Card {
	return catalog.Card{
		Name:      name,
		Types:     []catalog.CardType{cardType},
		ManaValue: manaValue,
		Rarity:    rarity,
		Tags:      catalog.TagOracleText(oracle),
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScoreQuality(t *testing.T) {
	tests := []struct {
		name string
		card catalog.Card
		want float64
	}{
		{
			name: "basic land",
			card: catalog.Card{Name: "Forest", Types: []catalog.CardType{catalog.TypeBasicLand},
				Rarity: catalog.RarityCommon, ProducedColors: []string{"G"}},
			want: 0.1,
		},
		{
			name: "fixing dual land",
			card: catalog.Card{Name: "Tranquil Cove", Types: []catalog.CardType{catalog.TypeLand},
				Rarity: catalog.RarityCommon, ProducedColors: []string{"W", "U"}},
			want: 3.0,
		},
		{
			name: "plain nonbasic land",
			card: catalog.Card{Name: "Field of Ruin", Types: []catalog.CardType{catalog.TypeLand},
				Rarity: catalog.RarityCommon, ProducedColors: []string{"W"}},
			want: 1.0,
		},
		{
			// 2.0 base + 0.5 vanilla (4 stats / 2 mana) + 0.25 developing quadrant.
			name: "vanilla bear",
			card: creature("Grizzly Bears", 2, 2, 2, catalog.RarityCommon, ""),
			want: 2.75,
		},
		{
			// Same bear, uncommon: 2.75 * 1.05.
			name: "uncommon bear",
			card: creature("Trained Bears", 2, 2, 2, catalog.RarityUncommon, ""),
			want: 2.8875,
		},
		{
			// 2.0 + 0.5 vanilla + 0.25 * (0.5 winning + 0.5 losing).
			name: "vanilla four drop",
			card: creature("Hill Giant", 4, 4, 4, catalog.RarityCommon, ""),
			want: 2.75,
		},
		{
			// 2.0 + 0.5 vanilla + 0.25 * 0.75 parity + 0.8 flying keyword.
			name: "one drop flier",
			card: creature("Sky Sprite", 1, 1, 1, catalog.RarityCommon, "Flying"),
			want: 3.4875,
		},
		{
			name: "destroy removal",
			card: spell("Murder", catalog.TypeSorcery, 3, catalog.RarityCommon, "Destroy target creature."),
			want: 3.0,
		},
		{
			name: "exile removal",
			card: spell("Banishment", catalog.TypeInstant, 4, catalog.RarityCommon, "Exile target creature."),
			want: 3.3,
		},
		{
			// (1.5 + 1.5 wipe) * 1.15 rare.
			name: "rare board wipe",
			card: spell("Day of Judgment", catalog.TypeSorcery, 4, catalog.RarityRare, "Destroy all creatures."),
			want: 3.45,
		},
		{
			name: "exiling board wipe",
			card: spell("Final Judgment", catalog.TypeSorcery, 6, catalog.RarityCommon, "Exile all creatures."),
			want: 3.5,
		},
		{
			name: "burn any target",
			card: spell("Lightning Strike", catalog.TypeInstant, 2, catalog.RarityCommon, "Lightning Strike deals 3 damage to any target."),
			want: 3.1,
		},
		{
			name: "draw two",
			card: spell("Divination", catalog.TypeSorcery, 3, catalog.RarityCommon, "Draw two cards."),
			want: 2.5,
		},
		{
			name: "combat trick",
			card: spell("Giant Growth", catalog.TypeInstant, 1, catalog.RarityCommon, "Target creature gets +3/+3 until end of turn."),
			want: 2.2,
		},
		{
			name: "beneficial aura",
			card: spell("Armor Glyph", catalog.TypeEnchantment, 2, catalog.RarityCommon, "Enchanted creature gets +1/+1."),
			want: 1.8,
		},
		{
			name: "detrimental aura",
			card: spell("Pacifism", catalog.TypeEnchantment, 2, catalog.RarityCommon, "Enchanted creature can't attack or block."),
			want: 2.2,
		},
		{
			name: "anthem",
			card: spell("Glorious Anthem", catalog.TypeEnchantment, 3, catalog.RarityCommon, "Creatures you control get +1/+1."),
			want: 2.0,
		},
		{
			name: "keyword granting equipment",
			card: spell("Winged Boots", catalog.TypeArtifact, 2, catalog.RarityCommon, "Equipped creature gets +1/+1 and has flying."),
			want: 2.2,
		},
		{
			name: "mana fixing artifact",
			card: spell("Prism Orb", catalog.TypeArtifact, 3, catalog.RarityCommon, "{T}: Add one mana of any color."),
			want: 2.5,
		},
		{
			name: "unknown type fallback",
			card: catalog.Card{Name: "Oddity", Types: []catalog.CardType{"Battle"}, Rarity: catalog.RarityCommon},
			want: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreQuality(tt.card)
			if !almostEqual(got, tt.want) {
				t.Errorf("ScoreQuality(%s) = %v, want %v", tt.card.Name, got, tt.want)
			}
		})
	}
}

func TestScoreQualityClampsAtFive(t *testing.T) {
	walker := catalog.Card{
		Name:   "Planeswalker Bomb",
		Types:  []catalog.CardType{catalog.TypePlaneswalker},
		Rarity: catalog.RarityMythic,
	}
	// 4.5 * 1.3 would exceed the cap.
	if got := ScoreQuality(walker); got != 5.0 {
		t.Errorf("expected clamp at 5.0, got %v", got)
	}
}

func TestScoreQualityBounds(t *testing.T) {
	cards := []catalog.Card{
		creature("Loaded", 6, 6, 3, catalog.RarityMythic,
			"Flying, trample, haste, lifelink, deathtouch. When this creature enters, draw three cards."),
		creature("Weakling", 0, 1, 5, catalog.RarityCommon, ""),
		spell("Nothing", catalog.TypeSorcery, 2, catalog.RarityCommon, ""),
		{Name: "Wastes", Types: []catalog.CardType{catalog.TypeBasicLand}, Rarity: catalog.RarityCommon},
	}
	for _, card := range cards {
		got := ScoreQuality(card)
		if got < 0 || got > 5 {
			t.Errorf("ScoreQuality(%s) = %v out of [0,5]", card.Name, got)
		}
	}
}

func TestScoreQualityDeterministic(t *testing.T) {
	card := creature("Repeat Offender", 3, 3, 3, catalog.RarityUncommon, "Flying, haste")
	first := ScoreQuality(card)
	for i := 0; i < 10; i++ {
		if got := ScoreQuality(card); got != first {
			t.Fatalf("score changed across calls: %v then %v", first, got)
		}
	}
}

func TestVanillaTestRewardsStatEfficiency(t *testing.T) {
	efficient := creature("Efficient", 3, 3, 3, catalog.RarityCommon, "")
	inefficient := creature("Inefficient", 2, 2, 3, catalog.RarityCommon, "")
	if ScoreQuality(efficient) <= ScoreQuality(inefficient) {
		t.Error("stat-efficient creature should outscore the inefficient one")
	}
}

func TestVariablePowerSkipsSizeTerms(t *testing.T) {
	variable := catalog.Card{
		Name:      "Shapeshifter",
		Types:     []catalog.CardType{catalog.TypeCreature},
		ManaValue: 3,
		Rarity:    catalog.RarityCommon,
		Tags:      catalog.TagOracleText("Flying"),
	}
	// 2.0 base + 0.25 * 0.75 parity + 0.8 flying keyword; no vanilla bonus.
	want := 2.0 + 0.25*0.75 + 0.8
	if got := ScoreQuality(variable); !almostEqual(got, want) {
		t.Errorf("ScoreQuality with nil power = %v, want %v", got, want)
	}
}
