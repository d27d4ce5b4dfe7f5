// Package catalog provides the card attribute model consumed by the draft
// engine, plus loading and ingestion-time tagging of card data.
package catalog

import "strings"

// Color constants for WUBRG
const (
	ColorWhite = "W"
	ColorBlue  = "U"
	ColorBlack = "B"
	ColorRed   = "R"
	ColorGreen = "G"
)

// AllColors lists all five colors in WUBRG order.
var AllColors = []string{ColorWhite, ColorBlue, ColorBlack, ColorRed, ColorGreen}

// CardType identifies one type line entry of a card.
type CardType string

const (
	TypeCreature     CardType = "Creature"
	TypeInstant      CardType = "Instant"
	TypeSorcery      CardType = "Sorcery"
	TypeEnchantment  CardType = "Enchantment"
	TypeArtifact     CardType = "Artifact"
	TypePlaneswalker CardType = "Planeswalker"
	TypeLand         CardType = "Land"
	TypeBasicLand    CardType = "BasicLand"
)

// Rarity represents the printed rarity of a card.
type Rarity string

const (
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
	RarityMythic   Rarity = "mythic"
)

// Card is an immutable card record. Instances are created by the catalog
// loader (or test fixtures) and never mutated by the engine.
type Card struct {
	ID        int          `json:"id"`
	Name      string       `json:"name"`
	Types     []CardType   `json:"types"`
	Subtypes  []string     `json:"subtypes,omitempty"`
	Colors    []string     `json:"colors,omitempty"` // color identity; empty = colorless
	ManaCost  string       `json:"mana_cost,omitempty"`
	ManaValue int          `json:"mana_value"`
	Rarity    Rarity       `json:"rarity"`
	Tags      []AbilityTag `json:"tags,omitempty"`

	// Power/Toughness are nil for non-creatures and for variable values
	// like "*". Scoring treats nil as contributing zero to size terms.
	Power     *int `json:"power,omitempty"`
	Toughness *int `json:"toughness,omitempty"`

	// ProducedColors lists the mana colors a land can produce.
	ProducedColors []string `json:"produced_colors,omitempty"`
}

// HasType reports whether the card's type line includes t.
// A basic land also counts as a land.
func (c *Card) HasType(t CardType) bool {
	for _, ct := range c.Types {
		if ct == t {
			return true
		}
		if t == TypeLand && ct == TypeBasicLand {
			return true
		}
	}
	return false
}

// IsLand reports whether the card is any kind of land.
func (c *Card) IsLand() bool {
	return c.HasType(TypeLand)
}

// IsBasicLand reports whether the card is a basic land.
func (c *Card) IsBasicLand() bool {
	return c.HasType(TypeBasicLand)
}

// IsCreature reports whether the card is a creature.
func (c *Card) IsCreature() bool {
	return c.HasType(TypeCreature)
}

// HasTag reports whether the card carries the given ability tag.
func (c *Card) HasTag(tag AbilityTag) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasSubtype reports whether the card has the given subtype (case-insensitive).
func (c *Card) HasSubtype(subtype string) bool {
	for _, s := range c.Subtypes {
		if strings.EqualFold(s, subtype) {
			return true
		}
	}
	return false
}

// HasColor reports whether the card's color identity includes color.
func (c *Card) HasColor(color string) bool {
	for _, cc := range c.Colors {
		if cc == color {
			return true
		}
	}
	return false
}

// ColorsWithin reports whether the card's color identity is a subset of the
// given colors. Colorless cards fit any color set.
func (c *Card) ColorsWithin(colors []string) bool {
	allowed := make(map[string]bool, len(colors))
	for _, color := range colors {
		allowed[color] = true
	}
	for _, cc := range c.Colors {
		if !allowed[cc] {
			return false
		}
	}
	return true
}

// IsFixingLand reports whether the card is a non-basic land producing two or
// more colors of mana.
func (c *Card) IsFixingLand() bool {
	return c.IsLand() && !c.IsBasicLand() && len(c.ProducedColors) >= 2
}
