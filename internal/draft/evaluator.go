// Package draft implements the pick-evaluation and deck-assembly engine:
// card quality scoring, the color/curve/synergy trackers, the pick engine
// with its session state machine, and the maindeck/sideboard builder.
package draft

import (
	"github.com/draftforge/draftforge/internal/catalog"
)

// Rarity multipliers applied after base score and bonuses.
const (
	mythicMultiplier   = 1.3
	rareMultiplier     = 1.15
	uncommonMultiplier = 1.05
	maxQuality         = 5.0
)

// keywordValues maps combat and value keywords to their quality contribution
// for creatures.
var keywordValues = map[catalog.AbilityTag]float64{
	catalog.TagFlying:         0.8,
	catalog.TagMenace:         0.4,
	catalog.TagTrample:        0.3,
	catalog.TagUnblockable:    1.0,
	catalog.TagFirstStrike:    0.5,
	catalog.TagDoubleStrike:   1.0,
	catalog.TagDeathtouch:     0.6,
	catalog.TagLifelink:       0.5,
	catalog.TagHexproof:       0.7,
	catalog.TagIndestructible: 0.8,
	catalog.TagVigilance:      0.3,
	catalog.TagHaste:          0.4,
	catalog.TagReach:          0.2,
	catalog.TagFlash:          0.3,
	catalog.TagCardDraw:       0.6,
	catalog.TagETBValue:       0.3,
}

// ScoreQuality rates a card's context-free quality on a 0-5 scale. It is a
// pure function: no session state is read, so identical cards always score
// identically regardless of call order.
func ScoreQuality(card catalog.Card) float64 {
	var score float64

	switch {
	case card.IsLand():
		score = scoreLand(card)
	case card.HasType(catalog.TypePlaneswalker):
		score = 4.5
	case card.IsCreature():
		score = scoreCreature(card)
	case card.HasType(catalog.TypeInstant) || card.HasType(catalog.TypeSorcery):
		score = scoreSpell(card)
	case card.HasType(catalog.TypeEnchantment):
		score = scoreEnchantment(card)
	case card.HasType(catalog.TypeArtifact):
		score = scoreArtifact(card)
	default:
		score = 1.0
	}

	score *= rarityMultiplier(card.Rarity)

	if score > maxQuality {
		score = maxQuality
	}
	if score < 0 {
		score = 0
	}
	return score
}

func rarityMultiplier(r catalog.Rarity) float64 {
	switch r {
	case catalog.RarityMythic:
		return mythicMultiplier
	case catalog.RarityRare:
		return rareMultiplier
	case catalog.RarityUncommon:
		return uncommonMultiplier
	default:
		return 1.0
	}
}

func scoreLand(card catalog.Card) float64 {
	switch {
	case card.IsBasicLand():
		return 0.1
	case card.IsFixingLand():
		return 3.0
	default:
		return 1.0
	}
}

// scoreCreature combines the vanilla test, quadrant scores and keyword
// values on top of the 2.0 creature base. Creatures with variable power or
// toughness skip the size-based terms and score on keywords alone.
func scoreCreature(card catalog.Card) float64 {
	score := 2.0

	if card.Power != nil && card.Toughness != nil {
		stats := float64(*card.Power + *card.Toughness)
		denom := float64(card.ManaValue)
		if denom < 1 {
			denom = 1
		}
		ratio := stats / denom
		if ratio >= 2.0 {
			score += 0.5
		}
		if ratio >= 2.5 {
			score += 0.5
		}
	}

	score += 0.25 * (quadrantDeveloping(card) + quadrantParity(card) +
		quadrantWinning(card) + quadrantLosing(card))

	for tag, value := range keywordValues {
		if card.HasTag(tag) {
			score += value
		}
	}

	return score
}

// quadrantDeveloping rewards cheap early pressure: low mana value with
// meaningful power, plus haste to press the advantage.
func quadrantDeveloping(card catalog.Card) float64 {
	var q float64
	if card.Power != nil {
		if card.ManaValue <= 2 && *card.Power >= 2 {
			q += 1.0
		} else if card.ManaValue <= 3 && *card.Power >= 3 {
			q += 0.75
		}
	}
	if card.HasTag(catalog.TagHaste) {
		q += 0.5
	}
	return clampQuadrant(q)
}

// quadrantParity rewards evasion and removal resistance on a stalled board.
func quadrantParity(card catalog.Card) float64 {
	var q float64
	if card.HasTag(catalog.TagFlying) || card.HasTag(catalog.TagMenace) ||
		card.HasTag(catalog.TagUnblockable) {
		q += 0.75
	}
	if card.HasTag(catalog.TagHexproof) || card.HasTag(catalog.TagIndestructible) {
		q += 0.5
	}
	if card.HasTag(catalog.TagDeathtouch) {
		q += 0.25
	}
	return clampQuadrant(q)
}

// quadrantWinning rewards cards that close a game from ahead.
func quadrantWinning(card catalog.Card) float64 {
	var q float64
	if card.HasTag(catalog.TagDoubleStrike) {
		q += 0.75
	}
	if card.HasTag(catalog.TagTrample) {
		q += 0.5
	}
	if card.HasTag(catalog.TagHaste) {
		q += 0.25
	}
	if card.Power != nil && *card.Power >= 4 {
		q += 0.5
	}
	return clampQuadrant(q)
}

// quadrantLosing rewards stabilization: lifegain, defense, blocking bodies.
func quadrantLosing(card catalog.Card) float64 {
	var q float64
	if card.HasTag(catalog.TagLifelink) || card.HasTag(catalog.TagLifegain) {
		q += 0.75
	}
	if card.HasTag(catalog.TagDefender) {
		q += 0.5
	}
	if card.HasTag(catalog.TagReach) {
		q += 0.25
	}
	if card.HasTag(catalog.TagVigilance) {
		q += 0.25
	}
	if card.Toughness != nil && *card.Toughness >= 4 {
		q += 0.5
	}
	return clampQuadrant(q)
}

func clampQuadrant(q float64) float64 {
	if q > 1.5 {
		return 1.5
	}
	return q
}

// scoreSpell rates instants and sorceries: removal mode, card draw quantity,
// instant-speed tricks and sweepers.
func scoreSpell(card catalog.Card) float64 {
	score := 1.5

	if card.HasTag(catalog.TagBoardWipe) {
		score += 1.5
		if card.HasTag(catalog.TagRemovalExile) {
			score += 0.5
		}
		return score
	}

	switch {
	case card.HasTag(catalog.TagRemovalExile):
		score += 1.8
	case card.HasTag(catalog.TagDirectDamage) && card.HasTag(catalog.TagRemoval):
		if card.HasTag(catalog.TagAnyTarget) {
			score += 1.6
		} else {
			score += 1.2
		}
	case card.HasTag(catalog.TagRemoval):
		score += 1.5
	}

	switch {
	case card.HasTag(catalog.TagDrawThree):
		score += 1.5
	case card.HasTag(catalog.TagDrawTwo):
		score += 1.0
	case card.HasTag(catalog.TagCardDraw):
		score += 0.5
	}

	if card.HasType(catalog.TypeInstant) && card.HasTag(catalog.TagCombatTrick) {
		score += 0.7
	}

	return score
}

func scoreEnchantment(card catalog.Card) float64 {
	score := 1.0

	if card.HasTag(catalog.TagDetrimentalAura) {
		score += 1.2
	}
	if card.HasTag(catalog.TagBeneficialAura) {
		score += 0.8
	}
	if card.HasTag(catalog.TagAnthem) {
		if card.HasTag(catalog.TagCardDraw) {
			score += 1.2
		} else {
			score += 1.0
		}
	}

	return score
}

func scoreArtifact(card catalog.Card) float64 {
	score := 1.0

	if card.HasTag(catalog.TagEquipment) {
		if card.HasTag(catalog.TagKeywordGrant) {
			score += 1.2
		} else {
			score += 0.8
		}
	}
	if card.HasTag(catalog.TagManaFixing) {
		score += 1.5
	}
	if card.HasTag(catalog.TagCardDraw) {
		score += 1.0
	}

	return score
}
