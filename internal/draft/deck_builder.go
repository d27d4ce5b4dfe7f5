package draft

import (
	"fmt"
	"math"
	"sort"

	"github.com/draftforge/draftforge/internal/catalog"
)

// Deck is the final maindeck/sideboard split. Every pool card lands in
// exactly one of the two lists; nothing is discarded.
type Deck struct {
	Maindeck  []catalog.Card
	Sideboard []catalog.Card

	// Colors is the eligible color set the deck was built around.
	Colors []string

	// Pips counts the colored mana symbols across the chosen spells.
	Pips map[string]int

	Shortfall Shortfall
}

// Shortfall reports how far the pool fell short of the configured targets.
// Under-supply is expected with thin pools and is not an error.
type Shortfall struct {
	Creatures    int `json:"creatures"`
	NonCreatures int `json:"non_creatures"`
	Lands        int `json:"lands"`
}

// Total returns the combined number of unfilled maindeck slots.
func (s Shortfall) Total() int {
	return s.Creatures + s.NonCreatures + s.Lands
}

// BuildDeck partitions the final pool into a maindeck and sideboard honoring
// the creature/spell/land targets, with basic lands allocated in proportion
// to the chosen spells' color pips. colors is the resolved commitment; an
// empty slice treats all five colors as eligible.
func BuildDeck(pool []catalog.Card, colors []string, config DeckConfig) (*Deck, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid deck config: %w", err)
	}

	eligible := colors
	if len(eligible) == 0 {
		eligible = catalog.AllColors
	}

	// Index the pool so sideboard assembly can find the leftovers. Cards
	// may repeat in a pool, so selection tracks indices, not IDs.
	used := make([]bool, len(pool))

	var creatures, spells, fixingLands []int
	basicsByColor := make(map[string][]int)

	for i, card := range pool {
		switch {
		case card.IsBasicLand():
			for _, color := range card.ProducedColors {
				basicsByColor[color] = append(basicsByColor[color], i)
			}
		case card.IsFixingLand():
			fixingLands = append(fixingLands, i)
		case card.IsLand():
			// Plain non-basic lands hold no slot priority; they stay in
			// the sideboard unless they fix colors.
		case !card.ColorsWithin(eligible):
			// Off-color card: sideboard.
		case card.IsCreature():
			creatures = append(creatures, i)
		default:
			spells = append(spells, i)
		}
	}

	byQualityDesc := func(indices []int) {
		sort.SliceStable(indices, func(a, b int) bool {
			return ScoreQuality(pool[indices[a]]) > ScoreQuality(pool[indices[b]])
		})
	}
	byQualityDesc(creatures)
	byQualityDesc(spells)
	byQualityDesc(fixingLands)

	deck := &Deck{
		Colors: eligible,
		Pips:   make(map[string]int),
	}

	take := func(indices []int, n int) {
		for _, idx := range indices[:n] {
			used[idx] = true
			deck.Maindeck = append(deck.Maindeck, pool[idx])
		}
	}

	nCreatures := min(config.TargetCreatures, len(creatures))
	nSpells := min(config.TargetNonCreatures, len(spells))
	take(creatures, nCreatures)
	take(spells, nSpells)
	deck.Shortfall.Creatures = config.TargetCreatures - nCreatures
	deck.Shortfall.NonCreatures = config.TargetNonCreatures - nSpells

	// Pip requirements come from the chosen spells only.
	for _, card := range deck.Maindeck {
		for color, n := range catalog.CountPips(card.ManaCost) {
			deck.Pips[color] += n
		}
	}

	landSlots := min(config.TargetLands, config.MaindeckSize-len(deck.Maindeck))

	nFixing := min(landSlots, len(fixingLands))
	take(fixingLands, nFixing)
	landSlots -= nFixing

	filled := fillBasics(pool, used, deck, basicsByColor, landSlots)
	deck.Shortfall.Lands = landSlots - filled

	if len(deck.Maindeck) > config.MaindeckSize {
		return nil, fmt.Errorf("maindeck overflow: %d cards for size %d",
			len(deck.Maindeck), config.MaindeckSize)
	}
	if len(deck.Maindeck)+deck.Shortfall.Total() != config.MaindeckSize {
		return nil, fmt.Errorf("maindeck size mismatch: %d cards with %d short of %d",
			len(deck.Maindeck), deck.Shortfall.Total(), config.MaindeckSize)
	}

	for i, card := range pool {
		if !used[i] {
			deck.Sideboard = append(deck.Sideboard, card)
		}
	}

	return deck, nil
}

// fillBasics allocates the remaining land slots to basic lands in proportion
// to the deck's color pips, any rounding remainder going to the highest-pip
// color. Returns the number of slots actually filled; missing basics are the
// caller's shortfall.
func fillBasics(pool []catalog.Card, used []bool, deck *Deck, basicsByColor map[string][]int, slots int) int {
	if slots <= 0 {
		return 0
	}

	totalPips := 0
	highest := ""
	for _, color := range catalog.AllColors {
		n := deck.Pips[color]
		totalPips += n
		if highest == "" || n > deck.Pips[highest] {
			highest = color
		}
	}

	if totalPips == 0 {
		// No colored requirements: take any available basics in pool order.
		filled := 0
		for _, color := range catalog.AllColors {
			for _, idx := range basicsByColor[color] {
				if filled == slots {
					return filled
				}
				if used[idx] {
					continue
				}
				used[idx] = true
				deck.Maindeck = append(deck.Maindeck, pool[idx])
				filled++
			}
		}
		return filled
	}

	wanted := make(map[string]int, len(catalog.AllColors))
	allocated := 0
	for _, color := range catalog.AllColors {
		if color == highest {
			continue
		}
		n := int(math.Round(float64(slots) * float64(deck.Pips[color]) / float64(totalPips)))
		wanted[color] = n
		allocated += n
	}
	if remainder := slots - allocated; remainder > 0 {
		wanted[highest] = remainder
	}

	filled := 0
	for _, color := range catalog.AllColors {
		need := wanted[color]
		for _, idx := range basicsByColor[color] {
			if need <= 0 || filled == slots {
				break
			}
			if used[idx] {
				continue
			}
			used[idx] = true
			deck.Maindeck = append(deck.Maindeck, pool[idx])
			need--
			filled++
		}
	}

	return filled
}
