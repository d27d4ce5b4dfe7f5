package draft

import (
	"strings"

	"github.com/draftforge/draftforge/internal/catalog"
)

// tribalTypes lists the creature types that matter for tribal synergy.
var tribalTypes = map[string]bool{
	"elf": true, "goblin": true, "vampire": true, "zombie": true,
	"human": true, "warrior": true, "merfolk": true, "wizard": true,
	"knight": true, "spirit": true, "elemental": true, "cleric": true,
	"rogue": true, "angel": true, "dragon": true, "soldier": true,
	"pirate": true, "dinosaur": true, "faerie": true, "beast": true,
	"cat": true, "bird": true, "dog": true, "rat": true, "sliver": true,
}

const (
	tribalSynergyWeight  = 0.2
	flyingSynergyWeight  = 0.1
	counterSynergyWeight = 0.15
)

// SynergyTracker keeps running thematic counters over the draft pool so the
// synergy score never rescans the pool on the hot path. Writes happen only
// through Add during the pick engine's commit step.
type SynergyTracker struct {
	subtypeCounts map[string]int
	flyingCount   int
	counterCount  int
}

// NewSynergyTracker creates a tracker with empty counters.
func NewSynergyTracker() *SynergyTracker {
	return &SynergyTracker{subtypeCounts: make(map[string]int)}
}

// Add folds a picked card into the thematic counters.
func (t *SynergyTracker) Add(card catalog.Card) {
	for _, subtype := range card.Subtypes {
		key := strings.ToLower(subtype)
		if tribalTypes[key] {
			t.subtypeCounts[key]++
		}
	}
	if card.HasTag(catalog.TagFlying) {
		t.flyingCount++
	}
	if card.HasTag(catalog.TagPlusOneCounterSynergy) {
		t.counterCount++
	}
}

// Score rates how well a candidate overlaps the pool's themes, clamped to
// [0,1]. The candidate itself is read-only; nothing is recorded until the
// pick commits.
func (t *SynergyTracker) Score(card catalog.Card) float64 {
	var score float64

	for _, subtype := range card.Subtypes {
		key := strings.ToLower(subtype)
		if tribalTypes[key] {
			score += tribalSynergyWeight * float64(t.subtypeCounts[key])
		}
	}
	if card.HasTag(catalog.TagFlying) {
		score += flyingSynergyWeight * float64(t.flyingCount)
	}
	if card.HasTag(catalog.TagPlusOneCounterSynergy) {
		score += counterSynergyWeight * float64(t.counterCount)
	}

	if score > 1.0 {
		return 1.0
	}
	if score < 0 {
		return 0
	}
	return score
}

// TribalCount returns the pool count for a tribal subtype.
func (t *SynergyTracker) TribalCount(subtype string) int {
	return t.subtypeCounts[strings.ToLower(subtype)]
}
