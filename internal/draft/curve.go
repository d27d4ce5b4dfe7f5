package draft

import "github.com/draftforge/draftforge/internal/catalog"

// curveBuckets is the histogram size: exact mana values 0-6 plus a 7+ bucket.
const curveBuckets = 8

// idealCurve is the target non-land count per mana-value bucket for a
// 40-card deck.
var idealCurve = [curveBuckets]float64{0, 1, 5, 4, 3, 2, 1, 0.5}

// CurveTracker maintains the running mana-value histogram of the draft pool.
// Lands never enter the histogram.
type CurveTracker struct {
	counts [curveBuckets]int
}

// NewCurveTracker creates an empty histogram.
func NewCurveTracker() *CurveTracker {
	return &CurveTracker{}
}

// bucket maps a mana value onto its histogram bucket, capping at 7+.
func bucket(manaValue int) int {
	if manaValue >= curveBuckets-1 {
		return curveBuckets - 1
	}
	if manaValue < 0 {
		return 0
	}
	return manaValue
}

// Add records a picked card in the histogram. Lands are skipped.
func (t *CurveTracker) Add(card catalog.Card) {
	if card.IsLand() {
		return
	}
	t.counts[bucket(card.ManaValue)]++
}

// Bonus scores how a candidate would sit on the current curve: +0.5 for an
// under-filled bucket, -0.5 once the bucket overflows 1.5x its ideal count,
// 0 otherwise. Lands are curve-neutral.
func (t *CurveTracker) Bonus(card catalog.Card) float64 {
	if card.IsLand() {
		return 0
	}

	b := bucket(card.ManaValue)
	count := float64(t.counts[b])
	ideal := idealCurve[b]

	switch {
	case count < ideal:
		return 0.5
	case count > 1.5*ideal:
		return -0.5
	default:
		return 0
	}
}

// Count returns the current count for a mana-value bucket (7 means 7+).
func (t *CurveTracker) Count(manaValue int) int {
	return t.counts[bucket(manaValue)]
}

// Histogram returns a copy of the bucket counts.
func (t *CurveTracker) Histogram() [curveBuckets]int {
	return t.counts
}
