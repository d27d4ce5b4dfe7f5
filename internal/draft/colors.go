package draft

import (
	"strings"

	"github.com/draftforge/draftforge/internal/catalog"
)

const (
	// Picks 1-5 are exploratory; primary/secondary resolve from pick 5 on.
	colorResolvePick = 5

	// From pick 11 on the tracker is locked in and off-color cards are
	// penalized hard.
	colorLockPick = 10

	// A secondary color needs this much cumulative weight to count.
	secondaryThreshold = 3.0

	offColorPenalty = -2.0
	primaryBonus    = 1.0
	secondaryBonus  = 0.6
)

// ColorTracker maintains the running weighted color-preference model for a
// draft session. Writes happen only through Update during the pick engine's
// commit step; Bonus and ResolvedColors are read-only.
type ColorTracker struct {
	scores    map[string]float64
	primary   string // "" until resolved
	secondary string
	locked    bool
}

// ColorSnapshot is an immutable copy of the tracker state, captured per pick
// for analytics export.
type ColorSnapshot struct {
	Scores    map[string]float64 `json:"scores"`
	Primary   string             `json:"primary,omitempty"`
	Secondary string             `json:"secondary,omitempty"`
	Locked    bool               `json:"locked"`
}

// NewColorTracker creates an empty tracker with no resolved colors.
func NewColorTracker() *ColorTracker {
	scores := make(map[string]float64, len(catalog.AllColors))
	for _, color := range catalog.AllColors {
		scores[color] = 0
	}
	return &ColorTracker{scores: scores}
}

// pickWeight decays from 1.0 toward a 0.5 floor as the draft progresses, so
// early picks steer color commitment harder than late ones.
func pickWeight(pickNumber int) float64 {
	w := 1.0 - float64(pickNumber)/45.0
	if w < 0.5 {
		return 0.5
	}
	return w
}

// Update folds a picked card into the color model. pickNumber is the overall
// 1-based pick ordinal across the whole draft. Lands carry no commitment and
// are skipped.
func (t *ColorTracker) Update(card catalog.Card, pickNumber int) {
	if pickNumber > colorLockPick {
		t.locked = true
	}
	if card.IsLand() {
		return
	}

	weight := pickWeight(pickNumber)
	for _, color := range card.Colors {
		t.scores[color] += weight
	}

	if pickNumber >= colorResolvePick {
		t.resolve()
	}
}

// resolve recomputes primary and secondary from the cumulative scores.
// The secondary slot stays empty until its color clears the threshold.
func (t *ColorTracker) resolve() {
	first, second := "", ""
	for _, color := range catalog.AllColors {
		score := t.scores[color]
		if score <= 0 {
			continue
		}
		switch {
		case first == "" || score > t.scores[first]:
			second = first
			first = color
		case second == "" || score > t.scores[second]:
			second = color
		}
	}

	t.primary = first
	if second != "" && t.scores[second] > secondaryThreshold {
		t.secondary = second
	} else {
		t.secondary = ""
	}
}

// Bonus converts the current commitment into a per-card score adjustment.
// Before a primary color resolves every card is neutral. After the lock-in
// pick, colored cards sharing nothing with the committed colors take a hard
// penalty. The penalty is steep enough to bury late splashes.
func (t *ColorTracker) Bonus(card catalog.Card, pickNumber int) float64 {
	if t.primary == "" {
		return 0
	}

	var bonus float64
	if card.HasColor(t.primary) {
		bonus += primaryBonus
	}
	if t.secondary != "" && card.HasColor(t.secondary) {
		bonus += secondaryBonus
	}

	if bonus == 0 && pickNumber > colorLockPick && len(card.Colors) > 0 {
		return offColorPenalty
	}
	return bonus
}

// ResolvedColors returns the committed colors in {primary, secondary} order.
// An empty slice means no commitment yet and all colors remain eligible.
func (t *ColorTracker) ResolvedColors() []string {
	if t.primary == "" {
		return nil
	}
	colors := []string{t.primary}
	if t.secondary != "" {
		colors = append(colors, t.secondary)
	}
	return colors
}

// Primary returns the resolved primary color, or "" if unresolved.
func (t *ColorTracker) Primary() string { return t.primary }

// Secondary returns the resolved secondary color, or "" if absent.
func (t *ColorTracker) Secondary() string { return t.secondary }

// Locked reports whether the lock-in pick has passed.
func (t *ColorTracker) Locked() bool { return t.locked }

// Score returns the cumulative weighted score for a color.
func (t *ColorTracker) Score(color string) float64 { return t.scores[color] }

// Snapshot copies the tracker state for a pick record.
func (t *ColorTracker) Snapshot() ColorSnapshot {
	scores := make(map[string]float64, len(t.scores))
	for color, score := range t.scores {
		scores[color] = score
	}
	return ColorSnapshot{
		Scores:    scores,
		Primary:   t.primary,
		Secondary: t.secondary,
		Locked:    t.locked,
	}
}

// String renders the commitment like "WU" or "-" when unresolved.
func (t *ColorTracker) String() string {
	colors := t.ResolvedColors()
	if len(colors) == 0 {
		return "-"
	}
	return strings.Join(colors, "")
}
