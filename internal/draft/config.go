package draft

import "fmt"

// Config holds the scoring weights for the pick engine.
type Config struct {
	QualityWeight        float64 `toml:"quality_weight"`
	ColorWeight          float64 `toml:"color_weight"`
	CurveWeight          float64 `toml:"curve_weight"`
	SynergyWeight        float64 `toml:"synergy_weight"`
	ReplaceabilityWeight float64 `toml:"replaceability_weight"`
	SideboardWeight      float64 `toml:"sideboard_weight"`

	// EarlyPickMultiplier scales the total score on the first three picks
	// of each pack.
	EarlyPickMultiplier float64 `toml:"early_pick_multiplier"`

	// Rounds is the number of packs in the draft.
	Rounds int `toml:"rounds"`

	// PackSize is the number of picks per pack.
	PackSize int `toml:"pack_size"`
}

// DefaultConfig returns the standard pick-engine weights.
func DefaultConfig() Config {
	return Config{
		QualityWeight:        1.0,
		ColorWeight:          0.8,
		CurveWeight:          0.6,
		SynergyWeight:        0.4,
		ReplaceabilityWeight: 0.3,
		SideboardWeight:      0.2,
		EarlyPickMultiplier:  1.2,
		Rounds:               3,
		PackSize:             15,
	}
}

// Validate rejects configurations the engine cannot run with. Called at
// session construction, before any picks occur.
func (c Config) Validate() error {
	for name, w := range map[string]float64{
		"quality_weight":        c.QualityWeight,
		"color_weight":          c.ColorWeight,
		"curve_weight":          c.CurveWeight,
		"synergy_weight":        c.SynergyWeight,
		"replaceability_weight": c.ReplaceabilityWeight,
		"sideboard_weight":      c.SideboardWeight,
	} {
		if w < 0 {
			return fmt.Errorf("%s cannot be negative: %v", name, w)
		}
	}
	if c.EarlyPickMultiplier <= 0 {
		return fmt.Errorf("early_pick_multiplier must be positive: %v", c.EarlyPickMultiplier)
	}
	if c.Rounds <= 0 {
		return fmt.Errorf("rounds must be positive: %d", c.Rounds)
	}
	if c.PackSize <= 0 {
		return fmt.Errorf("pack_size must be positive: %d", c.PackSize)
	}
	return nil
}

// DeckConfig holds the deck builder targets.
type DeckConfig struct {
	TargetCreatures    int `toml:"target_creatures"`
	TargetNonCreatures int `toml:"target_non_creatures"`
	TargetLands        int `toml:"target_lands"`
	MaindeckSize       int `toml:"maindeck_size"`
}

// DefaultDeckConfig returns the standard 40-card limited deck targets.
func DefaultDeckConfig() DeckConfig {
	return DeckConfig{
		TargetCreatures:    16,
		TargetNonCreatures: 7,
		TargetLands:        17,
		MaindeckSize:       40,
	}
}

// Validate rejects deck configurations the builder cannot honor.
func (c DeckConfig) Validate() error {
	if c.MaindeckSize <= 0 {
		return fmt.Errorf("maindeck_size must be positive: %d", c.MaindeckSize)
	}
	if c.TargetCreatures < 0 || c.TargetNonCreatures < 0 || c.TargetLands < 0 {
		return fmt.Errorf("deck targets cannot be negative: creatures=%d non_creatures=%d lands=%d",
			c.TargetCreatures, c.TargetNonCreatures, c.TargetLands)
	}
	if sum := c.TargetCreatures + c.TargetNonCreatures + c.TargetLands; sum != c.MaindeckSize {
		return fmt.Errorf("deck targets sum to %d, must equal maindeck size %d", sum, c.MaindeckSize)
	}
	return nil
}
