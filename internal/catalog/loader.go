package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// rawCard matches the on-disk catalog card shape. Power and toughness are
// strings because variable values like "*" appear in card data.
type rawCard struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Types          []string `json:"types"`
	Subtypes       []string `json:"subtypes"`
	Colors         []string `json:"colors"`
	ManaCost       string   `json:"mana_cost"`
	ManaValue      int      `json:"mana_value"`
	Rarity         string   `json:"rarity"`
	OracleText     string   `json:"oracle_text"`
	Power          string   `json:"power"`
	Toughness      string   `json:"toughness"`
	ProducedColors []string `json:"produced_colors"`
}

// LoadFile reads a JSON card catalog and runs the ingestion tagging pass on
// every card.
func LoadFile(path string) ([]Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var raw []rawCard
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}

	cards := make([]Card, 0, len(raw))
	for i, rc := range raw {
		card, err := buildCard(rc)
		if err != nil {
			return nil, fmt.Errorf("catalog card %d: %w", i, err)
		}
		cards = append(cards, card)
	}

	return cards, nil
}

// packFile matches the on-disk pack fixture shape: an ordered list of packs,
// each an ordered list of cards.
type packFile struct {
	Packs [][]rawCard `json:"packs"`
}

// LoadPacks reads a JSON pack fixture file. Each pack preserves its card
// order, which the pick engine uses for deterministic tie breaking.
func LoadPacks(path string) ([][]Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pack file: %w", err)
	}

	var pf packFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse pack file: %w", err)
	}

	packs := make([][]Card, 0, len(pf.Packs))
	for pi, rawPack := range pf.Packs {
		pack := make([]Card, 0, len(rawPack))
		for ci, rc := range rawPack {
			card, err := buildCard(rc)
			if err != nil {
				return nil, fmt.Errorf("pack %d card %d: %w", pi+1, ci+1, err)
			}
			pack = append(pack, card)
		}
		packs = append(packs, pack)
	}

	return packs, nil
}

// buildCard converts a raw catalog record into an engine Card, deriving
// ability tags and parsing power/toughness. Variable values like "*" yield
// nil power/toughness so scoring falls back to the keyword-only branch.
func buildCard(rc rawCard) (Card, error) {
	if rc.Name == "" {
		return Card{}, fmt.Errorf("card has no name")
	}
	if rc.ManaValue < 0 {
		return Card{}, fmt.Errorf("card %q has negative mana value %d", rc.Name, rc.ManaValue)
	}

	types := make([]CardType, 0, len(rc.Types))
	for _, t := range rc.Types {
		types = append(types, CardType(t))
	}

	card := Card{
		ID:             rc.ID,
		Name:           rc.Name,
		Types:          types,
		Subtypes:       rc.Subtypes,
		Colors:         rc.Colors,
		ManaCost:       rc.ManaCost,
		ManaValue:      rc.ManaValue,
		Rarity:         normalizeRarity(rc.Rarity),
		Tags:           TagOracleText(rc.OracleText),
		ProducedColors: rc.ProducedColors,
		Power:          parseStat(rc.Power),
		Toughness:      parseStat(rc.Toughness),
	}

	if len(card.Colors) == 0 && card.ManaCost != "" {
		card.Colors = ParseManaCost(card.ManaCost)
	}

	return card, nil
}

// parseStat parses a power/toughness value. Non-numeric values ("*", "1+*",
// empty) return nil.
func parseStat(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// normalizeRarity maps loose rarity strings onto the known values. Unknown
// strings fall back to common so scoring stays conservative.
func normalizeRarity(s string) Rarity {
	switch Rarity(s) {
	case RarityCommon, RarityUncommon, RarityRare, RarityMythic:
		return Rarity(s)
	}
	switch s {
	case "Common":
		return RarityCommon
	case "Uncommon":
		return RarityUncommon
	case "Rare":
		return RarityRare
	case "Mythic", "mythic rare", "Mythic Rare":
		return RarityMythic
	}
	return RarityCommon
}
