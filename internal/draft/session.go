package draft

import (
	"errors"
	"fmt"
	"sort"

	"github.com/draftforge/draftforge/internal/catalog"
)

// State is the session lifecycle state. Pick drives the machine through
// Evaluating and Picked internally; between calls a session sits in
// AwaitingPack until the configured rounds are exhausted.
type State string

const (
	StateAwaitingPack  State = "AwaitingPack"
	StateEvaluating    State = "Evaluating"
	StatePicked        State = "Picked"
	StatePackExhausted State = "PackExhausted"
	StateComplete      State = "Complete"
)

// ErrNoPick is returned for an empty pack. The session state is left fully
// unchanged, so a skipped or timed-out pack is a safe no-op.
var ErrNoPick = errors.New("no pick: pack is empty")

// ErrDraftComplete is returned when Pick is called after the final round.
var ErrDraftComplete = errors.New("draft is complete")

// Evaluation is the scored breakdown for one candidate card in a pack.
type Evaluation struct {
	Card           catalog.Card `json:"card"`
	Quality        float64      `json:"quality"`
	ColorBonus     float64      `json:"color_bonus"`
	CurveBonus     float64      `json:"curve_bonus"`
	Synergy        float64      `json:"synergy"`
	Replaceability float64      `json:"replaceability"`
	SideboardValue float64      `json:"sideboard_value"`
	Total          float64      `json:"total"`
}

// PickResult is returned for every successful pick.
type PickResult struct {
	Card   catalog.Card
	Ranked []Evaluation // descending by total, pack order on ties
}

// PickRecord is the immutable analytics record of one pick. The engine never
// reads these back; they exist for export and persistence.
type PickRecord struct {
	PackNumber int           `json:"pack_number"`
	PickNumber int           `json:"pick_number"`
	Ranked     []Evaluation  `json:"ranked"`
	Chosen     catalog.Card  `json:"chosen"`
	Colors     ColorSnapshot `json:"colors"` // state before the pick committed
}

// Session owns all mutable state for one drafting agent: the pool, the three
// trackers and the pack/pick counters. Sessions are not safe for concurrent
// use and must not be shared between agents.
type Session struct {
	config Config

	packIndex int
	pickIndex int

	pool    []catalog.Card
	colors  *ColorTracker
	curve   *CurveTracker
	synergy *SynergyTracker
	records []PickRecord

	state State
}

// NewSession creates a session in AwaitingPack with validated configuration.
func NewSession(config Config) (*Session, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid draft config: %w", err)
	}
	return &Session{
		config:    config,
		packIndex: 1,
		pickIndex: 1,
		colors:    NewColorTracker(),
		curve:     NewCurveTracker(),
		synergy:   NewSynergyTracker(),
		state:     StateAwaitingPack,
	}, nil
}

// Pick scores every candidate in the pack, selects the best one and commits
// it: pool append, all tracker updates, the pick record and the counter
// advance happen as one unit. An empty pack returns ErrNoPick and leaves the
// session untouched.
func (s *Session) Pick(pack []catalog.Card) (*PickResult, error) {
	if s.state == StateComplete {
		return nil, ErrDraftComplete
	}
	if len(pack) == 0 {
		return nil, ErrNoPick
	}

	s.state = StateEvaluating

	ranked := s.evaluate(pack)

	best := 0
	for i := 1; i < len(ranked); i++ {
		// Strict greater keeps the first occurrence on ties.
		if ranked[i].Total > ranked[best].Total {
			best = i
		}
	}
	chosen := ranked[best].Card

	sortedRanked := make([]Evaluation, len(ranked))
	copy(sortedRanked, ranked)
	sort.SliceStable(sortedRanked, func(i, j int) bool {
		return sortedRanked[i].Total > sortedRanked[j].Total
	})

	s.commit(chosen, sortedRanked)

	return &PickResult{Card: chosen, Ranked: sortedRanked}, nil
}

// evaluate scores each candidate in pack order.
func (s *Session) evaluate(pack []catalog.Card) []Evaluation {
	ordinal := s.pickOrdinal()
	early := s.pickIndex <= 3

	ranked := make([]Evaluation, 0, len(pack))
	for _, card := range pack {
		ev := Evaluation{
			Card:           card,
			Quality:        ScoreQuality(card),
			ColorBonus:     s.colors.Bonus(card, ordinal),
			CurveBonus:     s.curve.Bonus(card),
			Synergy:        s.synergy.Score(card),
			Replaceability: replaceability(card),
			SideboardValue: sideboardValue(card),
		}

		total := ev.Quality*s.config.QualityWeight +
			ev.ColorBonus*s.config.ColorWeight +
			ev.CurveBonus*s.config.CurveWeight +
			ev.Synergy*s.config.SynergyWeight +
			ev.Replaceability*s.config.ReplaceabilityWeight +
			ev.SideboardValue*s.config.SideboardWeight

		if early {
			total *= s.config.EarlyPickMultiplier
		}

		ev.Total = total
		ranked = append(ranked, ev)
	}
	return ranked
}

// commit applies the pick as one logical unit: pool, trackers, record and
// counters all advance together so no partial state is ever observable.
func (s *Session) commit(chosen catalog.Card, ranked []Evaluation) {
	s.state = StatePicked

	record := PickRecord{
		PackNumber: s.packIndex,
		PickNumber: s.pickIndex,
		Ranked:     ranked,
		Chosen:     chosen,
		Colors:     s.colors.Snapshot(),
	}

	ordinal := s.pickOrdinal()
	s.pool = append(s.pool, chosen)
	s.colors.Update(chosen, ordinal)
	s.curve.Add(chosen)
	s.synergy.Add(chosen)
	s.records = append(s.records, record)

	s.pickIndex++
	if s.pickIndex > s.config.PackSize {
		s.state = StatePackExhausted
		s.pickIndex = 1
		s.packIndex++
		if s.packIndex > s.config.Rounds {
			s.state = StateComplete
			return
		}
	}
	s.state = StateAwaitingPack
}

// pickOrdinal is the overall 1-based pick number across the whole draft,
// used for color-commitment weighting and lock-in.
func (s *Session) pickOrdinal() int {
	return len(s.pool) + 1
}

// replaceability rewards cards that are hard to replace later in the draft.
func replaceability(card catalog.Card) float64 {
	switch {
	case card.Rarity == catalog.RarityMythic:
		return 1.0
	case card.Rarity == catalog.RarityRare:
		return 0.8
	case card.HasTag(catalog.TagRemoval) || card.HasTag(catalog.TagRemovalExile):
		return 0.7
	case card.IsCreature():
		return 0.3
	default:
		return 0.5
	}
}

// sideboardValue rewards narrow hate cards that earn a slot even off-plan.
func sideboardValue(card catalog.Card) float64 {
	var value float64
	if card.HasTag(catalog.TagArtifactRemoval) || card.HasTag(catalog.TagEnchantmentRemoval) {
		value += 0.8
	}
	if card.HasTag(catalog.TagProtection) {
		value += 0.5
	}
	if card.HasTag(catalog.TagGraveyardHate) {
		value += 0.6
	}
	return value
}

// Pool returns the picked cards in pick order.
func (s *Session) Pool() []catalog.Card { return s.pool }

// Records returns the ordered pick records for analytics export.
func (s *Session) Records() []PickRecord { return s.records }

// Colors exposes the color tracker for deck building and reporting.
func (s *Session) Colors() *ColorTracker { return s.colors }

// Curve exposes the mana-curve histogram for reporting.
func (s *Session) Curve() *CurveTracker { return s.curve }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// PackIndex returns the 1-based current pack number.
func (s *Session) PackIndex() int { return s.packIndex }

// PickIndex returns the 1-based pick number within the current pack.
func (s *Session) PickIndex() int { return s.pickIndex }

// Complete reports whether all configured rounds have been drafted.
func (s *Session) Complete() bool { return s.state == StateComplete }
