// Package export renders the ordered pick-record log of a draft session
// into JSON and CSV for external analytics tooling.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/draftforge/draftforge/internal/draft"
)

// DraftExport is the JSON export shape for one draft session.
type DraftExport struct {
	DraftID    string        `json:"draft_id"`
	SetCode    string        `json:"set_code,omitempty"`
	Colors     string        `json:"colors"`
	ExportedAt string        `json:"exported_at"`
	Picks      []PickData    `json:"picks"`
	Packs      []PackSummary `json:"packs,omitempty"`
	Maindeck   []int         `json:"maindeck,omitempty"`
	Sideboard  []int         `json:"sideboard,omitempty"`
}

// PackSummary aggregates pick quality over one pack.
type PackSummary struct {
	PackNumber int     `json:"pack_number"`
	Picks      int     `json:"picks"`
	AvgQuality float64 `json:"avg_quality"`
}

// PickData is one pick in the export, with its full ranked evaluation list.
type PickData struct {
	PackNumber int                `json:"pack_number"`
	PickNumber int                `json:"pick_number"`
	ColorState string             `json:"color_state"`
	Pick       int                `json:"pick"`      // chosen card ID
	PickName   string             `json:"pick_name"` // chosen card name
	Ranked     []draft.Evaluation `json:"ranked"`
}

// BuildExport assembles the export document from a finished session.
func BuildExport(draftID, setCode string, records []draft.PickRecord, deck *draft.Deck) *DraftExport {
	out := &DraftExport{
		DraftID:    draftID,
		SetCode:    setCode,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Picks:      make([]PickData, 0, len(records)),
	}

	for _, record := range records {
		out.Picks = append(out.Picks, PickData{
			PackNumber: record.PackNumber,
			PickNumber: record.PickNumber,
			ColorState: colorState(record.Colors),
			Pick:       record.Chosen.ID,
			PickName:   record.Chosen.Name,
			Ranked:     record.Ranked,
		})
	}

	out.Packs = summarizePacks(records)

	if deck != nil {
		for _, color := range deck.Colors {
			out.Colors += color
		}
		for _, card := range deck.Maindeck {
			out.Maindeck = append(out.Maindeck, card.ID)
		}
		for _, card := range deck.Sideboard {
			out.Sideboard = append(out.Sideboard, card.ID)
		}
	}

	return out
}

// WriteJSON writes the export document to path as indented JSON.
func WriteJSON(export *DraftExport, path string) error {
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal draft export: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write draft export: %w", err)
	}
	return nil
}

// WriteCSV writes one row per pick: pack, pick, color state, chosen card and
// the top-ranked alternative with scores.
func WriteCSV(export *DraftExport, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv export: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	header := []string{"pack", "pick", "color_state", "chosen", "chosen_score", "runner_up", "runner_up_score"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, pd := range export.Picks {
		row := []string{
			strconv.Itoa(pd.PackNumber),
			strconv.Itoa(pd.PickNumber),
			pd.ColorState,
			pd.PickName,
			"",
			"",
			"",
		}
		if len(pd.Ranked) > 0 {
			row[4] = formatScore(pd.Ranked[0].Total)
		}
		if len(pd.Ranked) > 1 {
			row[5] = pd.Ranked[1].Card.Name
			row[6] = formatScore(pd.Ranked[1].Total)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv export: %w", err)
	}
	return nil
}

// summarizePacks computes the average chosen-card quality per pack. Records
// arrive in pick order, so packs come out in order too.
func summarizePacks(records []draft.PickRecord) []PackSummary {
	var packs []PackSummary
	for _, record := range records {
		if len(record.Ranked) == 0 {
			continue
		}
		if len(packs) == 0 || packs[len(packs)-1].PackNumber != record.PackNumber {
			packs = append(packs, PackSummary{PackNumber: record.PackNumber})
		}
		p := &packs[len(packs)-1]
		p.AvgQuality = (p.AvgQuality*float64(p.Picks) + record.Ranked[0].Quality) / float64(p.Picks+1)
		p.Picks++
	}
	return packs
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 3, 64)
}

func colorState(snapshot draft.ColorSnapshot) string {
	if snapshot.Primary == "" {
		return "-"
	}
	state := snapshot.Primary
	if snapshot.Secondary != "" {
		state += snapshot.Secondary
	}
	return state
}
