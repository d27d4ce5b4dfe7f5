package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/draftforge/draftforge/internal/draft"
)

// Service provides draft analytics persistence on top of an open DB.
type Service struct {
	db *DB
}

// NewService creates a storage service.
func NewService(db *DB) *Service {
	return &Service{db: db}
}

// SessionRecord describes one persisted draft session.
type SessionRecord struct {
	ID          string
	SetCode     string
	Rounds      int
	PackSize    int
	Colors      string
	StartedAt   time.Time
	CompletedAt *time.Time
}

// SaveSession inserts or updates a draft session row.
func (s *Service) SaveSession(ctx context.Context, rec *SessionRecord) error {
	query := `
		INSERT INTO draft_sessions (id, set_code, rounds, pack_size, colors, started_at, completed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			colors = excluded.colors,
			completed_at = excluded.completed_at
	`

	_, err := s.db.Conn().ExecContext(ctx, query,
		rec.ID,
		rec.SetCode,
		rec.Rounds,
		rec.PackSize,
		rec.Colors,
		rec.StartedAt,
		rec.CompletedAt,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("save draft session: %w", err)
	}

	return nil
}

// SavePickRecords stores all pick records for a session in one transaction.
func (s *Service) SavePickRecords(ctx context.Context, sessionID string, records []draft.PickRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Conn().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op once committed
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO pick_records (session_id, pack_number, pick_number, chosen_card_id, chosen_card_name, color_state, ranked_evaluations, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id, pack_number, pick_number) DO UPDATE SET
			chosen_card_id = excluded.chosen_card_id,
			chosen_card_name = excluded.chosen_card_name,
			color_state = excluded.color_state,
			ranked_evaluations = excluded.ranked_evaluations
	`)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		rankedJSON, err := json.Marshal(record.Ranked)
		if err != nil {
			return fmt.Errorf("marshal ranked evaluations: %w", err)
		}

		_, err = stmt.ExecContext(ctx,
			sessionID,
			record.PackNumber,
			record.PickNumber,
			record.Chosen.ID,
			record.Chosen.Name,
			colorStateString(record.Colors),
			string(rankedJSON),
			time.Now(),
		)
		if err != nil {
			return fmt.Errorf("save pick record %d-%d: %w", record.PackNumber, record.PickNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// StoredPick is one pick record row as read back from the database.
type StoredPick struct {
	PackNumber     int
	PickNumber     int
	ChosenCardID   int
	ChosenCardName string
	ColorState     string
	Ranked         []draft.Evaluation
}

// GetPickRecords retrieves all picks for a session in draft order.
func (s *Service) GetPickRecords(ctx context.Context, sessionID string) ([]StoredPick, error) {
	query := `
		SELECT pack_number, pick_number, chosen_card_id, chosen_card_name, color_state, ranked_evaluations
		FROM pick_records
		WHERE session_id = ?
		ORDER BY pack_number, pick_number
	`

	rows, err := s.db.Conn().QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query pick records: %w", err)
	}
	defer rows.Close()

	var picks []StoredPick
	for rows.Next() {
		var pick StoredPick
		var rankedJSON string
		if err := rows.Scan(&pick.PackNumber, &pick.PickNumber, &pick.ChosenCardID,
			&pick.ChosenCardName, &pick.ColorState, &rankedJSON); err != nil {
			return nil, fmt.Errorf("scan pick record: %w", err)
		}
		if err := json.Unmarshal([]byte(rankedJSON), &pick.Ranked); err != nil {
			return nil, fmt.Errorf("unmarshal ranked evaluations: %w", err)
		}
		picks = append(picks, pick)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pick records: %w", err)
	}

	return picks, nil
}

// SaveDeck stores the built deck for a session.
func (s *Service) SaveDeck(ctx context.Context, sessionID string, deck *draft.Deck) error {
	maindeckJSON, err := json.Marshal(deck.Maindeck)
	if err != nil {
		return fmt.Errorf("marshal maindeck: %w", err)
	}
	sideboardJSON, err := json.Marshal(deck.Sideboard)
	if err != nil {
		return fmt.Errorf("marshal sideboard: %w", err)
	}

	query := `
		INSERT INTO decks (session_id, colors, maindeck, sideboard, shortfall_creatures, shortfall_non_creatures, shortfall_lands, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			colors = excluded.colors,
			maindeck = excluded.maindeck,
			sideboard = excluded.sideboard,
			shortfall_creatures = excluded.shortfall_creatures,
			shortfall_non_creatures = excluded.shortfall_non_creatures,
			shortfall_lands = excluded.shortfall_lands
	`

	_, err = s.db.Conn().ExecContext(ctx, query,
		sessionID,
		strings.Join(deck.Colors, ""),
		string(maindeckJSON),
		string(sideboardJSON),
		deck.Shortfall.Creatures,
		deck.Shortfall.NonCreatures,
		deck.Shortfall.Lands,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("save deck: %w", err)
	}

	return nil
}

// GetSession retrieves one session row, or sql.ErrNoRows if absent.
func (s *Service) GetSession(ctx context.Context, sessionID string) (*SessionRecord, error) {
	query := `
		SELECT id, set_code, rounds, pack_size, colors, started_at, completed_at
		FROM draft_sessions
		WHERE id = ?
	`

	var rec SessionRecord
	var completedAt sql.NullTime
	err := s.db.Conn().QueryRowContext(ctx, query, sessionID).Scan(
		&rec.ID, &rec.SetCode, &rec.Rounds, &rec.PackSize, &rec.Colors,
		&rec.StartedAt, &completedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get draft session: %w", err)
	}
	if completedAt.Valid {
		rec.CompletedAt = &completedAt.Time
	}

	return &rec, nil
}

// colorStateString renders a color snapshot like "WU" or "-" for export.
func colorStateString(snapshot draft.ColorSnapshot) string {
	if snapshot.Primary == "" {
		return "-"
	}
	state := snapshot.Primary
	if snapshot.Secondary != "" {
		state += snapshot.Secondary
	}
	return state
}
