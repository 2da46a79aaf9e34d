package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run end reasons.
const (
	EndGameOver = "game_over"
	EndQuit     = "quit"
	EndTickCap  = "tick_cap" // headless run hit its tick budget
)

// Run is the result of one finished session. It records the outcome only
// and cannot be resumed.
type Run struct {
	ID        string
	GameID    string
	Seed      int64
	Stage     int // stage reached
	Ticks     uint64
	Scores    [2]int // per player slot
	Kills     [3]int // destroyed enemies per tier, all slots
	EndReason string
	Duration  time.Duration
	CreatedAt time.Time
}

// Total returns the combined score of both slots.
func (r Run) Total() int {
	return r.Scores[0] + r.Scores[1]
}

// SaveRun records a finished run and returns its ID. A run without an ID is
// given a fresh UUID.
func (s *Store) SaveRun(r Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.EndReason == "" {
		r.EndReason = EndGameOver
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (id, game_id, seed, stage, ticks, p1_score, p2_score,
		  kills_tier1, kills_tier2, kills_tier3, end_reason, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.GameID, r.Seed, r.Stage, int64(r.Ticks),
		r.Scores[0], r.Scores[1],
		r.Kills[0], r.Kills[1], r.Kills[2],
		r.EndReason, int64(r.Duration/time.Second),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r.ID, nil
}

const runColumns = `id, game_id, seed, stage, ticks, p1_score, p2_score,
		kills_tier1, kills_tier2, kills_tier3, end_reason, duration_secs, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var r Run
	var ticks, secs int64
	var createdAt any
	err := row.Scan(
		&r.ID, &r.GameID, &r.Seed, &r.Stage, &ticks,
		&r.Scores[0], &r.Scores[1],
		&r.Kills[0], &r.Kills[1], &r.Kills[2],
		&r.EndReason, &secs, &createdAt,
	)
	if err != nil {
		return Run{}, err
	}
	r.Ticks = uint64(ticks)
	r.Duration = time.Duration(secs) * time.Second
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// RunByID retrieves a run. Returns nil without error if it does not exist.
func (s *Store) RunByID(id string) (*Run, error) {
	r, err := scanRun(s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// RecentRuns retrieves the most recent runs, optionally for one game only.
func (s *Store) RecentRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows *sql.Rows
	var err error
	if gameID == "" {
		rows, err = s.db.Query(
			`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`,
			limit,
		)
	} else {
		rows, err = s.db.Query(
			`SELECT `+runColumns+` FROM runs WHERE game_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`,
			gameID, limit,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// BestStage returns the furthest stage reached in the given game, or 0.
func (s *Store) BestStage(gameID string) (int, error) {
	var stage sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(stage) FROM runs WHERE game_id = ?", gameID).Scan(&stage); err != nil {
		return 0, fmt.Errorf("storage: cannot query best stage: %w", err)
	}
	return int(stage.Int64), nil
}
