// internal/store/puzzles.go
//
// SQLite-backed puzzle catalog and results.
// Responsibilities:
//   - Persist puzzles as their full JSON document, with language, size
//     and published flag broken out for querying.
//   - Serve the daily rotation: count of published puzzles and stable
//     offset access ordered by publication time.
//   - Record per-player results (one row per player per puzzle) and
//     answer leaderboard queries.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/noam-r/magic-four-squared/internal/puzzle"
)

// PuzzleStore wraps the puzzles and results tables.
type PuzzleStore struct {
	db *sql.DB
}

// NewPuzzleStore constructs a PuzzleStore over an opened database.
func NewPuzzleStore(db *sql.DB) *PuzzleStore {
	return &PuzzleStore{db: db}
}

// Save inserts a puzzle. The full document is stored as JSON; published
// controls whether the daily rotation may pick it.
func (s *PuzzleStore) Save(ctx context.Context, p *puzzle.Puzzle, published bool) error {
	if err := p.Validate(); err != nil {
		return err
	}
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("store: marshal puzzle %s: %w", p.ID, err)
	}
	pub := 0
	if published {
		pub = 1
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO puzzles (id, language, size, document, published, created_at)
        VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, string(p.Language), p.Size, string(doc), pub, p.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("store: insert puzzle %s: %w", p.ID, err)
	}
	return nil
}

// Get loads one puzzle by ID. Returns ErrNotFound if missing.
func (s *PuzzleStore) Get(ctx context.Context, id string) (*puzzle.Puzzle, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM puzzles WHERE id=?`, id,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return unmarshalPuzzle(doc)
}

// CountPublished returns how many puzzles the daily rotation can draw
// from.
func (s *PuzzleStore) CountPublished(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM puzzles WHERE published=1`,
	).Scan(&n)
	return n, err
}

// PublishedAt returns the published puzzle at offset i, ordered by
// creation time then ID. The order is stable, which is what lets a
// date-derived index land on the same puzzle everywhere.
func (s *PuzzleStore) PublishedAt(ctx context.Context, i int) (*puzzle.Puzzle, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `
        SELECT document FROM puzzles
        WHERE published=1
        ORDER BY created_at ASC, id ASC
        LIMIT 1 OFFSET ?`, i,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return unmarshalPuzzle(doc)
}

// PuzzleSummary is one catalog line: identity without the document, for
// listings that must not ship every solution in one response.
type PuzzleSummary struct {
	ID        string    `json:"id"`
	Language  string    `json:"language"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListPublished returns summaries of all published puzzles in rotation
// order. The slice index of each entry is exactly the offset PublishedAt
// resolves, so a reader can line the list up against upcoming dates.
func (s *PuzzleStore) ListPublished(ctx context.Context) ([]PuzzleSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, language, size, created_at FROM puzzles
        WHERE published=1
        ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PuzzleSummary, 0, 16)
	for rows.Next() {
		var ps PuzzleSummary
		var created string
		if err := rows.Scan(&ps.ID, &ps.Language, &ps.Size, &created); err != nil {
			return nil, err
		}
		if ps.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
			return nil, fmt.Errorf("store: bad created_at on %s: %w", ps.ID, err)
		}
		out = append(out, ps)
	}
	return out, rows.Err()
}

func unmarshalPuzzle(doc string) (*puzzle.Puzzle, error) {
	var p puzzle.Puzzle
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("store: parse puzzle document: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Result is one player's finished (or abandoned) run at a puzzle.
type Result struct {
	PuzzleID  string `json:"puzzleId"`
	PlayerID  string `json:"playerId"`
	Solved    bool   `json:"solved"`
	Checks    int    `json:"checks"`
	ElapsedMs int    `json:"elapsedMs"`
}

// InsertResult records a result. One row per player per puzzle; repeats
// are ignored so the first finish stands.
func (s *PuzzleStore) InsertResult(ctx context.Context, r Result) error {
	solved := 0
	if r.Solved {
		solved = 1
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO results
            (puzzle_id, player_id, solved, checks, elapsed_ms)
        VALUES (?, ?, ?, ?, ?)`,
		r.PuzzleID, r.PlayerID, solved, r.Checks, r.ElapsedMs,
	)
	return err
}

// LeaderboardRow is one line of a puzzle leaderboard.
type LeaderboardRow struct {
	PlayerID  string `json:"playerId"`
	Checks    int    `json:"checks"`
	ElapsedMs int    `json:"elapsedMs"`
}

// Leaderboard returns the fastest solves for a puzzle, ordered by
// elapsed time, then checks, then arrival.
func (s *PuzzleStore) Leaderboard(ctx context.Context, puzzleID string, limit int) ([]LeaderboardRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT player_id, checks, elapsed_ms
        FROM results
        WHERE puzzle_id=? AND solved=1
        ORDER BY elapsed_ms ASC, checks ASC, created_at ASC
        LIMIT ?`, puzzleID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LeaderboardRow, 0, limit)
	for rows.Next() {
		var r LeaderboardRow
		if err := rows.Scan(&r.PlayerID, &r.Checks, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
