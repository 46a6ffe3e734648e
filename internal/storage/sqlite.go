// Package storage provides SQLite-based persistence for duel history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for duel history.
type Store struct {
	db *sql.DB
}

// End reasons recorded with a duel.
const (
	EndCompleted = "completed" // a player reached the win score
	EndQuit      = "quit"      // the session ended first
)

// DuelResult represents one finished or abandoned duel.
type DuelResult struct {
	ID           int64
	DuelID       string
	Player1Color string
	Player2Color string
	Score1       int
	Score2       int
	Winner       string // color of the winner, empty if tied or unfinished
	Rounds       int
	Shots        int
	EndReason    string
	Duration     int // seconds
	CreatedAt    time.Time
}

// Standing aggregates the history of one player color.
type Standing struct {
	Color  string
	Duels  int
	Wins   int
	Points int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS duels (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			duel_id TEXT NOT NULL UNIQUE,
			player1_color TEXT NOT NULL,
			player2_color TEXT NOT NULL,
			score1 INTEGER NOT NULL DEFAULT 0,
			score2 INTEGER NOT NULL DEFAULT 0,
			winner TEXT NOT NULL DEFAULT '',
			rounds INTEGER NOT NULL DEFAULT 1,
			shots INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_duels_created ON duels(created_at DESC);

		CREATE TABLE IF NOT EXISTS shots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			duel_id TEXT NOT NULL,
			round INTEGER NOT NULL,
			shooter TEXT NOT NULL,
			target TEXT NOT NULL,
			angle REAL NOT NULL,
			velocity REAL NOT NULL,
			wind REAL NOT NULL,
			landing_x REAL NOT NULL,
			distance REAL NOT NULL,
			hit INTEGER NOT NULL,
			steps INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_shots_duel_id ON shots(duel_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveDuel records the outcome of a duel.
// Saving the same DuelID again updates the stored row, so a duel can be
// written when it is won and again when the session ends.
func (s *Store) SaveDuel(result DuelResult) (int64, error) {
	if result.DuelID == "" {
		return 0, errors.New("storage: duel ID is required")
	}

	_, err := s.db.Exec(
		`INSERT INTO duels
		 (duel_id, player1_color, player2_color, score1, score2, winner, rounds, shots, end_reason, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(duel_id) DO UPDATE SET
		   score1 = excluded.score1,
		   score2 = excluded.score2,
		   winner = excluded.winner,
		   rounds = excluded.rounds,
		   shots = excluded.shots,
		   end_reason = excluded.end_reason,
		   duration_secs = excluded.duration_secs`,
		result.DuelID,
		result.Player1Color,
		result.Player2Color,
		result.Score1,
		result.Score2,
		result.Winner,
		result.Rounds,
		result.Shots,
		result.EndReason,
		result.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save duel: %w", err)
	}

	// LastInsertId is not reliable after an upsert that updated.
	var id int64
	if err := s.db.QueryRow("SELECT id FROM duels WHERE duel_id = ?", result.DuelID).Scan(&id); err != nil {
		return 0, fmt.Errorf("storage: cannot get duel ID: %w", err)
	}

	return id, nil
}

const duelColumns = `id, duel_id, player1_color, player2_color, score1, score2,
		        winner, rounds, shots, end_reason, duration_secs, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDuel(row rowScanner) (DuelResult, error) {
	var result DuelResult
	var createdAt any
	err := row.Scan(
		&result.ID,
		&result.DuelID,
		&result.Player1Color,
		&result.Player2Color,
		&result.Score1,
		&result.Score2,
		&result.Winner,
		&result.Rounds,
		&result.Shots,
		&result.EndReason,
		&result.Duration,
		&createdAt,
	)
	if err != nil {
		return result, err
	}
	result.CreatedAt = parseTime(createdAt)
	return result, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// DuelByID retrieves a duel by its duel ID. Returns nil if not found.
func (s *Store) DuelByID(duelID string) (*DuelResult, error) {
	result, err := scanDuel(s.db.QueryRow(
		`SELECT `+duelColumns+`
		 FROM duels
		 WHERE duel_id = ?`,
		duelID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query duel: %w", err)
	}
	return &result, nil
}

// RecentDuels retrieves the most recent duels, newest first.
func (s *Store) RecentDuels(limit int) ([]DuelResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+duelColumns+`
		 FROM duels
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query duels: %w", err)
	}
	defer rows.Close()

	var results []DuelResult
	for rows.Next() {
		result, err := scanDuel(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// Standings aggregates duels, wins and points per player color.
// Ordered by wins, then points, then color.
func (s *Store) Standings() ([]Standing, error) {
	rows, err := s.db.Query(
		`SELECT color, COUNT(*), SUM(win), SUM(points)
		 FROM (
		   SELECT player1_color AS color,
		          CASE WHEN winner = player1_color THEN 1 ELSE 0 END AS win,
		          score1 AS points
		   FROM duels
		   UNION ALL
		   SELECT player2_color,
		          CASE WHEN winner = player2_color THEN 1 ELSE 0 END,
		          score2
		   FROM duels
		 )
		 GROUP BY color
		 ORDER BY SUM(win) DESC, SUM(points) DESC, color`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query standings: %w", err)
	}
	defer rows.Close()

	var standings []Standing
	for rows.Next() {
		var st Standing
		if err := rows.Scan(&st.Color, &st.Duels, &st.Wins, &st.Points); err != nil {
			return nil, fmt.Errorf("storage: cannot scan standings row: %w", err)
		}
		standings = append(standings, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return standings, nil
}

// ClearHistory deletes all duels and shots.
func (s *Store) ClearHistory() error {
	if _, err := s.db.Exec("DELETE FROM shots"); err != nil {
		return fmt.Errorf("storage: cannot clear shots: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM duels"); err != nil {
		return fmt.Errorf("storage: cannot clear duels: %w", err)
	}
	return nil
}
