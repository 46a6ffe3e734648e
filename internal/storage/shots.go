package storage

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/artillery/internal/core"
)

// ShotEntry is a stored shot with its duel and timestamp.
type ShotEntry struct {
	ID     int64
	DuelID string
	core.ShotRecord
	CreatedAt time.Time
}

// SaveShot records one resolved shot for the given duel.
// Returns the ID of the inserted record.
func (s *Store) SaveShot(duelID string, rec core.ShotRecord) (int64, error) {
	hit := 0
	if rec.Hit {
		hit = 1
	}

	res, err := s.db.Exec(
		`INSERT INTO shots
		 (duel_id, round, shooter, target, angle, velocity, wind, landing_x, distance, hit, steps)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		duelID,
		rec.Round,
		rec.Shooter,
		rec.Target,
		rec.Angle,
		rec.Velocity,
		rec.Wind,
		rec.LandingX,
		rec.Distance,
		hit,
		rec.Steps,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save shot: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// ShotsForDuel retrieves every shot of a duel in firing order.
func (s *Store) ShotsForDuel(duelID string) ([]ShotEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, duel_id, round, shooter, target, angle, velocity, wind,
		        landing_x, distance, hit, steps, created_at
		 FROM shots
		 WHERE duel_id = ?
		 ORDER BY id`,
		duelID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query shots: %w", err)
	}
	defer rows.Close()

	var entries []ShotEntry
	for rows.Next() {
		var e ShotEntry
		var hit int
		var createdAt any
		if err := rows.Scan(
			&e.ID,
			&e.DuelID,
			&e.Round,
			&e.Shooter,
			&e.Target,
			&e.Angle,
			&e.Velocity,
			&e.Wind,
			&e.LandingX,
			&e.Distance,
			&hit,
			&e.Steps,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Hit = hit != 0
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DuelRecorder binds a duel ID to the store so games can report shots
// without knowing about storage.
type DuelRecorder struct {
	store  *Store
	duelID string
	saved  int
	err    error
}

// Recorder returns a shot recorder for the given duel.
func (s *Store) Recorder(duelID string) *DuelRecorder {
	return &DuelRecorder{store: s, duelID: duelID}
}

// RecordShot implements core.ShotRecorder.
// Failures are logged and the first one is kept for Err.
func (r *DuelRecorder) RecordShot(rec core.ShotRecord) {
	if _, err := r.store.SaveShot(r.duelID, rec); err != nil {
		log.Warn("cannot record shot", "duel", r.duelID, "round", rec.Round, "err", err)
		if r.err == nil {
			r.err = err
		}
		return
	}
	r.saved++
}

// DuelID returns the duel the recorder writes to.
func (r *DuelRecorder) DuelID() string { return r.duelID }

// Saved returns how many shots were written.
func (r *DuelRecorder) Saved() int { return r.saved }

// Err returns the first write failure, if any.
func (r *DuelRecorder) Err() error { return r.err }

// Ensure DuelRecorder implements ShotRecorder
var _ core.ShotRecorder = (*DuelRecorder)(nil)
