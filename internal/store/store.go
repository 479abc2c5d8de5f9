// Package store persists trackers and their target history in SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/famdash/famdash/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when a tracker does not exist.
var ErrNotFound = errors.New("tracker not found")

// Store is the SQLite-backed tracker database.
type Store struct {
	db      *sql.DB
	version uint
	now     func() time.Time
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	version, err := migrateUp(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return &Store{db: db, version: version, now: time.Now}, nil
}

// SchemaVersion returns the migration version the database is at.
func (s *Store) SchemaVersion() uint {
	return s.version
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func amount(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// Count returns the number of trackers.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM trackers").Scan(&n)
	return n, err
}

// SeedIfEmpty inserts trackers when the database holds none. It reports
// whether anything was inserted.
func (s *Store) SeedIfEmpty(trackers []model.Tracker) (bool, error) {
	n, err := s.Count()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	now := stamp(s.now())
	for i, t := range trackers {
		kind, err := t.Kind.MarshalText()
		if err != nil {
			return false, fmt.Errorf("seeding %q: %w", t.Title, err)
		}
		id := t.ID
		if id == "" {
			id = uuid.NewString()
		}
		_, err = tx.Exec(`INSERT INTO trackers
			(id, title, kind, current_value, target, position, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, t.Title, string(kind), amount(t.Current), amount(t.Target), i, now,
		)
		if err != nil {
			return false, fmt.Errorf("seeding %q: %w", t.Title, err)
		}
	}
	return true, tx.Commit()
}

// Add inserts a new tracker at the end of the list and returns it with its ID.
func (s *Store) Add(t model.Tracker) (model.Tracker, error) {
	kind, err := t.Kind.MarshalText()
	if err != nil {
		return t, err
	}
	t.ID = uuid.NewString()
	t.UpdatedAt = s.now().UTC()
	_, err = s.db.Exec(`INSERT INTO trackers
		(id, title, kind, current_value, target, position, updated_at)
		VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM trackers), ?)`,
		t.ID, t.Title, string(kind), amount(t.Current), amount(t.Target), stamp(t.UpdatedAt),
	)
	if err != nil {
		return t, fmt.Errorf("adding %q: %w", t.Title, err)
	}
	return t, nil
}

// ListTrackers returns all trackers in display order.
func (s *Store) ListTrackers() ([]model.Tracker, error) {
	rows, err := s.db.Query(`SELECT id, title, kind, current_value, target, updated_at
		FROM trackers ORDER BY position, title`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Tracker
	for rows.Next() {
		t, err := scanTracker(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Get returns the tracker with the given ID.
func (s *Store) Get(id string) (model.Tracker, error) {
	row := s.db.QueryRow(`SELECT id, title, kind, current_value, target, updated_at
		FROM trackers WHERE id = ?`, id)
	t, err := scanTracker(row)
	if errors.Is(err, sql.ErrNoRows) {
		return t, fmt.Errorf("%w: id %s", ErrNotFound, id)
	}
	return t, err
}

// GetByTitle returns the tracker with the given title.
func (s *Store) GetByTitle(title string) (model.Tracker, error) {
	row := s.db.QueryRow(`SELECT id, title, kind, current_value, target, updated_at
		FROM trackers WHERE title = ?`, title)
	t, err := scanTracker(row)
	if errors.Is(err, sql.ErrNoRows) {
		return t, fmt.Errorf("%w: %q", ErrNotFound, title)
	}
	return t, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTracker(r scanner) (model.Tracker, error) {
	var t model.Tracker
	var kind, updated string
	var current, target decimal.Decimal
	if err := r.Scan(&t.ID, &t.Title, &kind, &current, &target, &updated); err != nil {
		return t, err
	}
	if err := t.Kind.UnmarshalText([]byte(kind)); err != nil {
		return t, fmt.Errorf("tracker %q: %w", t.Title, err)
	}
	t.Current = current.InexactFloat64()
	t.Target = target.InexactFloat64()
	t.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return t, nil
}

// SetCurrent stores a new current value.
func (s *Store) SetCurrent(id string, v float64) error {
	return s.update(id, "current_value", amount(v))
}

// SetTarget stores a new target and appends it to the tracker's history.
// Writing the target it already has records nothing.
func (s *Store) SetTarget(id string, v float64) error {
	t, err := s.Get(id)
	if err != nil {
		return err
	}
	if amount(t.Target).Equal(amount(v)) {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := stamp(s.now())
	if _, err := tx.Exec("UPDATE trackers SET target = ?, updated_at = ? WHERE id = ?", amount(v), now, id); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO target_changes (tracker_id, target, changed_at) VALUES (?, ?, ?)",
		id, amount(v), now); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) update(id, column string, v decimal.Decimal) error {
	res, err := s.db.Exec("UPDATE trackers SET "+column+" = ?, updated_at = ? WHERE id = ?", v, stamp(s.now()), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: id %s", ErrNotFound, id)
	}
	return nil
}

// Delete removes a tracker and its history.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM trackers WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: id %s", ErrNotFound, id)
	}
	return nil
}

// TargetHistory returns the most recent target changes for a tracker,
// oldest first. limit <= 0 returns all of them.
func (s *Store) TargetHistory(id string, limit int) ([]model.TargetChange, error) {
	q := `SELECT tracker_id, target, changed_at FROM (
		SELECT id, tracker_id, target, changed_at FROM target_changes
		WHERE tracker_id = ? ORDER BY id DESC`
	args := []any{id}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	q += ") ORDER BY id"

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.TargetChange
	for rows.Next() {
		var c model.TargetChange
		var target decimal.Decimal
		var changed string
		if err := rows.Scan(&c.TrackerID, &target, &changed); err != nil {
			return nil, err
		}
		c.Target = target.InexactFloat64()
		c.ChangedAt, _ = time.Parse(time.RFC3339Nano, changed)
		out = append(out, c)
	}
	return out, rows.Err()
}
