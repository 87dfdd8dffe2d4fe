package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ziadkadry99/sketchbook/internal/db"
)

// ErrNotFound is returned by Get for unknown ids.
var ErrNotFound = errors.New("event not found")

// Store provides persistence for navigation events.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Record inserts a new event. If ev.ID is empty a UUID is generated.
func (s *Store) Record(ctx context.Context, ev Event) error {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO navigation_events (id, session_id, kind, direction, from_index, to_index, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.SessionID, string(ev.Kind), ev.Direction, ev.From, ev.To,
		ev.CreatedAt.UTC().Format(time.DateTime),
	)
	if err != nil {
		return fmt.Errorf("inserting navigation event: %w", err)
	}
	return nil
}

// Get retrieves a single event.
func (s *Store) Get(ctx context.Context, id string) (*Event, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, session_id, kind, direction, from_index, to_index, created_at
		FROM navigation_events WHERE id = ?`, id)
	ev, err := scanInto(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return ev, err
}

// QueryFilter controls which events are returned by Query.
type QueryFilter struct {
	SessionID string
	Kind      Kind
	Since     *time.Time
	Limit     int
	Offset    int
}

// Query returns events matching the filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.SessionID != "" {
		clauses = append(clauses, "session_id = ?")
		args = append(args, filter.SessionID)
	}
	if filter.Kind != "" {
		clauses = append(clauses, "kind = ?")
		args = append(args, string(filter.Kind))
	}
	if filter.Since != nil {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, filter.Since.UTC().Format(time.DateTime))
	}

	query := "SELECT id, session_id, kind, direction, from_index, to_index, created_at FROM navigation_events"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	} else if filter.Offset > 0 {
		query += " LIMIT -1"
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying navigation events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		ev, err := scanInto(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	return events, rows.Err()
}

// PageCounts returns how often each page was arrived at, busiest first.
func (s *Store) PageCounts(ctx context.Context) ([]PageCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT to_index, COUNT(*) FROM navigation_events
		GROUP BY to_index ORDER BY COUNT(*) DESC, to_index ASC`)
	if err != nil {
		return nil, fmt.Errorf("counting page arrivals: %w", err)
	}
	defer rows.Close()

	var out []PageCount
	for rows.Next() {
		var pc PageCount
		if err := rows.Scan(&pc.Index, &pc.Count); err != nil {
			return nil, err
		}
		out = append(out, pc)
	}
	return out, rows.Err()
}

// DeleteBefore removes all events older than the given time.
// Returns the number of deleted rows.
func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM navigation_events WHERE created_at < ?",
		before.UTC().Format(time.DateTime),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting old navigation events: %w", err)
	}
	return res.RowsAffected()
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInto(sc scanner) (*Event, error) {
	var (
		ev   Event
		kind string
		ts   string
	)
	if err := sc.Scan(&ev.ID, &ev.SessionID, &kind, &ev.Direction, &ev.From, &ev.To, &ts); err != nil {
		return nil, err
	}
	ev.Kind = Kind(kind)
	if t, err := time.Parse(time.DateTime, ts); err == nil {
		ev.CreatedAt = t
	} else if t, err := time.Parse("2006-01-02T15:04:05Z", ts); err == nil {
		ev.CreatedAt = t
	}
	return &ev, nil
}
