package notifications

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

// ErrNotFound is returned when a notification does not exist.
var ErrNotFound = errors.New("notification not found")

// ListFilter controls which notifications are returned by List.
type ListFilter struct {
	Type      Type
	Delivered *bool
	Since     time.Time
	Limit     int
	Offset    int
}

// Store provides persistence for notifications.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create inserts a new notification. If n.ID is empty a UUID is generated.
// The stored copy is returned.
func (s *Store) Create(ctx context.Context, n Notification) (*Notification, error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.Severity == "" {
		n.Severity = SeverityInfo
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (id, type, severity, title, message, subject_id, delivered, attempts, last_error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, string(n.Type), string(n.Severity), n.Title, n.Message, n.SubjectID,
		boolToInt(n.Delivered), n.Attempts, n.LastError, n.CreatedAt.UTC().Format(time.DateTime),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting notification: %w", err)
	}
	return &n, nil
}

// GetByID retrieves a single notification.
func (s *Store) GetByID(ctx context.Context, id string) (*Notification, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+columns+` FROM notifications WHERE id = ?`, id)
	n, err := scanInto(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return n, err
}

const columns = "id, type, severity, title, message, subject_id, delivered, attempts, last_error, created_at"

// List returns notifications matching the filter, newest first.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]Notification, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.Type != "" {
		clauses = append(clauses, "type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.Delivered != nil {
		clauses = append(clauses, "delivered = ?")
		args = append(args, boolToInt(*filter.Delivered))
	}
	if !filter.Since.IsZero() {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, filter.Since.UTC().Format(time.DateTime))
	}

	query := "SELECT " + columns + " FROM notifications"
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
		return nil, fmt.Errorf("querying notifications: %w", err)
	}
	defer rows.Close()

	var result []Notification
	for rows.Next() {
		n, err := scanInto(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *n)
	}
	return result, rows.Err()
}

// GetPending returns all undelivered notifications.
func (s *Store) GetPending(ctx context.Context) ([]Notification, error) {
	delivered := false
	return s.List(ctx, ListFilter{Delivered: &delivered})
}

// MarkDelivered records a successful delivery attempt.
func (s *Store) MarkDelivered(ctx context.Context, id string) error {
	return s.update(ctx, `UPDATE notifications SET delivered = 1, attempts = attempts + 1, last_error = '' WHERE id = ?`, id)
}

// MarkFailed records a failed delivery attempt.
func (s *Store) MarkFailed(ctx context.Context, id string, cause error) error {
	return s.update(ctx, `UPDATE notifications SET attempts = attempts + 1, last_error = ? WHERE id = ?`, cause.Error(), id)
}

func (s *Store) update(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating notification: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInto(sc scanner) (*Notification, error) {
	var (
		n               Notification
		ntype, severity string
		delivered       int
		ts              string
	)

	err := sc.Scan(&n.ID, &ntype, &severity, &n.Title, &n.Message, &n.SubjectID,
		&delivered, &n.Attempts, &n.LastError, &ts)
	if err != nil {
		return nil, err
	}

	n.Type = Type(ntype)
	n.Severity = Severity(severity)
	n.Delivered = delivered != 0

	if t, parseErr := time.Parse(time.DateTime, ts); parseErr == nil {
		n.CreatedAt = t
	} else if t, parseErr := time.Parse(time.RFC3339, ts); parseErr == nil {
		n.CreatedAt = t
	}
	return &n, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
