package commission

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ziadkadry99/sketchbook/internal/db"
)

// Store provides persistence for commission requests.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create validates and inserts a request. The stored copy, with its generated
// ID and timestamp, is returned.
func (s *Store) Create(ctx context.Context, req Request) (*Request, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	req.CreatedAt = time.Now().UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO commissions (id, name, email, project_type, message, rush, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		req.ID, req.Name, req.Email, string(req.ProjectType), req.Message,
		boolToInt(req.Rush), req.CreatedAt.Format(time.DateTime),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting commission: %w", err)
	}
	return &req, nil
}

// Get retrieves a single request.
func (s *Store) Get(ctx context.Context, id string) (*Request, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, project_type, message, rush, created_at
		FROM commissions WHERE id = ?`, id)
	r, err := scanInto(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return r, err
}

// List returns requests newest first. A limit of zero returns all of them.
func (s *Store) List(ctx context.Context, limit int) ([]Request, error) {
	query := `SELECT id, name, email, project_type, message, rush, created_at
		FROM commissions ORDER BY created_at DESC, rowid DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying commissions: %w", err)
	}
	defer rows.Close()

	var out []Request
	for rows.Next() {
		r, err := scanInto(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInto(sc scanner) (*Request, error) {
	var (
		r           Request
		projectType string
		rush        int
		ts          string
	)
	if err := sc.Scan(&r.ID, &r.Name, &r.Email, &projectType, &r.Message, &rush, &ts); err != nil {
		return nil, err
	}
	r.ProjectType = ProjectType(projectType)
	r.Rush = rush != 0
	if t, err := time.Parse(time.DateTime, ts); err == nil {
		r.CreatedAt = t
	} else if t, err := time.Parse(time.RFC3339, ts); err == nil {
		r.CreatedAt = t
	}
	return &r, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
