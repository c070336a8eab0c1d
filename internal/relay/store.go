package relay

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/olivier-w/folio/internal/contact"
)

// Status is where a submission is in delivery.
type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

// ErrNotFound is returned for an unknown submission id.
var ErrNotFound = errors.New("submission not found")

// Submission is one outbox row.
type Submission struct {
	ID        string          `json:"id"`
	Message   contact.Message `json:"message"`
	Status    Status          `json:"status"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Store is the sqlite outbox. It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS outbox (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	message TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	error TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS outbox_status ON outbox(status, created_at);`

// OpenStore opens or creates the outbox database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open outbox %s: %w", path, err)
	}
	// one writer; sqlite serializes anyway
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create outbox schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Create records m as pending and returns the new submission.
func (s *Store) Create(ctx context.Context, m contact.Message) (Submission, error) {
	now := s.now().UTC()
	sub := Submission{
		ID:        uuid.NewString(),
		Message:   m,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO outbox (id, name, email, message, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, m.Name, m.Email, m.Message, string(sub.Status), now, now)
	if err != nil {
		return Submission{}, fmt.Errorf("insert submission: %w", err)
	}
	return sub, nil
}

// MarkSent records successful delivery.
func (s *Store) MarkSent(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, StatusSent, "")
}

// MarkFailed records a delivery failure.
func (s *Store) MarkFailed(ctx context.Context, id string, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return s.setStatus(ctx, id, StatusFailed, msg)
}

func (s *Store) setStatus(ctx context.Context, id string, st Status, msg string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE outbox SET status = ?, error = ?, updated_at = ? WHERE id = ?`,
		string(st), msg, s.now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update submission %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update submission %s: %w", id, ErrNotFound)
	}
	return nil
}

// Get loads one submission.
func (s *Store) Get(ctx context.Context, id string) (Submission, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, message, status, error, created_at, updated_at FROM outbox WHERE id = ?`, id)
	sub, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Submission{}, fmt.Errorf("get submission %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Submission{}, fmt.Errorf("get submission %s: %w", id, err)
	}
	return sub, nil
}

// List returns up to limit submissions with the given status, oldest
// first. An empty status lists every row.
func (s *Store) List(ctx context.Context, st Status, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = 100
	}
	q := `SELECT id, name, email, message, status, error, created_at, updated_at FROM outbox`
	args := []any{}
	if st != "" {
		q += ` WHERE status = ?`
		args = append(args, string(st))
	}
	q += ` ORDER BY created_at, id LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSubmission(r scanner) (Submission, error) {
	var sub Submission
	var status string
	err := r.Scan(&sub.ID, &sub.Message.Name, &sub.Message.Email, &sub.Message.Message,
		&status, &sub.Error, &sub.CreatedAt, &sub.UpdatedAt)
	sub.Status = Status(status)
	return sub, err
}
