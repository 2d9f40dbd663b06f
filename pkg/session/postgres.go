package session

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrations returns the goose migrations of the wizard_sessions table,
// ready for pkg/db.Migrate.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// DB is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps sessions in the wizard_sessions table.
// Expired rows are removed by DeleteExpired, usually from a periodic job.
type PostgresStore struct {
	db DB
}

// NewPostgresStore creates a store using db.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const (
	insertSession = `INSERT INTO wizard_sessions (id, token, data, created_at, last_active_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	selectSession = `SELECT id, token, data, created_at, last_active_at, expires_at
FROM wizard_sessions WHERE token = $1`

	updateSession = `UPDATE wizard_sessions
SET data = $2, last_active_at = $3, expires_at = $4
WHERE token = $1`

	deleteSession   = `DELETE FROM wizard_sessions WHERE token = $1`
	touchSession    = `UPDATE wizard_sessions SET last_active_at = $2 WHERE token = $1`
	deleteExpired   = `DELETE FROM wizard_sessions WHERE expires_at < $1`
	uniqueViolation = "23505"
)

// Create inserts a session.
func (p *PostgresStore) Create(ctx context.Context, s *Session) error {
	if s == nil || s.Token == "" {
		return ErrInvalidToken
	}
	data, err := encodeData(s)
	if err != nil {
		return err
	}
	_, err = p.db.Exec(ctx, insertSession, s.ID, s.Token, data, s.CreatedAt, s.LastActiveAt, s.ExpiresAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return errors.Join(ErrInvalidToken, err)
	}
	return err
}

// Get loads a session by token.
func (p *PostgresStore) Get(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	var (
		s    Session
		data []byte
	)
	err := p.db.QueryRow(ctx, selectSession, token).
		Scan(&s.ID, &s.Token, &data, &s.CreatedAt, &s.LastActiveAt, &s.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, &s.Data); err != nil {
		return nil, errors.Join(ErrUnmarshal, err)
	}
	if s.Data == nil {
		s.Data = make(map[string]map[string]any)
	}
	if s.IsExpired(time.Now()) {
		return nil, ErrExpired
	}
	return &s, nil
}

// Update saves the data and expiry of a session.
func (p *PostgresStore) Update(ctx context.Context, s *Session) error {
	if s == nil || s.Token == "" {
		return ErrInvalidToken
	}
	data, err := encodeData(s)
	if err != nil {
		return err
	}
	tag, err := p.db.Exec(ctx, updateSession, s.Token, data, s.LastActiveAt, s.ExpiresAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a session.
func (p *PostgresStore) Delete(ctx context.Context, token string) error {
	_, err := p.db.Exec(ctx, deleteSession, token)
	return err
}

// Touch updates LastActiveAt.
func (p *PostgresStore) Touch(ctx context.Context, token string, at time.Time) error {
	tag, err := p.db.Exec(ctx, touchSession, token, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteExpired removes sessions that expired before the given time.
func (p *PostgresStore) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	tag, err := p.db.Exec(ctx, deleteExpired, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func encodeData(s *Session) ([]byte, error) {
	if s.Data == nil {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(s.Data)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

var (
	_ Store   = (*PostgresStore)(nil)
	_ Cleaner = (*PostgresStore)(nil)
)
