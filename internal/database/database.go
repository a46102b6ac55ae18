// internal/database/database.go
//
// Persistence boundary. Postgres stores the full session snapshot as JSONB
// keyed by session id; Noop satisfies the same contract for storeless runs,
// in which case in-memory state does not survive a restart.
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khaledhamdan079-tech/ticket-to-ride-be/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL,
	phase      TEXT NOT NULL,
	state      JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Postgres persists sessions via a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// Connect opens a pool against the given URL and verifies connectivity.
func Connect(ctx context.Context, url string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Init creates the games table if it does not exist.
func (p *Postgres) Init(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Save upserts the session snapshot.
func (p *Postgres) Save(ctx context.Context, s *models.GameSession) error {
	state, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", s.ID, err)
	}
	_, err = p.pool.Exec(ctx, `
		INSERT INTO games (id, name, phase, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, phase = EXCLUDED.phase,
		    state = EXCLUDED.state, updated_at = now()`,
		s.ID, s.Name, string(s.Phase), state, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert session %s: %w", s.ID, err)
	}
	return nil
}

// Load fetches a session snapshot; (nil, nil) when absent.
func (p *Postgres) Load(ctx context.Context, id uuid.UUID) (*models.GameSession, error) {
	var state []byte
	err := p.pool.QueryRow(ctx, `SELECT state FROM games WHERE id = $1`, id).Scan(&state)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select session %s: %w", id, err)
	}
	var s models.GameSession
	if err := json.Unmarshal(state, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", id, err)
	}
	return &s, nil
}

// Close releases the pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

// Noop is the storeless implementation: every save succeeds, every load
// misses.
type Noop struct{}

func (Noop) Save(ctx context.Context, s *models.GameSession) error { return nil }

func (Noop) Load(ctx context.Context, id uuid.UUID) (*models.GameSession, error) {
	return nil, nil
}
