package store

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"vox/internal/domain"
)

type postgresStore struct {
	pool *pgxpool.Pool
}

func newPostgres(ctx context.Context, dsn string) (*postgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &postgresStore{pool: pool}, nil
}

func (s *postgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *postgresStore) Migrate(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			host_id TEXT NOT NULL DEFAULT '',
			locale TEXT NOT NULL DEFAULT 'en',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			closed_at TIMESTAMPTZ
		);`,
		`CREATE TABLE IF NOT EXISTS leads (
			id BIGSERIAL PRIMARY KEY,
			session_id TEXT NOT NULL,
			schema_name TEXT NOT NULL,
			field_values JSONB NOT NULL,
			locale TEXT NOT NULL DEFAULT 'en',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_leads_created ON leads(created_at);`,
		`CREATE TABLE IF NOT EXISTS transcript (
			id BIGSERIAL PRIMARY KEY,
			session_id TEXT NOT NULL,
			text TEXT NOT NULL,
			mode TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_transcript_session_created ON transcript(session_id, created_at);`,
	}

	for _, q := range queries {
		if _, err := s.pool.Exec(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (s *postgresStore) SaveSession(ctx context.Context, sessionID, hostID string, locale domain.Locale) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sessions(session_id, host_id, locale)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id)
		DO UPDATE SET host_id = EXCLUDED.host_id, locale = EXCLUDED.locale;
	`, sessionID, hostID, string(locale))
	return err
}

func (s *postgresStore) CloseSession(ctx context.Context, sessionID string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE sessions
		SET closed_at = NOW()
		WHERE session_id = $1 AND closed_at IS NULL
	`, sessionID)
	return err
}

func (s *postgresStore) SaveLead(ctx context.Context, rec *domain.LeadRecord) error {
	values, err := json.Marshal(rec.Values)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO leads(session_id, schema_name, field_values, locale, created_at)
		VALUES ($1, $2, $3::jsonb, $4, $5)
	`, rec.SessionID, rec.SchemaName, string(values), string(rec.Locale), normalizeCreatedAt(rec))
	return err
}

func (s *postgresStore) LogUtterance(ctx context.Context, sessionID, text, mode string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO transcript(session_id, text, mode)
		VALUES ($1, $2, $3)
	`, sessionID, text, mode)
	return err
}

func (s *postgresStore) ListLeads(ctx context.Context, limit int) ([]domain.LeadRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT session_id, schema_name, field_values, locale, created_at
		FROM leads
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.LeadRecord, 0, limit)
	for rows.Next() {
		var rec domain.LeadRecord
		var valuesRaw []byte
		var locale string
		if err := rows.Scan(&rec.SessionID, &rec.SchemaName, &valuesRaw, &locale, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(valuesRaw, &rec.Values); err != nil {
			return nil, err
		}
		rec.Locale = domain.Locale(locale)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
