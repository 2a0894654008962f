package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"vox/internal/domain"
)

type sqliteStore struct {
	db *sql.DB
}

func newSQLite(path string) (*sqliteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func (s *sqliteStore) Migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		session_id TEXT PRIMARY KEY,
		host_id TEXT NOT NULL DEFAULT '',
		locale TEXT NOT NULL DEFAULT 'en',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		closed_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS leads (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		schema_name TEXT NOT NULL,
		field_values TEXT NOT NULL,
		locale TEXT NOT NULL DEFAULT 'en',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_leads_created ON leads(created_at);

	CREATE TABLE IF NOT EXISTS transcript (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		text TEXT NOT NULL,
		mode TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_transcript_session_created ON transcript(session_id, created_at);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *sqliteStore) SaveSession(ctx context.Context, sessionID, hostID string, locale domain.Locale) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions(session_id, host_id, locale)
		VALUES (?, ?, ?)
		ON CONFLICT(session_id)
		DO UPDATE SET host_id = excluded.host_id, locale = excluded.locale
	`, sessionID, hostID, string(locale))
	return err
}

func (s *sqliteStore) CloseSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE sessions
		SET closed_at = CURRENT_TIMESTAMP
		WHERE session_id = ? AND closed_at IS NULL
	`, sessionID)
	return err
}

func (s *sqliteStore) SaveLead(ctx context.Context, rec *domain.LeadRecord) error {
	values, err := json.Marshal(rec.Values)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO leads(session_id, schema_name, field_values, locale, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, rec.SessionID, rec.SchemaName, string(values), string(rec.Locale), normalizeCreatedAt(rec))
	return err
}

func (s *sqliteStore) LogUtterance(ctx context.Context, sessionID, text, mode string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transcript(session_id, text, mode)
		VALUES (?, ?, ?)
	`, sessionID, text, mode)
	return err
}

func (s *sqliteStore) ListLeads(ctx context.Context, limit int) ([]domain.LeadRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, schema_name, field_values, locale, created_at
		FROM leads
		ORDER BY created_at DESC
		LIMIT ?
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
