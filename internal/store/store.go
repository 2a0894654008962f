// Package store persists conversation outcomes: sessions, captured leads and
// the utterance transcript. Dialogue state is deliberately not stored; only
// what happened.
package store

import (
	"context"
	"strings"
	"time"

	"vox/internal/domain"
)

// Store is implemented by both database backends. The Postgres backend is the
// deployment target; the SQLite backend exists so the server runs with zero
// external services in development.
type Store interface {
	Migrate(ctx context.Context) error
	SaveSession(ctx context.Context, sessionID, hostID string, locale domain.Locale) error
	CloseSession(ctx context.Context, sessionID string) error
	SaveLead(ctx context.Context, rec *domain.LeadRecord) error
	LogUtterance(ctx context.Context, sessionID, text, mode string) error
	ListLeads(ctx context.Context, limit int) ([]domain.LeadRecord, error)
	Close() error
}

// New picks the backend from the DSN: postgres URLs go to pgx, everything
// else is treated as a SQLite file path.
func New(ctx context.Context, dsn string) (Store, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return newPostgres(ctx, dsn)
	}
	return newSQLite(strings.TrimPrefix(dsn, "sqlite://"))
}

func normalizeCreatedAt(rec *domain.LeadRecord) time.Time {
	if rec.CreatedAt.IsZero() {
		return time.Now().UTC()
	}
	return rec.CreatedAt.UTC()
}
