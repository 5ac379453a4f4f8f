package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"PharmaNewsAgent/internal/domain"
	"PharmaNewsAgent/internal/ports"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// OpenPostgres opens (and migrates) the shared processing-record database.
func OpenPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS processed_articles (
		article_link TEXT PRIMARY KEY,
		outcome TEXT NOT NULL,
		processed_at TIMESTAMPTZ NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// PostgresStore persists processing records in Postgres, for deployments
// where several tools share the dedup history.
type PostgresStore struct {
	db *sql.DB
}

var _ ports.ArticleStore = (*PostgresStore)(nil)

// NewPostgresStore wires a sql.DB implementation.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// IsProcessed reports whether a success record exists for link.
func (s *PostgresStore) IsProcessed(ctx context.Context, link string) (bool, error) {
	query, args, err := psql.
		Select("1").
		From("processed_articles").
		Where(sq.Eq{"article_link": link, "outcome": string(domain.OutcomeSuccess)}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query processed: %w", err)
	}
	return true, nil
}

// Record upserts the processing record for the article link.
func (s *PostgresStore) Record(ctx context.Context, rec domain.ProcessingRecord) error {
	query, args, err := psql.
		Insert("processed_articles").
		Columns("article_link", "outcome", "processed_at").
		Values(rec.ArticleLink, string(rec.Outcome), rec.ProcessedAt.UTC()).
		Suffix(`ON CONFLICT (article_link) DO UPDATE SET
			outcome = EXCLUDED.outcome,
			processed_at = EXCLUDED.processed_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert processed: %w", err)
	}
	return nil
}
