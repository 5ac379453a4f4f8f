package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"PharmaNewsAgent/internal/domain"
	"PharmaNewsAgent/internal/ports"
)

// OpenSQLite opens (and migrates) the embedded processing-record database.
// Pass ":memory:" for an ephemeral store.
func OpenSQLite(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := migrateSQLite(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS processed_articles (
		article_link TEXT PRIMARY KEY,
		outcome TEXT NOT NULL,
		processed_at DATETIME NOT NULL
	);`)
	return err
}

// SQLiteStore persists processing records in an embedded database.
type SQLiteStore struct {
	db *sql.DB
}

var _ ports.ArticleStore = (*SQLiteStore)(nil)

// NewSQLiteStore wires an opened database handle.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// IsProcessed reports whether a success record exists for link. Failed
// outcomes do not count, so failed articles are retried on later cycles.
func (s *SQLiteStore) IsProcessed(ctx context.Context, link string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM processed_articles WHERE article_link = ? AND outcome = ?`,
		link, string(domain.OutcomeSuccess),
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query processed: %w", err)
	}
	return true, nil
}

// Record upserts the processing record for the article link.
func (s *SQLiteStore) Record(ctx context.Context, rec domain.ProcessingRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO processed_articles (article_link, outcome, processed_at)
		VALUES (?, ?, ?)
		ON CONFLICT(article_link) DO UPDATE SET
			outcome = excluded.outcome,
			processed_at = excluded.processed_at
	`, rec.ArticleLink, string(rec.Outcome), rec.ProcessedAt.UTC())
	if err != nil {
		return fmt.Errorf("upsert processed: %w", err)
	}
	return nil
}
