package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dkrasnov/docvault/internal/core/domain"
)

type ArchiveRepository struct {
	db *sql.DB
}

func NewArchiveRepository(db *sql.DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *ArchiveRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across concurrent startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026083001)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS archive_records (
	id TEXT PRIMARY KEY,
	url TEXT NOT NULL,
	summary TEXT NOT NULL,
	category TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_archive_records_created_at ON archive_records(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_archive_records_category ON archive_records(category);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

// Create writes exactly one record and generates its id. It is the only way
// records come into existence; they are never updated afterwards.
func (r *ArchiveRepository) Create(ctx context.Context, url, summary string, category domain.Category) (*domain.ArchiveRecord, error) {
	record := &domain.ArchiveRecord{
		ID:        uuid.NewString(),
		URL:       url,
		Summary:   summary,
		Category:  category,
		CreatedAt: time.Now().UTC(),
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO archive_records (id, url, summary, category, created_at)
VALUES ($1,$2,$3,$4,$5)
`, record.ID, record.URL, record.Summary, string(record.Category), record.CreatedAt)
	if err != nil {
		return nil, domain.WrapError(domain.ErrPersistence, "insert archive record", err)
	}
	return record, nil
}

func (r *ArchiveRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.ArchiveRecord, error) {
	const base = `
SELECT id, url, summary, category, created_at
FROM archive_records
`
	var rows *sql.Rows
	var err error
	if filter.Category != "" {
		rows, err = r.db.QueryContext(ctx, base+`WHERE category = $1 ORDER BY created_at DESC`, string(filter.Category))
	} else {
		rows, err = r.db.QueryContext(ctx, base+`ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, domain.WrapError(domain.ErrPersistence, "query archive records", err)
	}
	defer rows.Close()

	records := []domain.ArchiveRecord{}
	for rows.Next() {
		var record domain.ArchiveRecord
		var category string
		if err := rows.Scan(&record.ID, &record.URL, &record.Summary, &category, &record.CreatedAt); err != nil {
			return nil, domain.WrapError(domain.ErrPersistence, "scan archive record", err)
		}
		record.Category = domain.Category(category)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapError(domain.ErrPersistence, "iterate archive records", err)
	}
	return records, nil
}

func (r *ArchiveRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM archive_records WHERE id = $1`, id)
	if err != nil {
		return domain.WrapError(domain.ErrPersistence, "delete archive record", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return domain.WrapError(domain.ErrPersistence, "delete rows affected", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrRecordNotFound, "delete archive record", fmt.Errorf("id %s", id))
	}
	return nil
}
