package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/msomdec/moviedb/internal/domain"
)

// importRunRepo implements domain.ImportRunRepository using SQLite.
type importRunRepo struct {
	db *sql.DB
}

func (r *importRunRepo) Create(ctx context.Context, run *domain.ImportRun) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO import_runs (id, user_id, source, succeeded, failed, cancelled, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.UserID, run.Source, run.Succeeded, run.Failed, run.Cancelled, now,
	)
	if err != nil {
		return fmt.Errorf("insert import run: %w", err)
	}
	run.CreatedAt = now
	return nil
}

func (r *importRunRepo) ListByUser(ctx context.Context, userID int64) ([]domain.ImportRun, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, source, succeeded, failed, cancelled, created_at
		 FROM import_runs WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list import runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.ImportRun
	for rows.Next() {
		var run domain.ImportRun
		if err := rows.Scan(&run.ID, &run.UserID, &run.Source, &run.Succeeded,
			&run.Failed, &run.Cancelled, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan import run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
