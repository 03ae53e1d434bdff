package repository

import (
	"context"
	"fmt"
	"time"

	"pluvio/internal/db"
	"pluvio/internal/domain"
)

// SQLiteActionLogRepo implements ActionLogRepo using a SQLite database.
type SQLiteActionLogRepo struct {
	db db.DBTX
}

func NewSQLiteActionLogRepo(dbtx db.DBTX) *SQLiteActionLogRepo {
	return &SQLiteActionLogRepo{db: dbtx}
}

func (r *SQLiteActionLogRepo) Append(ctx context.Context, e *ActionEntry) error {
	query := `INSERT INTO action_log (id, action, source, ok, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.Action,
		string(e.Source),
		boolToInt(e.OK),
		e.Message,
		e.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("appending action log entry: %w", err)
	}
	return nil
}

func (r *SQLiteActionLogRepo) ListRecent(ctx context.Context, limit int) ([]*ActionEntry, error) {
	query := `SELECT id, action, source, ok, message, created_at
		FROM action_log ORDER BY created_at DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent actions: %w", err)
	}
	defer rows.Close()

	var out []*ActionEntry
	for rows.Next() {
		var e ActionEntry
		var source, createdAt string
		var ok int
		if err := rows.Scan(&e.ID, &e.Action, &source, &ok, &e.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning action entry: %w", err)
		}
		e.Source = domain.ActionSource(source)
		e.OK = ok != 0
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			e.CreatedAt = t
		}
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating action log: %w", err)
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
