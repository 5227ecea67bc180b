package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/mindframe/internal/profile"
)

// reportRepo implements ReportRepo over raw SQL. Reports are stored as
// JSON snapshots; the creation time lives in the row, not the report,
// so rescoring identical responses stays byte-for-byte reproducible.
type reportRepo struct {
	db *sql.DB
}

func (r *reportRepo) Save(ctx context.Context, sessionID string, rep *profile.Report) error {
	data, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO reports (session_id, created_at, data) VALUES (?, ?, ?)`,
		sessionID, time.Now().UTC().Format(time.RFC3339Nano), string(data),
	)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

func (r *reportRepo) Latest(ctx context.Context, sessionID string) (*profile.Report, time.Time, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT created_at, data FROM reports
		WHERE session_id = ?
		ORDER BY created_at DESC, id DESC LIMIT 1`, sessionID)

	var created, data string
	if err := row.Scan(&created, &data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, time.Time{}, nil
		}
		return nil, time.Time{}, fmt.Errorf("query latest report: %w", err)
	}

	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("parse created_at: %w", err)
	}
	var rep profile.Report
	if err := json.Unmarshal([]byte(data), &rep); err != nil {
		return nil, time.Time{}, fmt.Errorf("unmarshal report: %w", err)
	}
	return &rep, t, nil
}

func (r *reportRepo) Prune(ctx context.Context, sessionID string, keep int) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM reports
		WHERE session_id = ? AND id NOT IN (
			SELECT id FROM reports
			WHERE session_id = ?
			ORDER BY created_at DESC, id DESC LIMIT ?
		)`, sessionID, sessionID, keep)
	if err != nil {
		return fmt.Errorf("prune reports: %w", err)
	}
	return nil
}
