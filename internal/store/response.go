package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/abhisek/mindframe/internal/likert"
)

// responseRepo implements ResponseRepo over raw SQL.
type responseRepo struct {
	db *sql.DB
}

func (r *responseRepo) Append(ctx context.Context, sessionID string, responses []likert.Response) error {
	if len(responses) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO responses
			(session_id, item_id, value_kind, value_num, value_label, value_bool,
			 trait_hint, item_text, reversed, answered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (session_id, item_id) DO UPDATE SET
			value_kind  = excluded.value_kind,
			value_num   = excluded.value_num,
			value_label = excluded.value_label,
			value_bool  = excluded.value_bool,
			trait_hint  = excluded.trait_hint,
			item_text   = excluded.item_text,
			reversed    = excluded.reversed,
			answered_at = excluded.answered_at`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, resp := range responses {
		var answered string
		if !resp.Timestamp.IsZero() {
			answered = resp.Timestamp.UTC().Format(time.RFC3339Nano)
		}
		_, err := stmt.ExecContext(ctx,
			sessionID, resp.ItemID,
			string(resp.Value.Kind), resp.Value.Number, resp.Value.Label, boolToInt(resp.Value.Bool),
			resp.TraitHint, resp.Text, boolToInt(resp.Reversed), answered,
		)
		if err != nil {
			return fmt.Errorf("insert response %s: %w", resp.ItemID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *responseRepo) BySession(ctx context.Context, sessionID string) ([]likert.Response, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT item_id, value_kind, value_num, value_label, value_bool,
		       trait_hint, item_text, reversed, answered_at
		FROM responses WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}
	defer rows.Close()

	var out []likert.Response
	for rows.Next() {
		var (
			resp     likert.Response
			kind     string
			boolVal  int
			reversed int
			answered string
		)
		err := rows.Scan(&resp.ItemID, &kind, &resp.Value.Number, &resp.Value.Label, &boolVal,
			&resp.TraitHint, &resp.Text, &reversed, &answered)
		if err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		resp.Value.Kind = likert.Kind(kind)
		resp.Value.Bool = boolVal != 0
		resp.Reversed = reversed != 0
		if answered != "" {
			t, err := time.Parse(time.RFC3339Nano, answered)
			if err != nil {
				return nil, fmt.Errorf("parse answered_at: %w", err)
			}
			resp.Timestamp = t
		}
		out = append(out, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
