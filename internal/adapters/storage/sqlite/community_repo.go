package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"community-pet/internal/domain/community"
)

type CommunityRepo struct {
	db     *sql.DB
	window int
}

func NewCommunityRepo(db *sql.DB, window int) *CommunityRepo {
	if window <= 0 {
		window = community.DefaultWindow
	}
	return &CommunityRepo{db: db, window: window}
}

func (r *CommunityRepo) Append(ctx context.Context, instanceID string, e community.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO community_actions (id, instance_id, username, action, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, instanceID, e.Username, e.Action, e.Message, e.Timestamp.UnixMilli(),
	)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		DELETE FROM community_actions
		WHERE instance_id = ?
		AND id NOT IN (
			SELECT id FROM community_actions
			WHERE instance_id = ?
			ORDER BY created_at DESC, id DESC
			LIMIT ?
		)`,
		instanceID, instanceID, r.window,
	)
	return err
}

func (r *CommunityRepo) Recent(ctx context.Context, instanceID string, limit int) ([]community.Entry, error) {
	if limit <= 0 || limit > r.window {
		limit = r.window
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username, action, message, created_at
		FROM community_actions
		WHERE instance_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`,
		instanceID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]community.Entry, 0)
	for rows.Next() {
		var e community.Entry
		var ms int64
		if err := rows.Scan(&e.ID, &e.Username, &e.Action, &e.Message, &ms); err != nil {
			return nil, err
		}
		e.Timestamp = time.UnixMilli(ms).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *CommunityRepo) IncrementTotal(ctx context.Context, instanceID string) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO community_totals (instance_id, total) VALUES (?, 1)
		ON CONFLICT(instance_id) DO UPDATE SET total = total + 1
		RETURNING total`,
		instanceID,
	).Scan(&total)
	return total, err
}

func (r *CommunityRepo) Total(ctx context.Context, instanceID string) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT total FROM community_totals WHERE instance_id = ?`, instanceID,
	).Scan(&total)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return total, err
}
