package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"community-pet/internal/domain/community"
)

type CommunityRepo struct {
	db     *sql.DB
	window int
}

// NewCommunityRepo: después de cada append se borran las entradas que
// quedan fuera de las window más nuevas de la instancia.
func NewCommunityRepo(db *sql.DB, window int) *CommunityRepo {
	if window <= 0 {
		window = community.DefaultWindow
	}
	return &CommunityRepo{db: db, window: window}
}

func (r *CommunityRepo) Append(ctx context.Context, instanceID string, e community.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO community_actions (
			id, instance_id,
			username, action, message,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		e.ID,
		instanceID,
		e.Username,
		e.Action,
		e.Message,
		e.Timestamp,
	)
	if err != nil {
		return err
	}

	// El trim es aparte del insert; si falla la entrada ya quedó guardada.
	_, err = r.db.ExecContext(ctx, `
		DELETE FROM community_actions
		WHERE instance_id = $1
		AND id NOT IN (
			SELECT id FROM community_actions
			WHERE instance_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		)
	`, instanceID, r.window)
	return err
}

func (r *CommunityRepo) Recent(ctx context.Context, instanceID string, limit int) ([]community.Entry, error) {
	instanceID = strings.TrimSpace(instanceID)
	if instanceID == "" {
		return nil, nil
	}
	if limit <= 0 || limit > r.window {
		limit = r.window
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username, action, message, created_at
		FROM community_actions
		WHERE instance_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, instanceID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]community.Entry, 0)
	for rows.Next() {
		var e community.Entry
		if err := rows.Scan(&e.ID, &e.Username, &e.Action, &e.Message, &e.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *CommunityRepo) IncrementTotal(ctx context.Context, instanceID string) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO community_totals (instance_id, total)
		VALUES ($1, 1)
		ON CONFLICT (instance_id) DO UPDATE
		SET total = community_totals.total + 1
		RETURNING total
	`, instanceID).Scan(&total)
	return total, err
}

func (r *CommunityRepo) Total(ctx context.Context, instanceID string) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `
		SELECT total FROM community_totals WHERE instance_id = $1
	`, instanceID).Scan(&total)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return total, err
}
