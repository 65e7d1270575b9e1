package postgres

import (
	"context"
	"database/sql"
	"strings"

	"community-pet/internal/domain/announcements"
)

type AnnouncementsRepo struct {
	db *sql.DB
}

func NewAnnouncementsRepo(db *sql.DB) *AnnouncementsRepo {
	return &AnnouncementsRepo{db: db}
}

func (r *AnnouncementsRepo) Create(ctx context.Context, a announcements.Announcement) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO announcements (
			id, instance_id,
			user_id, username,
			action, message,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		a.ID,
		a.InstanceID,
		a.UserID,
		a.Username,
		a.Action,
		a.Message,
		a.CreatedAt,
	)
	return err
}

func (r *AnnouncementsRepo) ListByInstance(ctx context.Context, instanceID string, limit int) ([]announcements.Announcement, error) {
	instanceID = strings.TrimSpace(instanceID)
	if instanceID == "" {
		return nil, nil
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, instance_id,
			user_id, username,
			action, message,
			created_at
		FROM announcements
		WHERE instance_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, instanceID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]announcements.Announcement, 0)
	for rows.Next() {
		var a announcements.Announcement
		if err := rows.Scan(
			&a.ID,
			&a.InstanceID,
			&a.UserID,
			&a.Username,
			&a.Action,
			&a.Message,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
