package sqlite

import (
	"context"
	"database/sql"
	"time"

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
		INSERT INTO announcements (id, instance_id, user_id, username, action, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.InstanceID, a.UserID, a.Username, a.Action, a.Message, a.CreatedAt.UnixMilli(),
	)
	return err
}

func (r *AnnouncementsRepo) ListByInstance(ctx context.Context, instanceID string, limit int) ([]announcements.Announcement, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, instance_id, user_id, username, action, message, created_at
		FROM announcements
		WHERE instance_id = ?
		ORDER BY created_at DESC
		LIMIT ?`,
		instanceID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]announcements.Announcement, 0)
	for rows.Next() {
		var a announcements.Announcement
		var ms int64
		if err := rows.Scan(&a.ID, &a.InstanceID, &a.UserID, &a.Username, &a.Action, &a.Message, &ms); err != nil {
			return nil, err
		}
		a.CreatedAt = time.UnixMilli(ms).UTC()
		out = append(out, a)
	}
	return out, rows.Err()
}
