package announcements

import "time"

// Announcement es un aviso hacia el canal externo del host (p.ej. un
// comentario en el post). Se guarda antes de publicarse.
type Announcement struct {
	ID         string
	InstanceID string
	UserID     string
	Username   string
	Action     string
	Message    string
	CreatedAt  time.Time
}
