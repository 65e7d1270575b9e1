package announcements

import "context"

type Repository interface {
	Create(ctx context.Context, a Announcement) error
	ListByInstance(ctx context.Context, instanceID string, limit int) ([]Announcement, error)
}

// Announcer publica en el canal externo. Sus errores nunca llegan al caller.
type Announcer interface {
	Announce(ctx context.Context, a Announcement) error
}
