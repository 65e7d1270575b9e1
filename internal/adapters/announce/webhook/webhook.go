package webhook

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"community-pet/internal/domain/announcements"
	"community-pet/internal/platform/httpclient"
)

var ErrNotConfigured = errors.New("announce webhook not configured")

var _ announcements.Announcer = (*Announcer)(nil)

type Config struct {
	URL     string
	Timeout time.Duration

	// Headers extra (p.ej. un token del canal).
	Headers map[string]string
}

// Announcer publica cada aviso como un POST JSON al webhook del host.
type Announcer struct {
	url    string
	client *httpclient.Client
}

func New(cfg Config) *Announcer {
	c := httpclient.New(cfg.Timeout)
	for k, v := range cfg.Headers {
		c.Headers[k] = v
	}
	return &Announcer{
		url:    strings.TrimSpace(cfg.URL),
		client: c,
	}
}

// NewWithClient permite inyectar un client (tests).
func NewWithClient(url string, client *httpclient.Client) *Announcer {
	return &Announcer{url: strings.TrimSpace(url), client: client}
}

func (a *Announcer) IsConfigured() bool {
	return a != nil && a.url != "" && a.client != nil
}

type payload struct {
	InstanceID string    `json:"instance_id"`
	Username   string    `json:"username"`
	Action     string    `json:"action"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

func (a *Announcer) Announce(ctx context.Context, ann announcements.Announcement) error {
	if !a.IsConfigured() {
		return ErrNotConfigured
	}

	err := a.client.DoJSON(ctx, http.MethodPost, a.url, nil, payload{
		InstanceID: ann.InstanceID,
		Username:   ann.Username,
		Action:     ann.Action,
		Text:       fmt.Sprintf("u/%s %s", ann.Username, ann.Message),
		CreatedAt:  ann.CreatedAt,
	}, nil)
	if err != nil {
		return fmt.Errorf("announce webhook: %w", err)
	}
	return nil
}
