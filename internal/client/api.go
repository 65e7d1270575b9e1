package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"community-pet/internal/domain/community"
	"community-pet/internal/domain/pet"
	"community-pet/internal/platform/httpclient"
)

const (
	headerInstanceID    = "X-Pet-Instance-ID"
	headerDebugUserID   = "X-Debug-User-ID"
	headerDebugUsername = "X-Debug-Username"
)

// Identity es el contexto de ejecución que el cliente manda en cada request.
// Con Token se usa Authorization: Bearer; sin Token, los headers de debug.
type Identity struct {
	InstanceID string
	UserID     string
	Username   string
	Token      string
}

// Backend es lo que la sesión necesita del servidor. API lo implementa
// sobre HTTP; los tests usan fakes.
type Backend interface {
	PerformAction(ctx context.Context, kind pet.ActionKind, current pet.StatSnapshot) (ActionOutcome, error)
	ReadState(ctx context.Context) (RemoteState, error)
	WriteState(ctx context.Context, stats pet.StatSnapshot, alive bool) error
	Restart(ctx context.Context) error
	CommunityLog(ctx context.Context, limit int) (FeedPage, error)
	Announce(ctx context.Context, action, message string) error
}

type ActionOutcome struct {
	Stats   pet.StatSnapshot
	State   pet.Condition
	Message string
}

// RemoteState: Stats nil significa que todavía no hay record.
type RemoteState struct {
	Stats          *pet.StatSnapshot
	Alive          *bool
	LastActionBy   string
	LastActionTime *time.Time
}

type FeedEntry struct {
	ID        string
	Username  string
	Action    string
	Message   string
	Timestamp time.Time
}

type FeedPage struct {
	Actions      []FeedEntry
	TotalActions int64
}

type API struct {
	http *httpclient.Client
}

func NewAPI(baseURL string, id Identity, timeout time.Duration) (*API, error) {
	if strings.TrimSpace(id.InstanceID) == "" {
		return nil, fmt.Errorf("%w: instance id required", pet.ErrInvalidInput)
	}
	if strings.TrimSpace(id.Token) == "" && strings.TrimSpace(id.UserID) == "" {
		return nil, fmt.Errorf("%w: token or user id required", pet.ErrInvalidInput)
	}

	hc, err := httpclient.NewWithBaseURL(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	if hc.BaseURL == "" {
		return nil, fmt.Errorf("%w: api url required", pet.ErrInvalidInput)
	}

	hc.Headers[headerInstanceID] = id.InstanceID
	if id.Token != "" {
		hc.Headers["Authorization"] = "Bearer " + id.Token
	} else {
		hc.Headers[headerDebugUserID] = id.UserID
		hc.Headers[headerDebugUsername] = id.Username
	}

	return &API{http: hc}, nil
}

type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (e envelope) err() error {
	if e.Status != "" && e.Status != "success" {
		return fmt.Errorf("api error: %s", e.Message)
	}
	return nil
}

func (a *API) PerformAction(ctx context.Context, kind pet.ActionKind, current pet.StatSnapshot) (ActionOutcome, error) {
	var out struct {
		envelope
		Stats *pet.StatSnapshot `json:"stats"`
		State pet.Condition     `json:"state"`
	}
	in := map[string]any{"action": kind, "currentStats": current}
	if err := a.http.DoJSON(ctx, http.MethodPost, "/api/pet-action", nil, in, &out); err != nil {
		return ActionOutcome{}, err
	}
	if err := out.err(); err != nil {
		return ActionOutcome{}, err
	}
	if out.Stats == nil {
		return ActionOutcome{}, fmt.Errorf("api error: action response without stats")
	}
	return ActionOutcome{Stats: *out.Stats, State: out.State, Message: out.Message}, nil
}

func (a *API) ReadState(ctx context.Context) (RemoteState, error) {
	var out struct {
		envelope
		Stats          *pet.StatSnapshot `json:"stats"`
		Alive          *bool             `json:"alive"`
		LastActionBy   string            `json:"lastActionBy"`
		LastActionTime *time.Time        `json:"lastActionTime"`
	}
	if err := a.http.DoJSON(ctx, http.MethodGet, "/api/pet-state", nil, nil, &out); err != nil {
		return RemoteState{}, err
	}
	if err := out.err(); err != nil {
		return RemoteState{}, err
	}
	return RemoteState{
		Stats:          out.Stats,
		Alive:          out.Alive,
		LastActionBy:   out.LastActionBy,
		LastActionTime: out.LastActionTime,
	}, nil
}

func (a *API) WriteState(ctx context.Context, stats pet.StatSnapshot, alive bool) error {
	var out envelope
	in := map[string]any{"stats": stats, "alive": alive}
	if err := a.http.DoJSON(ctx, http.MethodPost, "/api/pet-state", nil, in, &out); err != nil {
		return err
	}
	return out.err()
}

func (a *API) Restart(ctx context.Context) error {
	var out envelope
	if err := a.http.DoJSON(ctx, http.MethodPost, "/api/pet-restart", nil, map[string]any{}, &out); err != nil {
		return err
	}
	return out.err()
}

func (a *API) CommunityLog(ctx context.Context, limit int) (FeedPage, error) {
	path := "/api/community-actions"
	if limit > 0 {
		path += "?" + url.Values{"limit": []string{strconv.Itoa(limit)}}.Encode()
	}

	var out struct {
		envelope
		Actions []struct {
			ID        string `json:"id"`
			Username  string `json:"username"`
			Action    string `json:"action"`
			Message   string `json:"message"`
			Timestamp int64  `json:"timestamp"`
		} `json:"actions"`
		TotalActions int64 `json:"totalActions"`
	}
	if err := a.http.DoJSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return FeedPage{}, err
	}
	if err := out.err(); err != nil {
		return FeedPage{}, err
	}

	page := FeedPage{Actions: make([]FeedEntry, 0, len(out.Actions)), TotalActions: out.TotalActions}
	for _, e := range out.Actions {
		page.Actions = append(page.Actions, FeedEntry{
			ID:        e.ID,
			Username:  e.Username,
			Action:    e.Action,
			Message:   e.Message,
			Timestamp: community.FromMillis(e.Timestamp),
		})
	}
	return page, nil
}

func (a *API) Announce(ctx context.Context, action, message string) error {
	var out envelope
	in := map[string]string{"action": action, "message": message}
	if err := a.http.DoJSON(ctx, http.MethodPost, "/api/reddit-update", nil, in, &out); err != nil {
		return err
	}
	return out.err()
}
