package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"community-pet/internal/domain/announcements"
)

func TestAnnouncer_PostsPayload(t *testing.T) {
	var got payload
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Channel-Token") != "secret" {
			t.Errorf("missing channel token")
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer ts.Close()

	a := New(Config{URL: ts.URL, Timeout: time.Second, Headers: map[string]string{"X-Channel-Token": "secret"}})
	err := a.Announce(context.Background(), announcements.Announcement{
		InstanceID: "post-1",
		Username:   "snoo_fan",
		Action:     "feed",
		Message:    "fed the community pet!",
	})
	if err != nil {
		t.Fatalf("announce: %v", err)
	}
	if got.Text != "u/snoo_fan fed the community pet!" || got.Action != "feed" || got.InstanceID != "post-1" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestAnnouncer_UpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	a := New(Config{URL: ts.URL})
	if err := a.Announce(context.Background(), announcements.Announcement{Action: "feed"}); err == nil {
		t.Fatalf("expected error on 502")
	}
}

func TestAnnouncer_NotConfigured(t *testing.T) {
	a := New(Config{})
	if err := a.Announce(context.Background(), announcements.Announcement{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
