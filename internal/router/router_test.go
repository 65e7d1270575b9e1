package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	sqlitestore "community-pet/internal/adapters/storage/sqlite"
	"community-pet/internal/domain/announcements"
	"community-pet/internal/domain/pet"
	"community-pet/internal/router"
)

const instanceID = "t3_post1"

type stateBody struct {
	Status  string            `json:"status"`
	Stats   *pet.StatSnapshot `json:"stats"`
	Alive   *bool             `json:"alive"`
	State   string            `json:"state"`
	Message string            `json:"message"`
}

type feedBody struct {
	Status  string `json:"status"`
	Actions []struct {
		ID        string `json:"id"`
		Username  string `json:"username"`
		Action    string `json:"action"`
		Timestamp int64  `json:"timestamp"`
	} `json:"actions"`
	TotalActions int64 `json:"totalActions"`
}

func newServer(t *testing.T, opts router.Options) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(opts))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_RestartThenRead(t *testing.T) {
	ts := newServer(t, router.Options{})

	// sin record todavía: success sin stats
	{
		st, body := doReq(t, ts.URL, "GET", "/api/pet-state", "t2_alice", nil)
		var out stateBody
		mustDecode(t, body, &out)
		if st != http.StatusOK || out.Stats != nil {
			t.Fatalf("expected empty state, got %d %s", st, body)
		}
	}

	if st, body := doReq(t, ts.URL, "POST", "/api/pet-restart", "t2_alice", map[string]any{}); st != http.StatusOK {
		t.Fatalf("restart: %d %s", st, body)
	}

	st, body := doReq(t, ts.URL, "GET", "/api/pet-state", "t2_bob", nil)
	if st != http.StatusOK {
		t.Fatalf("read: %d %s", st, body)
	}
	var out stateBody
	mustDecode(t, body, &out)
	if out.Stats == nil || *out.Stats != pet.Birth() || out.Alive == nil || !*out.Alive {
		t.Fatalf("expected birth snapshot alive, got %s", body)
	}
}

func TestHTTP_FeedAction(t *testing.T) {
	ts := newServer(t, router.Options{})

	current := pet.StatSnapshot{Health: 100, Hunger: 10, Cleanliness: 100, Energy: 100, Happiness: 70, Age: 3}
	st, body := doReq(t, ts.URL, "POST", "/api/pet-action", "t2_alice", map[string]any{
		"action":       "feed",
		"currentStats": current,
	})
	if st != http.StatusOK {
		t.Fatalf("action: %d %s", st, body)
	}

	var out stateBody
	mustDecode(t, body, &out)
	want := current
	want.Hunger = 35
	want.Happiness = 75
	if out.Status != "success" || out.Stats == nil || *out.Stats != want || out.Message == "" {
		t.Fatalf("unexpected response: %s", body)
	}

	// el resultado queda como estado compartido
	_, body = doReq(t, ts.URL, "GET", "/api/pet-state", "t2_bob", nil)
	var read stateBody
	mustDecode(t, body, &read)
	if read.Stats == nil || *read.Stats != want {
		t.Fatalf("shared state not written: %s", body)
	}

	// y en el feed
	_, body = doReq(t, ts.URL, "GET", "/api/community-actions", "t2_bob", nil)
	var feed feedBody
	mustDecode(t, body, &feed)
	if feed.TotalActions != 1 || len(feed.Actions) != 1 || feed.Actions[0].Action != "feed" {
		t.Fatalf("unexpected feed: %s", body)
	}
}

func TestHTTP_Errors(t *testing.T) {
	ts := newServer(t, router.Options{})

	tests := []struct {
		name       string
		path       string
		user       string
		noInstance bool
		body       any
		want       int
		wantMsg    string
	}{
		{name: "no user", path: "/api/pet-state", want: http.StatusBadRequest, wantMsg: "Missing context"},
		{name: "no instance", path: "/api/pet-state", user: "t2_a", noInstance: true, want: http.StatusBadRequest, wantMsg: "Missing context"},
		{name: "unknown action", path: "/api/pet-action", user: "t2_a", body: map[string]any{"action": "dance", "currentStats": pet.Birth()}, want: http.StatusBadRequest, wantMsg: "Invalid action"},
		{name: "missing stats", path: "/api/pet-action", user: "t2_a", body: map[string]any{"action": "feed"}, want: http.StatusBadRequest, wantMsg: "Missing action or stats"},
		{name: "dead pet", path: "/api/pet-action", user: "t2_a", body: map[string]any{"action": "feed", "currentStats": pet.StatSnapshot{Hunger: 50, Cleanliness: 50, Energy: 50}}, want: http.StatusConflict, wantMsg: "Pet is dead"},
		{name: "missing announcement message", path: "/api/reddit-update", user: "t2_a", body: map[string]any{"action": "feed"}, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := "GET"
			if tt.body != nil {
				method = "POST"
			}
			req := newReq(t, ts.URL, method, tt.path, tt.user, tt.body)
			if tt.noInstance {
				req.Header.Del("X-Pet-Instance-ID")
			}
			st, body := send(t, req)
			if st != tt.want {
				t.Fatalf("status=%d want %d body=%s", st, tt.want, body)
			}
			if tt.wantMsg != "" {
				var out stateBody
				mustDecode(t, body, &out)
				if out.Status != "error" || out.Message != tt.wantMsg {
					t.Fatalf("unexpected body: %s", body)
				}
			}
		})
	}
}

func TestHTTP_InstanceFromQuery(t *testing.T) {
	ts := newServer(t, router.Options{})

	req := newReq(t, ts.URL, "GET", "/api/pet-state?instance=t3_other", "t2_a", nil)
	req.Header.Del("X-Pet-Instance-ID")
	if st, body := send(t, req); st != http.StatusOK {
		t.Fatalf("expected 200 with query instance, got %d %s", st, body)
	}
}

func TestHTTP_LastWriteWins(t *testing.T) {
	ts := newServer(t, router.Options{})

	base := pet.StatSnapshot{Health: 90, Hunger: 60, Cleanliness: 60, Energy: 60, Happiness: 60, Age: 5}
	a := pet.Decay(base)
	b := pet.Decay(base)
	b.Happiness = 10

	for _, w := range []struct {
		user  string
		stats pet.StatSnapshot
	}{{"t2_a", a}, {"t2_b", b}} {
		if st, body := doReq(t, ts.URL, "POST", "/api/pet-state", w.user, map[string]any{"stats": w.stats, "alive": true}); st != http.StatusOK {
			t.Fatalf("write: %d %s", st, body)
		}
	}

	_, body := doReq(t, ts.URL, "GET", "/api/pet-state", "t2_c", nil)
	var out stateBody
	mustDecode(t, body, &out)
	if out.Stats == nil || *out.Stats != b {
		t.Fatalf("expected second write exactly, got %s", body)
	}
}

func TestHTTP_CommunityLimitAndInstances(t *testing.T) {
	ts := newServer(t, router.Options{CommunityLogWindow: 5})

	for i := 0; i < 8; i++ {
		if st, body := doReq(t, ts.URL, "POST", "/api/pet-action", "t2_a", map[string]any{"action": "talk", "currentStats": pet.Birth()}); st != http.StatusOK {
			t.Fatalf("action %d: %d %s", i, st, body)
		}
	}

	_, body := doReq(t, ts.URL, "GET", "/api/community-actions?limit=3", "t2_a", nil)
	var feed feedBody
	mustDecode(t, body, &feed)
	if len(feed.Actions) != 3 || feed.TotalActions != 8 {
		t.Fatalf("unexpected feed: %s", body)
	}
	for i := 1; i < len(feed.Actions); i++ {
		if feed.Actions[i-1].Timestamp < feed.Actions[i].Timestamp {
			t.Fatalf("feed must be newest first: %s", body)
		}
	}

	// la ventana retiene 5 aunque se pidan más
	_, body = doReq(t, ts.URL, "GET", "/api/community-actions?limit=50", "t2_a", nil)
	mustDecode(t, body, &feed)
	if len(feed.Actions) != 5 {
		t.Fatalf("window not applied: %d", len(feed.Actions))
	}

	// otra instancia no ve nada
	req := newReq(t, ts.URL, "GET", "/api/community-actions", "t2_a", nil)
	req.Header.Set("X-Pet-Instance-ID", "t3_other")
	_, body = send(t, req)
	mustDecode(t, body, &feed)
	if len(feed.Actions) != 0 || feed.TotalActions != 0 {
		t.Fatalf("instances leaked: %s", body)
	}
}

type recordingAnnouncer struct {
	mu   sync.Mutex
	seen []announcements.Announcement
}

func (a *recordingAnnouncer) Announce(ctx context.Context, ann announcements.Announcement) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seen = append(a.seen, ann)
	return errors.New("channel unavailable")
}

func TestHTTP_Announcements(t *testing.T) {
	ann := &recordingAnnouncer{}
	ts := newServer(t, router.Options{Announcer: ann})

	// el canal falla pero la respuesta es success
	st, body := doReq(t, ts.URL, "POST", "/api/reddit-update", "t2_a", map[string]any{
		"action":  "death",
		"message": "Community pet lived 3 minutes before going to pet heaven 💀",
	})
	if st != http.StatusOK {
		t.Fatalf("announce: %d %s", st, body)
	}

	st, body = doReq(t, ts.URL, "GET", "/api/announcements", "t2_a", nil)
	var list []struct {
		Action   string `json:"action"`
		Username string `json:"username"`
	}
	mustDecode(t, body, &list)
	if st != http.StatusOK || len(list) != 1 || list[0].Action != "death" {
		t.Fatalf("unexpected list: %d %s", st, body)
	}

	ann.mu.Lock()
	defer ann.mu.Unlock()
	if len(ann.seen) != 1 || ann.seen[0].InstanceID != instanceID {
		t.Fatalf("announcer not called: %+v", ann.seen)
	}
}

func TestHTTP_SQLiteBackend(t *testing.T) {
	db, err := sqlitestore.Open(filepath.Join(t.TempDir(), "pet.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ts := newServer(t, router.Options{SQLiteDB: db})

	if st, body := doReq(t, ts.URL, "POST", "/api/pet-restart", "t2_a", map[string]any{}); st != http.StatusOK {
		t.Fatalf("restart: %d %s", st, body)
	}
	_, body := doReq(t, ts.URL, "GET", "/api/pet-state", "t2_a", nil)
	var out stateBody
	mustDecode(t, body, &out)
	if out.Stats == nil || *out.Stats != pet.Birth() {
		t.Fatalf("unexpected state: %s", body)
	}

	_, body = doReq(t, ts.URL, "GET", "/api/community-actions", "t2_a", nil)
	var feed feedBody
	mustDecode(t, body, &feed)
	if feed.TotalActions != 1 || feed.Actions[0].Action != "restart" {
		t.Fatalf("restart not in feed: %s", body)
	}
}

func TestHealth(t *testing.T) {
	ts := newServer(t, router.Options{})

	res, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", res.StatusCode)
	}
}

// -------------------------
// helpers
// -------------------------

func newReq(t *testing.T, baseURL, method, path, debugUserID string, body any) *http.Request {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Pet-Instance-ID", instanceID)
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}
	return req
}

func send(t *testing.T, req *http.Request) (int, []byte) {
	t.Helper()

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()
	return send(t, newReq(t, baseURL, method, path, debugUserID, body))
}

func mustDecode(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decode %s: %v", string(body), err)
	}
}
