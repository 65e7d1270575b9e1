package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// unsetenv deja la variable sin definir y la restaura al terminar el test.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		if err := os.Unsetenv(k); err != nil {
			t.Fatalf("unsetenv %s: %v", k, err)
		}
	}
}

// chdir cambia el directorio de trabajo y lo restaura al terminar el test
// (equivalente a testing.T.Chdir, no disponible antes de Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore chdir %s: %v", prev, err)
		}
	})
}

func TestLoadServer_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	unsetenv(t, "PORT", "COMMUNITY_LOG_WINDOW", "APP_NAME")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("port=%q want 8080", cfg.Port)
	}
	if cfg.CommunityLogWindow != 100 {
		t.Fatalf("window=%d want 100", cfg.CommunityLogWindow)
	}
	if cfg.Log.App != "community-pet" {
		t.Fatalf("app=%q", cfg.Log.App)
	}
}

func TestLoadServer_RejectsZeroWindow(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("COMMUNITY_LOG_WINDOW", "0")

	if _, err := LoadServer(); err == nil {
		t.Fatalf("expected error for zero window")
	}
}

func TestLoadClient_DotEnvAndDurations(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	unsetenv(t, "PET_INSTANCE_ID", "STATE_POLL_PERIOD", "TICK_PERIOD", "FEED_POLL_PERIOD")

	env := []byte("PET_INSTANCE_ID=post-42\nSTATE_POLL_PERIOD=12s\n")
	if err := os.WriteFile(filepath.Join(dir, ".env"), env, 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg, err := LoadClient()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.InstanceID != "post-42" {
		t.Fatalf("instance=%q want post-42", cfg.InstanceID)
	}
	if cfg.StatePollPeriod != 12*time.Second {
		t.Fatalf("state poll=%s want 12s", cfg.StatePollPeriod)
	}
	if cfg.TickPeriod != 10*time.Second || cfg.FeedPollPeriod != 30*time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadClient_RejectsNonPositivePeriod(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TICK_PERIOD", "-1s")

	if _, err := LoadClient(); err == nil {
		t.Fatalf("expected error for negative tick period")
	}
}
