package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Server es la configuración de cmd/api.
type Server struct {
	Port string `env:"PORT" envDefault:"8080"`

	// Storage: DB_DSN (postgres) tiene prioridad sobre SQLITE_PATH.
	// Sin ninguno de los dos se usa in-memory.
	DBDSN      string `env:"DB_DSN"`
	SQLitePath string `env:"SQLITE_PATH"`

	CommunityLogWindow int `env:"COMMUNITY_LOG_WINDOW" envDefault:"100"`

	AnnounceWebhookURL string        `env:"ANNOUNCE_WEBHOOK_URL"`
	AnnounceTimeout    time.Duration `env:"ANNOUNCE_TIMEOUT" envDefault:"5s"`

	HostIAM HostIAM
	Log     Log
}

type HostIAM struct {
	BaseURL      string        `env:"HOST_IAM_BASE_URL"`
	APIKey       string        `env:"HOST_IAM_API_KEY"`
	APIKeyHeader string        `env:"HOST_IAM_API_KEY_HEADER" envDefault:"X-Api-Key"`
	Timeout      time.Duration `env:"HOST_IAM_TIMEOUT" envDefault:"5s"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
	App    string `env:"APP_NAME" envDefault:"community-pet"`
}

// Client es la configuración de cmd/petctl (loop de sincronización).
type Client struct {
	APIURL     string `env:"PET_API_URL" envDefault:"http://localhost:8080"`
	InstanceID string `env:"PET_INSTANCE_ID"`
	UserID     string `env:"PET_USER_ID"`
	Username   string `env:"PET_USERNAME"`
	Token      string `env:"PET_TOKEN"`

	TickPeriod      time.Duration `env:"TICK_PERIOD" envDefault:"10s"`
	StatePollPeriod time.Duration `env:"STATE_POLL_PERIOD" envDefault:"15s"`
	FeedPollPeriod  time.Duration `env:"FEED_POLL_PERIOD" envDefault:"30s"`

	Log Log
}

// LoadDotEnv carga .env si existe. Un archivo ausente no es error.
func LoadDotEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load dotenv: %w", err)
	}
	return nil
}

// ParseEnv llena target (struct con tags env) desde variables de entorno.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func LoadServer() (Server, error) {
	if err := LoadDotEnv(); err != nil {
		return Server{}, err
	}
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	if cfg.CommunityLogWindow <= 0 {
		return Server{}, fmt.Errorf("COMMUNITY_LOG_WINDOW must be > 0, got %d", cfg.CommunityLogWindow)
	}
	return cfg, nil
}

func LoadClient() (Client, error) {
	if err := LoadDotEnv(); err != nil {
		return Client{}, err
	}
	var cfg Client
	if err := ParseEnv(&cfg); err != nil {
		return Client{}, err
	}
	for name, d := range map[string]time.Duration{
		"TICK_PERIOD":       cfg.TickPeriod,
		"STATE_POLL_PERIOD": cfg.StatePollPeriod,
		"FEED_POLL_PERIOD":  cfg.FeedPollPeriod,
	} {
		if d <= 0 {
			return Client{}, fmt.Errorf("%s must be > 0, got %s", name, d)
		}
	}
	return cfg, nil
}
