package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"community-pet/internal/adapters/announce/webhook"
	"community-pet/internal/adapters/auth/hostiam"
	pg "community-pet/internal/adapters/storage/postgres"
	sqlitestore "community-pet/internal/adapters/storage/sqlite"
	"community-pet/internal/platform/config"
	"community-pet/internal/platform/logger"
	"community-pet/internal/ports/auth"
	"community-pet/internal/router"
)

// @title Community Pet API
// @version 1.0
// @description Estado compartido de la mascota comunitaria: acciones, sincronización y feed.
// @BasePath /
func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		logger.NewFromEnv().Error("load config", map[string]any{"err": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})

	opts := router.Options{
		Logger:             log,
		CommunityLogWindow: cfg.CommunityLogWindow,
	}

	var db *sql.DB
	switch {
	case cfg.DBDSN != "":
		db, err = pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("open postgres", map[string]any{"err": err})
			os.Exit(1)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = pg.EnsureSchema(ctx, db)
		cancel()
		if err != nil {
			log.Error("postgres schema", map[string]any{"err": err})
			os.Exit(1)
		}
		opts.PostgresDB = db
		log.Info("storage: postgres", nil)
	case cfg.SQLitePath != "":
		db, err = sqlitestore.Open(cfg.SQLitePath)
		if err != nil {
			log.Error("open sqlite", map[string]any{"err": err, "path": cfg.SQLitePath})
			os.Exit(1)
		}
		opts.SQLiteDB = db
		log.Info("storage: sqlite", map[string]any{"path": cfg.SQLitePath})
	default:
		log.Warn("storage: in-memory, state is lost on restart", nil)
	}
	if db != nil {
		defer db.Close()
	}

	if cfg.AnnounceWebhookURL != "" {
		opts.Announcer = webhook.New(webhook.Config{
			URL:     cfg.AnnounceWebhookURL,
			Timeout: cfg.AnnounceTimeout,
		})
	}

	opts.AuthVerifier = newVerifier(cfg.HostIAM, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting server", map[string]any{"addr": srv.Addr})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"err": err})
		os.Exit(1)
	}
}

// newVerifier devuelve nil (modo dev con X-Debug-User-ID) si el IAM del
// host no está configurado.
func newVerifier(cfg config.HostIAM, log logger.Logger) auth.AuthVerifier {
	if cfg.BaseURL == "" || cfg.APIKey == "" {
		log.Warn("host iam not configured, accepting X-Debug-User-ID", nil)
		return nil
	}
	c, err := hostiam.NewClient(hostiam.Config{
		BaseURL:      cfg.BaseURL,
		APIKey:       cfg.APIKey,
		APIKeyHeader: cfg.APIKeyHeader,
		Timeout:      cfg.Timeout,
	})
	if err != nil {
		log.Error("host iam client", map[string]any{"err": err})
		os.Exit(1)
	}
	return hostiam.NewVerifier(c)
}
