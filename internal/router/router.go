package router

import (
	"database/sql"
	"net/http"

	_ "community-pet/docs"
	mem "community-pet/internal/adapters/storage/memory"
	pg "community-pet/internal/adapters/storage/postgres"
	sqlitestore "community-pet/internal/adapters/storage/sqlite"
	"community-pet/internal/domain/announcements"
	"community-pet/internal/domain/community"
	"community-pet/internal/domain/sharedstate"
	"community-pet/internal/middleware"
	"community-pet/internal/platform/logger"
	"community-pet/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	Logger logger.Logger

	// Puede ser nil: los avisos solo se guardan.
	Announcer announcements.Announcer

	// Storage: Postgres si viene, si no SQLite, si no in-memory.
	PostgresDB *sql.DB
	SQLiteDB   *sql.DB

	// Entradas del feed que se retienen por instancia (0 => default).
	CommunityLogWindow int
}

type repos struct {
	state         sharedstate.Repository
	community     community.Repository
	announcements announcements.Repository
}

func buildRepos(opts Options, window int) repos {
	switch {
	case opts.PostgresDB != nil:
		return repos{
			state:         pg.NewPetStateRepo(opts.PostgresDB),
			community:     pg.NewCommunityRepo(opts.PostgresDB, window),
			announcements: pg.NewAnnouncementsRepo(opts.PostgresDB),
		}
	case opts.SQLiteDB != nil:
		return repos{
			state:         sqlitestore.NewPetStateRepo(opts.SQLiteDB),
			community:     sqlitestore.NewCommunityRepo(opts.SQLiteDB, window),
			announcements: sqlitestore.NewAnnouncementsRepo(opts.SQLiteDB),
		}
	default:
		return repos{
			state:         mem.NewPetStateRepo(),
			community:     mem.NewCommunityRepo(window),
			announcements: mem.NewAnnouncementRepo(),
		}
	}
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	window := opts.CommunityLogWindow
	if window <= 0 {
		window = community.DefaultWindow
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLog(log))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	rp := buildRepos(opts, window)

	// Services por módulo
	stateSvc := sharedstate.NewService(rp.state, log.With(map[string]any{"module": "sharedstate"}))
	communitySvc := community.NewService(rp.community, log.With(map[string]any{"module": "community"}))
	announceSvc := announcements.NewService(rp.announcements, opts.Announcer, log.With(map[string]any{"module": "announcements"}))

	// Todo /api exige instancia + identidad
	r.Group(func(api chi.Router) {
		api.Use(middleware.HostContext)

		sharedstate.RegisterRoutes(api, stateSvc, communitySvc, log)
		community.RegisterRoutes(api, communitySvc)
		announcements.RegisterRoutes(api, announceSvc)
	})

	return r
}
