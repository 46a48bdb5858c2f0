package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"
	"github.com/riskibarqy/league-draft/internal/config"
	"github.com/riskibarqy/league-draft/internal/domain/draft"
	"github.com/riskibarqy/league-draft/internal/domain/roster"
	"github.com/riskibarqy/league-draft/internal/domain/waiver"
	"github.com/riskibarqy/league-draft/internal/infrastructure/account/anubis"
	"github.com/riskibarqy/league-draft/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/league-draft/internal/infrastructure/repository/postgres"
	redisstore "github.com/riskibarqy/league-draft/internal/infrastructure/repository/redis"
	"github.com/riskibarqy/league-draft/internal/interfaces/httpapi"
	"github.com/riskibarqy/league-draft/internal/platform/cache"
	"github.com/riskibarqy/league-draft/internal/platform/dburl"
	"github.com/riskibarqy/league-draft/internal/platform/logging"
	"github.com/riskibarqy/league-draft/internal/platform/resilience"
	"github.com/riskibarqy/league-draft/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// Server is the assembled API process. Close releases the draft timers and
// every backend connection opened by NewServer.
type Server struct {
	HTTP    *http.Server
	service *usecase.DraftService
	closers []func() error
}

type repositories struct {
	sessions draft.SessionRepository
	ledger   draft.Ledger
	roster   roster.Repository
	waivers  waiver.Repository
}

func NewServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	srv := &Server{}
	repos, err := srv.openRepositories(ctx, cfg, logger)
	if err != nil {
		_ = srv.Close()
		return nil, err
	}
	clocks, err := srv.openClockStore(ctx, cfg, logger)
	if err != nil {
		_ = srv.Close()
		return nil, err
	}

	var candidates *cache.Store
	if cfg.CacheEnabled {
		candidates = cache.NewStore(cfg.CacheTTL)
	}

	srv.service = usecase.NewDraftService(usecase.DraftServiceDeps{
		Sessions: repos.sessions,
		Ledger:   repos.ledger,
		Clocks:   clocks,
		Roster:   repos.roster,
		Waivers:  repos.waivers,
		Cache:    candidates,
		Logger:   logger,
	}, usecase.DraftServiceConfig{
		SnakeTurnDuration:  cfg.DraftSnakeTurnDuration,
		WaiverTurnDuration: cfg.DraftWaiverTurnDuration,
		HandoffWorkers:     cfg.DraftHandoffWorkers,
	})

	anubisClient := anubis.NewClient(
		&http.Client{Timeout: cfg.AnubisTimeout},
		anubis.Config{
			BaseURL:        cfg.AnubisBaseURL,
			IntrospectPath: cfg.AnubisIntrospectPath,
			AdminKey:       cfg.AnubisAdminKey,
			AdminRole:      cfg.AnubisAdminRole,
			CacheTTL:       cfg.AnubisCacheTTL,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.AnubisCircuitEnabled,
				FailureThreshold: cfg.AnubisCircuitFailureCount,
				OpenTimeout:      cfg.AnubisCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.AnubisCircuitHalfOpenMaxReq,
			},
		},
		logger,
	)

	handler := httpapi.NewHandler(srv.service, logger)
	router := httpapi.NewRouter(handler, anubisClient, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	srv.HTTP = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return srv, nil
}

func (s *Server) Close() error {
	if s.service != nil {
		s.service.Close()
	}

	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

func (s *Server) openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	if cfg.StoreBackend != config.StorePostgres {
		logger.Info("draft store ready", "backend", config.StoreMemory)
		return repositories{
			sessions: memory.NewDraftSessionRepository(),
			ledger:   memory.NewDraftLedger(),
			roster:   memory.NewRosterRepository(memory.SeedPlayers()),
			waivers:  memory.NewWaiverRepository(memory.SeedWaivers()),
		}, nil
	}

	db, err := openPostgres(cfg)
	if err != nil {
		return repositories{}, err
	}
	s.closers = append(s.closers, db.Close)

	if err := db.PingContext(ctx); err != nil {
		return repositories{}, fmt.Errorf("ping postgres: %w", err)
	}
	if err := postgres.BootstrapSeed(ctx, db); err != nil {
		return repositories{}, err
	}

	logger.Info("draft store ready", "backend", config.StorePostgres, "db_name", dburl.Name(cfg.DBURL))
	return repositories{
		sessions: postgres.NewDraftSessionRepository(db),
		ledger:   postgres.NewDraftLedger(db),
		roster:   postgres.NewRosterRepository(db),
		waivers:  postgres.NewWaiverRepository(db),
	}, nil
}

func openPostgres(cfg config.Config) (*sqlx.DB, error) {
	opts := []otelsql.Option{
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	}
	if name := dburl.Name(cfg.DBURL); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Open("postgres", dburl.Normalize(cfg.DBURL), opts...)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	return db, nil
}

func (s *Server) openClockStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (draft.ClockStore, error) {
	if cfg.ClockStore != config.ClockStoreRedis {
		return memory.NewClockStore(), nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	s.closers = append(s.closers, client.Close)

	store, err := redisstore.NewClockStore(ctx, redisstore.Config{Client: client, TTL: cfg.ClockStateTTL})
	if err != nil {
		return nil, fmt.Errorf("open redis clock store: %w", err)
	}

	logger.Info("clock store ready", "backend", config.ClockStoreRedis, "addr", cfg.RedisAddr)
	return store, nil
}
