package config

import (
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/league-draft/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StoreBackend != StoreMemory || cfg.ClockStore != ClockStoreMemory {
		t.Fatalf("expected in-memory backends by default, got store=%s clock=%s", cfg.StoreBackend, cfg.ClockStore)
	}
	if cfg.DraftSnakeTurnDuration != 150*time.Second {
		t.Fatalf("unexpected snake turn duration: %s", cfg.DraftSnakeTurnDuration)
	}
	if cfg.DraftWaiverTurnDuration != 180*time.Second {
		t.Fatalf("unexpected waiver turn duration: %s", cfg.DraftWaiverTurnDuration)
	}
	if cfg.DraftHandoffWorkers != 4 {
		t.Fatalf("unexpected hand-off workers: %d", cfg.DraftHandoffWorkers)
	}
	if cfg.AnubisAdminRole != "admin" {
		t.Fatalf("unexpected admin role: %q", cfg.AnubisAdminRole)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
	})
}

func TestLoad_StoreBackendValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("STORE_BACKEND", "sqlite")
		_, err := Load()
		if err == nil || !strings.Contains(err.Error(), "STORE_BACKEND") {
			t.Fatalf("expected STORE_BACKEND error, got %v", err)
		}
	})

	t.Run("postgres with pool sizes", func(t *testing.T) {
		t.Setenv("STORE_BACKEND", "Postgres")
		t.Setenv("DB_URL", "postgres://draft:draft@db:5432/league_draft")
		t.Setenv("DB_MAX_OPEN_CONNS", "20")
		t.Setenv("DB_MAX_IDLE_CONNS", "2")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StoreBackend != StorePostgres || cfg.DBMaxOpenConns != 20 || cfg.DBMaxIdleConns != 2 {
			t.Fatalf("unexpected postgres config: %+v", cfg)
		}
	})

	t.Run("open conns must be positive", func(t *testing.T) {
		t.Setenv("DB_MAX_OPEN_CONNS", "0")
		_, err := Load()
		if err == nil || err.Error() != "DB_MAX_OPEN_CONNS must be >= 1" {
			t.Fatalf("expected DB_MAX_OPEN_CONNS error, got %v", err)
		}
	})
}

func TestLoad_ClockStoreParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("redis", func(t *testing.T) {
		t.Setenv("CLOCK_STORE", "redis")
		t.Setenv("REDIS_ADDR", "cache:6379")
		t.Setenv("REDIS_DB", "3")
		t.Setenv("CLOCK_STATE_TTL", "2h")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.ClockStore != ClockStoreRedis || cfg.RedisAddr != "cache:6379" || cfg.RedisDB != 3 {
			t.Fatalf("unexpected redis config: %+v", cfg)
		}
		if cfg.ClockStateTTL != 2*time.Hour {
			t.Fatalf("unexpected clock state ttl: %s", cfg.ClockStateTTL)
		}
	})

	t.Run("invalid redis db", func(t *testing.T) {
		t.Setenv("REDIS_DB", "-1")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for negative REDIS_DB")
		}
	})

	t.Run("unknown clock store", func(t *testing.T) {
		t.Setenv("CLOCK_STORE", "etcd")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown CLOCK_STORE")
		}
	})
}

func TestLoad_DraftDurations(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("custom values", func(t *testing.T) {
		t.Setenv("DRAFT_SNAKE_TURN_DURATION", "90s")
		t.Setenv("DRAFT_WAIVER_TURN_DURATION", "2m")
		t.Setenv("DRAFT_HANDOFF_WORKERS", "8")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.DraftSnakeTurnDuration != 90*time.Second || cfg.DraftWaiverTurnDuration != 2*time.Minute {
			t.Fatalf("unexpected turn durations: %s %s", cfg.DraftSnakeTurnDuration, cfg.DraftWaiverTurnDuration)
		}
		if cfg.DraftHandoffWorkers != 8 {
			t.Fatalf("unexpected hand-off workers: %d", cfg.DraftHandoffWorkers)
		}
	})

	t.Run("non positive duration", func(t *testing.T) {
		t.Setenv("DRAFT_SNAKE_TURN_DURATION", "0s")
		_, err := Load()
		if err == nil || err.Error() != "DRAFT_SNAKE_TURN_DURATION must be > 0" {
			t.Fatalf("expected duration error, got %v", err)
		}
	})

	t.Run("unparseable duration", func(t *testing.T) {
		t.Setenv("DRAFT_SNAKE_TURN_DURATION", "soon")
		_, err := Load()
		if err == nil || !strings.HasPrefix(err.Error(), "parse DRAFT_SNAKE_TURN_DURATION:") {
			t.Fatalf("expected parse error, got %v", err)
		}
	})
}

func TestLoad_AnubisCircuitValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("ANUBIS_CIRCUIT_FAILURE_COUNT", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for ANUBIS_CIRCUIT_FAILURE_COUNT=0")
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "league-draft-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "league-draft-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" || cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("only separators", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " , ,")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for empty CORS origins")
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "")
		t.Setenv("CACHE_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheTTL != 5*time.Second {
			t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})
}
