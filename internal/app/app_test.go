package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/league-draft/internal/config"
	"github.com/riskibarqy/league-draft/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		HTTPAddr:           ":0",
		StoreBackend:       config.StoreMemory,
		ClockStore:         config.ClockStoreMemory,
		CacheEnabled:       true,
		CacheTTL:           5 * time.Second,
		CORSAllowedOrigins: []string{"*"},
		AnubisBaseURL:      "http://127.0.0.1:1",
		AnubisAdminRole:    "admin",
	}
}

func TestNewServer_MemoryBackends(t *testing.T) {
	srv, err := NewServer(t.Context(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	t.Cleanup(func() {
		if err := srv.Close(); err != nil {
			t.Errorf("close server: %v", err)
		}
	})

	rec := httptest.NewRecorder()
	srv.HTTP.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected healthz 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.HTTP.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/drafts", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected drafts to require auth, got %d", rec.Code)
	}
}

func TestNewServer_RequiresAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	if _, err := NewServer(t.Context(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty http addr")
	}
}
