package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/the-gaffer/internal/config"
	"github.com/riskibarqy/the-gaffer/internal/platform/logging"
)

func testConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		ServiceName:        "the-gaffer-api",
		HTTPAddr:           ":0",
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		CORSAllowedOrigins: []string{"*"},
		StorageDriver:      config.StorageMemory,
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		UploadMaxBytes:     1 << 20,
		ImageEditorWorkers: 1,
		ImageEditorTimeout: time.Second,
		ImageEditorJobTTL:  time.Minute,
	}
}

func TestNewHTTPServer_MemoryStorage(t *testing.T) {
	srv, cleanup, err := NewHTTPServer(testConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new http server: %v", err)
	}
	t.Cleanup(cleanup)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected healthz 200, got %d", rec.Code)
	}

	steps := []struct {
		path string
		body string
		want int
	}{
		{path: "/v1/media/edits", body: `{}`, want: http.StatusUnauthorized},
		{path: "/v1/onboarding/leagues", body: `{"name":"Guardiola","leagueName":"Study FC"}`, want: http.StatusCreated},
		{path: "/v1/regulations/accept", body: `{"checklist":[true,true,true]}`, want: http.StatusOK},
		{path: "/v1/media/edits", body: `{}`, want: http.StatusServiceUnavailable},
	}
	for _, step := range steps {
		req := httptest.NewRequest(http.MethodPost, step.path, strings.NewReader(step.body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Gaffer-Workspace", "ws-1")
		rec = httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, req)
		if rec.Code != step.want {
			t.Fatalf("%s: expected %d, got %d body=%s", step.path, step.want, rec.Code, rec.Body.String())
		}
	}
}

func TestNewHTTPServer_RejectsBadConfig(t *testing.T) {
	t.Run("empty addr", func(t *testing.T) {
		cfg := testConfig()
		cfg.HTTPAddr = ""
		if _, _, err := NewHTTPServer(cfg, logging.NewNop()); err == nil {
			t.Fatalf("expected error for empty addr")
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := testConfig()
		cfg.StorageDriver = "sqlite"
		if _, _, err := NewHTTPServer(cfg, logging.NewNop()); err == nil {
			t.Fatalf("expected error for unknown storage driver")
		}
	})
}
