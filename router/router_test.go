package router

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/goccy/go-json"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lunarweave/modctl/config"
	"github.com/lunarweave/modctl/graphql"
	"github.com/lunarweave/modctl/internal/models"
	"github.com/lunarweave/modctl/modules"
	"github.com/lunarweave/modctl/rewrite"
	"github.com/lunarweave/modctl/settings"
)

const testToken = "test-token"

type testHarness struct {
	router    *gin.Engine
	registry  *modules.Registry
	store     *settings.Store
	scheduler *rewrite.Scheduler
	engine    *graphql.Engine
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()
	log.SetHandler(discard.New())
	gin.SetMode(gin.TestMode)

	cfg, err := config.NewAtPath(filepath.Join(t.TempDir(), "config.yml"))
	if err != nil {
		t.Fatalf("failed to build test configuration: %v", err)
	}
	cfg.AuthenticationToken = testToken
	cfg.Api.Docs.Enabled = false
	config.Set(cfg)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.ModuleState{}, &models.SettingValue{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	registry := modules.NewRegistry()
	if err := modules.RegisterDefaults(registry); err != nil {
		t.Fatalf("failed to register default modules: %v", err)
	}

	h := &testHarness{
		registry:  registry,
		store:     settings.NewStore(db),
		scheduler: rewrite.NewScheduler(),
		engine:    graphql.NewEngine(),
	}
	h.router = Configure(registry, h.store, settings.NewNormalizer(), h.scheduler, h.engine)
	return h
}

func (h *testHarness) request(t *testing.T, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}

	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

func (h *testHarness) moduleItem(t *testing.T, id string) ModuleItem {
	t.Helper()
	w := h.request(t, http.MethodGet, "/api/modules/"+id, "", false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 fetching module %s, got %d: %s", id, w.Code, w.Body.String())
	}
	var item ModuleItem
	decodeJSON(t, w, &item)
	return item
}
