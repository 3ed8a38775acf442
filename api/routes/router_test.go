package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/echnavi/charge-admin-backend/internal/permissions"
	"github.com/echnavi/charge-admin-backend/pkg/config"
	"github.com/echnavi/charge-admin-backend/pkg/db/models"
	"github.com/echnavi/charge-admin-backend/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		AuthRateLimit: config.AuthRateLimitConfig{
			LoginWindow:     time.Minute,
			LoginPhoneLimit: 5,
			LoginIPLimit:    20,
		},
	}
}

func newTestRouter(t *testing.T, permissionService *permissions.Service) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		testConfig(),
		logg,
		nil, // db
		nil, // redis
		nil, // metrics
		nil, // identity
		nil, // agencies
		nil, // corporates
		nil, // users
		nil, // stations
		nil, // powersupplies
		nil, // charges
		permissionService,
	)
}

func TestHelloProbe(t *testing.T) {
	router := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/dashb/user", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for hello probe got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "Hello world!") {
		t.Fatalf("unexpected hello body %q", resp.Body.String())
	}
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for live got %d", resp.Code)
	}
	if got := resp.Header().Get("X-EchNavi-Env"); got != "test" {
		t.Fatalf("unexpected env header %q", got)
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	router := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/dashb/does_not_exist", strings.NewReader("{}"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route got %d", resp.Code)
	}
}

func TestNilServiceAnswers500(t *testing.T) {
	router := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/dashb/login", strings.NewReader(`{"userId":1,"password":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for nil service got %d", resp.Code)
	}
}

func TestGetPermissionEndToEnd(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file:routes_test?mode=memory&cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Permission{}, &models.UserAgency{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if err := conn.Exec("DELETE FROM m_permission").Error; err != nil {
		t.Fatalf("failed to reset: %v", err)
	}
	for i, name := range []string{"owner", "admin", "manager"} {
		if err := conn.Create(&models.Permission{PermissionID: i + 1, PermissionName: name}).Error; err != nil {
			t.Fatalf("failed to seed permission: %v", err)
		}
	}
	svc, err := permissions.NewService(permissions.ServiceParams{Repo: permissions.NewRepository(conn)})
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}

	router := newTestRouter(t, svc)
	req := httptest.NewRequest(http.MethodPost, "/dashb/get_permission", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", resp.Code, resp.Body.String())
	}

	var body struct {
		ResultCode string                      `json:"resultCode"`
		Message    string                      `json:"message"`
		Data       []permissions.PermissionDTO `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if body.ResultCode != "success" {
		t.Fatalf("unexpected resultCode %q", body.ResultCode)
	}
	if body.Message != "権限情報を取得しました。" {
		t.Fatalf("unexpected message %q", body.Message)
	}
	if len(body.Data) != 3 {
		t.Fatalf("expected 3 permissions got %d", len(body.Data))
	}
}
