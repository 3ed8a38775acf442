package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/echnavi/charge-admin-backend/internal/identity"
	"github.com/echnavi/charge-admin-backend/pkg/config"
	"github.com/echnavi/charge-admin-backend/pkg/db/models"
	"github.com/echnavi/charge-admin-backend/pkg/enums"
	"github.com/echnavi/charge-admin-backend/pkg/security"
)

func newIdentityService(t *testing.T) (*identity.Service, *gorm.DB) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:controllers_identity_test?mode=memory&cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}, &models.UserAdmin{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	for _, table := range []string{"m_user", "m_user_admin"} {
		if err := conn.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("failed to reset %s: %v", table, err)
		}
	}

	svc, err := identity.NewService(identity.ServiceParams{
		Repo:     identity.NewRepository(conn),
		Identity: &noopIdentity{},
		Logger:   testLogger(),
	})
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}
	return svc, conn
}

func seedAdminCredential(t *testing.T, conn *gorm.DB, password string) int64 {
	t.Helper()
	user := models.User{
		EchNaviCode:   "ADMIN001",
		AppUserNumber: "3000000001",
		UserCategory:  enums.CategoryAdmin,
		LastName:      "管理",
		FirstName:     "者",
		Status:        enums.StatusActive,
	}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed admin user: %v", err)
	}
	hash, err := security.HashPassword(password, config.PasswordConfig{
		ArgonMemoryKB: 8 * 1024, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32,
	})
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := conn.Create(&models.UserAdmin{UserID: user.UserID, PasswordHash: hash}).Error; err != nil {
		t.Fatalf("failed to seed credential: %v", err)
	}
	return user.UserID
}

func TestAdminLoginUnknownUserSentinel(t *testing.T) {
	svc, _ := newIdentityService(t)

	resp := postJSON(t, AdminLogin(svc, testLogger()), `{"userId":42,"password":"secret"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	body := decodeEnvelope(t, resp)
	if body.Message != "User does not exist.[E001]" {
		t.Fatalf("unexpected message %q", body.Message)
	}
	if string(body.Data) != `""` {
		t.Fatalf("expected empty string data got %s", body.Data)
	}
}

func TestAdminLoginReturnsRowArray(t *testing.T) {
	svc, conn := newIdentityService(t)
	userID := seedAdminCredential(t, conn, "secret")

	resp := postJSON(t, AdminLogin(svc, testLogger()), fmt.Sprintf(`{"userId":%d,"password":"secret"}`, userID))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	body := decodeEnvelope(t, resp)
	if body.Message != "You can reset your password." {
		t.Fatalf("unexpected message %q", body.Message)
	}
	var rows []struct {
		UserID int64 `json:"user_id"`
	}
	if err := json.Unmarshal(body.Data, &rows); err != nil {
		t.Fatalf("data must be an array of rows: %v (%s)", err, body.Data)
	}
	if len(rows) != 1 || rows[0].UserID != userID {
		t.Fatalf("unexpected rows %s", body.Data)
	}
}

func TestAdminLoginRejectsMissingPassword(t *testing.T) {
	svc, _ := newIdentityService(t)

	resp := postJSON(t, AdminLogin(svc, testLogger()), `{"userId":42}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminResetCheckUnknownUserSentinel(t *testing.T) {
	svc, _ := newIdentityService(t)

	resp := postJSON(t, AdminResetCheck(svc, testLogger()), `{"app_user_number":"3000000001","password":"secret"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	body := decodeEnvelope(t, resp)
	if body.Message != "User does not exist.[E001]" {
		t.Fatalf("unexpected message %q", body.Message)
	}
}
