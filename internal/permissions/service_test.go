package permissions

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/echnavi/charge-admin-backend/pkg/db/models"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:permissions_test?mode=memory&cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Permission{}, &models.UserAgency{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	for _, table := range []string{"m_permission", "m_user_agency"} {
		if err := conn.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("failed to reset %s: %v", table, err)
		}
	}

	names := []string{"owner", "admin", "manager", "lead", "operator", "viewer", "guest"}
	for i, name := range names {
		if err := conn.Create(&models.Permission{PermissionID: i + 1, PermissionName: name}).Error; err != nil {
			t.Fatalf("failed to seed permission: %v", err)
		}
	}

	svc, err := NewService(ServiceParams{Repo: NewRepository(conn)})
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}
	return svc, conn
}

func ids(rows []PermissionDTO) []int {
	out := make([]int, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.PermissionID)
	}
	return out
}

func equal(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestListAgencyCategoryGetsFixedBand(t *testing.T) {
	svc, _ := newTestService(t)

	category := 4
	rows, err := svc.List(context.Background(), ListRequest{UserCategory: &category})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equal(ids(rows), []int{2, 3, 4, 5, 6, 7}) {
		t.Fatalf("unexpected ids %v", ids(rows))
	}
}

func TestListCapsAtCallersLevel(t *testing.T) {
	svc, conn := newTestService(t)
	conn.Create(&models.UserAgency{UserID: 42, AgencyID: 1, Permission: 4})

	userID := int64(42)
	rows, err := svc.List(context.Background(), ListRequest{UserID: &userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equal(ids(rows), []int{2, 3, 4}) {
		t.Fatalf("unexpected ids %v", ids(rows))
	}
}

func TestListUnknownUserExcludesOwnerOnly(t *testing.T) {
	svc, _ := newTestService(t)

	userID := int64(999)
	rows, err := svc.List(context.Background(), ListRequest{UserID: &userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equal(ids(rows), []int{2, 3, 4, 5, 6, 7}) {
		t.Fatalf("unexpected ids %v", ids(rows))
	}
}

func TestListWithoutScopeReturnsEverything(t *testing.T) {
	svc, _ := newTestService(t)

	rows, err := svc.List(context.Background(), ListRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equal(ids(rows), []int{1, 2, 3, 4, 5, 6, 7}) {
		t.Fatalf("unexpected ids %v", ids(rows))
	}
}
