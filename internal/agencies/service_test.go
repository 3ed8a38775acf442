package agencies

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/echnavi/charge-admin-backend/pkg/db"
	"github.com/echnavi/charge-admin-backend/pkg/db/models"
	pkgerrors "github.com/echnavi/charge-admin-backend/pkg/errors"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:agencies_test?mode=memory&cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Agency{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if err := conn.Exec("DELETE FROM m_agency").Error; err != nil {
		t.Fatalf("failed to reset table: %v", err)
	}

	svc, err := NewService(ServiceParams{
		DB:   db.NewFromGorm(conn),
		Repo: NewRepository(conn),
	})
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}
	return svc, conn
}

func TestRegisterMintsNumberAndAudit(t *testing.T) {
	svc, conn := newTestService(t)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Agency:     "EchNavi East",
		ZipCode:    "150-0001",
		Prefecture: "東京都",
		City:       "渋谷区",
		Address:    "神宮前1-1-1",
		Country:    "Japan",
		Telephone:  "+81312345678",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.AppAgencyNumber) != agencyNumberLength {
		t.Fatalf("expected %d-digit number, got %q", agencyNumberLength, resp.AppAgencyNumber)
	}

	var row models.Agency
	if err := conn.Where("agency_id = ?", resp.AgencyID).First(&row).Error; err != nil {
		t.Fatalf("row not persisted: %v", err)
	}
	if row.CreateUser != "admin" || row.UpdateUser != "admin" {
		t.Fatalf("unexpected audit actors %q/%q", row.CreateUser, row.UpdateUser)
	}
	if row.CreateDate == "" {
		t.Fatal("create_date must be stamped")
	}
	if row.Status != 1 {
		t.Fatalf("new agencies start active, got %d", row.Status)
	}
}

func TestListReturnsAllRows(t *testing.T) {
	svc, conn := newTestService(t)

	seed := []models.Agency{
		{AppAgencyNumber: "101", Company: "Alpha", Status: 1},
		{AppAgencyNumber: "102", Company: "Beta", Status: 2},
	}
	for i := range seed {
		if err := conn.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	rows, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 agencies, got %d", len(rows))
	}
	// Inactive rows stay visible; the dashboard filters on status itself.
	if rows[1].Status != 2 {
		t.Fatalf("expected inactive row, got status %d", rows[1].Status)
	}
}

func TestUpdateRewritesRowAndStampsAudit(t *testing.T) {
	svc, conn := newTestService(t)

	row := models.Agency{AppAgencyNumber: "103", Company: "Before", CreateUser: "admin", Status: 1}
	if err := conn.Create(&row).Error; err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	status := 2
	updated, err := svc.Update(context.Background(), UpdateRequest{
		AgencyID:        row.AgencyID,
		AppAgencyNumber: "103",
		Company:         "After",
		ZipCode:         "150-0002",
		Prefecture:      "東京都",
		City:            "渋谷区",
		Address:         "桜丘町2-2-2",
		Country:         "Japan",
		Telephone:       "+81312340000",
		Status:          &status,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Company != "After" || updated.Status != 2 {
		t.Fatalf("unexpected result %+v", updated)
	}

	var persisted models.Agency
	if err := conn.Where("agency_id = ?", row.AgencyID).First(&persisted).Error; err != nil {
		t.Fatalf("row missing: %v", err)
	}
	if persisted.UpdateUser != "Dashboard" {
		t.Fatalf("update_user must be Dashboard, got %q", persisted.UpdateUser)
	}
	if persisted.UpdateDate == "" {
		t.Fatal("update_date must be stamped")
	}
}

func TestUpdateUnknownAgencyIsNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	status := 1
	_, err := svc.Update(context.Background(), UpdateRequest{
		AgencyID:        9999,
		AppAgencyNumber: "999",
		Company:         "Ghost",
		ZipCode:         "x",
		Prefecture:      "x",
		City:            "x",
		Address:         "x",
		Country:         "x",
		Telephone:       "x",
		Status:          &status,
	})
	if err == nil {
		t.Fatal("expected not found error")
	}
	if pkgerrors.CodeOf(err) != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}
}
