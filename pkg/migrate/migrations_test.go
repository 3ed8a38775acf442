package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/echnavi/charge-admin-backend/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir failed validation: %v", err)
	}
}

func TestBaselineMigrationContainsCoreTables(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_baseline_schema.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no baseline migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE m_user",
		"app_user_number TEXT NOT NULL UNIQUE",
		"CREATE TABLE m_powersupply",
		"app_powersupply_number TEXT NOT NULL UNIQUE",
		"CREATE TABLE t_charge_payment",
		"DROP TABLE m_user",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
