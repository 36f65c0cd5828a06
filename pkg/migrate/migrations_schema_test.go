package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sartorlabs/sartor-backend/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir invalid: %v", err)
	}
}

func TestTimersMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_timers.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS timers",
		"FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE",
		"FOREIGN KEY (tailor_id) REFERENCES users(id) ON DELETE CASCADE",
		"ON timers (client_id, tailor_id) WHERE end_time IS NULL",
		"CHECK (duration_minutes IS NULL OR duration_minutes >= 1)",
		"DROP TABLE IF EXISTS timers",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMeasurementsMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_measurements.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS measurements",
		"CHECK ((client_id IS NULL) <> (user_id IS NULL))",
		"CREATE UNIQUE INDEX IF NOT EXISTS uniq_measurements_client ON measurements (client_id)",
		"CREATE UNIQUE INDEX IF NOT EXISTS uniq_measurements_user ON measurements (user_id)",
		"DROP TABLE IF EXISTS measurements",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration file matching %q", pattern)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
