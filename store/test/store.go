package test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hrygo/lingotime/internal/profile"
	"github.com/hrygo/lingotime/store"
	"github.com/hrygo/lingotime/store/db"
)

// getDriverFromEnv returns the driver under test: sqlite unless DRIVER says
// otherwise.
func getDriverFromEnv() string {
	if driver := os.Getenv("DRIVER"); driver != "" {
		return driver
	}
	return "sqlite"
}

// NewTestingStore opens a migrated store for one test. SQLite uses a file in
// the test's temp dir; PostgreSQL needs POSTGRES_TEST_DSN.
func NewTestingStore(ctx context.Context, t *testing.T) *store.Store {
	t.Helper()

	p := &profile.Profile{Mode: "dev", Driver: getDriverFromEnv()}
	switch p.Driver {
	case "sqlite":
		p.DSN = filepath.Join(t.TempDir(), "lingotime_test.db")
	case "postgres":
		p.DSN = os.Getenv("POSTGRES_TEST_DSN")
		if p.DSN == "" {
			t.Skip("POSTGRES_TEST_DSN is not set")
		}
	}

	driver, err := db.NewDBDriver(p)
	if err != nil {
		t.Fatalf("failed to create db driver: %v", err)
	}
	ts := store.New(driver, p)
	if err := ts.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() {
		if p.Driver == "postgres" {
			_, _ = driver.GetDB().ExecContext(context.Background(), "DROP TABLE IF EXISTS parse_record")
		}
		ts.Close()
	})
	return ts
}
