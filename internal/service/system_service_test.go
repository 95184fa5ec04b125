package service_test

import (
	"context"
	"testing"

	"github.com/ndewijer/Author-Ledger-Backend/internal/testutil"
	"github.com/ndewijer/Author-Ledger-Backend/internal/version"
)

func TestSystemService(t *testing.T) {
	ctx := context.Background()

	t.Run("healthy database", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSystemService(t, db)

		if err := svc.CheckHealth(ctx); err != nil {
			t.Errorf("CheckHealth() returned unexpected error: %v", err)
		}
	})

	t.Run("reports app and schema version", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSystemService(t, db)

		info, err := svc.CheckVersion(ctx)
		if err != nil {
			t.Fatalf("CheckVersion() returned unexpected error: %v", err)
		}
		if info.AppVersion != version.Version {
			t.Errorf("Expected app version '%s', got '%s'", version.Version, info.AppVersion)
		}
		if info.DbVersion != "1" {
			t.Errorf("Expected db version '1', got '%s'", info.DbVersion)
		}
	})

	t.Run("closed database is unhealthy", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSystemService(t, db)

		db.Close()

		if err := svc.CheckHealth(ctx); err == nil {
			t.Error("Expected error when database is closed, got nil")
		}
	})
}
