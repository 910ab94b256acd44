package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/securefront/workforce-backend-go/internal/pkg/database"
	"github.com/securefront/workforce-backend-go/internal/repository/postgresql"
)

// TestDatabaseSetup holds a connection to the integration database.
type TestDatabaseSetup struct {
	DB    *database.DB
	Store *postgresql.DocumentStore
}

// NewTestDatabase connects to TEST_DATABASE_URL and prepares the schema.
// Tests are skipped when the variable is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, 5, 1)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	store := postgresql.NewDocumentStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		db.Close()
		t.Fatalf("failed to prepare schema: %v", err)
	}

	setup := &TestDatabaseSetup{DB: db, Store: store}
	if err := setup.Truncate(ctx); err != nil {
		db.Close()
		t.Fatalf("failed to truncate: %v", err)
	}
	t.Cleanup(setup.Close)
	return setup
}

// Truncate removes every stored document.
func (s *TestDatabaseSetup) Truncate(ctx context.Context) error {
	if _, err := s.DB.Exec(ctx, "TRUNCATE TABLE documents"); err != nil {
		return fmt.Errorf("failed to truncate documents: %w", err)
	}
	return nil
}

func (s *TestDatabaseSetup) Close() {
	s.DB.Close()
}
