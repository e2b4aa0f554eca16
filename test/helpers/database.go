package helpers

import (
	"testing"

	"gorm.io/gorm"

	"github.com/andrescamacho/mekanik-go/internal/infrastructure/database"
)

// NewTestDB creates a migrated SQLite in-memory database that is closed when
// the test ends
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewTestConnection()
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	t.Cleanup(func() {
		_ = database.Close(db)
	})

	return db
}
