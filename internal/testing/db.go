// Package testing provides test helpers shared across fundadvisor packages.
package testing

import (
	"path/filepath"
	"testing"

	"github.com/aristath/fundadvisor/internal/database"
)

// NewTestDB creates a migrated SQLite database in the test's temp directory.
// The connection is closed when the test finishes.
//
// name selects the schema: "funds" applies funds_schema.sql, unknown names
// create an empty database.
func NewTestDB(t *testing.T, name string) *database.DB {
	t.Helper()

	db, err := database.New(database.Config{
		Path:    filepath.Join(t.TempDir(), name+".db"),
		Profile: database.ProfileStandard,
		Name:    name,
	})
	if err != nil {
		t.Fatalf("Failed to create test database %s: %v", name, err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("Failed to migrate test database %s: %v", name, err)
	}

	return db
}

// SampleDatasetPath returns the path of data/funds_sample.csv relative to a
// package directory depth levels below the repository root.
func SampleDatasetPath(depth int) string {
	parts := make([]string, 0, depth+2)
	for i := 0; i < depth; i++ {
		parts = append(parts, "..")
	}
	return filepath.Join(append(parts, "data", "funds_sample.csv")...)
}
