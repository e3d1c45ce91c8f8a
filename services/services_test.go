package services

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"costconsole/backend/database"
	"costconsole/backend/security"
)

func TestMain(m *testing.M) {
	if err := security.InitializeEncryption("services-test-key"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// setupTestDB points the package at a fresh seeded in-memory database
func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := database.OpenMemory(true)
	require.NoError(t, err)
	previous := database.DB
	database.DB = db
	t.Cleanup(func() {
		db.Close()
		database.DB = previous
	})
}
