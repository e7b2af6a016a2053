package database

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnect_SQLiteInMemory(t *testing.T) {
	db, err := Connect(":memory:")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Ping())
}
