package database

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteEnforcesForeignKeys(t *testing.T) {
	db, err := Open(Config{Driver: DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })

	require.NoError(t, EnableReferentialIntegrity(db))

	var enabled int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	require.Equal(t, 1, enabled)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(Config{Driver: "oracle"})
	require.Error(t, err)
}

func TestSQLiteDSNCarriesPragma(t *testing.T) {
	require.Equal(t, "erp.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", sqliteDSN("erp.db"))
	require.Equal(t, "erp.db?cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", sqliteDSN("erp.db?cache=shared"))
}
