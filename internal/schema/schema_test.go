package schema

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"erp-datastore/internal/apperrors"
	"erp-datastore/internal/model"
	"erp-datastore/pkg/database"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(database.Config{Driver: database.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.EnableReferentialIntegrity(db))
	t.Cleanup(func() { database.Close(db) })
	return db
}

func TestInitializeCreatesAllTablesInOrder(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Initialize(db))
	for _, kind := range model.Kinds() {
		require.True(t, db.Migrator().HasTable(kind.Table()), "missing table %s", kind.Table())
	}

	// Re-initializing an up-to-date store is a no-op.
	require.NoError(t, Initialize(db))
}

func TestInitializeRefusesPartialSchema(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Migrator().CreateTable(&model.Company{}))

	err := Initialize(db)
	require.ErrorIs(t, err, apperrors.ErrSchemaConflict)
}

func TestInitializeRefusesForeignStructure(t *testing.T) {
	db := openTestDB(t)

	// All table names present, none with our shape.
	for _, kind := range model.Kinds() {
		stmt := fmt.Sprintf("CREATE TABLE %s (id integer primary key, payload text)", kind.Table())
		require.NoError(t, db.Exec(stmt).Error)
	}

	err := Initialize(db)
	require.ErrorIs(t, err, apperrors.ErrSchemaConflict)
}

func TestSummarizeCountsPerKind(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Initialize(db))

	counts, err := Summarize(db)
	require.NoError(t, err)
	for _, kind := range model.Kinds() {
		require.Zero(t, counts[kind], "expected empty %s", kind.Table())
	}

	require.NoError(t, db.Create(&model.Company{Name: "One"}).Error)
	require.NoError(t, db.Create(&model.Partner{Name: "Acme"}).Error)
	require.NoError(t, db.Create(&model.Partner{Name: "Globex"}).Error)

	counts, err = Summarize(db)
	require.NoError(t, err)
	require.EqualValues(t, 1, counts[model.KindCompany])
	require.EqualValues(t, 2, counts[model.KindPartner])
	require.Zero(t, counts[model.KindProduct])
}

func TestDropRemovesAllTables(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Initialize(db))

	require.NoError(t, Drop(db))
	for _, kind := range model.Kinds() {
		require.False(t, db.Migrator().HasTable(kind.Table()), "table %s survived drop", kind.Table())
	}
}
