package seed

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"erp-datastore/internal/apperrors"
	"erp-datastore/internal/model"
	"erp-datastore/internal/schema"
	"erp-datastore/internal/store"
	"erp-datastore/pkg/database"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := database.Open(database.Config{Driver: database.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.EnableReferentialIntegrity(db))
	require.NoError(t, schema.Initialize(db))
	t.Cleanup(func() { database.Close(db) })
	return store.New(db, zap.NewNop())
}

func testOptions(mode string) Options {
	return Options{
		Mode:          mode,
		CompanyID:     "default-company",
		CompanyName:   "Default Company",
		Currency:      "USD",
		Timezone:      "UTC",
		AdminID:       "default-admin",
		AdminUsername: "admin",
		AdminEmail:    "admin@example.com",
		AdminName:     "Administrator",
		AdminPassword: "s3cret",
	}
}

func TestProvisionDefaultsStrictIdempotent(t *testing.T) {
	s := newTestStore(t)
	opts := testOptions(ModeStrict)

	require.NoError(t, ProvisionDefaults(s, opts, nil))
	require.NoError(t, ProvisionDefaults(s, opts, nil))

	companies, err := s.Count(model.KindCompany)
	require.NoError(t, err)
	require.EqualValues(t, 1, companies)

	users, err := s.Count(model.KindUser)
	require.NoError(t, err)
	require.EqualValues(t, 1, users)

	var admin model.User
	require.NoError(t, s.Get(model.KindUser, opts.AdminID, &admin))
	require.True(t, admin.IsAdmin())
	require.True(t, admin.IsActive)
	require.True(t, admin.CheckPassword("s3cret"))
	require.False(t, admin.CheckPassword("wrong"))
}

func TestProvisionStrictConflictingOccupant(t *testing.T) {
	s := newTestStore(t)
	opts := testOptions(ModeStrict)

	// The well-known company id is taken by something else entirely.
	require.NoError(t, s.Put(model.KindCompany, &model.Company{
		ID:   opts.CompanyID,
		Name: "Someone Else Entirely",
	}))

	err := ProvisionDefaults(s, opts, nil)
	require.ErrorIs(t, err, apperrors.ErrAlreadyProvisioned)
}

func TestProvisionSemanticAcceptsForeignIdentifiers(t *testing.T) {
	s := newTestStore(t)
	opts := testOptions(ModeSemantic)

	// A cloned store: same semantics, different ids.
	require.NoError(t, s.Put(model.KindCompany, &model.Company{ID: "cloned-co", Name: "Cloned Co"}))
	existing := &model.User{
		ID:       "cloned-admin",
		Username: "root",
		Email:    "root@example.com",
		Roles:    model.StringList{model.RoleAdmin},
	}
	require.NoError(t, s.Put(model.KindUser, existing))

	require.NoError(t, ProvisionDefaults(s, opts, nil))

	companies, err := s.Count(model.KindCompany)
	require.NoError(t, err)
	require.EqualValues(t, 1, companies, "semantic mode must not duplicate the company")

	users, err := s.Count(model.KindUser)
	require.NoError(t, err)
	require.EqualValues(t, 1, users, "semantic mode must not duplicate the admin")
}

func TestProvisionStrictDuplicatesUnderForeignIdentifiers(t *testing.T) {
	s := newTestStore(t)

	// Same cloned store as above: strict mode only looks at the well-known
	// ids, so it provisions a second company and admin. This divergence is
	// why both policies exist.
	require.NoError(t, s.Put(model.KindCompany, &model.Company{ID: "cloned-co", Name: "Cloned Co"}))

	require.NoError(t, ProvisionDefaults(s, testOptions(ModeStrict), nil))

	companies, err := s.Count(model.KindCompany)
	require.NoError(t, err)
	require.EqualValues(t, 2, companies)
}

func TestAdminExists(t *testing.T) {
	s := newTestStore(t)

	ok, err := AdminExists(s)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Put(model.KindUser, &model.User{
		Username: "ops",
		Email:    "ops@example.com",
		Roles:    model.StringList{"operator"},
	}))
	ok, err = AdminExists(s)
	require.NoError(t, err)
	require.False(t, ok, "non-admin roles must not count")

	require.NoError(t, s.Put(model.KindUser, &model.User{
		Username: "boss",
		Email:    "boss@example.com",
		Roles:    model.StringList{"operator", model.RoleAdmin},
	}))
	ok, err = AdminExists(s)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSeedSampleIdempotent(t *testing.T) {
	s := newTestStore(t)

	created, err := SeedSample(s, model.KindPartner, "p-1", &model.Partner{ID: "p-1", Name: "Acme"})
	require.NoError(t, err)
	require.True(t, created)

	created, err = SeedSample(s, model.KindPartner, "p-1", &model.Partner{ID: "p-1", Name: "Acme"})
	require.NoError(t, err)
	require.False(t, created)

	n, err := s.Count(model.KindPartner)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestMinimalFixturesEndToEnd(t *testing.T) {
	s := newTestStore(t)
	opts := testOptions(ModeStrict)

	// initialize empty schema -> provision defaults
	require.NoError(t, ProvisionDefaults(s, opts, nil))

	companies, err := s.Count(model.KindCompany)
	require.NoError(t, err)
	require.EqualValues(t, 1, companies)
	users, err := s.Count(model.KindUser)
	require.NoError(t, err)
	require.EqualValues(t, 1, users)

	ok, err := AdminExists(s)
	require.NoError(t, err)
	require.True(t, ok)

	// seed every fixture; every relationship in the schema gets exercised
	for _, fixture := range MinimalFixtures(opts) {
		created, err := SeedSample(s, fixture.Kind, fixture.ID, fixture.Record)
		require.NoError(t, err, "seeding %s", fixture.Kind)
		require.True(t, created)
	}

	for _, kind := range model.Kinds() {
		n, err := s.Count(kind)
		require.NoError(t, err)
		require.EqualValues(t, 1, n, "expected one %s row", kind)
	}

	// the production order's product reference resolves
	var po model.ProductionOrder
	require.NoError(t, s.Get(model.KindProductionOrder, FixtureProductionOrderID, &po))
	var product model.Product
	require.NoError(t, s.Get(model.KindProduct, po.ProductID, &product))
	require.Equal(t, "SKU-0001", product.SKU)

	// re-seeding leaves the counts unchanged
	for _, fixture := range MinimalFixtures(opts) {
		created, err := SeedSample(s, fixture.Kind, fixture.ID, fixture.Record)
		require.NoError(t, err)
		require.False(t, created)
	}
}

func TestProductionOrderWithDanglingProduct(t *testing.T) {
	s := newTestStore(t)

	err := s.Put(model.KindProductionOrder, &model.ProductionOrder{
		OrderNumber: "MO-404",
		Quantity:    1,
		ProductID:   "no-such-product",
	})
	require.True(t, apperrors.IsConstraint(err, apperrors.ConstraintForeignKey), "got %v", err)

	// entity counts unchanged afterwards
	n, err := s.Count(model.KindProductionOrder)
	require.NoError(t, err)
	require.Zero(t, n)
	n, err = s.Count(model.KindProduct)
	require.NoError(t, err)
	require.Zero(t, n)
}
