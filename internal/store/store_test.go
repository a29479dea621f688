package store

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"erp-datastore/internal/apperrors"
	"erp-datastore/internal/model"
	"erp-datastore/internal/schema"
	"erp-datastore/pkg/database"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(database.Config{Driver: database.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.EnableReferentialIntegrity(db))
	require.NoError(t, schema.Initialize(db))
	t.Cleanup(func() { database.Close(db) })
	return New(db, zap.NewNop())
}

func seedCompany(t *testing.T, s *Store) *model.Company {
	t.Helper()
	company := &model.Company{Name: "Test Co"}
	require.NoError(t, s.Put(model.KindCompany, company))
	return company
}

func requireConstraint(t *testing.T, err error, kind apperrors.ConstraintKind) *apperrors.ConstraintViolation {
	t.Helper()
	require.Error(t, err)
	require.True(t, apperrors.IsConstraint(err, kind), "expected %s violation, got %v", kind, err)
	var cv *apperrors.ConstraintViolation
	require.ErrorAs(t, err, &cv)
	return cv
}

func TestPutRejectsDanglingCompany(t *testing.T) {
	s := newTestStore(t)

	missing := "no-such-company"
	err := s.Put(model.KindProduct, &model.Product{
		Name:      "Widget",
		SKU:       "SKU-1",
		CompanyID: &missing,
	})
	cv := requireConstraint(t, err, apperrors.ConstraintForeignKey)
	require.Equal(t, "products", cv.Entity)
	require.Equal(t, "company_id", cv.Field)
}

func TestUserUsernameAndEmailUnique(t *testing.T) {
	s := newTestStore(t)

	first := &model.User{Username: "jdoe", Email: "jdoe@example.com"}
	require.NoError(t, s.Put(model.KindUser, first))

	err := s.Put(model.KindUser, &model.User{Username: "jdoe", Email: "other@example.com"})
	cv := requireConstraint(t, err, apperrors.ConstraintUnique)
	require.Equal(t, "users", cv.Entity)
	require.Equal(t, "username", cv.Field)

	err = s.Put(model.KindUser, &model.User{Username: "other", Email: "jdoe@example.com"})
	cv = requireConstraint(t, err, apperrors.ConstraintUnique)
	require.Equal(t, "email", cv.Field)

	n, err := s.Count(model.KindUser)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestProductSKUUnique(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Put(model.KindProduct, &model.Product{Name: "A", SKU: "SKU-1"}))
	err := s.Put(model.KindProduct, &model.Product{Name: "B", SKU: "SKU-1"})
	cv := requireConstraint(t, err, apperrors.ConstraintUnique)
	require.Equal(t, "sku", cv.Field)
}

func TestChartOfAccountCycleRejected(t *testing.T) {
	s := newTestStore(t)

	a := &model.ChartOfAccount{ID: "acct-a", Code: "1000", Name: "A", Type: model.AccountTypeAsset}
	require.NoError(t, s.Put(model.KindChartOfAccount, a))

	b := &model.ChartOfAccount{ID: "acct-b", Code: "1100", Name: "B", Type: model.AccountTypeAsset, ParentID: &a.ID}
	require.NoError(t, s.Put(model.KindChartOfAccount, b))

	// Closing the loop A -> B -> A must be rejected.
	err := s.Update(model.KindChartOfAccount, a.ID, map[string]interface{}{"parent_id": b.ID})
	cv := requireConstraint(t, err, apperrors.ConstraintCycle)
	require.Equal(t, "parent_id", cv.Field)

	// Self-parenting is the degenerate cycle.
	self := "acct-self"
	err = s.Put(model.KindChartOfAccount, &model.ChartOfAccount{
		ID: self, Code: "2000", Name: "Self", Type: model.AccountTypeAsset, ParentID: &self,
	})
	requireConstraint(t, err, apperrors.ConstraintCycle)
}

func TestTransactionReferenceValidation(t *testing.T) {
	s := newTestStore(t)
	seedCompany(t, s)

	err := s.Put(model.KindTransaction, &model.Transaction{
		TransactionNumber: "TXN-1",
		ReferenceKind:     "invoice", // not a registered kind
		ReferenceID:       "whatever",
	})
	require.ErrorIs(t, err, apperrors.ErrUnknownKind)

	err = s.Put(model.KindTransaction, &model.Transaction{
		TransactionNumber: "TXN-1",
		ReferenceKind:     model.KindPurchaseOrder,
		ReferenceID:       "no-such-po",
	})
	cv := requireConstraint(t, err, apperrors.ConstraintForeignKey)
	require.Equal(t, "reference_id", cv.Field)

	partner := &model.Partner{ID: "sup-1", Name: "Acme", IsSupplier: true}
	require.NoError(t, s.Put(model.KindPartner, partner))
	po := &model.PurchaseOrder{ID: "po-1", OrderNumber: "PO-1", SupplierID: partner.ID}
	require.NoError(t, s.Put(model.KindPurchaseOrder, po))

	require.NoError(t, s.Put(model.KindTransaction, &model.Transaction{
		TransactionNumber: "TXN-1",
		Amount:            decimal.RequireFromString("10"),
		ReferenceKind:     model.KindPurchaseOrder,
		ReferenceID:       po.ID,
	}))
}

func TestRemoveReferencedRowRejected(t *testing.T) {
	s := newTestStore(t)
	company := seedCompany(t, s)

	user := &model.User{Username: "jdoe", Email: "jdoe@example.com", CompanyID: &company.ID}
	require.NoError(t, s.Put(model.KindUser, user))

	err := s.Remove(model.KindCompany, company.ID)
	requireConstraint(t, err, apperrors.ConstraintForeignKey)

	// Deleting bottom-up is allowed; deletion is physical.
	require.NoError(t, s.Remove(model.KindUser, user.ID))
	require.NoError(t, s.Remove(model.KindCompany, company.ID))

	n, err := s.Count(model.KindCompany)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestGetNotFound(t *testing.T) {
	s := newTestStore(t)

	var out model.Partner
	err := s.Get(model.KindPartner, "missing", &out)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	err = s.Remove(model.KindPartner, "missing")
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	err = s.Update(model.KindPartner, "missing", map[string]interface{}{"name": "x"})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateRefreshesUpdatedAt(t *testing.T) {
	s := newTestStore(t)

	product := &model.Product{Name: "Widget", SKU: "SKU-1"}
	require.NoError(t, s.Put(model.KindProduct, product))

	var before model.Product
	require.NoError(t, s.Get(model.KindProduct, product.ID, &before))

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, s.Update(model.KindProduct, product.ID, map[string]interface{}{"quantity": 42}))

	var after model.Product
	require.NoError(t, s.Get(model.KindProduct, product.ID, &after))
	require.Equal(t, 42, after.Quantity)
	require.True(t, after.UpdatedAt.After(before.UpdatedAt), "updated_at did not refresh")
}

func TestPutKindMismatch(t *testing.T) {
	s := newTestStore(t)

	err := s.Put(model.KindCompany, &model.Partner{Name: "Acme"})
	require.Error(t, err)

	err = s.Put(model.Kind("gadget"), &model.Partner{Name: "Acme"})
	require.Error(t, err)
}
