package store

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"erp-datastore/internal/model"
)

func TestExportImportRoundTrip(t *testing.T) {
	src := newTestStore(t)
	company := seedCompany(t, src)

	partner := &model.Partner{ID: "p-1", Name: "Acme", IsSupplier: true, CompanyID: &company.ID}
	require.NoError(t, src.Put(model.KindPartner, partner))
	product := &model.Product{ID: "prod-1", Name: "Widget", SKU: "SKU-1", CompanyID: &company.ID}
	require.NoError(t, src.Put(model.KindProduct, product))

	// Parent precedes child in the export; import must keep that working
	// even if the order were reversed.
	parent := &model.ChartOfAccount{ID: "acct-1", Code: "1000", Name: "Assets", Type: model.AccountTypeAsset}
	require.NoError(t, src.Put(model.KindChartOfAccount, parent))
	child := &model.ChartOfAccount{ID: "acct-2", Code: "1100", Name: "Cash", Type: model.AccountTypeAsset, ParentID: &parent.ID}
	require.NoError(t, src.Put(model.KindChartOfAccount, child))

	var buf bytes.Buffer
	require.NoError(t, src.Export(&buf))

	dst := newTestStore(t)
	require.NoError(t, dst.Import(bytes.NewReader(buf.Bytes())))

	for kind, want := range map[model.Kind]int64{
		model.KindCompany:        1,
		model.KindPartner:        1,
		model.KindProduct:        1,
		model.KindChartOfAccount: 2,
		model.KindTask:           0,
	} {
		n, err := dst.Count(kind)
		require.NoError(t, err)
		require.Equal(t, want, n, "count mismatch for %s", kind)
	}

	// Importing the same snapshot again is a no-op.
	require.NoError(t, dst.Import(bytes.NewReader(buf.Bytes())))
	n, err := dst.Count(model.KindPartner)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestOrderAccountsParentFirst(t *testing.T) {
	parent := "a"
	accounts := []model.ChartOfAccount{
		{ID: "b", ParentID: &parent},
		{ID: "a"},
	}
	ordered := orderAccountsParentFirst(accounts)
	require.Len(t, ordered, 2)
	require.Equal(t, "a", ordered[0].ID)
	require.Equal(t, "b", ordered[1].ID)
}
