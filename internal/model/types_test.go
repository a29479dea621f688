package model

import (
	"testing"

	"github.com/stretchr/testify/require"

	"erp-datastore/internal/apperrors"
)

func TestSettingsMapScanMalformed(t *testing.T) {
	var m SettingsMap
	err := m.Scan("{not json")
	require.Error(t, err)

	var serr *apperrors.SerializationError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, "settings", serr.Column)
}

func TestStringListScan(t *testing.T) {
	var l StringList
	require.NoError(t, l.Scan(`["admin","sales"]`))
	require.True(t, l.Contains("admin"))
	require.False(t, l.Contains("hr"))

	var serr *apperrors.SerializationError
	err := l.Scan([]byte("[broken"))
	require.ErrorAs(t, err, &serr)
	require.Equal(t, "roles", serr.Column)

	require.NoError(t, l.Scan(nil))
	require.Nil(t, l)
}

func TestKindRegistry(t *testing.T) {
	require.Len(t, Kinds(), 12)
	require.True(t, KindPurchaseOrder.Valid())
	require.False(t, Kind("invoice").Valid())
	require.Equal(t, "chart_of_accounts", KindChartOfAccount.Table())

	_, err := NewRecord(Kind("invoice"))
	require.ErrorIs(t, err, apperrors.ErrUnknownKind)

	kind, ok := KindOf(&WorkOrder{})
	require.True(t, ok)
	require.Equal(t, KindWorkOrder, kind)
	_, ok = KindOf(struct{}{})
	require.False(t, ok)
}
