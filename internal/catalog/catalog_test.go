package catalog

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srplumbing/srbill/internal/storage"
	"github.com/srplumbing/srbill/internal/testutil"
)

func newTestService(t *testing.T) (*Service, *storage.Store) {
	t.Helper()
	st := storage.New(storage.NewMemSubstrate(),
		storage.WithIDGenerator(testutil.SequentialIDs("item")),
		storage.WithClock(testutil.NewClock(time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)).Now),
	)
	require.NoError(t, st.Init())
	return NewService(st), st
}

func TestAddAndGet(t *testing.T) {
	svc, _ := newTestService(t)

	id, err := svc.Add(Item{Name: "Tap", Rate: decimal.NewFromInt(150)})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	items, err := svc.List()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Tap", items[0].Name)
	assert.True(t, items[0].Rate.Equal(decimal.NewFromInt(150)))

	got, found, err := svc.Get(id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Tap", got.Name)
}

func TestAddClampsNegativeRate(t *testing.T) {
	svc, _ := newTestService(t)

	id, err := svc.Add(Item{Name: "Elbow", Rate: decimal.NewFromInt(-5)})
	require.NoError(t, err)

	got, _, err := svc.Get(id)
	require.NoError(t, err)
	assert.True(t, got.Rate.IsZero())
}

func TestUnparseableRateReadsAsZero(t *testing.T) {
	svc, st := newTestService(t)

	id, err := st.Save(storage.Items, storage.Record{"name": "Odd", "rate": "n/a"})
	require.NoError(t, err)

	got, found, err := svc.Get(id)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, got.Rate.IsZero())
}

func TestGetUnknownID(t *testing.T) {
	svc, _ := newTestService(t)

	_, found, err := svc.Get("missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUpdatePartial(t *testing.T) {
	svc, _ := newTestService(t)

	id, err := svc.Add(Item{Name: "Tap", Rate: decimal.NewFromInt(150), ItemCode: "TAP-01"})
	require.NoError(t, err)

	rate := decimal.NewFromInt(175)
	found, err := svc.Update(id, Patch{Rate: &rate})
	require.NoError(t, err)
	assert.True(t, found)

	got, _, err := svc.Get(id)
	require.NoError(t, err)
	assert.True(t, got.Rate.Equal(rate))
	assert.Equal(t, "Tap", got.Name)
	assert.Equal(t, "TAP-01", got.ItemCode)
}

func TestUpdateEmptyPatch(t *testing.T) {
	svc, _ := newTestService(t)

	id, err := svc.Add(Item{Name: "Tap", Rate: decimal.NewFromInt(150)})
	require.NoError(t, err)

	found, err := svc.Update(id, Patch{})
	require.NoError(t, err)
	assert.True(t, found)

	found, err = svc.Update("missing", Patch{})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService(t)

	id, err := svc.Add(Item{Name: "Tap", Rate: decimal.NewFromInt(150)})
	require.NoError(t, err)

	removed, err := svc.Delete(id)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.Delete(id)
	require.NoError(t, err)
	assert.False(t, removed)

	items, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestExportImportRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Add(Item{Name: "Tap", Rate: decimal.NewFromInt(150), SizeInch: "1/2"})
	require.NoError(t, err)
	_, err = svc.Add(Item{Name: "PVC Pipe", Rate: decimal.RequireFromString("45.50"), SizeMm: "50"})
	require.NoError(t, err)

	data, err := svc.ExportJSON()
	require.NoError(t, err)

	// Import into a fresh catalog.
	dst, _ := newTestService(t)
	n, err := dst.ImportJSON(data)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	items, err := dst.List()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Tap", items[0].Name)
	assert.True(t, items[1].Rate.Equal(decimal.RequireFromString("45.50")))
}

func TestImportRegeneratesIDs(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Add(Item{Name: "Tap", Rate: decimal.NewFromInt(150)})
	require.NoError(t, err)

	data, err := svc.ExportJSON()
	require.NoError(t, err)

	// Re-importing into the same catalog must not collide.
	n, err := svc.ImportJSON(data)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	items, err := svc.List()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.NotEqual(t, items[0].ID, items[1].ID)
}

func TestImportRejectsNonArray(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Add(Item{Name: "Tap", Rate: decimal.NewFromInt(150)})
	require.NoError(t, err)

	_, err = svc.ImportJSON([]byte(`{"not":"an array"}`))
	assert.ErrorIs(t, err, ErrNotArray)

	_, err = svc.ImportJSON([]byte(`not json at all`))
	assert.Error(t, err)

	_, err = svc.ImportJSON([]byte(`[{"name":"ok"}, "not an object"]`))
	assert.Error(t, err)

	// Nothing was written in any of the failed imports.
	items, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestImportPreservesUnknownFields(t *testing.T) {
	svc, st := newTestService(t)

	n, err := svc.ImportJSON([]byte(`[{"name":"Tap","rate":150,"supplier":"Acme"}]`))
	require.NoError(t, err)
	require.Equal(t, 1, n)

	records, err := st.GetAll(storage.Items)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Acme", records[0].String("supplier"))
}
