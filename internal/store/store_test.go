package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"inventory-service/internal/models"
	"inventory-service/internal/util"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "productos.json"))
}

func TestLoadMissingFileCreatesEmptyStore(t *testing.T) {
	st := newTestStore(t)

	doc, err := st.Load()
	require.NoError(t, err)

	assert.Empty(t, doc.Products)
	assert.Empty(t, doc.Transactions)

	// The default document is written to disk, not just returned.
	_, err = os.Stat(st.Path())
	assert.NoError(t, err)
}

func TestLoadCountsFirstRunLoads(t *testing.T) {
	st := newTestStore(t)

	loads := testutil.ToFloat64(util.StoreLoadsTotal)

	// The create-default path counts as a load like any other.
	_, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, loads+1, testutil.ToFloat64(util.StoreLoadsTotal))

	_, err = st.Load()
	require.NoError(t, err)
	assert.Equal(t, loads+2, testutil.ToFloat64(util.StoreLoadsTotal))
}

func TestLoadStripsLegacyProducts(t *testing.T) {
	st := newTestStore(t)

	raw := `{
		"products": [
			{"id": "1", "name": "Producto A", "price": 10, "quantity": 3, "alert_threshold": 1},
			{"id": "2", "name": "Widget", "price": 9.99, "quantity": 5, "alert_threshold": 2},
			{"id": "3", "name": "Producto B", "price": 0, "quantity": 0, "alert_threshold": 0}
		],
		"transactions": []
	}`
	require.NoError(t, os.WriteFile(st.Path(), []byte(raw), 0644))

	doc, err := st.Load()
	require.NoError(t, err)

	require.Len(t, doc.Products, 1)
	assert.Equal(t, "Widget", doc.Products[0].Name)
}

func TestLoadDefaultsMissingTransactions(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, os.WriteFile(st.Path(), []byte(`{"products": []}`), 0644))

	doc, err := st.Load()
	require.NoError(t, err)

	assert.NotNil(t, doc.Transactions)
	assert.Empty(t, doc.Transactions)
}

func TestLoadBackfillsTransactionIDs(t *testing.T) {
	st := newTestStore(t)

	// Two transactions without ids around one with an explicit id. The
	// backfill is purely positional and never renumbers explicit ids,
	// even though that can collide.
	raw := `{
		"products": [],
		"transactions": [
			{"product_name": "Widget", "timestamp": "2024-01-01 10:00:00", "kind": "addition", "quantity_delta": 5, "resulting_stock": 5},
			{"id": 7, "product_name": "Widget", "timestamp": "2024-01-02 10:00:00", "kind": "update", "quantity_delta": 1, "resulting_stock": 6},
			{"product_name": "Widget", "timestamp": "2024-01-03 10:00:00"}
		]
	}`
	require.NoError(t, os.WriteFile(st.Path(), []byte(raw), 0644))

	doc, err := st.Load()
	require.NoError(t, err)

	require.Len(t, doc.Transactions, 3)
	assert.Equal(t, 1, doc.Transactions[0].ID)
	assert.Equal(t, 7, doc.Transactions[1].ID)
	assert.Equal(t, 3, doc.Transactions[2].ID)
}

func TestLoadBackfillsMissingTransactionFields(t *testing.T) {
	st := newTestStore(t)

	raw := `{
		"products": [],
		"transactions": [
			{"id": 1, "product_name": "Widget", "timestamp": "2024-01-01 10:00:00"}
		]
	}`
	require.NoError(t, os.WriteFile(st.Path(), []byte(raw), 0644))

	doc, err := st.Load()
	require.NoError(t, err)

	require.Len(t, doc.Transactions, 1)
	assert.Equal(t, models.KindUnknown, doc.Transactions[0].Kind)
	assert.Equal(t, 0, doc.Transactions[0].QuantityDelta)
	assert.Equal(t, 0, doc.Transactions[0].ResultingStock)
}

func TestLoadMalformedDocument(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, os.WriteFile(st.Path(), []byte("not a document{"), 0644))

	_, err := st.Load()
	require.Error(t, err)

	var malformed *models.MalformedDocumentError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, st.Path(), malformed.Path)
}

func TestLoadMalformedShape(t *testing.T) {
	st := newTestStore(t)

	// Valid JSON, wrong shape.
	require.NoError(t, os.WriteFile(st.Path(), []byte(`[1, 2, 3]`), 0644))

	_, err := st.Load()
	var malformed *models.MalformedDocumentError
	require.True(t, errors.As(err, &malformed))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := newTestStore(t)

	doc := &models.Document{
		Products: []models.Product{
			{ID: "1", Name: "Widget", Price: 9.99, Quantity: 5, AlertThreshold: 2},
		},
		Transactions: []models.Transaction{
			{ID: 1, ProductName: "Widget", Timestamp: "2024-01-01 10:00:00", Kind: models.KindAddition, QuantityDelta: 5, ResultingStock: 5},
		},
	}
	require.NoError(t, st.Save(doc))

	loaded, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)

	// Normalization is idempotent once applied: saving the loaded
	// document reproduces the file byte for byte.
	before, err := os.ReadFile(st.Path())
	require.NoError(t, err)
	require.NoError(t, st.Save(loaded))
	after, err := os.ReadFile(st.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSaveIsPrettyPrinted(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.Save(models.NewDocument()))

	data, err := os.ReadFile(st.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n")
	assert.Contains(t, string(data), "    ")
}
