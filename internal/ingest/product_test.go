package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductHarness(store *fakeStore) (*productProcessor, *Summary) {
	sum := newSummary("test", "products.csv")
	log := testLogger()

	var loader *GraphLoader
	if store != nil {
		loader = NewGraphLoader(store, log)
	}
	co := newCoercer(log, sum)
	return newProductProcessor(loader, co, sum, log), sum
}

func productRow() Row {
	return Row{
		"ProductID":          "42",
		"ProductName":        "Widget",
		"ProductDescription": "A fine widget",
		"SKU":                "WID-42",
		"CategoryID":         "3",
		"CategoryName":       "Gadgets",
		"SupplierID":         "8",
		"Price":              "19.99",
		"StockQuantity":      "100",
		"DateAdded":          "2024-01-15",
	}
}

func TestProductRowFullGraph(t *testing.T) {
	store := newFakeStore()
	store.seedNode("Supplier", 8)

	proc, sum := newProductHarness(store)
	proc.Process(context.Background(), productRow(), 1)

	assert.Equal(t, 1, sum.Validated[EntityProduct])
	assert.Equal(t, 1, sum.Validated[EntityCategory])
	assert.Equal(t, 1, sum.Loaded[EntityProduct])
	assert.Equal(t, 1, sum.Loaded[EntityCategory])
	assert.Equal(t, 1, sum.Relationships[RelBelongsTo])
	assert.Equal(t, 1, sum.Relationships[RelSupplies])

	props := store.nodeProps("Product", 42)
	require.NotNil(t, props)
	assert.Equal(t, "Widget", props["productName"])
	assert.Equal(t, "A fine widget", props["description"])
	assert.Equal(t, 19.99, props["price"])

	cat := store.nodeProps("Category", 3)
	require.NotNil(t, cat)
	assert.Equal(t, "Gadgets", cat["categoryName"])
}

func TestProductRowWithoutCategory(t *testing.T) {
	store := newFakeStore()

	proc, sum := newProductHarness(store)
	row := productRow()
	row["CategoryID"] = ""
	row["CategoryName"] = ""
	row["SupplierID"] = ""
	proc.Process(context.Background(), row, 1)

	assert.Equal(t, 1, sum.Loaded[EntityProduct])
	assert.Equal(t, 0, sum.Validated[EntityCategory])
	assert.Equal(t, 0, store.nodeCount("Category"))
	assert.Equal(t, 0, store.relCount())
}

func TestProductMissingProductID(t *testing.T) {
	store := newFakeStore()

	proc, sum := newProductHarness(store)
	row := productRow()
	row["ProductID"] = ""
	proc.Process(context.Background(), row, 1)

	assert.Equal(t, 1, sum.ValidationErrors)
	assert.Equal(t, 0, store.nodeCount("Product"))
	assert.Equal(t, 0, store.nodeCount("Category"))
}

func TestProductCategoryStoreErrorSkipsProduct(t *testing.T) {
	store := newFakeStore()
	store.execErr = errors.New("store down")

	proc, sum := newProductHarness(store)
	proc.Process(context.Background(), productRow(), 1)

	// The category merge failed, so the product merge was never attempted.
	assert.Equal(t, 1, sum.StoreErrors)
	assert.Equal(t, 0, sum.Loaded[EntityProduct])
	assert.Equal(t, 1, store.calls)
}

func TestProductSupplierNotIngested(t *testing.T) {
	store := newFakeStore()
	// Supplier 8 comes from a separate pass that has not run yet.

	proc, sum := newProductHarness(store)
	proc.Process(context.Background(), productRow(), 1)

	assert.Equal(t, 1, sum.Loaded[EntityProduct])
	assert.Equal(t, 1, sum.Relationships[RelBelongsTo])
	assert.Equal(t, 0, sum.Relationships[RelSupplies])
	assert.Equal(t, 1, sum.MissingTargets)
}

func TestProductMalformedPriceIsAbsent(t *testing.T) {
	store := newFakeStore()

	proc, sum := newProductHarness(store)
	row := productRow()
	row["Price"] = "not_a_float"
	row["SupplierID"] = ""
	row["CategoryID"] = ""
	proc.Process(context.Background(), row, 1)

	assert.Equal(t, 1, sum.TypeConversionErrors)
	assert.Equal(t, 1, sum.Loaded[EntityProduct])

	props := store.nodeProps("Product", 42)
	require.NotNil(t, props)
	_, ok := props["price"]
	assert.False(t, ok)
}
