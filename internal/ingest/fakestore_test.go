package ingest

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopgraph/shopgraph/internal/graph"
	"github.com/shopgraph/shopgraph/internal/types"
)

// fakeStore is an in-memory graph.GraphClient that emulates the store-side
// semantics of the pipeline's merge statements: node merges overwrite
// properties, relationship merges require both endpoints to exist and
// return nothing when one is missing.
type fakeStore struct {
	mu    sync.Mutex
	nodes map[string]map[int64]map[string]any
	rels  map[string]map[string]any

	execErr error
	calls   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nodes: make(map[string]map[int64]map[string]any),
		rels:  make(map[string]map[string]any),
	}
}

func (f *fakeStore) Connect(ctx context.Context) error { return nil }
func (f *fakeStore) Close(ctx context.Context) error   { return nil }
func (f *fakeStore) Health(ctx context.Context) types.HealthStatus {
	return types.Healthy("fake store")
}

func (f *fakeStore) seedNode(label string, key int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.putNode(label, key, map[string]any{})
}

func (f *fakeStore) putNode(label string, key int64, props map[string]any) {
	if f.nodes[label] == nil {
		f.nodes[label] = make(map[int64]map[string]any)
	}
	f.nodes[label][key] = props
}

func (f *fakeStore) hasNode(label string, key int64) bool {
	_, ok := f.nodes[label][key]
	return ok
}

func (f *fakeStore) nodeCount(label string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.nodes[label])
}

func (f *fakeStore) nodeProps(label string, key int64) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nodes[label][key]
}

func (f *fakeStore) relCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rels)
}

func (f *fakeStore) relProps(key string) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rels[key]
}

// snapshot copies the store state for before/after comparisons.
func (f *fakeStore) snapshot() (map[string]map[int64]map[string]any, map[string]map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()

	nodes := make(map[string]map[int64]map[string]any, len(f.nodes))
	for label, byKey := range f.nodes {
		nodes[label] = make(map[int64]map[string]any, len(byKey))
		for key, props := range byKey {
			cp := make(map[string]any, len(props))
			for k, v := range props {
				cp[k] = v
			}
			nodes[label][key] = cp
		}
	}

	rels := make(map[string]map[string]any, len(f.rels))
	for key, props := range f.rels {
		cp := make(map[string]any, len(props))
		for k, v := range props {
			cp[k] = v
		}
		rels[key] = cp
	}
	return nodes, rels
}

func (f *fakeStore) Execute(ctx context.Context, statement string, params map[string]any, mode graph.TxMode) (graph.QueryResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.execErr != nil {
		return graph.QueryResult{}, f.execErr
	}

	switch statement {
	case cypherMergeProduct:
		return f.mergeNode("Product", "productID", params), nil
	case cypherMergeCategory:
		return f.mergeNode("Category", "categoryID", params), nil
	case cypherMergeCustomer:
		return f.mergeNode("ECCustomer", "customerID", params), nil
	case cypherMergeOrder:
		return f.mergeNode("Order", "orderID", params), nil
	case cypherMergeSupplier:
		return f.mergeNode("Supplier", "supplierID", params), nil
	case cypherMergeReview:
		return f.mergeNode("Review", "reviewID", params), nil

	case cypherMergeBelongsTo:
		return f.mergeRel("BELONGS_TO", "Product", "productID", "Category", "categoryID", params, nil), nil
	case cypherMergeSupplies:
		return f.mergeRel("SUPPLIES", "Supplier", "supplierID", "Product", "productID", params, nil), nil
	case cypherMergePlaced:
		return f.mergeRel("PLACED", "ECCustomer", "customerID", "Order", "orderID", params,
			map[string]any{"date": params["orderDate"]}), nil
	case cypherMergeContains:
		itemID, ok := params["orderItemID"].(int64)
		if !ok {
			return graph.QueryResult{Records: []map[string]any{}}, nil
		}
		return f.mergeKeyedRel("CONTAINS", "Order", "orderID", "Product", "productID", itemID, params,
			map[string]any{
				"quantity":       params["quantity"],
				"unitPrice":      params["unitPrice"],
				"totalItemPrice": params["totalItemPrice"],
			}), nil
	case cypherMergeWroteReview:
		return f.mergeRel("WROTE_REVIEW", "ECCustomer", "customerID", "Review", "reviewID", params, nil), nil
	case cypherMergeHasReview:
		return f.mergeRel("HAS_REVIEW", "Product", "productID", "Review", "reviewID", params, nil), nil
	}

	return graph.QueryResult{Records: []map[string]any{}}, nil
}

func (f *fakeStore) mergeNode(label, keyParam string, params map[string]any) graph.QueryResult {
	key, ok := params[keyParam].(int64)
	if !ok {
		return graph.QueryResult{Records: []map[string]any{}}
	}
	props, _ := params["props"].(map[string]any)
	cp := make(map[string]any, len(props))
	for k, v := range props {
		cp[k] = v
	}
	f.putNode(label, key, cp)
	return graph.QueryResult{Records: []map[string]any{{"id": key}}}
}

func (f *fakeStore) mergeRel(kind, fromLabel, fromParam, toLabel, toParam string, params map[string]any, props map[string]any) graph.QueryResult {
	return f.mergeKeyedRel(kind, fromLabel, fromParam, toLabel, toParam, 0, params, props)
}

func (f *fakeStore) mergeKeyedRel(kind, fromLabel, fromParam, toLabel, toParam string, relKey int64, params map[string]any, props map[string]any) graph.QueryResult {
	fromID, ok := params[fromParam].(int64)
	if !ok {
		return graph.QueryResult{Records: []map[string]any{}}
	}
	toID, ok := params[toParam].(int64)
	if !ok {
		return graph.QueryResult{Records: []map[string]any{}}
	}

	if !f.hasNode(fromLabel, fromID) || !f.hasNode(toLabel, toID) {
		return graph.QueryResult{Records: []map[string]any{}}
	}

	key := fmt.Sprintf("%s|%s:%d|%s:%d|%d", kind, fromLabel, fromID, toLabel, toID, relKey)
	if props == nil {
		props = map[string]any{}
	}
	f.rels[key] = props
	return graph.QueryResult{Records: []map[string]any{{"rel_type": kind}}}
}
