package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopgraph/shopgraph/internal/graph"
)

// OpOutcome classifies a single store operation. Expected "matched nothing"
// conditions are outcomes, not errors; only genuine store failures carry an
// error, and even those never propagate out of a row.
type OpOutcome int

const (
	// OpMerged confirms the merge: the store returned the affected identity.
	OpMerged OpOutcome = iota
	// OpNoResult means the statement executed but matched or returned
	// nothing; for relationships this indicates a missing endpoint.
	OpNoResult
	// OpStoreError means the store rejected the operation or was unreachable.
	OpStoreError
	// OpSkipped means the operation was not attempted (dry run).
	OpSkipped
)

// GraphLoader performs idempotent merge operations against the graph store
// for one validated record or relationship at a time.
type GraphLoader struct {
	client graph.GraphClient
	log    *slog.Logger
}

// NewGraphLoader creates a GraphLoader on the given store client.
func NewGraphLoader(client graph.GraphClient, log *slog.Logger) *GraphLoader {
	return &GraphLoader{client: client, log: log}
}

// mergeNode issues a merge-by-key statement and confirms it by the returned
// identity. Statement text and parameters stay out of warn/error messages;
// they may carry PII-adjacent data and are logged at debug only.
func (l *GraphLoader) mergeNode(ctx context.Context, entity string, key int64, statement string, props map[string]any) OpOutcome {
	params := map[string]any{"props": props}
	for k, v := range mergeKeyParam(entity, key) {
		params[k] = v
	}

	l.log.Debug("merging node", "entity", entity, "key", key, "statement", statement)

	result, err := l.client.Execute(ctx, statement, params, graph.TxWrite)
	if err != nil {
		l.log.Error("store error merging node", "entity", entity, "key", key, "error", err)
		return OpStoreError
	}
	if result.Empty() {
		l.log.Warn("node merge returned no identity", "entity", entity, "key", key)
		return OpNoResult
	}

	l.log.Debug("node merged", "entity", entity, "key", key)
	return OpMerged
}

// mergeRelationship issues an endpoint-conditioned merge. An empty result is
// the store saying one or both endpoints do not exist.
func (l *GraphLoader) mergeRelationship(ctx context.Context, kind string, statement string, params map[string]any) OpOutcome {
	l.log.Debug("merging relationship", "kind", kind, "statement", statement)

	result, err := l.client.Execute(ctx, statement, params, graph.TxWrite)
	if err != nil {
		l.log.Error("store error merging relationship", "kind", kind, "error", err)
		return OpStoreError
	}
	if result.Empty() {
		l.log.Warn("relationship target missing", "kind", kind)
		return OpNoResult
	}

	l.log.Debug("relationship merged", "kind", kind)
	return OpMerged
}

func mergeKeyParam(entity string, key int64) map[string]any {
	switch entity {
	case EntityProduct:
		return map[string]any{"productID": key}
	case EntityCategory:
		return map[string]any{"categoryID": key}
	case EntityCustomer:
		return map[string]any{"customerID": key}
	case EntityOrder:
		return map[string]any{"orderID": key}
	case EntitySupplier:
		return map[string]any{"supplierID": key}
	case EntityReview:
		return map[string]any{"reviewID": key}
	default:
		return map[string]any{"id": key}
	}
}

// MergeProduct upserts the Product node.
func (l *GraphLoader) MergeProduct(ctx context.Context, p *Product) OpOutcome {
	return l.mergeNode(ctx, EntityProduct, p.ProductID, cypherMergeProduct, p.props())
}

// MergeCategory upserts the Category node.
func (l *GraphLoader) MergeCategory(ctx context.Context, c *Category) OpOutcome {
	return l.mergeNode(ctx, EntityCategory, c.CategoryID, cypherMergeCategory, c.props())
}

// MergeCustomer upserts the ECCustomer node.
func (l *GraphLoader) MergeCustomer(ctx context.Context, c *Customer) OpOutcome {
	return l.mergeNode(ctx, EntityCustomer, c.CustomerID, cypherMergeCustomer, c.props())
}

// MergeOrder upserts the Order node.
func (l *GraphLoader) MergeOrder(ctx context.Context, o *Order) OpOutcome {
	return l.mergeNode(ctx, EntityOrder, o.OrderID, cypherMergeOrder, o.props())
}

// MergeSupplier upserts the Supplier node.
func (l *GraphLoader) MergeSupplier(ctx context.Context, s *Supplier) OpOutcome {
	return l.mergeNode(ctx, EntitySupplier, s.SupplierID, cypherMergeSupplier, s.props())
}

// MergeReview upserts the Review node.
func (l *GraphLoader) MergeReview(ctx context.Context, r *Review) OpOutcome {
	return l.mergeNode(ctx, EntityReview, r.ReviewID, cypherMergeReview, r.props())
}

// LinkBelongsTo merges Product-[BELONGS_TO]->Category.
func (l *GraphLoader) LinkBelongsTo(ctx context.Context, productID, categoryID int64) OpOutcome {
	return l.mergeRelationship(ctx, RelBelongsTo, cypherMergeBelongsTo, map[string]any{
		"productID":  productID,
		"categoryID": categoryID,
	})
}

// LinkSupplies merges Supplier-[SUPPLIES]->Product.
func (l *GraphLoader) LinkSupplies(ctx context.Context, supplierID, productID int64) OpOutcome {
	return l.mergeRelationship(ctx, RelSupplies, cypherMergeSupplies, map[string]any{
		"supplierID": supplierID,
		"productID":  productID,
	})
}

// LinkPlaced merges ECCustomer-[PLACED]->Order, stamping the order date on
// the relationship when it is first created.
func (l *GraphLoader) LinkPlaced(ctx context.Context, customerID, orderID int64, orderDate *time.Time) OpOutcome {
	var date any
	if orderDate != nil {
		date = *orderDate
	}
	return l.mergeRelationship(ctx, RelPlaced, cypherMergePlaced, map[string]any{
		"orderID":    orderID,
		"customerID": customerID,
		"orderDate":  date,
	})
}

// LinkContains merges Order-[CONTAINS]->Product for one order item, keyed by
// the item's identity so re-runs produce the same edge.
func (l *GraphLoader) LinkContains(ctx context.Context, orderID int64, item *OrderItem) OpOutcome {
	var productID any
	if item.ProductID != nil {
		productID = *item.ProductID
	}
	var quantity any
	if item.Quantity != nil {
		quantity = *item.Quantity
	}
	var unitPrice any
	if item.UnitPrice != nil {
		unitPrice = *item.UnitPrice
	}
	return l.mergeRelationship(ctx, RelContains, cypherMergeContains, map[string]any{
		"orderID":        orderID,
		"productID":      productID,
		"orderItemID":    item.OrderItemID,
		"quantity":       quantity,
		"unitPrice":      unitPrice,
		"totalItemPrice": item.TotalPrice(),
	})
}

// LinkWroteReview merges ECCustomer-[WROTE_REVIEW]->Review.
func (l *GraphLoader) LinkWroteReview(ctx context.Context, customerID, reviewID int64) OpOutcome {
	return l.mergeRelationship(ctx, RelWroteReview, cypherMergeWroteReview, map[string]any{
		"customerID": customerID,
		"reviewID":   reviewID,
	})
}

// LinkHasReview merges Product-[HAS_REVIEW]->Review.
func (l *GraphLoader) LinkHasReview(ctx context.Context, productID, reviewID int64) OpOutcome {
	return l.mergeRelationship(ctx, RelHasReview, cypherMergeHasReview, map[string]any{
		"productID": productID,
		"reviewID":  reviewID,
	})
}
