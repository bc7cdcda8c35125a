package ingest

import (
	"context"
	"log/slog"
)

// orderProcessor handles the order/order-item CSV, the two-level
// parent/child shape: one order spans multiple consecutive rows, each row
// carrying the full order columns plus one item. The Order node and its
// PLACED relationship are established on the first row seen for an OrderID;
// every row contributes a CONTAINS relationship for its item.
//
// Cross-row state is limited to two sets: order IDs already seen (so sibling
// rows are not reprocessed as new parents) and order IDs whose node merge
// succeeded (the gate for child relationships). Rows for one order are
// assumed contiguous in the export; shuffled input is a violated input
// contract, not a detected condition.
type orderProcessor struct {
	loader *GraphLoader
	co     *coercer
	sum    *Summary
	log    *slog.Logger

	seen   map[int64]bool
	loaded map[int64]bool
}

func newOrderProcessor(loader *GraphLoader, co *coercer, sum *Summary, log *slog.Logger) *orderProcessor {
	return &orderProcessor{
		loader: loader,
		co:     co,
		sum:    sum,
		log:    log,
		seen:   make(map[int64]bool),
		loaded: make(map[int64]bool),
	}
}

func (p *orderProcessor) Process(ctx context.Context, row Row, num int) {
	log := p.log.With("row", num, "order_id", row["OrderID"], "order_item_id", row["OrderItemID"])

	orderID := p.co.Int("OrderID", row["OrderID"])
	if orderID == nil || *orderID <= 0 {
		log.Error("missing or invalid OrderID, skipping row")
		p.sum.ValidationErrors++
		return
	}

	if !p.seen[*orderID] {
		// First row for this order: establish the parent. The ID is
		// remembered even on failure so sibling rows are not revalidated,
		// but only a confirmed merge opens the gate for child relationships.
		p.seen[*orderID] = true
		p.processOrder(ctx, log, row, *orderID)
	}

	p.processItem(ctx, log, row, *orderID)
}

func (p *orderProcessor) processOrder(ctx context.Context, log *slog.Logger, row Row, orderID int64) {
	order := &Order{
		OrderID:         orderID,
		CustomerID:      p.co.Int("CustomerID", row["CustomerID"]),
		OrderDate:       p.co.Time("OrderDate", row["OrderDate"]),
		OrderStatus:     p.co.String(row["OrderStatus"]),
		TotalAmount:     p.co.Float("OrderTotalAmount", row["OrderTotalAmount"]),
		ShippingAddress: p.co.String(row["ShippingAddress"]),
		BillingAddress:  p.co.String(row["BillingAddress"]),
	}

	if verr := validateRecord(EntityOrder, order); verr != nil {
		log.Error("order validation failed", "fields", verr.FieldNames())
		p.sum.ValidationErrors++
		return
	}
	p.sum.addValidated(EntityOrder)

	if p.loader == nil {
		p.loaded[orderID] = true
		return
	}

	outcome := p.loader.MergeOrder(ctx, order)
	p.sum.recordNodeOutcome(EntityOrder, outcome)
	if outcome != OpMerged {
		return
	}
	p.loaded[orderID] = true

	if order.CustomerID != nil {
		p.sum.recordRelOutcome(RelPlaced,
			p.loader.LinkPlaced(ctx, *order.CustomerID, order.OrderID, order.OrderDate))
	} else {
		log.Warn("order has no CustomerID, skipping PLACED relationship")
	}
}

func (p *orderProcessor) processItem(ctx context.Context, log *slog.Logger, row Row, orderID int64) {
	item := &OrderItem{
		OrderItemID: valueOrZero(p.co.Int("OrderItemID", row["OrderItemID"])),
		ProductID:   p.co.Int("ProductID", row["ProductID"]),
		Quantity:    p.co.Int("Quantity", row["Quantity"]),
		UnitPrice:   p.co.Float("UnitPrice", row["UnitPrice"]),
	}

	if verr := validateRecord(EntityOrderItem, item); verr != nil {
		log.Error("order item validation failed", "fields", verr.FieldNames())
		p.sum.ValidationErrors++
		return
	}
	p.sum.addValidated(EntityOrderItem)

	if p.loader == nil {
		return
	}

	if !p.loaded[orderID] {
		log.Warn("order was not loaded, skipping CONTAINS relationship",
			"order_item_id", item.OrderItemID)
		p.sum.SkippedRelationships++
		return
	}

	if item.ProductID == nil {
		log.Warn("order item has no ProductID, skipping CONTAINS relationship",
			"order_item_id", item.OrderItemID)
		p.sum.SkippedRelationships++
		return
	}

	p.sum.recordRelOutcome(RelContains, p.loader.LinkContains(ctx, orderID, item))
}

func valueOrZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
