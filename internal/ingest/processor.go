package ingest

import (
	"context"
	"fmt"
	"log/slog"
)

// Row is one decoded CSV row, keyed by header column name.
type Row map[string]string

// RowProcessor turns one raw row into zero or more validated records and the
// corresponding loader calls, folding every outcome into the shared summary.
// Processing never returns an error: all per-row conditions are recovered
// locally and counted.
type RowProcessor interface {
	// Process handles the row at 1-based position num within the file.
	Process(ctx context.Context, row Row, num int)
}

// Kind selects which CSV shape an ingestion pass expects.
type Kind string

const (
	KindProducts  Kind = "products"
	KindCustomers Kind = "customers"
	KindOrders    Kind = "orders"
	KindSuppliers Kind = "suppliers"
	KindReviews   Kind = "reviews"
)

// Kinds lists the supported ingestion kinds in a stable order.
func Kinds() []Kind {
	return []Kind{KindProducts, KindCustomers, KindOrders, KindSuppliers, KindReviews}
}

// Valid reports whether the kind names a supported CSV shape.
func (k Kind) Valid() bool {
	switch k {
	case KindProducts, KindCustomers, KindOrders, KindSuppliers, KindReviews:
		return true
	default:
		return false
	}
}

// newRowProcessor builds the processor for the given kind. loader is nil in
// dry-run mode; processors then validate without issuing store operations.
func newRowProcessor(kind Kind, loader *GraphLoader, co *coercer, sum *Summary, log *slog.Logger) (RowProcessor, error) {
	switch kind {
	case KindProducts:
		return newProductProcessor(loader, co, sum, log), nil
	case KindCustomers:
		return newCustomerProcessor(loader, co, sum, log), nil
	case KindOrders:
		return newOrderProcessor(loader, co, sum, log), nil
	case KindSuppliers:
		return newSupplierProcessor(loader, co, sum, log), nil
	case KindReviews:
		return newReviewProcessor(loader, co, sum, log), nil
	default:
		return nil, fmt.Errorf("unsupported ingestion kind: %s", kind)
	}
}
