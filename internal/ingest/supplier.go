package ingest

import (
	"context"
	"log/slog"
)

// supplierProcessor handles supplier CSV rows: one Supplier node per row.
// Product linkage (SUPPLIES) is established from the product pass, where the
// supplier foreign key lives.
type supplierProcessor struct {
	loader *GraphLoader
	co     *coercer
	sum    *Summary
	log    *slog.Logger
}

func newSupplierProcessor(loader *GraphLoader, co *coercer, sum *Summary, log *slog.Logger) *supplierProcessor {
	return &supplierProcessor{loader: loader, co: co, sum: sum, log: log}
}

func (p *supplierProcessor) Process(ctx context.Context, row Row, num int) {
	log := p.log.With("row", num, "supplier_id", row["SupplierID"])

	supplierID := p.co.Int("SupplierID", row["SupplierID"])
	if supplierID == nil {
		log.Error("missing or invalid SupplierID, skipping row")
		p.sum.ValidationErrors++
		return
	}

	supplier := &Supplier{
		SupplierID:    *supplierID,
		SupplierName:  p.co.String(row["SupplierName"]),
		ContactPerson: p.co.String(row["ContactPerson"]),
		Email:         p.co.String(row["Email"]),
		PhoneNumber:   p.co.String(row["PhoneNumber"]),
	}

	if verr := validateRecord(EntitySupplier, supplier); verr != nil {
		log.Error("supplier validation failed", "fields", verr.FieldNames())
		p.sum.ValidationErrors++
		return
	}
	p.sum.addValidated(EntitySupplier)

	if p.loader == nil {
		return
	}

	p.sum.recordNodeOutcome(EntitySupplier, p.loader.MergeSupplier(ctx, supplier))
}
