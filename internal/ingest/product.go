package ingest

import (
	"context"
	"log/slog"
)

// productProcessor handles product CSV rows. One row yields a Product and,
// when the row carries a CategoryID, a Category merged alongside it with a
// BELONGS_TO relationship. A SupplierID on the row additionally attempts a
// SUPPLIES relationship; the supplier node comes from its own pass, so a
// missing supplier surfaces as a missing-target warning.
type productProcessor struct {
	loader *GraphLoader
	co     *coercer
	sum    *Summary
	log    *slog.Logger
}

func newProductProcessor(loader *GraphLoader, co *coercer, sum *Summary, log *slog.Logger) *productProcessor {
	return &productProcessor{loader: loader, co: co, sum: sum, log: log}
}

func (p *productProcessor) Process(ctx context.Context, row Row, num int) {
	log := p.log.With("row", num, "product_id", row["ProductID"])

	productID := p.co.Int("ProductID", row["ProductID"])
	if productID == nil {
		log.Error("missing or invalid ProductID, skipping row")
		p.sum.ValidationErrors++
		return
	}

	product := &Product{
		ProductID:     *productID,
		ProductName:   p.co.String(row["ProductName"]),
		Description:   p.co.String(row["ProductDescription"]),
		SKU:           p.co.String(row["SKU"]),
		CategoryID:    p.co.Int("CategoryID", row["CategoryID"]),
		SupplierID:    p.co.Int("SupplierID", row["SupplierID"]),
		Price:         p.co.Float("Price", row["Price"]),
		StockQuantity: p.co.Int("StockQuantity", row["StockQuantity"]),
		ImagePath:     p.co.String(row["ImagePath"]),
		DateAdded:     p.co.Time("DateAdded", row["DateAdded"]),
	}

	if verr := validateRecord(EntityProduct, product); verr != nil {
		log.Error("product validation failed", "fields", verr.FieldNames())
		p.sum.ValidationErrors++
		return
	}
	p.sum.addValidated(EntityProduct)

	var category *Category
	if product.CategoryID != nil {
		category = &Category{
			CategoryID:   *product.CategoryID,
			CategoryName: p.co.String(row["CategoryName"]),
		}
		if verr := validateRecord(EntityCategory, category); verr != nil {
			log.Error("category validation failed", "fields", verr.FieldNames())
			p.sum.ValidationErrors++
			category = nil
		} else {
			p.sum.addValidated(EntityCategory)
		}
	}

	if p.loader == nil {
		return
	}

	categoryLoaded := false
	if category != nil {
		outcome := p.loader.MergeCategory(ctx, category)
		p.sum.recordNodeOutcome(EntityCategory, outcome)
		if outcome == OpStoreError {
			// Category failure means the product's linkage cannot be
			// established correctly; skip the product on this row.
			return
		}
		categoryLoaded = outcome == OpMerged
	}

	outcome := p.loader.MergeProduct(ctx, product)
	p.sum.recordNodeOutcome(EntityProduct, outcome)
	if outcome != OpMerged {
		return
	}

	if categoryLoaded {
		p.sum.recordRelOutcome(RelBelongsTo, p.loader.LinkBelongsTo(ctx, product.ProductID, *product.CategoryID))
	}

	if product.SupplierID != nil {
		p.sum.recordRelOutcome(RelSupplies, p.loader.LinkSupplies(ctx, *product.SupplierID, product.ProductID))
	}
}
