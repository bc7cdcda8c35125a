package ingest

import (
	"context"
	"log/slog"
)

// customerProcessor handles customer CSV rows: one Customer node per row,
// no relationships.
type customerProcessor struct {
	loader *GraphLoader
	co     *coercer
	sum    *Summary
	log    *slog.Logger
}

func newCustomerProcessor(loader *GraphLoader, co *coercer, sum *Summary, log *slog.Logger) *customerProcessor {
	return &customerProcessor{loader: loader, co: co, sum: sum, log: log}
}

func (p *customerProcessor) Process(ctx context.Context, row Row, num int) {
	log := p.log.With("row", num, "customer_id", row["CustomerID"])

	customerID := p.co.Int("CustomerID", row["CustomerID"])
	if customerID == nil {
		log.Error("missing or invalid CustomerID, skipping row")
		p.sum.ValidationErrors++
		return
	}

	customer := &Customer{
		CustomerID:       *customerID,
		FirstName:        p.co.String(row["FirstName"]),
		LastName:         p.co.String(row["LastName"]),
		Email:            p.co.String(row["Email"]),
		PhoneNumber:      p.co.String(row["PhoneNumber"]),
		ShippingAddress:  p.co.String(row["ShippingAddress"]),
		BillingAddress:   p.co.String(row["BillingAddress"]),
		RegistrationDate: p.co.Time("RegistrationDate", row["RegistrationDate"]),
		LastLoginDate:    p.co.Time("LastLoginDate", row["LastLoginDate"]),
	}

	if verr := validateRecord(EntityCustomer, customer); verr != nil {
		log.Error("customer validation failed", "fields", verr.FieldNames())
		p.sum.ValidationErrors++
		return
	}
	p.sum.addValidated(EntityCustomer)

	if p.loader == nil {
		return
	}

	p.sum.recordNodeOutcome(EntityCustomer, p.loader.MergeCustomer(ctx, customer))
}
