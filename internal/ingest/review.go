package ingest

import (
	"context"
	"log/slog"
)

// reviewProcessor handles review CSV rows: one Review node per row, plus
// WROTE_REVIEW from the customer and HAS_REVIEW from the product when the
// respective foreign keys are present on the row.
type reviewProcessor struct {
	loader *GraphLoader
	co     *coercer
	sum    *Summary
	log    *slog.Logger
}

func newReviewProcessor(loader *GraphLoader, co *coercer, sum *Summary, log *slog.Logger) *reviewProcessor {
	return &reviewProcessor{loader: loader, co: co, sum: sum, log: log}
}

func (p *reviewProcessor) Process(ctx context.Context, row Row, num int) {
	log := p.log.With("row", num, "review_id", row["ReviewID"])

	reviewID := p.co.Int("ReviewID", row["ReviewID"])
	if reviewID == nil {
		log.Error("missing or invalid ReviewID, skipping row")
		p.sum.ValidationErrors++
		return
	}

	review := &Review{
		ReviewID:       *reviewID,
		CustomerID:     p.co.Int("CustomerID", row["CustomerID"]),
		ProductID:      p.co.Int("ProductID", row["ProductID"]),
		Rating:         p.co.Int("Rating", row["Rating"]),
		ReviewText:     p.co.String(row["ReviewText"]),
		ReviewDate:     p.co.Time("ReviewDate", row["ReviewDate"]),
		SentimentScore: p.co.Float("SentimentScore", row["SentimentScore"]),
		SentimentLabel: p.co.String(row["SentimentLabel"]),
	}

	if verr := validateRecord(EntityReview, review); verr != nil {
		log.Error("review validation failed", "fields", verr.FieldNames())
		p.sum.ValidationErrors++
		return
	}
	p.sum.addValidated(EntityReview)

	if p.loader == nil {
		return
	}

	outcome := p.loader.MergeReview(ctx, review)
	p.sum.recordNodeOutcome(EntityReview, outcome)
	if outcome != OpMerged {
		return
	}

	if review.CustomerID != nil {
		p.sum.recordRelOutcome(RelWroteReview,
			p.loader.LinkWroteReview(ctx, *review.CustomerID, review.ReviewID))
	} else {
		log.Warn("review has no CustomerID, skipping WROTE_REVIEW relationship")
	}

	if review.ProductID != nil {
		p.sum.recordRelOutcome(RelHasReview,
			p.loader.LinkHasReview(ctx, *review.ProductID, review.ReviewID))
	} else {
		log.Warn("review has no ProductID, skipping HAS_REVIEW relationship")
	}
}
