package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/shopgraph/shopgraph/internal/graph"
	"github.com/shopgraph/shopgraph/internal/types"
)

// Pipeline drives one full pass over an input file: it opens the file,
// iterates rows in order, delegates each row to the kind's processor, and
// accumulates every outcome into a Summary.
//
// Processing is single-threaded and synchronous; rows are handled strictly
// in file order with no overlapping store operations. No retries happen at
// any layer. The store client is owned by the caller and must outlive Run.
type Pipeline struct {
	client graph.GraphClient
	log    *slog.Logger
}

// NewPipeline creates a Pipeline on the given store client. A nil client
// runs in validation-only mode: rows are coerced and validated but no store
// operation is issued.
func NewPipeline(client graph.GraphClient, log *slog.Logger) *Pipeline {
	return &Pipeline{client: client, log: log}
}

// Run processes the CSV file at path as the given entity kind and returns
// the pass summary. Errors inside the row loop never escape: they are
// logged and counted, and the run always ends Completed once the first row
// is reachable. Only setup failures (bad kind, unreadable file) produce a
// Failed summary, always with zero processed rows.
func (p *Pipeline) Run(ctx context.Context, kind Kind, path string) *Summary {
	runID := uuid.NewString()
	log := p.log.With("run_id", runID, "kind", string(kind), "file", path)
	sum := newSummary(runID, path)

	if !kind.Valid() {
		return p.fail(log, sum, fmt.Sprintf("unsupported ingestion kind: %s", kind))
	}

	var loader *GraphLoader
	if p.client != nil {
		loader = NewGraphLoader(p.client, log)
	}
	co := newCoercer(log, sum)

	proc, err := newRowProcessor(kind, loader, co, sum, log)
	if err != nil {
		return p.fail(log, sum, err.Error())
	}

	file, err := os.Open(path)
	if err != nil {
		code := types.INGEST_FILE_UNREADABLE
		if os.IsNotExist(err) {
			code = types.INGEST_FILE_NOT_FOUND
		}
		return p.fail(log, sum, types.WrapError(code, "cannot open file", err).Error())
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Ragged rows are a per-row condition, not a file-level failure.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			// An empty file is a completed pass over zero rows.
			sum.Status = StatusCompleted
			log.Info("file is empty, nothing to process")
			return sum
		}
		return p.fail(log, sum, types.WrapError(types.INGEST_HEADER_INVALID, "cannot read header", err).Error())
	}

	sum.Status = StatusRunning
	log.Info("starting ingestion pass", "loading", loader != nil)

	for num := 1; ; num++ {
		if ctx.Err() != nil {
			log.Warn("context cancelled, stopping after current row", "rows", sum.ProcessedRows)
			break
		}

		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		sum.ProcessedRows++
		if err != nil {
			log.Error("unreadable row", "row", num, "error", err)
			sum.ValidationErrors++
			continue
		}

		proc.Process(ctx, decodeRow(header, fields), num)
	}

	sum.Status = StatusCompleted
	log.Info("ingestion pass finished",
		"processed_rows", sum.ProcessedRows,
		"validation_errors", sum.ValidationErrors,
		"type_conversion_errors", sum.TypeConversionErrors,
		"store_errors", sum.StoreErrors,
		"missing_relationship_targets", sum.MissingTargets)
	return sum
}

func (p *Pipeline) fail(log *slog.Logger, sum *Summary, message string) *Summary {
	sum.Status = StatusFailed
	sum.Message = message
	log.Error("ingestion pass failed before processing any row", "reason", message)
	return sum
}

// decodeRow maps one CSV record onto its header columns. Missing trailing
// fields decode as empty strings; surplus fields are dropped.
func decodeRow(header, fields []string) Row {
	row := make(Row, len(header))
	for i, col := range header {
		if i < len(fields) {
			row[col] = fields[i]
		} else {
			row[col] = ""
		}
	}
	return row
}
