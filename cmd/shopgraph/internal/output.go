// Package internal holds output formatting helpers for the shopgraph CLI.
package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/shopgraph/shopgraph/internal/ingest"
	"github.com/shopgraph/shopgraph/internal/types"
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	// FormatText is human-readable text output.
	FormatText OutputFormat = "text"
	// FormatJSON is structured JSON output.
	FormatJSON OutputFormat = "json"
)

// Formatter renders command results for the terminal.
type Formatter interface {
	// PrintSummary prints an ingestion pass summary.
	PrintSummary(sum *ingest.Summary) error
	// PrintHealth prints a store health report.
	PrintHealth(uri string, health types.HealthStatus) error
}

// NewFormatter creates a Formatter for the given format name, writing to w
// (os.Stdout when nil). Unknown formats fall back to text.
func NewFormatter(format string, w io.Writer) Formatter {
	if w == nil {
		w = os.Stdout
	}
	if OutputFormat(format) == FormatJSON {
		return &jsonFormatter{writer: w}
	}
	return &textFormatter{writer: w}
}

// textFormatter implements Formatter for human-readable text output.
type textFormatter struct {
	writer io.Writer
}

func (f *textFormatter) PrintSummary(sum *ingest.Summary) error {
	tw := tabwriter.NewWriter(f.writer, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Status:\t%s\n", sum.Status)
	if sum.Message != "" {
		fmt.Fprintf(tw, "Message:\t%s\n", sum.Message)
	}
	fmt.Fprintf(tw, "Run ID:\t%s\n", sum.RunID)
	if sum.FilePath != "" {
		fmt.Fprintf(tw, "File:\t%s\n", sum.FilePath)
	}
	fmt.Fprintf(tw, "Processed rows:\t%d\n", sum.ProcessedRows)

	printCountMap(tw, "Validated", sum.Validated)
	printCountMap(tw, "Loaded", sum.Loaded)
	printCountMap(tw, "Relationships", sum.Relationships)

	fmt.Fprintf(tw, "Skipped relationships:\t%d\n", sum.SkippedRelationships)
	fmt.Fprintf(tw, "Validation errors:\t%d\n", sum.ValidationErrors)
	fmt.Fprintf(tw, "Type conversion errors:\t%d\n", sum.TypeConversionErrors)
	fmt.Fprintf(tw, "Store errors:\t%d\n", sum.StoreErrors)
	fmt.Fprintf(tw, "Missing relationship targets:\t%d\n", sum.MissingTargets)

	return tw.Flush()
}

func (f *textFormatter) PrintHealth(uri string, health types.HealthStatus) error {
	tw := tabwriter.NewWriter(f.writer, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Store:\t%s\n", uri)
	fmt.Fprintf(tw, "State:\t%s\n", health.State)
	if health.Message != "" {
		fmt.Fprintf(tw, "Detail:\t%s\n", health.Message)
	}
	return tw.Flush()
}

func printCountMap(w io.Writer, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(w, "%s:\n", title)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s:\t%d\n", k, counts[k])
	}
}

// jsonFormatter implements Formatter for structured JSON output.
type jsonFormatter struct {
	writer io.Writer
}

func (f *jsonFormatter) PrintSummary(sum *ingest.Summary) error {
	return f.printJSON(sum)
}

func (f *jsonFormatter) PrintHealth(uri string, health types.HealthStatus) error {
	return f.printJSON(map[string]any{
		"store":  uri,
		"health": health,
	})
}

func (f *jsonFormatter) printJSON(data any) error {
	enc := json.NewEncoder(f.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
