package ingest

import "encoding/json"

// Status is the orchestrator state. A run starts Idle, moves to Running once
// the file is open, and always ends Completed after that: per-row errors are
// absorbed into counters. Failed is reachable only from Idle, for setup
// errors before any row is processed.
type Status string

const (
	StatusIdle      Status = "Idle"
	StatusRunning   Status = "Running"
	StatusCompleted Status = "Completed"
	StatusFailed    Status = "Failed"
)

// Entity names used as counter keys in the summary.
const (
	EntityProduct   = "products"
	EntityCategory  = "categories"
	EntityCustomer  = "customers"
	EntityOrder     = "orders"
	EntityOrderItem = "order_items"
	EntitySupplier  = "suppliers"
	EntityReview    = "reviews"
)

// Relationship kinds used as counter keys in the summary.
const (
	RelBelongsTo   = "BELONGS_TO"
	RelSupplies    = "SUPPLIES"
	RelPlaced      = "PLACED"
	RelContains    = "CONTAINS"
	RelWroteReview = "WROTE_REVIEW"
	RelHasReview   = "HAS_REVIEW"
)

// Summary is the structured report of one ingestion pass. Its JSON shape is
// flat (see MarshalJSON); the per-kind maps exist for counting convenience.
type Summary struct {
	RunID    string
	Status   Status
	Message  string
	FilePath string

	ProcessedRows int

	// Validated counts records that passed validation, per entity kind.
	Validated map[string]int

	// Loaded counts node merges confirmed by the store, per entity kind.
	Loaded map[string]int

	// Relationships counts confirmed relationship merges, per kind.
	Relationships map[string]int

	// SkippedRelationships counts child relationships that were valid but
	// never attempted because their parent failed to validate or load.
	SkippedRelationships int

	ValidationErrors     int
	TypeConversionErrors int
	StoreErrors          int

	// MissingTargets counts relationship merges that returned no result
	// because one or both endpoint nodes were absent from the store.
	MissingTargets int
}

// MarshalJSON renders the report with flat keys: validated_<entity>_count,
// loaded_<entity>_count, and <RELATIONSHIP>_count, alongside the scalar
// counters. This mirrors the shape of the source export's run reports.
func (s *Summary) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"run_id":                       s.RunID,
		"status":                       s.Status,
		"processed_rows":               s.ProcessedRows,
		"skipped_relationships":        s.SkippedRelationships,
		"validation_errors":            s.ValidationErrors,
		"type_conversion_errors":       s.TypeConversionErrors,
		"store_errors":                 s.StoreErrors,
		"missing_relationship_targets": s.MissingTargets,
	}
	if s.Message != "" {
		out["message"] = s.Message
	}
	if s.FilePath != "" {
		out["csv_file_path"] = s.FilePath
	}
	for entity, n := range s.Validated {
		out["validated_"+entity+"_count"] = n
	}
	for entity, n := range s.Loaded {
		out["loaded_"+entity+"_count"] = n
	}
	for kind, n := range s.Relationships {
		out[kind+"_count"] = n
	}
	return json.Marshal(out)
}

func newSummary(runID, filePath string) *Summary {
	return &Summary{
		RunID:         runID,
		Status:        StatusIdle,
		FilePath:      filePath,
		Validated:     make(map[string]int),
		Loaded:        make(map[string]int),
		Relationships: make(map[string]int),
	}
}

func (s *Summary) addValidated(entity string) { s.Validated[entity]++ }
func (s *Summary) addLoaded(entity string)    { s.Loaded[entity]++ }
func (s *Summary) addRelationship(kind string) {
	s.Relationships[kind]++
}

// recordNodeOutcome folds a node merge outcome into the counters.
func (s *Summary) recordNodeOutcome(entity string, outcome OpOutcome) {
	switch outcome {
	case OpMerged:
		s.addLoaded(entity)
	case OpNoResult, OpStoreError:
		// A node merge that returns no identity is a load failure.
		s.StoreErrors++
	}
}

// recordRelOutcome folds a relationship merge outcome into the counters.
func (s *Summary) recordRelOutcome(kind string, outcome OpOutcome) {
	switch outcome {
	case OpMerged:
		s.addRelationship(kind)
	case OpNoResult:
		s.MissingTargets++
	case OpStoreError:
		s.StoreErrors++
	}
}
