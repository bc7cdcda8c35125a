package ingest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryJSONFlatKeys(t *testing.T) {
	sum := newSummary("run-1", "orders.csv")
	sum.Status = StatusCompleted
	sum.ProcessedRows = 2
	sum.addValidated(EntityOrder)
	sum.addValidated(EntityOrderItem)
	sum.addLoaded(EntityOrder)
	sum.addRelationship(RelPlaced)
	sum.addRelationship(RelContains)

	data, err := json.Marshal(sum)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "run-1", decoded["run_id"])
	assert.Equal(t, "Completed", decoded["status"])
	assert.Equal(t, "orders.csv", decoded["csv_file_path"])
	assert.Equal(t, float64(2), decoded["processed_rows"])
	assert.Equal(t, float64(1), decoded["validated_orders_count"])
	assert.Equal(t, float64(1), decoded["validated_order_items_count"])
	assert.Equal(t, float64(1), decoded["loaded_orders_count"])
	assert.Equal(t, float64(1), decoded["PLACED_count"])
	assert.Equal(t, float64(1), decoded["CONTAINS_count"])
	assert.Equal(t, float64(0), decoded["validation_errors"])
	assert.Equal(t, float64(0), decoded["type_conversion_errors"])
	assert.Equal(t, float64(0), decoded["store_errors"])

	// Counters stay flat, never nested maps.
	_, nested := decoded["validated"]
	assert.False(t, nested)
	_, nested = decoded["relationships"]
	assert.False(t, nested)

	// A summary with no message omits the message key.
	_, hasMessage := decoded["message"]
	assert.False(t, hasMessage)
}

func TestSummaryJSONFailedMessage(t *testing.T) {
	sum := newSummary("run-2", "")
	sum.Status = StatusFailed
	sum.Message = "cannot open file"

	data, err := json.Marshal(sum)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Failed", decoded["status"])
	assert.Equal(t, "cannot open file", decoded["message"])
	_, hasPath := decoded["csv_file_path"]
	assert.False(t, hasPath)
}
