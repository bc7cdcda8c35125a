package observability

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerTextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "info", "text")

	log.Info("hello", "key", "value")

	out := buf.String()
	assert.Contains(t, out, "msg=hello")
	assert.Contains(t, out, "key=value")
}

func TestNewLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "info", "json")

	log.Info("hello", "key", "value")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "value", entry["key"])
}

func TestNewLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "warn", "text")

	log.Info("filtered")
	assert.Empty(t, buf.String())

	log.Warn("emitted")
	assert.Contains(t, buf.String(), "emitted")
}

func TestNewLoggerDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "debug", "text")

	log.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestNewLoggerUnknownValuesFallBack(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "loud", "xml")

	log.Debug("filtered at default info level")
	assert.Empty(t, buf.String())

	log.Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}
