package ingest

import (
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// datetimeLayouts are the accepted date column formats, tried in order.
var datetimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// coercer converts raw CSV field values into typed values. Malformed input
// never fails the call: it is logged at warning level, counted on the
// summary, and reported as absent (nil). Empty or whitespace-only input is
// absent for all types without a warning.
type coercer struct {
	log *slog.Logger
	sum *Summary
}

func newCoercer(log *slog.Logger, sum *Summary) *coercer {
	return &coercer{log: log, sum: sum}
}

// Int coerces raw to an integer, returning nil when absent or malformed.
func (c *coercer) Int(field, raw string) *int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.warn(field, raw, "integer")
		return nil
	}
	return &v
}

// Float coerces raw to a float, returning nil when absent or malformed.
func (c *coercer) Float(field, raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		c.warn(field, raw, "float")
		return nil
	}
	return &v
}

// Time coerces raw to a timestamp, trying the accepted layouts in order and
// returning nil when absent or no layout parses.
func (c *coercer) Time(field, raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range datetimeLayouts {
		if v, err := time.Parse(layout, raw); err == nil {
			return &v
		}
	}
	c.warn(field, raw, "datetime")
	return nil
}

// String returns nil for empty or whitespace-only input, otherwise the value
// as given. Strings cannot be malformed, so no warning path exists.
func (c *coercer) String(raw string) *string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return &raw
}

func (c *coercer) warn(field, raw, kind string) {
	c.log.Warn("could not coerce field, treating as absent",
		"field", field, "value", raw, "expected", kind)
	if c.sum != nil {
		c.sum.TypeConversionErrors++
	}
}
