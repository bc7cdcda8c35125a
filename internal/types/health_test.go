package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthConstructors(t *testing.T) {
	h := Healthy("all good")
	assert.Equal(t, HealthStateHealthy, h.State)
	assert.Equal(t, "all good", h.Message)
	assert.False(t, h.CheckedAt.IsZero())
	assert.True(t, h.IsHealthy())
	assert.False(t, h.IsUnhealthy())

	d := Degraded("slow")
	assert.Equal(t, HealthStateDegraded, d.State)
	assert.False(t, d.IsHealthy())
	assert.False(t, d.IsUnhealthy())

	u := Unhealthy("down")
	assert.True(t, u.IsUnhealthy())
	assert.False(t, u.IsHealthy())
}

func TestHealthStatusJSON(t *testing.T) {
	h := Unhealthy("connection refused")

	data, err := json.Marshal(h)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"state":"unhealthy"`)
	assert.Contains(t, string(data), `"message":"connection refused"`)

	var decoded HealthStatus
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, h.State, decoded.State)
	assert.Equal(t, h.Message, decoded.Message)
}

func TestHealthyOmitsEmptyMessage(t *testing.T) {
	data, err := json.Marshal(Healthy(""))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "message")
}
