package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	err := NewError(CONFIG_LOAD_FAILED, "could not load")

	assert.Equal(t, CONFIG_LOAD_FAILED, err.Code)
	assert.Equal(t, "could not load", err.Message)
	assert.False(t, err.Retryable)
	assert.Nil(t, err.Cause)
	assert.Equal(t, "[CONFIG_LOAD_FAILED] could not load", err.Error())
}

func TestNewRetryableError(t *testing.T) {
	err := NewRetryableError(INGEST_FILE_UNREADABLE, "timeout")
	assert.True(t, err.Retryable)
}

func TestWrapError(t *testing.T) {
	cause := errors.New("permission denied")
	err := WrapError(INGEST_FILE_NOT_FOUND, "cannot open file", cause)

	assert.Equal(t, "[INGEST_FILE_NOT_FOUND] cannot open file: permission denied", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, err.Unwrap())
}

func TestErrorIsMatchesByCode(t *testing.T) {
	a := NewError(INGEST_HEADER_INVALID, "first")
	b := NewError(INGEST_HEADER_INVALID, "second")
	c := NewError(INGEST_VALIDATION_FAILED, "other")

	assert.ErrorIs(t, a, b)
	assert.NotErrorIs(t, a, c)
}

func TestErrorAsThroughWrapping(t *testing.T) {
	inner := NewError(CONFIG_PARSE_FAILED, "bad yaml")
	wrapped := fmt.Errorf("loading: %w", inner)

	var sgErr *ShopGraphError
	require.ErrorAs(t, wrapped, &sgErr)
	assert.Equal(t, CONFIG_PARSE_FAILED, sgErr.Code)
}
