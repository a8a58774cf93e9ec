package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestDelivery_Success(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info", "json")

	log.Delivery("ref-1", "owner_notification", "example.com", 20*time.Millisecond, nil)

	entry := decodeLine(t, &buf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "ref-1", entry["reference"])
	assert.Equal(t, "owner_notification", entry["kind"])
	assert.Equal(t, true, entry["delivered"])
	assert.NotContains(t, entry, "error")
}

func TestDelivery_Failure(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info", "json")

	log.Delivery("ref-2", "auto_reply", "example.com", time.Second, errors.New("535 auth failed"))

	entry := decodeLine(t, &buf)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, false, entry["delivered"])
	assert.Equal(t, "535 auth failed", entry["error"])
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn", "json")

	log.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("kept")
	assert.NotZero(t, buf.Len())
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug", "json").WithComponent("relay").WithRequestID("abc")

	log.Debug().Msg("hello")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "relay", entry["component"])
	assert.Equal(t, "abc", entry["request_id"])
}

func TestLateDelivery(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info", "json")

	log.LateDelivery("ref-1", "example.com", 20*time.Second, nil)

	entry := decodeLine(t, &buf)
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "ref-1", entry["reference"])
	assert.Equal(t, true, entry["delivered"])
	assert.NotContains(t, entry, "error")
}
