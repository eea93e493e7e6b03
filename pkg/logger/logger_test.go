package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo)

	log.Info(context.Background(), "turn handled", String("conversation", "c1"), Int("polls", 3))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "turn handled", entry["msg"])
	assert.Equal(t, "c1", entry["conversation"])
	assert.Equal(t, float64(3), entry["polls"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelWarn)

	log.Debug(context.Background(), "noise")
	log.Info(context.Background(), "noise")
	assert.Zero(t, buf.Len())

	log.Error(context.Background(), "failed", Error(errors.New("boom")))
	assert.Contains(t, buf.String(), "boom")
}

func TestNamedGroupsFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo).Named("scrape")

	log.Info(context.Background(), "poll", Int("attempt", 1))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	group, ok := entry["scrape"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), group["attempt"])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
		wantErr  bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"", slog.LevelInfo, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		level, err := ParseLevel(tt.input)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.expected, level, tt.input)
	}
}
