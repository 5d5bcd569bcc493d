package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(LevelInfo)
	t.Cleanup(func() {
		SetLevel(LevelInfo)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"", LevelInfo},
		{"warn", LevelWarn},
		{"WARNING", LevelWarn},
		{" error ", LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestInfo_Format(t *testing.T) {
	buf := reset(t)
	Info("found %d files", 3)
	assert.Equal(t, "[INFO] found 3 files\n", buf.String())
}

func TestDebug_BelowThreshold(t *testing.T) {
	buf := reset(t)
	Debug("hidden")
	Section("hidden")
	Dump("hidden", map[string]int{"a": 1})
	assert.Empty(t, buf.String())
}

func TestLevelFiltering(t *testing.T) {
	buf := reset(t)
	SetLevel(LevelWarn)
	Info("skip")
	Warn("keep %s", "me")
	Error("and me")
	assert.Equal(t, "[WARNING] keep me\n[ERROR] and me\n", buf.String())
}

func TestDump_WhenDebug(t *testing.T) {
	buf := reset(t)
	SetLevel(LevelDebug)
	Dump("doc", map[string]string{"name": "Alpha"})
	out := buf.String()
	assert.Contains(t, out, "[DEBUG] doc:")
	assert.Contains(t, out, `"Alpha"`)
}
