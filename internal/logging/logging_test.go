package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"", log.InfoLevel},
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{" warn ", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, log.WarnLevel)

	l.Info("hidden")
	assert.Empty(t, buf.String())

	l.Warn("shown", "subject", "Physics")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "Physics")
}

func TestComponent_AddsPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := Component(New(&buf, log.DebugLevel), "server")

	l.Info("listening")
	assert.Contains(t, buf.String(), "server")
	assert.Contains(t, buf.String(), "listening")
}
