package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewJSON_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSON(&buf, slog.LevelInfo)

	logger.Info("failed", "error", errors.New("boom"))

	assert.Contains(t, buf.String(), `"err":"boom"`)
	assert.NotContains(t, buf.String(), `"error"`)
}

func TestNewJSON_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSON(&buf, Level(false))

	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	logger = NewJSON(&buf, Level(true))
	logger.Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}
