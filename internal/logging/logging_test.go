package logging_test

import (
	"bytes"
	"testing"

	"github.com/rook-computer/deckgfx/internal/logging"
	"github.com/stretchr/testify/assert"
)

func TestFileLoggerTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewFileLogger(&buf)

	logger.Infof("graphics", "generated %d banks", 3)
	logger.Errorf("store", "query failed: %v", "boom")

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, `msg="generated 3 banks"`)
	assert.Contains(t, out, "component=graphics")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "component=store")
}

func TestNoopLoggerDiscards(t *testing.T) {
	var logger logging.Logger = logging.NoopLogger{}
	assert.NotPanics(t, func() {
		logger.Infof("x", "%s", "y")
		logger.Errorf("x", "%s", "y")
	})
}
