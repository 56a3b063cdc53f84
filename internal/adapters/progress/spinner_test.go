package progress

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/trebuchet-org/fundops/internal/domain/config"
	"github.com/trebuchet-org/fundops/internal/usecase"
)

func TestSpinnerProgressReporter(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	r := newSpinnerProgressReporter(&buf)

	r.OnProgress(context.Background(), usecase.ProgressEvent{Stage: "mocks", Current: 1, Total: 2, Message: "deployed mocks/MockToken (WETH)"})
	r.Info("Starting local anvil node 'anvil'...")
	r.OnProgress(context.Background(), usecase.ProgressEvent{Stage: "loading", Message: "ignored"})
	r.Stop()

	assert.Equal(t, "✓ [1/2] deployed mocks/MockToken (WETH)\nStarting local anvil node 'anvil'...\n", buf.String())
}

func TestFormatEvent(t *testing.T) {
	assert.Equal(t, "[2/5] Running Mocks", formatEvent(usecase.ProgressEvent{Current: 2, Total: 5, Message: "Running Mocks"}))
	assert.Equal(t, "Loading", formatEvent(usecase.ProgressEvent{Message: "Loading"}))
}

func TestNewProgressSink(t *testing.T) {
	assert.IsType(t, usecase.NopProgress{}, NewProgressSink(&config.RuntimeConfig{JSON: true}))
	assert.IsType(t, usecase.NopProgress{}, NewProgressSink(&config.RuntimeConfig{NonInteractive: true}))
	assert.IsType(t, &SpinnerProgressReporter{}, NewProgressSink(&config.RuntimeConfig{}))
}
