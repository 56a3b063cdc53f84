package progress

import (
	"github.com/trebuchet-org/fundops/internal/domain/config"
	"github.com/trebuchet-org/fundops/internal/usecase"
)

// NewNopSink creates a no-op progress sink
func NewNopSink() usecase.ProgressSink {
	return usecase.NopProgress{}
}

// NewProgressSink picks the spinner for interactive runs and a no-op sink
// for JSON output or non-interactive runs
func NewProgressSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.JSON || cfg.NonInteractive {
		return NewNopSink()
	}
	return NewSpinnerProgressReporter()
}
