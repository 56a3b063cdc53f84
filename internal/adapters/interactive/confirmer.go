package interactive

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/trebuchet-org/fundops/internal/domain/config"
	"github.com/trebuchet-org/fundops/internal/usecase"
)

// ConfirmerAdapter asks yes/no questions on the terminal
type ConfirmerAdapter struct {
	config *config.RuntimeConfig
	run    func(prompt promptui.Prompt) (string, error)
}

// NewConfirmerAdapter creates a new confirmer adapter
func NewConfirmerAdapter(cfg *config.RuntimeConfig) *ConfirmerAdapter {
	return &ConfirmerAdapter{
		config: cfg,
		run: func(p promptui.Prompt) (string, error) {
			return p.Run()
		},
	}
}

// Confirm returns true when the user answers yes. --yes skips the prompt.
func (c *ConfirmerAdapter) Confirm(label string) (bool, error) {
	if c.config.Yes {
		return true, nil
	}
	if c.config.NonInteractive {
		return false, fmt.Errorf("confirmation required for %q, rerun with --yes", label)
	}

	_, err := c.run(promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	})
	if err != nil {
		// promptui reports a "no" answer as ErrAbort
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return true, nil
}

// Ensure the adapter implements the interface
var _ usecase.Confirmer = (*ConfirmerAdapter)(nil)
