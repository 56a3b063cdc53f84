package interactive

import (
	"errors"
	"testing"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/fundops/internal/domain/config"
)

func TestConfirmerAdapter(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.RuntimeConfig
		answer  error
		want    bool
		wantErr string
	}{
		{name: "yes flag skips prompt", cfg: config.RuntimeConfig{Yes: true}, want: true},
		{name: "non-interactive refuses", cfg: config.RuntimeConfig{NonInteractive: true}, wantErr: "rerun with --yes"},
		{name: "user confirms", want: true},
		{name: "user declines", answer: promptui.ErrAbort, want: false},
		{name: "interrupted", answer: promptui.ErrInterrupt, wantErr: "prompt failed"},
		{name: "other failure", answer: errors.New("no tty"), wantErr: "no tty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			c := NewConfirmerAdapter(&cfg)
			prompted := false
			c.run = func(p promptui.Prompt) (string, error) {
				prompted = true
				assert.True(t, p.IsConfirm)
				return "", tt.answer
			}

			got, err := c.Confirm("Set release status to live on kovan")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, !cfg.Yes, prompted)
		})
	}
}
