package cli

import (
	"github.com/spf13/cobra"

	"github.com/trebuchet-org/fundops/internal/cli/render"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a fundops project",
		Long: `Initialize a fundops project in the current directory by creating
fundops.toml, a mocks manifest and the deployments registry.

Existing files are left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd)
		},
	}

	return cmd
}

// runInit executes the init command
func runInit(cmd *cobra.Command) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	result, err := app.InitProject.Execute(cmd.Context())
	renderer := render.NewInitRenderer(cmd.OutOrStdout())
	if err != nil {
		// Still render partial results even on error
		if result != nil {
			_ = renderer.Render(result)
		}
		return err
	}

	return renderer.Render(result)
}
