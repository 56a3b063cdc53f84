package cli

import (
	"github.com/spf13/cobra"

	"github.com/trebuchet-org/fundops/internal/cli/render"
	"github.com/trebuchet-org/fundops/internal/config"
	"github.com/trebuchet-org/fundops/internal/usecase"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var tags []string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Run the deployment pipeline",
		Long: `Run the deployment pipeline on the selected network.

The pipeline deploys the mocks of the mocks manifest, then the contract
steps of fundops.toml in order, then finalizes the release on networks
listed in [finalize]. Contracts already in the registry are reused.

Use --tags to run only the steps carrying one of the given tags. The mocks
and finalize steps carry the tags "mocks" and "finalize".

Examples:
  fundops deploy --network kovan
  fundops deploy --network kovan --tags mocks
  fundops deploy --network kovan --tags core,finalize`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			manifest, err := config.LoadMocksManifestIfExists(app.Config.MocksManifest)
			if err != nil {
				return err
			}

			result, err := app.RunDeploy.Execute(cmd.Context(), usecase.RunDeployParams{
				Tags:     tags,
				Manifest: manifest,
			})
			if err != nil {
				return err
			}

			return render.NewDeployRenderer(cmd.OutOrStdout()).RenderRunDeploy(result)
		},
	}

	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Run only steps with one of these tags")

	return cmd
}

// NewFinalizeCmd creates the finalize command
func NewFinalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finalize",
		Short: "Switch the deployed release live",
		Long: `Switch the release of the deployed FundDeployer live on the selected
network. Networks not listed in [finalize] of fundops.toml are skipped, and
a release that is already live is left as is.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.FinalizeRelease.Execute(cmd.Context())
			if err != nil {
				return err
			}

			return render.NewDeployRenderer(cmd.OutOrStdout()).RenderFinalize(result)
		},
	}

	return cmd
}
