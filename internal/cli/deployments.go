package cli

import (
	"github.com/spf13/cobra"

	"github.com/trebuchet-org/fundops/internal/cli/render"
	"github.com/trebuchet-org/fundops/internal/domain/models"
	"github.com/trebuchet-org/fundops/internal/usecase"
)

// NewDeploymentsCmd creates the deployments command with subcommands
func NewDeploymentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deployments",
		Aliases: []string{"d"},
		Short:   "Inspect the deployment registry",
		Long: `Inspect the deployment registry of the selected network. Records live in
<deployments>/<network>/<name>.json.`,
	}

	cmd.AddCommand(newDeploymentsListCmd())
	cmd.AddCommand(newDeploymentsShowCmd())

	return cmd
}

func newDeploymentsListCmd() *cobra.Command {
	var params usecase.ListDeploymentsParams

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List deployments of the selected network",
		Long: `List the deployment registry of the selected network, grouped into
contracts, mocks and linked data.

Examples:
  fundops deployments list --network kovan
  fundops deployments list --network kovan --prefix mocks/
  fundops deployments list --network kovan --contract MockToken
  fundops deployments list --network kovan --linked`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListDeployments.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), render.DeploymentsByName(result.Deployments))
			}
			return render.NewDeploymentsRenderer(cmd.OutOrStdout()).RenderDeploymentList(result)
		},
	}

	cmd.Flags().StringVar(&params.Prefix, "prefix", "", "Only names starting with this prefix")
	cmd.Flags().StringVar(&params.Contract, "contract", "", "Only deployments of this contract")
	cmd.Flags().BoolVar(&params.LinkedOnly, "linked", false, "Only linked data records")

	return cmd
}

func newDeploymentsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a deployment of the selected network",
		Long: `Show the registry record saved under a name, such as FundDeployer or
"mocks/MockToken (DAI)".

Examples:
  fundops deployments show FundDeployer --network kovan
  fundops deployments show "mocks/MockToken (DAI)" --network kovan --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			deployment, err := app.ShowDeployment.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), render.DeploymentsByName([]*models.Deployment{deployment}))
			}
			return render.NewDeploymentsRenderer(cmd.OutOrStdout()).RenderDeployment(app.Config.Network.Name, deployment)
		},
	}

	return cmd
}
