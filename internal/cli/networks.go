package cli

import (
	"github.com/spf13/cobra"

	"github.com/trebuchet-org/fundops/internal/cli/render"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List networks from fundops.toml",
		Long: `List all networks configured in the [networks] section of fundops.toml.

Networks without a configured chain_id are asked for it over RPC.
Networks that run the release finalize step are tagged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context())
			if err != nil {
				return err
			}

			return render.NewNetworksRenderer(cmd.OutOrStdout()).RenderNetworksList(result)
		},
	}

	return cmd
}
