package cli

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/trebuchet-org/fundops/internal/cli/render"
	"github.com/trebuchet-org/fundops/internal/contracts"
	"github.com/trebuchet-org/fundops/internal/usecase"
)

// NewPoliciesCmd creates the policies command with subcommands
func NewPoliciesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policies",
		Short: "Manage fund policies",
	}

	cmd.AddCommand(newPoliciesBootstrapCmd())

	return cmd
}

func newPoliciesBootstrapCmd() *cobra.Command {
	var (
		policyManager string
		from          string
		withConfig    bool
	)

	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Register a mock policy for every policy hook",
		Long: `Deploy one mock policy per policy hook, stub it to accept every rule
and register all of them with the policy manager in a single call.

With --config the encoded policy manager config that enables the mocks is
printed as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			var params usecase.BootstrapMockPoliciesParams
			if policyManager != "" {
				if !common.IsHexAddress(policyManager) {
					return fmt.Errorf("invalid policy manager address: %s", policyManager)
				}
				params.PolicyManager = common.HexToAddress(policyManager)
			} else {
				deployment, err := app.Registry.Get(cmd.Context(), contracts.PolicyManager)
				if err != nil {
					return fmt.Errorf("failed to load %s: %w", contracts.PolicyManager, err)
				}
				params.PolicyManager = deployment.Address
			}
			if params.From, err = resolveAccount(app, from); err != nil {
				return err
			}

			renderer := render.NewPoliciesRenderer(cmd.OutOrStdout())
			if withConfig {
				data, mocks, err := usecase.PolicyManagerConfigWithMockPolicies(cmd.Context(), app.BootstrapMockPolicies, params)
				if err != nil {
					return err
				}
				return renderer.RenderBootstrap(mocks, data)
			}

			mocks, err := app.BootstrapMockPolicies.Execute(cmd.Context(), params)
			if err != nil {
				return err
			}
			return renderer.RenderBootstrap(mocks, nil)
		},
	}

	cmd.Flags().StringVar(&policyManager, "policy-manager", "", "Policy manager address (defaults to the PolicyManager deployment)")
	cmd.Flags().StringVar(&from, "from", "", "Sending account name or address")
	cmd.Flags().BoolVar(&withConfig, "config", false, "Print the encoded policy manager config")

	return cmd
}
