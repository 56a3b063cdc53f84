package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/trebuchet-org/fundops/internal/app"
	"github.com/trebuchet-org/fundops/internal/cli/render"
	"github.com/trebuchet-org/fundops/internal/config"
	"github.com/trebuchet-org/fundops/internal/contracts"
	"github.com/trebuchet-org/fundops/internal/domain"
	"github.com/trebuchet-org/fundops/internal/domain/models"
	"github.com/trebuchet-org/fundops/internal/usecase"
)

// NewMocksCmd creates the mocks command with subcommands
func NewMocksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mocks",
		Short: "Deploy mock tokens and price sources",
		Long: `Deploy mock integratees for test networks. Mocks are registered under
mocks/ and reused when deployed again with the same name.`,
	}

	cmd.AddCommand(newMocksDeployCmd())
	cmd.AddCommand(newMocksTokenCmd(contracts.MockToken))
	cmd.AddCommand(newMocksTokenCmd(contracts.MockSynthetixToken))
	cmd.AddCommand(newMocksCTokenCmd())
	cmd.AddCommand(newMocksPairCmd())

	return cmd
}

// newMocksDeployCmd creates the mocks deploy subcommand
func newMocksDeployCmd() *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy every mock of the mocks manifest",
		Long: `Deploy the tokens, synths, cTokens and Uniswap pairs listed in the mocks
manifest, then save their addresses as the "config" linked data record.

The manifest defaults to the mocks_manifest of fundops.toml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			path := app.Config.MocksManifest
			if manifestPath != "" {
				path = manifestPath
			}
			manifest, err := config.LoadMocksManifest(path)
			if err != nil {
				return err
			}

			result, err := app.DeployMocks.Execute(cmd.Context(), manifest)
			if err != nil {
				return err
			}

			return render.NewDeployRenderer(cmd.OutOrStdout()).RenderMocks(result)
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "Path to the mocks manifest")

	return cmd
}

// newMocksTokenCmd creates a subcommand deploying a plain or Synthetix mock token
func newMocksTokenCmd(contract string) *cobra.Command {
	var decimals uint8

	use, short := "token <symbol> <name>", "Deploy a mock ERC20 token"
	if contract == contracts.MockSynthetixToken {
		use, short = "synth <symbol> <name>", "Deploy a mock Synthetix token"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			deploy := app.MockFactories.DeployToken
			if contract == contracts.MockSynthetixToken {
				deploy = app.MockFactories.DeploySynthetixToken
			}
			deployment, err := deploy(cmd.Context(), args[0], args[1], decimals)
			if err != nil {
				return err
			}

			return render.NewDeployRenderer(cmd.OutOrStdout()).RenderDeployment(deployment)
		},
	}

	cmd.Flags().Uint8Var(&decimals, "decimals", 18, "Token decimals")

	return cmd
}

// newMocksCTokenCmd creates the mocks ctoken subcommand
func newMocksCTokenCmd() *cobra.Command {
	var (
		params       usecase.CompoundTokenParams
		underlying   string
		rateProvider string
	)

	cmd := &cobra.Command{
		Use:   "ctoken <symbol> <name>",
		Short: "Deploy a mock Compound cToken",
		Long: `Deploy a mock cToken over an underlying token. Token references are an
address, the symbol of a deployed mock token or a registry name.

Examples:
  fundops mocks ctoken cDAI "Compound Dai" --underlying DAI --rate 0.02`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params.Symbol, params.Name = args[0], args[1]
			if params.Primitive, err = resolveToken(cmd.Context(), app, underlying); err != nil {
				return err
			}
			if rateProvider != "" {
				if params.RateProvider, err = resolveToken(cmd.Context(), app, rateProvider); err != nil {
					return err
				}
			}

			deployment, err := app.MockFactories.DeployCompoundToken(cmd.Context(), params)
			if err != nil {
				return err
			}

			return render.NewDeployRenderer(cmd.OutOrStdout()).RenderDeployment(deployment)
		},
	}

	cmd.Flags().Uint8Var(&params.Decimals, "decimals", 8, "Token decimals")
	cmd.Flags().Float64Var(&params.Rate, "rate", 0, "Initial exchange rate")
	cmd.Flags().StringVar(&underlying, "underlying", "", "Underlying token")
	cmd.Flags().StringVar(&rateProvider, "rate-provider", "", "Exchange rate provider (zero address when unset)")
	_ = cmd.MarkFlagRequired("underlying")
	_ = cmd.MarkFlagRequired("rate")

	return cmd
}

// newMocksPairCmd creates the mocks pair subcommand
func newMocksPairCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pair <name> <tokenA> <tokenB>",
		Short: "Deploy a mock Uniswap V2 price source",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			a, err := resolveToken(cmd.Context(), app, args[1])
			if err != nil {
				return err
			}
			b, err := resolveToken(cmd.Context(), app, args[2])
			if err != nil {
				return err
			}

			deployment, err := app.MockFactories.DeployUniswapPair(cmd.Context(), args[0], a, b)
			if err != nil {
				return err
			}

			return render.NewDeployRenderer(cmd.OutOrStdout()).RenderDeployment(deployment)
		},
	}

	return cmd
}

// resolveToken maps a token reference to an address. References are tried as
// a hex address, a mock token, synth or cToken symbol, then a registry name.
func resolveToken(ctx context.Context, appInstance *app.App, ref string) (common.Address, error) {
	if common.IsHexAddress(ref) {
		return common.HexToAddress(ref), nil
	}

	candidates := []string{
		models.MockName(contracts.MockToken, ref),
		models.MockName(contracts.MockSynthetixToken, ref),
		models.MockName(contracts.MockCTokenIntegratee, ref),
		ref,
	}
	for _, name := range candidates {
		deployment, err := appInstance.Registry.Get(ctx, name)
		if err == nil {
			return deployment.Address, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return common.Address{}, err
		}
	}
	return common.Address{}, fmt.Errorf("cannot resolve token %s: not an address, mock symbol or deployment name", ref)
}
