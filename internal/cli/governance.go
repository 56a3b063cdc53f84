package cli

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/trebuchet-org/fundops/internal/app"
	"github.com/trebuchet-org/fundops/internal/cli/render"
	"github.com/trebuchet-org/fundops/internal/usecase"
)

// governanceFlags holds the flags shared by the governance subcommands
type governanceFlags struct {
	governance string
	from       string
}

// NewGovernanceCmd creates the governance command with subcommands
func NewGovernanceCmd() *cobra.Command {
	flags := &governanceFlags{}

	cmd := &cobra.Command{
		Use:   "governance",
		Short: "Run governance actions",
		Long: `Run governance actions against the Governance contract. Each action is
proposed, confirmed and triggered from the same account.

The contract defaults to the "Governance" deployment of the selected
network and the account to the deployer.`,
	}

	cmd.PersistentFlags().StringVar(&flags.governance, "governance", "", "Governance contract address")
	cmd.PersistentFlags().StringVar(&flags.from, "from", "", "Sending account name or address")

	cmd.AddCommand(newGovernanceActivateCmd(flags))
	cmd.AddCommand(newGovernanceShutdownCmd(flags))
	cmd.AddCommand(newGovernanceStatusCmd(flags))

	return cmd
}

func newGovernanceActivateCmd(flags *governanceFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "activate <version>",
		Short: "Add a version to governance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !common.IsHexAddress(args[0]) {
				return fmt.Errorf("invalid version address: %s", args[0])
			}

			session, _, err := governanceSession(cmd, flags)
			if err != nil {
				return err
			}

			id, err := session.ActivateVersion(cmd.Context(), common.HexToAddress(args[0]))
			if err != nil {
				return err
			}

			return render.NewGovernanceRenderer(cmd.OutOrStdout()).RenderAction("activateVersion", id)
		},
	}
}

func newGovernanceShutdownCmd(flags *governanceFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "shutdown <version-id>",
		Short: "Shut down a version by its id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			versionID, ok := new(big.Int).SetString(args[0], 10)
			if !ok || versionID.Sign() < 0 {
				return fmt.Errorf("invalid version id: %s", args[0])
			}

			session, _, err := governanceSession(cmd, flags)
			if err != nil {
				return err
			}

			id, err := session.ShutDownVersion(cmd.Context(), versionID)
			if err != nil {
				return err
			}

			return render.NewGovernanceRenderer(cmd.OutOrStdout()).RenderAction("shutDownVersion", id)
		},
	}
}

func newGovernanceStatusCmd(flags *governanceFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List the versions known to governance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, appInstance, err := governanceSession(cmd, flags)
			if err != nil {
				return err
			}

			versions, err := session.Versions(cmd.Context())
			if err != nil {
				return err
			}

			if appInstance.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), versions)
			}
			return render.NewGovernanceRenderer(cmd.OutOrStdout()).RenderVersions(session.Address().Hex(), versions)
		},
	}
}

// governanceSession binds governance from the command flags
func governanceSession(cmd *cobra.Command, flags *governanceFlags) (*usecase.GovernanceSession, *app.App, error) {
	appInstance, err := getApp(cmd)
	if err != nil {
		return nil, nil, err
	}

	var params usecase.GovernanceParams
	if flags.governance != "" {
		if !common.IsHexAddress(flags.governance) {
			return nil, nil, fmt.Errorf("invalid governance address: %s", flags.governance)
		}
		params.Address = common.HexToAddress(flags.governance)
	}
	if params.From, err = resolveAccount(appInstance, flags.from); err != nil {
		return nil, nil, err
	}

	session, err := appInstance.Governance.Session(cmd.Context(), params)
	if err != nil {
		return nil, nil, err
	}
	return session, appInstance, nil
}

// resolveAccount maps an account name or address to an address. An empty
// reference returns the zero address so use cases fall back to the deployer.
func resolveAccount(appInstance *app.App, ref string) (common.Address, error) {
	switch {
	case ref == "":
		return common.Address{}, nil
	case common.IsHexAddress(ref):
		return common.HexToAddress(ref), nil
	default:
		return appInstance.Accounts.NamedAccount(ref)
	}
}
