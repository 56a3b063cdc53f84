package cli

import (
	"github.com/spf13/cobra"

	"github.com/trebuchet-org/fundops/internal/adapters/anvil"
	"github.com/trebuchet-org/fundops/internal/cli/render"
	"github.com/trebuchet-org/fundops/internal/usecase"
)

// NewNodeCmd creates the node command with subcommands
func NewNodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Manage a local anvil node",
		Long: `Manage a local anvil node for trying deployments before running them
against a public network. Nodes run in the background and are tracked by
PID files in the system temp directory.`,
	}

	cmd.AddCommand(newNodeCmd(usecase.NodeStart, "Start a local anvil node", "Start a local anvil node. Fails if it is already running.", true))
	cmd.AddCommand(newNodeCmd(usecase.NodeStop, "Stop a local anvil node", "Stop the local anvil node if it is running.", false))
	cmd.AddCommand(newNodeCmd(usecase.NodeRestart, "Restart a local anvil node", "Stop the local anvil node if it is running, then start it again.", true))
	cmd.AddCommand(newNodeCmd(usecase.NodeStatus, "Show local anvil node status", "Show whether the local anvil node runs and answers RPC requests.", false))

	return cmd
}

// nodeFlags holds the flags of the node subcommands
type nodeFlags struct {
	name     string
	port     int
	chainID  uint64
	mnemonic string
}

// newNodeCmd creates a node subcommand running one operation
func newNodeCmd(operation, short, long string, starts bool) *cobra.Command {
	flags := &nodeFlags{}

	cmd := &cobra.Command{
		Use:   operation,
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNodeCommand(cmd, operation, flags)
		},
	}

	cmd.Flags().StringVar(&flags.name, "name", anvil.DefaultAnvilName, "Instance name")
	if starts {
		cmd.Flags().IntVar(&flags.port, "port", anvil.DefaultAnvilPort, "RPC port to bind (0 picks a free port)")
		cmd.Flags().Uint64Var(&flags.chainID, "chain-id", 0, "Chain ID of the node (anvil default when unset)")
		cmd.Flags().StringVar(&flags.mnemonic, "mnemonic", "", "Mnemonic for the node's funded accounts")
	}

	return cmd
}

// runNodeCommand executes a node operation and renders the result
func runNodeCommand(cmd *cobra.Command, operation string, flags *nodeFlags) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	result, err := app.ManageAnvil.Execute(cmd.Context(), usecase.ManageAnvilParams{
		Operation: operation,
		Name:      flags.name,
		Port:      flags.port,
		ChainID:   flags.chainID,
		Mnemonic:  flags.mnemonic,
	})
	if err != nil {
		return err
	}

	return render.NewAnvilRenderer(cmd.OutOrStdout()).Render(result)
}
