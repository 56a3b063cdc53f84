package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/trebuchet-org/fundops/internal/cli/render"
)

// NewLinkedDataCmd creates the linked-data command with subcommands
func NewLinkedDataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linked-data",
		Short: "Save and load JSON records in the registry",
		Long: `Linked data records store arbitrary JSON in the deployment registry of a
network, next to the contract records. The mocks step saves the addresses
it deployed under "config".`,
	}

	cmd.AddCommand(newLinkedDataSaveCmd())
	cmd.AddCommand(newLinkedDataLoadCmd())
	cmd.AddCommand(newLinkedDataHasCmd())

	return cmd
}

func newLinkedDataSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <name> [json]",
		Short: "Save a JSON value under a name",
		Long: `Save a JSON value under a name, replacing any previous record.
The value is read from stdin when not given as an argument.

Examples:
  fundops linked-data save settings '{"fee": 25}' --network kovan
  cat settings.json | fundops linked-data save settings --network kovan`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			var raw []byte
			if len(args) == 2 {
				raw = []byte(args[1])
			} else if raw, err = io.ReadAll(cmd.InOrStdin()); err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			if !json.Valid(raw) {
				return fmt.Errorf("value for %s is not valid JSON", args[0])
			}

			if err := app.LinkedData.Save(cmd.Context(), args[0], json.RawMessage(raw)); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), render.FormatSuccess(fmt.Sprintf("Saved linked data %s", args[0])))
			return nil
		},
	}
}

func newLinkedDataLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <name>",
		Short: "Print the JSON value saved under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			raw, err := app.LinkedData.LoadRaw(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return render.RenderJSON(cmd.OutOrStdout(), raw)
		},
	}
}

func newLinkedDataHasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "has <name>",
		Short: "Report whether linked data is saved under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			ok, err := app.LinkedData.Has(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
}
