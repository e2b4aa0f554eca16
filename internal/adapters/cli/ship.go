package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewShipCommand creates the ship command with subcommands
func NewShipCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ship",
		Short: "Inspect the ship",
	}
	cmd.AddCommand(newShipShowCommand())
	return cmd
}

// newShipShowCommand creates the ship show subcommand
func newShipShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show modules, installed components and performance",
		Long: `Show the ship's modules with every slot, the ship-wide performance
figures and any active warnings.

Examples:
  mekanik ship show
  mekanik ship show --json`,
		Args: cobra.NoArgs,
		RunE: withSession(false, func(cmd *cobra.Command, s *session, args []string) error {
			state := s.store.Snapshot()
			if err := printShip(cmd, state); err != nil {
				return err
			}
			if jsonOutput {
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "\nPilot:\t%s (level %d, %d xp)\n", state.Player.Name, state.Player.Level, state.Player.Experience)
			fmt.Fprintf(w, "Credits:\t%d\n", state.Credits)
			fmt.Fprintf(w, "Game time:\t%.0fs\n", state.GameTime)
			return w.Flush()
		}),
	}
}
