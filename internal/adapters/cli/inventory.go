package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	appGame "github.com/andrescamacho/mekanik-go/internal/application/game"
	"github.com/andrescamacho/mekanik-go/internal/domain/component"
)

// NewInventoryCommand creates the inventory command with subcommands
func NewInventoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Manage components that are not installed",
	}
	cmd.AddCommand(newInventoryListCommand())
	cmd.AddCommand(newInventoryRepairCommand())
	return cmd
}

// newInventoryListCommand creates the inventory list subcommand
func newInventoryListCommand() *cobra.Command {
	var module string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List inventory components",
		Long: `List components that are not installed, optionally only those fitting one module.

Example:
  mekanik inventory list --module power`,
		Args: cobra.NoArgs,
		RunE: withSession(false, func(cmd *cobra.Command, s *session, args []string) error {
			inventory := s.store.Snapshot().Inventory
			if module != "" {
				category, err := component.ParseCategory(module)
				if err != nil {
					return err
				}
				inventory = inventory.OfCategory(category)
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), inventory)
			}
			if len(inventory) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Inventory is empty.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tMODULE\tSUBTYPE\tPOWER\tENERGY\tHEAT\tCONDITION")
			fmt.Fprintln(w, "--\t----\t------\t-------\t-----\t------\t----\t---------")
			for _, c := range inventory {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f\t%.0f\t%.0f\t%s (%.0f%%)\n",
					c.ID,
					c.Name,
					c.Category,
					c.Subtype,
					c.Properties.PowerRating,
					c.Properties.EnergyConsumption,
					c.Properties.HeatGeneration,
					c.Condition(),
					c.Properties.Durability,
				)
			}
			return w.Flush()
		}),
	}

	cmd.Flags().StringVar(&module, "module", "", "Only list components for this module (engine, shield, power)")
	return cmd
}

// newInventoryRepairCommand creates the inventory repair subcommand
func newInventoryRepairCommand() *cobra.Command {
	var amount float64

	cmd := &cobra.Command{
		Use:   "repair <component-id>",
		Short: "Repair a component sitting in the inventory",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(true, func(cmd *cobra.Command, s *session, args []string) error {
			state, err := s.sendState(&appGame.RepairInventoryComponentCommand{ComponentID: args[0], Amount: amount})
			if err != nil {
				return err
			}
			_, c, _ := state.Inventory.Find(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s repaired to %.0f%% (%s).\n", c.Name, c.Properties.Durability, c.Condition())
			return nil
		}),
	}

	cmd.Flags().Float64Var(&amount, "amount", 20, "Durability to restore")
	return cmd
}
