package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	appGame "github.com/andrescamacho/mekanik-go/internal/application/game"
	domainGame "github.com/andrescamacho/mekanik-go/internal/domain/game"
)

// newNewGameCommand creates the new command
func newNewGameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Start a new game, replacing the autosave",
		Long: `Start a new game from the starter catalog and overwrite the autosave.

Save slots are kept.

Example:
  mekanik new`,
		Args: cobra.NoArgs,
		RunE: withSessionOptions(sessionOptions{fresh: true}, true, func(cmd *cobra.Command, s *session, args []string) error {
			state := s.store.Snapshot()
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), state)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "New game started: %s aboard %s with %d credits and %d components.\n",
				state.Player.Name, state.Ship.Name, state.Credits, len(state.Inventory))
			return nil
		}),
	}
}

// printShip shows the ship tree after a change, or the whole state as JSON
func printShip(cmd *cobra.Command, state domainGame.State) error {
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), state.Ship)
	}
	f := newFormatter()
	fmt.Fprint(cmd.OutOrStdout(), f.FormatShip(state.Ship))
	fmt.Fprintln(cmd.OutOrStdout(), f.FormatPerformanceSummary(state.Ship))
	return nil
}

// newInstallCommand creates the install command
func newInstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "install <module> <slot> <component-id>",
		Short: "Install an inventory component into a module slot",
		Long: `Move a component from the inventory into a slot of the engine, shield or
power module. A component already in the slot goes back to the inventory.

Example:
  mekanik install engine slot1 6f1c0c1e-...`,
		Args: cobra.ExactArgs(3),
		RunE: withSession(true, func(cmd *cobra.Command, s *session, args []string) error {
			state, err := s.sendState(&appGame.InstallComponentCommand{
				Module:      args[0],
				Slot:        args[1],
				ComponentID: args[2],
			})
			if err != nil {
				return err
			}
			return printShip(cmd, state)
		}),
	}
}

// newRemoveCommand creates the remove command
func newRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <module> <slot>",
		Short: "Return the component in a module slot to the inventory",
		Args:  cobra.ExactArgs(2),
		RunE: withSession(true, func(cmd *cobra.Command, s *session, args []string) error {
			state, err := s.sendState(&appGame.RemoveComponentCommand{Module: args[0], Slot: args[1]})
			if err != nil {
				return err
			}
			return printShip(cmd, state)
		}),
	}
}

// newRepairCommand creates the repair command
func newRepairCommand() *cobra.Command {
	var amount float64

	cmd := &cobra.Command{
		Use:   "repair <module> <slot>",
		Short: "Repair an installed component",
		Long: `Raise the durability of an installed component, capped at 100.

Example:
  mekanik repair engine slot1 --amount 25`,
		Args: cobra.ExactArgs(2),
		RunE: withSession(true, func(cmd *cobra.Command, s *session, args []string) error {
			state, err := s.sendState(&appGame.RepairComponentCommand{Module: args[0], Slot: args[1], Amount: amount})
			if err != nil {
				return err
			}
			return printShip(cmd, state)
		}),
	}

	cmd.Flags().Float64Var(&amount, "amount", 20, "Durability to restore")
	return cmd
}

// newDamageCommand creates the damage command
func newDamageCommand() *cobra.Command {
	var amount float64

	cmd := &cobra.Command{
		Use:   "damage <module> <slot>",
		Short: "Damage an installed component",
		Long: `Lower the durability of an installed component, floored at 0.

Example:
  mekanik damage shield slot1 --amount 50`,
		Args: cobra.ExactArgs(2),
		RunE: withSession(true, func(cmd *cobra.Command, s *session, args []string) error {
			state, err := s.sendState(&appGame.DamageComponentCommand{Module: args[0], Slot: args[1], Amount: amount})
			if err != nil {
				return err
			}
			return printShip(cmd, state)
		}),
	}

	cmd.Flags().Float64Var(&amount, "amount", 20, "Durability to remove")
	return cmd
}

// newRecalculateCommand creates the recalculate command
func newRecalculateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "recalculate",
		Short: "Recompute ship performance from the installed components",
		Args:  cobra.NoArgs,
		RunE: withSession(true, func(cmd *cobra.Command, s *session, args []string) error {
			state, err := s.sendState(&appGame.RecalculatePerformanceCommand{})
			if err != nil {
				return err
			}
			return printShip(cmd, state)
		}),
	}
}

// newEffectCommand creates the effect command
func newEffectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "effect <component-id> <effect-id>",
		Short: "Trigger a special effect of an installed component",
		Args:  cobra.ExactArgs(2),
		RunE: withSession(true, func(cmd *cobra.Command, s *session, args []string) error {
			state, err := s.sendState(&appGame.ActivateEffectCommand{ComponentID: args[0], EffectID: args[1]})
			if err != nil {
				return err
			}
			return printShip(cmd, state)
		}),
	}
}
