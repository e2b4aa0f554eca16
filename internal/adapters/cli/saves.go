package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	appSavegame "github.com/andrescamacho/mekanik-go/internal/application/savegame"
)

// newSaveCommand creates the save command
func newSaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save <name>",
		Short: "Save the current game into a new slot",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(false, func(cmd *cobra.Command, s *session, args []string) error {
			resp, err := s.send(&appSavegame.SaveToSlotCommand{Name: args[0]})
			if err != nil {
				return err
			}
			slot := resp.(*appSavegame.SlotResponse).Slot
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), slot)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %q as slot %s.\n", slot.Name, slot.ID)
			return nil
		}),
	}
}

// newLoadCommand creates the load command
func newLoadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "load <slot-id>",
		Short: "Load a save slot, replacing the autosave",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(true, func(cmd *cobra.Command, s *session, args []string) error {
			state, err := s.sendState(&appSavegame.LoadFromSlotCommand{SlotID: args[0]})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded slot %s: %s aboard %s.\n", args[0], state.Player.Name, state.Ship.Name)
			return nil
		}),
	}
}

// NewSlotsCommand creates the slots command with subcommands
func NewSlotsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Manage save slots",
	}
	cmd.AddCommand(newSlotsListCommand())
	cmd.AddCommand(newSlotsDeleteCommand())
	return cmd
}

// newSlotsListCommand creates the slots list subcommand
func newSlotsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List save slots, newest first",
		Args:  cobra.NoArgs,
		RunE: withSession(false, func(cmd *cobra.Command, s *session, args []string) error {
			resp, err := s.send(&appSavegame.ListSlotsQuery{})
			if err != nil {
				return err
			}
			slots := resp.(*appSavegame.SlotsResponse).Slots
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), slots)
			}
			if len(slots) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No save slots.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSAVED\tPLAYER\tLEVEL\tSHIP")
			fmt.Fprintln(w, "--\t----\t-----\t------\t-----\t----")
			for _, slot := range slots {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
					slot.ID,
					slot.Name,
					slot.Timestamp.Local().Format(time.DateTime),
					slot.PlayerName,
					slot.PlayerLevel,
					slot.ShipName,
				)
			}
			return w.Flush()
		}),
	}
}

// newSlotsDeleteCommand creates the slots delete subcommand
func newSlotsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <slot-id>",
		Short: "Delete a save slot",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(false, func(cmd *cobra.Command, s *session, args []string) error {
			if _, err := s.send(&appSavegame.DeleteSlotCommand{SlotID: args[0]}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted slot %s.\n", args[0])
			return nil
		}),
	}
}

// newExportCommand creates the export command
func newExportCommand() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the current game as JSON",
		Long: `Write the current game as JSON to stdout, or to a file with --file.
The output can be read back with 'mekanik import'.`,
		Args: cobra.NoArgs,
		RunE: withSession(false, func(cmd *cobra.Command, s *session, args []string) error {
			resp, err := s.send(&appSavegame.ExportGameQuery{})
			if err != nil {
				return err
			}
			data := resp.(*appSavegame.ExportResponse).Data
			if outputFile == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), data)
				return err
			}
			if err := os.WriteFile(outputFile, []byte(data), 0o644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s.\n", outputFile)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&outputFile, "file", "f", "", "Write to this file instead of stdout")
	return cmd
}

// newImportCommand creates the import command
func newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the current game with an exported one",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(true, func(cmd *cobra.Command, s *session, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read import: %w", err)
			}

			state, err := s.sendState(&appSavegame.ImportGameCommand{Data: string(data)})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s aboard %s.\n", state.Player.Name, state.Ship.Name)
			return nil
		}),
	}
}
