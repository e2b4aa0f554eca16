package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	jsonOutput bool
	noColor    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mekanik",
		Short: "Mekanik - a starship mechanic sandbox",
		Long: `Mekanik lets you fit components into your ship's engine, shield and power
modules and watch the resulting performance.

Every command loads the autosave, applies one change and saves again. When no
autosave exists a new game is started from the starter catalog.

Examples:
  mekanik new
  mekanik inventory list
  mekanik install engine slot1 <component-id>
  mekanik ship show
  mekanik damage engine slot1 --amount 30
  mekanik save "Before the nebula"
  mekanik serve`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: config.yaml in ., ./configs or /etc/mekanik)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Print results as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")

	rootCmd.AddCommand(newNewGameCommand())
	rootCmd.AddCommand(NewShipCommand())
	rootCmd.AddCommand(NewInventoryCommand())
	rootCmd.AddCommand(newInstallCommand())
	rootCmd.AddCommand(newRemoveCommand())
	rootCmd.AddCommand(newRepairCommand())
	rootCmd.AddCommand(newDamageCommand())
	rootCmd.AddCommand(newRecalculateCommand())
	rootCmd.AddCommand(newEffectCommand())
	rootCmd.AddCommand(NewMissionCommand())
	rootCmd.AddCommand(newSaveCommand())
	rootCmd.AddCommand(newLoadCommand())
	rootCmd.AddCommand(NewSlotsCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newServeCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
