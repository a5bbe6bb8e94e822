package commands

import (
	"github.com/spf13/cobra"

	"github.com/mithun-t/expense-tracker/internal/buildinfo"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	backend    string
	dataPath   string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "expenses",
		Short:   "Track personal expenses",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "expenses.yaml", "config file")
	flags.StringVar(&opts.backend, "backend", "", "storage backend: memory, file or sqlite (overrides config)")
	flags.StringVar(&opts.dataPath, "data", "", "data directory or database file (overrides config)")

	rootCmd.AddCommand(
		newInitCommand(),
		newAddCommand(opts),
		newListCommand(opts),
		newEditCommand(opts),
		newDeleteCommand(opts),
		newTotalCommand(opts),
		newCategoriesCommand(),
		newDumpCommand(opts),
		newExportCommand(opts),
		newImportCommand(opts),
	)

	return rootCmd
}
