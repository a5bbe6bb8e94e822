package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mithun-t/expense-tracker/internal/config"
	"github.com/mithun-t/expense-tracker/internal/storage"
)

func newInitCommand() *cobra.Command {
	var backend string
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create an expenses.yaml and data directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, absDir, backend, force)
		},
	}

	cmd.Flags().StringVar(&backend, "backend", storage.BackendFile, "storage backend: file or sqlite")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")

	return cmd
}

func runInit(cmd *cobra.Command, dir, backend string, force bool) error {
	cfg := config.Default()
	cfg.Storage.Backend = backend
	if backend == storage.BackendSQLite {
		cfg.Storage.Path = filepath.Join("data", "expenses.db")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	if err := os.MkdirAll(filepath.Join(dir, "data"), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write .gitignore.
	gitignore := "data/\n.env\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized expenses at %s (%s backend)\n", dir, backend)
	return nil
}
