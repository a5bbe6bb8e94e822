package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mithun-t/expense-tracker/internal/expense"
	applog "github.com/mithun-t/expense-tracker/internal/log"
)

func newDumpCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the raw persisted storage contents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				raw, ok, err := s.store.Raw(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !ok {
					fmt.Fprintln(out, "Storage is empty")
					return nil
				}

				// Pretty-print when it is valid JSON, otherwise show it verbatim.
				var buf bytes.Buffer
				if err := json.Indent(&buf, []byte(raw), "", "  "); err != nil {
					fmt.Fprintln(out, raw)
					return nil
				}
				fmt.Fprintln(out, buf.String())
				return nil
			})
		},
	}
}

func newExportCommand(opts *globalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all expenses as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(_ context.Context, s *session) error {
				if output == "" || output == "-" {
					return expense.WriteCSV(cmd.OutOrStdout(), s.store.All())
				}

				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer f.Close()

				if err := expense.WriteCSV(f, s.store.All()); err != nil {
					return fmt.Errorf("exporting to %s: %w", output, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d expenses to %s\n", s.store.Len(), output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default stdout)")

	return cmd
}

func newImportCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Append expenses from an exported CSV, skipping ids already present",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				added, skipped, err := importCSV(ctx, s, f)
				if err != nil {
					return fmt.Errorf("importing %s: %w", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d expenses (%d skipped)\n", added, skipped)
				return nil
			})
		},
	}
}

// importCSV parses every row before touching the store, so a bad file adds nothing.
func importCSV(ctx context.Context, s *session, r io.Reader) (added, skipped int, err error) {
	rows, err := expense.ReadCSV(r)
	if err != nil {
		return 0, 0, err
	}

	for _, e := range rows {
		err := s.store.Add(ctx, e)
		if errors.Is(err, expense.ErrDuplicateID) {
			s.logger.WarnContext(ctx, "skipping expense already present",
				applog.FieldOperation, applog.OpImport, applog.FieldExpenseID, e.ID)
			skipped++
			continue
		}
		if err != nil {
			return added, skipped, err
		}
		added++
	}
	return added, skipped, nil
}
