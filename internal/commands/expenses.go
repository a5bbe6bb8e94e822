package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mithun-t/expense-tracker/internal/form"
	"github.com/mithun-t/expense-tracker/internal/model"
)

// draftFlags binds the form fields to command-line flags.
type draftFlags struct {
	description string
	amount      string
	category    string
	date        string
}

func (f *draftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "what the money was spent on")
	cmd.Flags().StringVarP(&f.amount, "amount", "a", "", "amount, e.g. 4.50")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "one of Food, Transport, Entertainment, Bills, Other")
	cmd.Flags().StringVar(&f.date, "date", "", "date as YYYY-MM-DD or RFC 3339 (default now)")
}

// apply copies the flags the user actually set into the controller's draft.
func (f *draftFlags) apply(cmd *cobra.Command, c *form.Controller) error {
	flags := cmd.Flags()
	if flags.Changed("description") {
		c.SetDescription(f.description)
	}
	if flags.Changed("amount") {
		c.SetAmount(f.amount)
	}
	if flags.Changed("category") {
		c.SetCategory(f.category)
	}
	if flags.Changed("date") {
		d, err := parseDate(f.date)
		if err != nil {
			return err
		}
		c.SetDate(d)
	}
	return nil
}

func newAddCommand(opts *globalOptions) *cobra.Command {
	var fields draftFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				c := form.NewController(s.store)
				if err := fields.apply(cmd, c); err != nil {
					return err
				}
				e, err := c.Submit(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s %s (%s)\n", e.ID, e.Description, s.money(e.Amount), e.Category)
				return nil
			})
		},
	}
	fields.register(cmd)
	return cmd
}

func newEditCommand(opts *globalOptions) *cobra.Command {
	var fields draftFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an existing expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				c := form.NewController(s.store)
				if err := c.BeginEdit(args[0]); err != nil {
					return err
				}
				if err := fields.apply(cmd, c); err != nil {
					return err
				}
				e, err := c.Submit(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s %s (%s)\n", e.ID, e.Description, s.money(e.Amount), e.Category)
				return nil
			})
		},
	}
	fields.register(cmd)
	return cmd
}

func newDeleteCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an expense",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				c := form.NewController(s.store)
				if err := c.Delete(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return nil
			})
		},
	}
}

func newListCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List expenses in the order they were recorded",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(_ context.Context, s *session) error {
				return renderList(cmd.OutOrStdout(), s)
			})
		},
	}
}

func renderList(out io.Writer, s *session) error {
	expenses := s.store.All()
	if len(expenses) == 0 {
		fmt.Fprintln(out, "No expenses recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tCATEGORY\tAMOUNT\tDESCRIPTION")
	for _, e := range expenses {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Date.Local().Format("Mon Jan 02 2006"), e.Category, s.money(e.Amount), e.Description)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing list: %w", err)
	}
	fmt.Fprintf(out, "\nTotal Expenses: %s\n", s.money(s.store.Total()))
	return nil
}

func newTotalCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "total",
		Short: "Print the sum of all expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(_ context.Context, s *session) error {
				fmt.Fprintln(cmd.OutOrStdout(), s.money(s.store.Total()))
				return nil
			})
		},
	}
}

func newCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the expense categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, c := range model.Categories() {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}
