package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/google/subcommands"
	"github.com/terraincognita07/caixa/internal/app"
	"github.com/terraincognita07/caixa/internal/models"
	"github.com/terraincognita07/caixa/internal/services"
)

// singleArg returns the only positional argument, named what in the error.
func singleArg(f *flag.FlagSet, what string) (string, error) {
	if f.NArg() != 1 || strings.TrimSpace(f.Arg(0)) == "" {
		return "", usageErrorf("expected exactly one %s", what)
	}
	return strings.TrimSpace(f.Arg(0)), nil
}

type addEntryCmd struct {
	env         *Env
	description string
	amount      string
	kind        string
}

func (*addEntryCmd) Name() string     { return "add-entry" }
func (*addEntryCmd) Synopsis() string { return "record an income or expense" }
func (*addEntryCmd) Usage() string {
	return `caixa add-entry -d <description> -a <amount> [-k entrada|saida]

  Amounts accept "1500.50", "1500,50" or "1.500,50".
`
}

func (c *addEntryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.description, "d", "", "Entry description.")
	f.StringVar(&c.amount, "a", "", "Amount in BRL, greater than zero.")
	f.StringVar(&c.kind, "k", string(models.EntryIncome), "Entry kind: entrada (income) or saida (expense).")
}

func (c *addEntryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.run(ctx, func(_ context.Context, application *app.App) error {
		session, err := application.Services.Accounts.RequireSession()
		if err != nil {
			return err
		}
		input, err := services.NewEntryInput(c.description, c.amount, c.kind)
		if err != nil {
			return err
		}
		entry, err := application.Services.Ledger.AddEntry(session, input)
		if err != nil {
			return err
		}
		c.env.say(application, "cli.entry_added", entry.ID)
		return nil
	})
}

type entriesCmd struct {
	env  *Env
	kind string
}

func (*entriesCmd) Name() string     { return "entries" }
func (*entriesCmd) Synopsis() string { return "list ledger entries, most recent first" }
func (*entriesCmd) Usage() string {
	return `caixa entries [-k all|income|expense]
`
}

func (c *entriesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "k", string(services.FilterAll), "Filter: all, income or expense.")
}

func (c *entriesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.run(ctx, func(_ context.Context, application *app.App) error {
		session, err := application.Services.Accounts.RequireSession()
		if err != nil {
			return err
		}
		filter, err := services.ParseEntryFilter(c.kind)
		if err != nil {
			return err
		}
		entries, err := application.Services.Ledger.Entries(session, filter)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			c.env.say(application, "cli.no_entries")
			return nil
		}

		location := c.env.Config.Location
		writer := tabwriter.NewWriter(c.env.Stdout, 0, 0, 2, ' ', 0)
		for _, entry := range entries {
			date := entry.CreatedAt
			if location != nil {
				date = date.In(location)
			}
			fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
				date.Format("2006-01-02"),
				c.env.text(application, "kind."+string(entry.Kind)),
				entry.Amount.Format(),
				entry.Description,
				entry.ID,
			)
		}
		return writer.Flush()
	})
}

type removeEntryCmd struct {
	env *Env
	yes bool
}

func (*removeEntryCmd) Name() string     { return "remove-entry" }
func (*removeEntryCmd) Synopsis() string { return "delete one ledger entry" }
func (*removeEntryCmd) Usage() string {
	return `caixa remove-entry [-yes] <id>
`
}

func (c *removeEntryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "Do not ask for confirmation.")
}

func (c *removeEntryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.run(ctx, func(_ context.Context, application *app.App) error {
		id, err := singleArg(f, "entry id")
		if err != nil {
			return err
		}
		session, err := application.Services.Accounts.RequireSession()
		if err != nil {
			return err
		}
		confirmed, err := c.env.confirm(application, "confirm.remove_entry", c.yes)
		if err != nil {
			return err
		}
		if !confirmed {
			c.env.say(application, "cli.cancelled")
			return nil
		}
		if err := application.Services.Ledger.RemoveEntry(session, id); err != nil {
			return err
		}
		c.env.say(application, "cli.removed")
		return nil
	})
}

type clearEntriesCmd struct {
	env *Env
	yes bool
}

func (*clearEntriesCmd) Name() string     { return "clear-entries" }
func (*clearEntriesCmd) Synopsis() string { return "delete every ledger entry" }
func (*clearEntriesCmd) Usage() string {
	return `caixa clear-entries [-yes]
`
}

func (c *clearEntriesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "Do not ask for confirmation.")
}

func (c *clearEntriesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.run(ctx, func(_ context.Context, application *app.App) error {
		session, err := application.Services.Accounts.RequireSession()
		if err != nil {
			return err
		}
		confirmed, err := c.env.confirm(application, "confirm.clear_entries", c.yes)
		if err != nil {
			return err
		}
		if !confirmed {
			c.env.say(application, "cli.cancelled")
			return nil
		}
		if err := application.Services.Ledger.ClearAll(session); err != nil {
			return err
		}
		c.env.say(application, "cli.cleared")
		return nil
	})
}

type summaryCmd struct {
	env *Env
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show totals, balance and the income share" }
func (*summaryCmd) Usage() string {
	return `caixa summary
`
}

func (*summaryCmd) SetFlags(*flag.FlagSet) {}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.run(ctx, func(_ context.Context, application *app.App) error {
		session, err := application.Services.Accounts.RequireSession()
		if err != nil {
			return err
		}
		summary, err := application.Services.Ledger.Summarize(session)
		if err != nil {
			return err
		}
		chart := services.BuildChart(summary)

		share := fmt.Sprintf("%d%%", chart.IncomePercent)
		if chart.NoData {
			share = c.env.text(application, "chart.no_data")
		}

		writer := tabwriter.NewWriter(c.env.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(writer, "%s\t%s\n", c.env.text(application, "summary.income"), summary.TotalIncome.Format())
		fmt.Fprintf(writer, "%s\t%s\n", c.env.text(application, "summary.expense"), summary.TotalExpense.Format())
		fmt.Fprintf(writer, "%s\t%s\n", c.env.text(application, "summary.balance"), summary.Balance.Format())
		fmt.Fprintf(writer, "%s\t%s\n", c.env.text(application, "summary.chart"), share)
		return writer.Flush()
	})
}

type paySalaryCmd struct {
	env *Env
}

func (*paySalaryCmd) Name() string     { return "pay-salary" }
func (*paySalaryCmd) Synopsis() string { return "record an employee salary as an expense" }
func (*paySalaryCmd) Usage() string {
	return `caixa pay-salary <employee id>
`
}

func (*paySalaryCmd) SetFlags(*flag.FlagSet) {}

func (c *paySalaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.run(ctx, func(_ context.Context, application *app.App) error {
		id, err := singleArg(f, "employee id")
		if err != nil {
			return err
		}
		session, err := application.Services.Accounts.RequireSession()
		if err != nil {
			return err
		}
		entry, err := application.Services.Ledger.AddSalaryExpense(session, id)
		if err != nil {
			return err
		}
		c.env.say(application, "cli.entry_added", entry.ID)
		return nil
	})
}
