package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/etnz/household"
	"github.com/etnz/household/date"
	"github.com/etnz/household/export"
	"github.com/etnz/household/renderer"
	"github.com/google/subcommands"
)

// listCmd prints the records of one kind, one JSON object per line.
type listCmd struct {
	sort     string
	order    string
	category string
	period   string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the records of a kind" }
func (*listCmd) Usage() string {
	return `hh list [-category <name>] [-p <period>] [-sort date|amount] [-order asc|desc] <kind>

  Prints the records of a kind, one JSON object per line, in insertion order.
  Kinds are: accounts, budgets, expenses, debts, loans, properties, groups and assets.

  Expenses can be filtered by category and period, then sorted by date or amount.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sort, "sort", "", "Sort expenses by 'date' or 'amount'.")
	f.StringVar(&c.order, "order", "desc", "Sort order, 'asc' or 'desc'.")
	f.StringVar(&c.category, "category", "", "Only list the expenses of this category.")
	f.StringVar(&c.period, "p", "", "Only list the expenses of this period, e.g. 2025, 2025-Q1, 2025-03.")
}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: list takes exactly one kind.")
		return subcommands.ExitUsageError
	}
	kind, err := household.ParseKind(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	filtered := c.sort != "" || c.category != "" || c.period != ""
	if filtered && kind != household.KindExpense {
		fmt.Fprintln(os.Stderr, "Error: -sort, -category and -p only apply to expenses.")
		return subcommands.ExitUsageError
	}
	store, _, ok := openDatabase(ctx)
	if !ok {
		return subcommands.ExitFailure
	}
	s := store.Snapshot()

	records := s.RecordsOf(kind)
	if kind == household.KindExpense {
		expenses, err := c.expenses(s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		records = make([]household.Record, 0, len(expenses))
		for _, e := range expenses {
			records = append(records, e)
		}
	}
	for _, r := range records {
		if err := household.EncodeRecord(os.Stdout, r); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

// expenses applies the filters first, then the sort.
func (c *listCmd) expenses(s *household.Snapshot) ([]household.Expense, error) {
	order, err := household.ParseOrder(c.order)
	if err != nil {
		return nil, err
	}
	expenses := s.Expenses()
	if c.category != "" {
		expenses = household.FilterBy(expenses, household.ExpenseCategory, c.category)
	}
	if c.period != "" {
		r, err := date.ParseRange(c.period)
		if err != nil {
			return nil, err
		}
		expenses = household.Filter(expenses, func(e household.Expense) bool { return r.Contains(e.Date) })
	}
	switch c.sort {
	case "":
	case "date":
		expenses = household.SortByDate(expenses, household.ExpenseDate, order)
	case "amount":
		expenses = household.SortByAmount(expenses, household.ExpenseAmount, order)
	default:
		return nil, fmt.Errorf("unknown sort %q, want date or amount", c.sort)
	}
	return expenses, nil
}

// summaryCmd prints the household dashboard.
type summaryCmd struct {
	period   string
	sections string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the household dashboard" }
func (*summaryCmd) Usage() string {
	return `hh summary [-p <period>] [-s <section>,...]

  Displays the net worth, the emergency fund, and one section per collection:
  accounts, budgets, expenses, debts, loans, properties and portfolio.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "", "Period of the expenses and spending shown, e.g. 2025-03. All time by default.")
	f.StringVar(&c.sections, "s", "", "Comma separated sections to display. All by default.")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, cfg, ok := openDatabase(ctx)
	if !ok {
		return subcommands.ExitFailure
	}
	opts := renderer.Options{Language: languageTag(cfg), Currency: cfg.Currency}
	if c.period != "" {
		r, err := date.ParseRange(c.period)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing period: %v\n", err)
			return subcommands.ExitUsageError
		}
		opts.Period = r
	}
	if c.sections != "" {
		for _, name := range strings.Split(c.sections, ",") {
			name = strings.TrimSpace(name)
			if !slices.Contains(renderer.AllSections, name) {
				fmt.Fprintf(os.Stderr, "Error: unknown section %q, want one of %s\n", name, strings.Join(renderer.AllSections, ", "))
				return subcommands.ExitUsageError
			}
			opts.Sections = append(opts.Sections, name)
		}
	}
	printMarkdown(renderer.Dashboard(store.Snapshot(), opts))
	return subcommands.ExitSuccess
}

// queryCmd evaluates a JSONPath expression on the database.
type queryCmd struct {
	indent bool
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression on the records" }
func (*queryCmd) Usage() string {
	return `hh query [-indent] <jsonpath>

  Evaluates a JSONPath expression on the database, seen as one object with an
  array per collection, and prints the JSON result.

Usage Examples:
$ hh query '$.accounts[?(@.type=="savings")].balance'
$ hh query '$.expenses[*].category'
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.indent, "indent", false, "Indent the JSON output.")
}

func (c *queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: query takes exactly one JSONPath expression.")
		return subcommands.ExitUsageError
	}
	store, _, ok := openDatabase(ctx)
	if !ok {
		return subcommands.ExitFailure
	}
	v, err := household.Query(store.Snapshot(), f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	enc := json.NewEncoder(os.Stdout)
	if c.indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// exportCmd writes the database as a spreadsheet.
type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the records to an xlsx workbook" }
func (*exportCmd) Usage() string {
	return `hh export [-o <file.xlsx>]

  Writes a workbook with a summary sheet and one sheet per collection.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "household.xlsx", "Output file.")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, _, ok := openDatabase(ctx)
	if !ok {
		return subcommands.ExitFailure
	}
	out, err := os.Create(c.output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := export.Write(out, store.Snapshot()); err != nil {
		out.Close()
		fmt.Fprintf(os.Stderr, "Error exporting to %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	if err := out.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Exported to %s\n", c.output)
	return subcommands.ExitSuccess
}
