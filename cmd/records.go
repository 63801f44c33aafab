package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/household"
	"github.com/etnz/household/date"
	"github.com/google/subcommands"
)

// addCmd adds a record of one kind.
type addCmd struct {
	kind   household.Kind
	record *recordFlags
}

func (c *addCmd) Name() string     { return "add-" + string(c.kind) }
func (c *addCmd) Synopsis() string { return fmt.Sprintf("add a new %s", c.kind) }
func (c *addCmd) Usage() string {
	return fmt.Sprintf(`hh %s%s

  Adds a new %s to the database and prints its identifier.
  The currency defaults to the configured one.
`, c.Name(), usage(c.kind), c.kind)
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	c.record = newRecordFlags(c.kind)
	c.record.SetFlags(f)
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, cfg, ok := openDatabase(ctx)
	if !ok {
		return subcommands.ExitFailure
	}
	if !c.record.has("currency") {
		c.record.values["currency"] = cfg.Currency
	}
	for _, x := range fields[c.kind] {
		if x.typ == dateField && x.key == "date" && !c.record.has(x.key) {
			c.record.values[x.key] = date.Today()
		}
	}

	data, err := c.record.JSON()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	r, err := household.DecodeRecordOf(c.kind, data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := household.Validate(r); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid %s: %v\n", c.kind, err)
		return subcommands.ExitUsageError
	}
	id, err := store.Add(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if status := saveDatabase(ctx, cfg, store); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Println(id)
	return subcommands.ExitSuccess
}

// updateCmd updates the fields of a record set on the command line.
type updateCmd struct {
	kind   household.Kind
	id     string
	record *recordFlags
}

func (c *updateCmd) Name() string     { return "update-" + string(c.kind) }
func (c *updateCmd) Synopsis() string { return fmt.Sprintf("update an existing %s", c.kind) }
func (c *updateCmd) Usage() string {
	return fmt.Sprintf(`hh %s -id <id>%s

  Updates the %s fields given on the command line, the others are left untouched.
  Changing the currency re-denominates every amount of the record.
`, c.Name(), usage(c.kind), c.kind)
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Identifier of the record to update.")
	c.record = newRecordFlags(c.kind)
	c.record.SetFlags(f)
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}
	if len(c.record.values) == 0 {
		fmt.Fprintln(os.Stderr, "Error: nothing to update.")
		return subcommands.ExitUsageError
	}
	store, cfg, ok := openDatabase(ctx)
	if !ok {
		return subcommands.ExitFailure
	}
	data, err := c.record.JSON()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := store.UpdateJSON(c.kind, c.id, data); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, household.ErrNotFound) {
			return subcommands.ExitFailure
		}
		return subcommands.ExitUsageError
	}
	return saveDatabase(ctx, cfg, store)
}

// deleteCmd deletes a record.
type deleteCmd struct {
	kind household.Kind
	id   string
}

func (c *deleteCmd) Name() string     { return "delete-" + string(c.kind) }
func (c *deleteCmd) Synopsis() string { return fmt.Sprintf("delete a %s", c.kind) }
func (c *deleteCmd) Usage() string {
	return fmt.Sprintf(`hh %s -id <id>

  Deletes a %s. Deleting an unknown identifier does nothing.
  Records referencing it are left untouched.
`, c.Name(), c.kind)
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Identifier of the record to delete.")
}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}
	store, cfg, ok := openDatabase(ctx)
	if !ok {
		return subcommands.ExitFailure
	}
	if !store.Delete(c.kind, c.id) {
		fmt.Fprintf(os.Stderr, "Warning: no %s %q.\n", c.kind, c.id)
		return subcommands.ExitSuccess
	}
	return saveDatabase(ctx, cfg, store)
}

// settleCmd toggles the settled state of an interpersonal debt.
type settleCmd struct {
	id string
}

func (*settleCmd) Name() string     { return "settle" }
func (*settleCmd) Synopsis() string { return "mark a debt as settled, or active again" }
func (*settleCmd) Usage() string {
	return `hh settle -id <id>

  Toggles the settled state of an interpersonal debt.
`
}

func (c *settleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Identifier of the debt.")
}

func (c *settleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}
	store, cfg, ok := openDatabase(ctx)
	if !ok {
		return subcommands.ExitFailure
	}
	if err := store.ToggleSettled(c.id); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	d, _ := store.Snapshot().Debt(c.id)
	state := "active"
	if d.Settled {
		state = "settled"
	}
	fmt.Printf("Debt %q is now %s.\n", d.Name, state)
	return saveDatabase(ctx, cfg, store)
}
