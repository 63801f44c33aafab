package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/household"
	"github.com/google/subcommands"
)

type fmtCmd struct {
	outputFile string
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the database into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `hh fmt [-o <output_file>]

  Validates and formats the database. This command reads all records,
  validates them, migrates investment assets stored with aggregate values
  to per unit prices, and writes them back in a canonical form.
  By default, it formats the database in-place. Use -o to write elsewhere,
  the output format follows the file extension: it converts a JSONL
  database into a SQLite one, and back.

Usage Examples:
# Rewrites the default database.
$ hh fmt

# Converts it to SQLite.
$ hh fmt -o household.db
`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.outputFile, "o", "", "Output database. Defaults to the input database.")
}

func (p *fmtCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, cfg, ok := openDatabase(ctx)
	if !ok {
		return subcommands.ExitFailure
	}

	invalid := 0
	for _, r := range store.Snapshot().Records() {
		if err := household.Validate(r); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %s %q: %v\n", r.Kind(), r.Key(), err)
			invalid++
		}
	}

	output := cfg.DBFile
	if p.outputFile != "" {
		output = p.outputFile
	}
	if err := SaveStore(ctx, output, store.Snapshot()); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving formatted database %q: %v\n", output, err)
		return subcommands.ExitFailure
	}
	if invalid > 0 {
		fmt.Fprintf(os.Stderr, "Formatted %s, %d invalid records left untouched.\n", output, invalid)
		return subcommands.ExitSuccess
	}
	fmt.Fprintf(os.Stderr, "✅ Successfully formatted %s.\n", output)
	return subcommands.ExitSuccess
}
