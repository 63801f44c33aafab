package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/household/docs"
	"github.com/google/subcommands"
)

type topicCmd struct {
	index bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `hh topic [-l] [<topic>...]

  Shows the documentation of the given topics, the introduction by default.
  Use '*' for all of them.

`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.index, "l", false, "list the topics and their titles")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.index {
		index, err := docs.Index()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading the topics: %v\n", err)
			return subcommands.ExitFailure
		}
		var b strings.Builder
		b.WriteString("| Topic | Title |\n|---|---|\n")
		for _, t := range index {
			fmt.Fprintf(&b, "| %s | %s |\n", t.Name, t.Title)
		}
		printMarkdown(b.String())
		return subcommands.ExitSuccess
	}

	names := f.Args()
	if len(names) == 0 {
		names = []string{"readme"}
	}
	doc, err := docs.Read(names...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading doc: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
