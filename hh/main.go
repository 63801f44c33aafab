// Command hh tracks household finances: accounts, budgets, expenses, debts,
// properties and investments.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/household/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// Exits when invoked by the shell to complete the command line.
	cmd.Completion(flag.CommandLine).Complete("hh")

	flag.Parse()

	if sub := flag.Arg(0); sub != "" && !isBuiltin(sub) && !cmd.Registered(sub) {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

func isBuiltin(name string) bool {
	return name == "help" || name == "flags" || name == "commands"
}
