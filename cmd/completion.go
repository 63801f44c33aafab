package cmd

import (
	"flag"

	"github.com/etnz/household"
	"github.com/etnz/household/docs"
	"github.com/etnz/household/renderer"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the registered commands, top
// flags being those of the top level flag set. Flags are predicted from each
// command's flag set.
func Completion(top *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(top, nil),
	}
	for _, cmd := range registered {
		f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(f)
		root.Sub[cmd.Name()] = &complete.Command{
			Flags: flagPredictors(f, cmd),
			Args:  argsPredictor(cmd),
		}
	}
	return root
}

var kinds = func() predict.Set {
	var s predict.Set
	for _, k := range household.Kinds {
		s = append(s, k.Plural())
	}
	return s
}()

func flagPredictors(f *flag.FlagSet, cmd subcommands.Command) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		flags[fl.Name] = flagPredictor(fl, cmd)
	})
	return flags
}

func flagPredictor(fl *flag.Flag, cmd subcommands.Command) complete.Predictor {
	switch fl.Name {
	case "db":
		return predict.Files("*")
	case "o":
		if _, ok := cmd.(*exportCmd); ok {
			return predict.Files("*.xlsx")
		}
		return predict.Files("*")
	case "sort":
		return predict.Set{"date", "amount"}
	case "order":
		return predict.Set{"asc", "desc"}
	case "s":
		return predict.Set(renderer.AllSections)
	case "type":
		if c, ok := cmd.(interface{ recordKind() household.Kind }); ok {
			return typePredictor(c.recordKind())
		}
	case "risk":
		return predict.Set{string(household.LowRisk), string(household.MediumRisk), string(household.HighRisk)}
	}
	if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	return predict.Something
}

func typePredictor(k household.Kind) complete.Predictor {
	switch k {
	case household.KindAccount:
		return predict.Set{string(household.Checking), string(household.Savings), string(household.Credit)}
	case household.KindDebt:
		return predict.Set{string(household.Owe), string(household.Owed)}
	case household.KindLoan:
		return predict.Set{string(household.Mortgage), string(household.Auto), string(household.Personal), string(household.CreditCard)}
	}
	return predict.Something
}

func argsPredictor(cmd subcommands.Command) complete.Predictor {
	switch cmd.(type) {
	case *listCmd:
		return kinds
	case *topicCmd:
		index, _ := docs.Index()
		topics := make(predict.Set, 0, len(index))
		for _, t := range index {
			topics = append(topics, t.Name)
		}
		return topics
	case *queryCmd:
		paths := make(predict.Set, 0, len(kinds))
		for _, k := range kinds {
			paths = append(paths, "$."+k)
		}
		return paths
	}
	return predict.Nothing
}

func (c *addCmd) recordKind() household.Kind    { return c.kind }
func (c *updateCmd) recordKind() household.Kind { return c.kind }
