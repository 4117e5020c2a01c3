package cmd

import (
	"flag"
	"io"

	"github.com/etnz/capital"
	"github.com/etnz/capital/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var (
	accountIDs = ids(func(s capital.Snapshot) []string {
		return collect(s.Accounts, func(a capital.Account) string { return a.ID })
	})
	orderIDs = ids(func(s capital.Snapshot) []string {
		return collect(s.Orders, func(o capital.Order) string { return o.ID })
	})
	movementIDs = ids(func(s capital.Snapshot) []string {
		return collect(s.Movements, func(m capital.Movement) string { return m.ID })
	})
	currencies = predict.Set{string(capital.Local), string(capital.Foreign), string(capital.Stablecoin)}
)

// flagPredictors predicts flag values by flag name. Flags not listed here
// take any value.
var flagPredictors = map[string]complete.Predictor{
	"currency":    currencies,
	"to-currency": currencies,
	"venue":       predict.Set{string(capital.Bank), string(capital.Cash), string(capital.Exchange)},
	"side":        predict.Set{string(capital.Buy), string(capital.Sell)},
	"type":        predict.Set{string(capital.Deposit), string(capital.Withdrawal), string(capital.Transfer)},
	"mode":        predict.Set{string(capital.Auto), string(capital.Manual)},
	"account":     accountIDs,
	"o":           predict.Files("*"),
	"data":        predict.Files("*"),
}

// argPredictors predicts the positional arguments of commands by command name.
var argPredictors = map[string]complete.Predictor{
	"cancel":        orderIDs,
	"restore":       orderIDs,
	"void":          movementIDs,
	"edit":          accountIDs,
	"delete":        accountIDs,
	"import":        predict.Files("*.json"),
	"import-legacy": predict.Files("*.json"),
	"topic": complete.PredictFunc(func(string) []string {
		topics, _ := docs.GetAllTopics()
		return topics
	}),
}

// ids predicts the ids listed by f in the current ledger.
func ids(f func(capital.Snapshot) []string) complete.Predictor {
	return complete.PredictFunc(func(string) []string {
		s, err := load()
		if err != nil {
			return nil
		}
		return f(s)
	})
}

func collect[T any](list []T, id func(T) string) []string {
	var all []string
	for _, v := range list {
		all = append(all, id(v))
	}
	return all
}

// Complete handles the shell completion requests for the program name.
// It must be called before flag.Parse: when the shell asks for completions,
// they are printed and the program exits.
func Complete(name string) {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: predictFlags(flag.CommandLine),
	}
	for _, g := range groups() {
		for _, c := range g.commands {
			root.Sub[c.Name()] = completion(c)
		}
	}
	for _, name := range []string{"help", "flags", "commands"} {
		root.Sub[name] = &complete.Command{}
	}
	root.Sub["account"].Sub = map[string]*complete.Command{
		"add":    completion(&accountAddCmd{}),
		"edit":   completion(&accountEditCmd{}),
		"delete": completion(&accountDeleteCmd{}),
	}
	root.Complete(name)
}

// completion returns the completion of a command, built from its flags.
func completion(c subcommands.Command) *complete.Command {
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	f.SetOutput(io.Discard)
	c.SetFlags(f)
	return &complete.Command{
		Flags: predictFlags(f),
		Args:  argPredictors[c.Name()],
	}
}

func predictFlags(f *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[fl.Name] = nil
			return
		}
		if p, ok := flagPredictors[fl.Name]; ok {
			flags[fl.Name] = p
			return
		}
		flags[fl.Name] = predict.Something
	})
	return flags
}
