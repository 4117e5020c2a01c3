// Package cmd implements the p2pc command line application.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/capital"
	"github.com/etnz/capital/store"
	"github.com/google/subcommands"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

const (
	EnvData    = "P2PC_DATA"
	EnvVerbose = "P2PC_VERBOSE"
)

// defaultData is the ledger file used when neither -data nor $P2PC_DATA is set.
const defaultData = "capital.json"

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataFlag = flag.String("data", "", "Path to the ledger file, .json or .msgpack (default $"+EnvData+" or "+defaultData+")")
var verboseFlag = flag.Bool("v", false, "Log debug messages (default $"+EnvVerbose+")")

// out receives the documents printed by commands.
var out io.Writer = os.Stdout

// group is a set of commands listed together in the help.
type group struct {
	name     string
	commands []subcommands.Command
}

// groups returns new instances of every p2pc command.
func groups() []group {
	return []group{
		{"accounts", []subcommands.Command{&accountCmd{}, &accountsCmd{}}},
		{"trading", []subcommands.Command{&orderCmd{}, &ordersCmd{}, &cancelCmd{}, &restoreCmd{}}},
		{"funds", []subcommands.Command{&expenseCmd{}, &movementCmd{}, &voidCmd{}, &movementsCmd{}}},
		{"capital", []subcommands.Command{&settingsCmd{}, &balanceCmd{}, &capitalCmd{}, &saveReportCmd{}, &reportsCmd{}, &monthlyCmd{}}},
		{"data", []subcommands.Command{&importCmd{}, &exportCmd{}, &importLegacyCmd{}}},
		{"help", []subcommands.Command{&topicCmd{}, &assistCmd{}}},
	}
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, g := range groups() {
		for _, cmd := range g.commands {
			c.Register(cmd, g.name)
		}
	}
}

// DataPath returns the path to the ledger file.
func DataPath() string {
	if *dataFlag != "" {
		return *dataFlag
	}
	if p := os.Getenv(EnvData); p != "" {
		return p
	}
	return defaultData
}

// Verbose reports whether debug messages are logged.
func Verbose() bool {
	if *verboseFlag {
		return true
	}
	v, _ := strconv.ParseBool(os.Getenv(EnvVerbose))
	return v
}

// Logger returns the logger of the application, writing to stderr.
func Logger() zerolog.Logger {
	level := zerolog.InfoLevel
	if Verbose() {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().
		Logger()
}

// openStore opens the ledger file.
func openStore() (*store.Store, error) {
	return store.Open(DataPath(), Logger())
}

// load returns the current snapshot of the ledger file.
func load() (capital.Snapshot, error) {
	st, err := openStore()
	if err != nil {
		return capital.Snapshot{}, err
	}
	return st.Snapshot(), nil
}

// apply runs the mutation f on the ledger file. Errors are reported on stderr.
func apply(what string, f func(capital.Snapshot) (capital.Snapshot, error)) (capital.Snapshot, subcommands.ExitStatus) {
	st, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return capital.Snapshot{}, subcommands.ExitFailure
	}
	s, err := st.Apply(what, f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not %s: %v\n", what, err)
		return s, subcommands.ExitFailure
	}
	return s, subcommands.ExitSuccess
}

// show loads the ledger and prints the document rendered from it.
func show(render func(capital.Snapshot) string) subcommands.ExitStatus {
	s, err := load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(render(s))
	return subcommands.ExitSuccess
}

// printMarkdown prints a markdown document, styled when printing to a terminal.
func printMarkdown(doc string) {
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
		if err == nil {
			if styled, err := r.Render(doc); err == nil {
				fmt.Fprint(out, styled)
				return
			}
		}
	}
	fmt.Fprint(out, doc)
}

// IsCommand reports whether name is a p2pc command, builtin commands included.
func IsCommand(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, g := range groups() {
		for _, c := range g.commands {
			if c.Name() == name {
				return true
			}
		}
	}
	return false
}
