package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/capital"
	"github.com/google/subcommands"
)

// input opens the file named by the only argument, or stdin when there is none.
func input(f *flag.FlagSet) (io.ReadCloser, error) {
	switch f.NArg() {
	case 0:
		return io.NopCloser(os.Stdin), nil
	case 1:
		return os.Open(f.Arg(0))
	default:
		return nil, fmt.Errorf("at most one file expected, got %d", f.NArg())
	}
}

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the ledger with an exported document" }
func (*importCmd) Usage() string {
	return `p2pc import [<file>]

  Replaces the whole ledger with the JSON document read from <file>, or from
  stdin. The ledger is left untouched when the document cannot be read.

Usage Examples:
$ p2pc export > backup.json
$ p2pc -data other.msgpack import backup.json
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := input(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	defer r.Close()

	st, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := st.Import(r); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not import: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the ledger as a JSON document" }
func (*exportCmd) Usage() string {
	return `p2pc export [-o <file>]

  Writes the whole ledger as an indented JSON document to stdout, or to <file>.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file (defaults to stdout)")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	w := out
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		w = file
	}
	if err := capital.Export(w, s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not export ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type importLegacyCmd struct{}

func (*importLegacyCmd) Name() string { return "import-legacy" }
func (*importLegacyCmd) Synopsis() string {
	return "replace the ledger with an export of the former application"
}
func (*importLegacyCmd) Usage() string {
	return `p2pc import-legacy [<file>]

  Replaces the whole ledger with the export of the former P2P capital
  application read from <file>, or from stdin. Its Spanish names (COMPRA,
  VENTA, Banco, Efectivo, ...) are converted.
`
}

func (c *importLegacyCmd) SetFlags(f *flag.FlagSet) {}

func (c *importLegacyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := input(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	defer r.Close()

	_, status := apply("import legacy", func(capital.Snapshot) (capital.Snapshot, error) {
		return capital.ImportLegacy(r)
	})
	return status
}
