// Package maincmd implements the command-line glue around the core OilLang
// pipeline: given zero arguments it starts an interactive REPL, given one
// argument it runs that file, and it rejects anything else with a usage
// message.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mna/mainer"
)

const binName = "oil"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] [<source_file.oil>]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] [<source_file.oil>]
       %[1]s -h|--help
       %[1]s -v|--version

Lexer, parser, compiler and virtual machine for the OilLang teaching
language.

With no source file, %[1]s starts an interactive REPL. With exactly one, the
file is compiled and run.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --debug                   Print a field-by-field AST dump before
                                 running.
`, binName)
)

// Cmd is the top-level command, populated by mainer.Parser from the process
// arguments (environment variables are not read into it).
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`
	Debug   bool `flag:"debug"`

	args []string
}

func (c *Cmd) SetArgs(args []string)     { c.args = args }
func (c *Cmd) SetFlags(map[string]bool) {}

// Validate rejects anything but zero or one positional argument.
func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) > 1 {
		return errors.New("at most one source file may be given")
	}
	return nil
}

// Main parses args, dispatches to the REPL or the file runner, and returns
// the process exit code.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)

	switch len(c.args) {
	case 0:
		c.REPL(ctx, stdio)
		return mainer.Success
	case 1:
		if err := c.RunFile(ctx, stdio, c.args[0]); err != nil {
			return mainer.Failure
		}
		return mainer.Success
	default:
		fmt.Fprintln(stdio.Stdout, "Usage: oil [source_file.oil]")
		fmt.Fprintln(stdio.Stdout, "If no file is provided, starts REPL mode.")
		return mainer.InvalidArgs
	}
}
