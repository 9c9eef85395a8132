// Command oil is the lexer, parser, compiler and virtual machine for the
// OilLang teaching language, run as either a one-shot file runner or an
// interactive REPL.
package main

import (
	"os"

	"github.com/mna/mainer"

	"github.com/oillang/oil/internal/maincmd"
)

var (
	// placeholder values, replaced on build
	version   = "{v}" // must be N.N[.N]
	buildDate = "{d}" // must be YYYY-mm-DD
)

func main() {
	c := maincmd.Cmd{BuildVersion: version, BuildDate: buildDate}
	os.Exit(int(c.Main(os.Args, mainer.CurrentStdio())))
}
