package maincmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mna/mainer"

	"github.com/oillang/oil/internal/runconfig"
)

// REPL runs an interactive read-compile-run loop over stdio: a banner, a
// ">> " prompt, blank lines ignored, "exit" terminates, and both EOF and an
// interrupt print "Exiting..." and return. ctx is checked only before each
// read, so an interrupt that arrives while a line is being read or run is
// acted on after that line has been read and run.
func (c *Cmd) REPL(ctx context.Context, stdio mainer.Stdio) {
	fmt.Fprintf(stdio.Stdout, "OilLang %s Type 'exit' to exit.\n", c.BuildVersion)

	cfg, err := runconfig.Load()
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "Error: %s\n", err)
		return
	}

	scanner := bufio.NewScanner(stdio.Stdin)
	for {
		fmt.Fprint(stdio.Stdout, ">> ")

		select {
		case <-ctx.Done():
			fmt.Fprintln(stdio.Stdout, "\nExiting...")
			return
		default:
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil && err != io.EOF {
				fmt.Fprintf(stdio.Stderr, "Error: %s\n", err)
			}
			fmt.Fprintln(stdio.Stdout, "\nExiting...")
			return
		}

		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "exit" {
			break
		}
		if trimmed == "" {
			continue
		}

		if err := execute(cfg, line, stdio.Stdout, c.Debug); err != nil {
			fmt.Fprintln(stdio.Stdout, err)
		}
	}
}
