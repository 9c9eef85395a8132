package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/oillang/oil/internal/runconfig"
)

// RunFile reads path, strips comments, compiles and runs it, printing the
// bytecode listing and VM transcript to stdio.Stdout. A missing file gets a
// dedicated message rather than the generic os error text.
func (c *Cmd) RunFile(ctx context.Context, stdio mainer.Stdio, path string) error {
	cfg, err := runconfig.Load()
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "Error: %s\n", err)
		return err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(stdio.Stdout, "Error: file '%s' not found.\n", path)
			return err
		}
		fmt.Fprintf(stdio.Stderr, "Error: %s\n", err)
		return err
	}

	if err := execute(cfg, string(src), stdio.Stdout, c.Debug); err != nil {
		fmt.Fprintln(stdio.Stdout, err)
		return err
	}
	return nil
}
