package maincmd

import (
	"fmt"
	"io"

	"github.com/oillang/oil/internal/preprocess"
	"github.com/oillang/oil/internal/runconfig"
	"github.com/oillang/oil/lang/ast"
	"github.com/oillang/oil/lang/compiler"
	"github.com/oillang/oil/lang/lexer"
	"github.com/oillang/oil/lang/machine"
	"github.com/oillang/oil/lang/parser"
)

// execute strips comments, lexes, parses and compiles src, optionally
// dumping an AST dump and/or the resulting bytecode listing, then runs it
// on a fresh Machine. A syntax error (lex, parse, or compile) and a runtime
// error are reported with distinct messages.
func execute(cfg runconfig.Config, src string, stdout io.Writer, debug bool) error {
	src = preprocess.StripComments(src)

	toks, err := lexer.Lex(src)
	if err != nil {
		return fmt.Errorf("Error: %w", err)
	}
	prog, err := parser.Parse(toks, src)
	if err != nil {
		return fmt.Errorf("Error: %w", err)
	}

	if debug {
		fmt.Fprintln(stdout, "=== AST ===")
		fmt.Fprintln(stdout, ast.Dump(prog))
	}

	compiled, err := compiler.Compile(prog)
	if err != nil {
		return fmt.Errorf("Error: %w", err)
	}

	if cfg.DumpBytecode {
		if err := dumpBytecode(stdout, cfg, compiled); err != nil {
			return fmt.Errorf("Error: %w", err)
		}
	}

	fmt.Fprintln(stdout, "=== Running VM ===")
	m := machine.New(compiled, machine.Options{
		Stdout:     stdout,
		MaxSteps:   cfg.MaxSteps,
		StackLimit: cfg.StackLimit,
	})
	if err := m.Run(); err != nil {
		return fmt.Errorf("Error during execution: %w", err)
	}
	return nil
}

func dumpBytecode(w io.Writer, cfg runconfig.Config, compiled *compiler.Program) error {
	if cfg.Format == "yaml" {
		out, err := compiled.DumpYAML()
		if err != nil {
			return err
		}
		fmt.Fprint(w, out)
		return nil
	}
	fmt.Fprintln(w, "=== Bytecode ===")
	fmt.Fprint(w, compiled.Listing())
	return nil
}
