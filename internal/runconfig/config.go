// Package runconfig holds the environment-driven configuration for the
// ambient CLI/REPL layer around the core pipeline. None of these settings
// affect the language's semantics: they tune the runner (step bound, stack
// limit, diagnostic format), since the core itself has no built-in
// cancellation or resource limits.
package runconfig

import "github.com/caarlos0/env/v6"

// Config is parsed from the process environment with the OIL_ prefix.
type Config struct {
	// MaxSteps bounds how many instructions a single Run executes before
	// the machine aborts it, so a REPL session or a file run can't hang
	// the process forever on an infinite loop.
	MaxSteps int64 `env:"OIL_MAX_STEPS" envDefault:"10000000"`

	// StackLimit bounds operand stack depth; exceeding it surfaces as a
	// machine.RuntimeError instead of growing without bound.
	StackLimit int `env:"OIL_STACK_LIMIT" envDefault:"65536"`

	// DumpBytecode toggles printing the bytecode listing before running a
	// program.
	DumpBytecode bool `env:"OIL_DUMP_BYTECODE" envDefault:"true"`

	// Format selects the bytecode listing format: "text" (default, the
	// "NNN: (OPCODE, ARG)" form) or "yaml" (compiler.Program.DumpYAML).
	Format string `env:"OIL_DIAGNOSTIC_FORMAT" envDefault:"text"`
}

// Load reads Config from the environment, applying defaults for any unset
// variable.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}
