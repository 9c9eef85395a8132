package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// Listing renders the program as a plain-text bytecode dump: one
// "NNN: (OPCODE, ARG)" line per instruction, NNN zero-padded to 3 digits.
func (p *Program) Listing() string {
	var b strings.Builder
	for i, instr := range p.Code {
		fmt.Fprintf(&b, "%03d: (%s, %s)\n", i, instr.Opcode(), formatArg(instr))
	}
	return b.String()
}

func formatArg(instr Instruction) string {
	arg, ok := instr.Arg()
	if !ok {
		return "None"
	}
	switch v := arg.(type) {
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Names returns the sorted, deduplicated set of variable names referenced by
// Load or Store instructions in the program, used by diagnostic tooling to
// show a stable environment shape without depending on the Environment's own
// (swiss-map) iteration order.
func (p *Program) Names() []string {
	set := make(map[string]struct{})
	for _, instr := range p.Code {
		switch n := instr.(type) {
		case Load:
			set[n.Name] = struct{}{}
		case Store:
			set[n.Name] = struct{}{}
		}
	}
	names := maps.Keys(set)
	slices.Sort(names)
	return names
}

// yamlInstruction is the serializable shape of a single Instruction, used
// only by DumpYAML.
type yamlInstruction struct {
	Op  string `yaml:"op"`
	Arg any    `yaml:"arg,omitempty"`
}

// DumpYAML renders the program as a structured YAML diagnostic listing, an
// alternative to Listing for tools that want to parse the bytecode dump
// rather than scrape text.
func (p *Program) DumpYAML() (string, error) {
	instrs := make([]yamlInstruction, len(p.Code))
	for i, instr := range p.Code {
		arg, _ := instr.Arg()
		instrs[i] = yamlInstruction{Op: instr.Opcode().String(), Arg: arg}
	}
	b, err := yaml.Marshal(struct {
		Code []yamlInstruction `yaml:"code"`
	}{Code: instrs})
	if err != nil {
		return "", fmt.Errorf("dump program as yaml: %w", err)
	}
	return string(b), nil
}
