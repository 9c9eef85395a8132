// Package machine implements the stack-based virtual machine that executes
// a compiler.Program: a flat operand stack, a global Environment, and a
// strictly sequential instruction pointer driven only by Jump, JumpIfFalse,
// and the terminal Halt.
package machine

import (
	"fmt"
	"io"

	"github.com/oillang/oil/lang/compiler"
)

// RuntimeError is a failure encountered while executing a Program. It
// always names the offending instruction, with a description sufficient to
// identify the fault.
type RuntimeError struct {
	Op  compiler.Opcode
	IP  int
	Msg string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error at instruction %d (%s): %s", e.IP, e.Op, e.Msg)
}

// Options configures a Machine run. The zero value is a machine with no
// step bound and output discarded.
type Options struct {
	// Stdout receives the text written by PRINT. If nil, print output is
	// only recorded in the Transcript.
	Stdout io.Writer
	// MaxSteps bounds execution, used by the ambient CLI/REPL layer as a
	// circuit breaker for runaway loops; Run enforces it only when that
	// layer sets it. Zero means unbounded.
	MaxSteps int64

	// StackLimit bounds operand stack depth. Zero means unbounded.
	StackLimit int
}

// Machine is a single VM run: a code stream, an operand stack, a global
// Environment, and the printed-value Transcript.
type Machine struct {
	code []compiler.Instruction
	opts Options

	stack []int64
	env   *Environment

	// Transcript is the ordered decimal-string form of every value PRINT
	// has emitted so far, preserved even if a later instruction fails.
	Transcript []string
}

// New returns a Machine ready to Run prog.
func New(prog *compiler.Program, opts Options) *Machine {
	return &Machine{
		code: prog.Code,
		opts: opts,
		env:  NewEnvironment(),
	}
}

// Env exposes the machine's global environment, e.g. for tests asserting on
// final variable values.
func (m *Machine) Env() *Environment { return m.env }

func (m *Machine) push(v int64) { m.stack = append(m.stack, v) }

func (m *Machine) pop(ip int, op compiler.Opcode) (int64, error) {
	if len(m.stack) == 0 {
		return 0, &RuntimeError{Op: op, IP: ip, Msg: "stack underflow"}
	}
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v, nil
}

func (m *Machine) checkStackLimit(ip int) error {
	if m.opts.StackLimit > 0 && len(m.stack) > m.opts.StackLimit {
		return &RuntimeError{Op: m.code[ip].Opcode(), IP: ip, Msg: "stack overflow"}
	}
	return nil
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// Run executes the machine's instruction stream from the start until it
// reaches Halt, a runtime error, or (if opts.MaxSteps is non-zero) the step
// bound.
func (m *Machine) Run() error {
	ip := 0
	var steps int64
	for ip < len(m.code) {
		if m.opts.MaxSteps > 0 {
			steps++
			if steps > m.opts.MaxSteps {
				rtErr := &RuntimeError{IP: ip, Msg: "exceeded maximum step count"}
				if m.code[ip] != nil {
					rtErr.Op = m.code[ip].Opcode()
				}
				return rtErr
			}
		}

		instr := m.code[ip]
		curIP := ip
		ip++

		switch n := instr.(type) {
		case compiler.Const:
			m.push(n.Value)
			if err := m.checkStackLimit(curIP); err != nil {
				return err
			}

		case compiler.Load:
			m.push(m.env.Load(n.Name))
			if err := m.checkStackLimit(curIP); err != nil {
				return err
			}

		case compiler.Store:
			v, err := m.pop(curIP, compiler.STORE)
			if err != nil {
				return err
			}
			m.env.Store(n.Name, v)

		case compiler.Add:
			if err := m.binary(curIP, compiler.ADD, func(a, b int64) (int64, error) { return a + b, nil }); err != nil {
				return err
			}
		case compiler.Sub:
			if err := m.binary(curIP, compiler.SUB, func(a, b int64) (int64, error) { return a - b, nil }); err != nil {
				return err
			}
		case compiler.Mul:
			if err := m.binary(curIP, compiler.MUL, func(a, b int64) (int64, error) { return a * b, nil }); err != nil {
				return err
			}
		case compiler.Div:
			if err := m.binary(curIP, compiler.DIV, func(a, b int64) (int64, error) {
				if b == 0 {
					return 0, &RuntimeError{Op: compiler.DIV, IP: curIP, Msg: "division by zero"}
				}
				return floorDiv(a, b), nil
			}); err != nil {
				return err
			}

		case compiler.Eq:
			if err := m.compare(curIP, compiler.EQ, func(a, b int64) bool { return a == b }); err != nil {
				return err
			}
		case compiler.Ne:
			if err := m.compare(curIP, compiler.NE, func(a, b int64) bool { return a != b }); err != nil {
				return err
			}
		case compiler.Lt:
			if err := m.compare(curIP, compiler.LT, func(a, b int64) bool { return a < b }); err != nil {
				return err
			}
		case compiler.Le:
			if err := m.compare(curIP, compiler.LE, func(a, b int64) bool { return a <= b }); err != nil {
				return err
			}
		case compiler.Gt:
			if err := m.compare(curIP, compiler.GT, func(a, b int64) bool { return a > b }); err != nil {
				return err
			}
		case compiler.Ge:
			if err := m.compare(curIP, compiler.GE, func(a, b int64) bool { return a >= b }); err != nil {
				return err
			}

		case compiler.And:
			// Both operands are always evaluated and popped before this
			// opcode runs, non-short-circuiting by construction since the
			// compiler already emitted both subexpressions.
			if err := m.compare(curIP, compiler.AND, func(a, b int64) bool { return a != 0 && b != 0 }); err != nil {
				return err
			}
		case compiler.Or:
			if err := m.compare(curIP, compiler.OR, func(a, b int64) bool { return a != 0 || b != 0 }); err != nil {
				return err
			}
		case compiler.Not:
			v, err := m.pop(curIP, compiler.NOT)
			if err != nil {
				return err
			}
			m.push(boolInt(v == 0))

		case *compiler.JumpIfFalse:
			v, err := m.pop(curIP, compiler.JUMP_IF_FALSE)
			if err != nil {
				return err
			}
			if v == 0 {
				ip = n.Target
			}

		case *compiler.Jump:
			ip = n.Target

		case compiler.Print:
			v, err := m.pop(curIP, compiler.PRINT)
			if err != nil {
				return err
			}
			s := fmt.Sprintf("%d", v)
			m.Transcript = append(m.Transcript, s)
			if m.opts.Stdout != nil {
				fmt.Fprintln(m.opts.Stdout, s)
			}

		case compiler.Halt:
			return nil

		default:
			rtErr := &RuntimeError{IP: curIP, Msg: fmt.Sprintf("unknown opcode %T", instr)}
			if instr != nil {
				rtErr.Op = instr.Opcode()
			}
			return rtErr
		}
	}
	return nil
}

func (m *Machine) binary(ip int, op compiler.Opcode, f func(a, b int64) (int64, error)) error {
	b, err := m.pop(ip, op)
	if err != nil {
		return err
	}
	a, err := m.pop(ip, op)
	if err != nil {
		return err
	}
	v, err := f(a, b)
	if err != nil {
		return err
	}
	m.push(v)
	return nil
}

func (m *Machine) compare(ip int, op compiler.Opcode, f func(a, b int64) bool) error {
	b, err := m.pop(ip, op)
	if err != nil {
		return err
	}
	a, err := m.pop(ip, op)
	if err != nil {
		return err
	}
	m.push(boolInt(f(a, b)))
	return nil
}

// floorDiv implements integer floor division for both operand signs:
// -7/2 == -4, not -3.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
