// Package compiler lowers an OilLang AST into a flat bytecode Program ending
// with a single Halt, backpatching forward jump targets once they become
// known.
package compiler

import (
	"fmt"

	"github.com/oillang/oil/lang/ast"
)

// CompileError reports an AST shape the compiler cannot lower: an unknown
// node kind (unreachable given a correct parser) or a compound-assignment
// operator the lexer recognizes but this language does not support
// (%=, &=, |=, ^=).
type CompileError struct {
	Msg string
}

func (e *CompileError) Error() string { return "CompileError: " + e.Msg }

// Program is the result of compiling a statement list: a flat, indexed
// instruction stream. It is immutable once Compile returns.
type Program struct {
	Code []Instruction
}

var compoundOpcode = map[string]func() Instruction{
	"+=": func() Instruction { return Add{} },
	"-=": func() Instruction { return Sub{} },
	"*=": func() Instruction { return Mul{} },
	"/=": func() Instruction { return Div{} },
}

var binOpcode = map[string]func() Instruction{
	"+":  func() Instruction { return Add{} },
	"-":  func() Instruction { return Sub{} },
	"*":  func() Instruction { return Mul{} },
	"/":  func() Instruction { return Div{} },
	"==": func() Instruction { return Eq{} },
	"!=": func() Instruction { return Ne{} },
	"<":  func() Instruction { return Lt{} },
	"<=": func() Instruction { return Le{} },
	">":  func() Instruction { return Gt{} },
	">=": func() Instruction { return Ge{} },
	"&&": func() Instruction { return And{} },
	"||": func() Instruction { return Or{} },
}

// Compile lowers an ordered statement list into a Program. It is a single
// pass: every placeholder jump emitted while lowering a statement is
// backpatched before moving on to the next statement.
func Compile(prog []ast.Stmt) (*Program, error) {
	c := &compiler{}
	for _, s := range prog {
		if err := c.stmt(s); err != nil {
			return nil, err
		}
	}
	c.emit(Halt{})
	return &Program{Code: c.code}, nil
}

type compiler struct {
	code []Instruction
}

func (c *compiler) emit(i Instruction) int {
	c.code = append(c.code, i)
	return len(c.code) - 1
}

func (c *compiler) here() int { return len(c.code) }

func (c *compiler) stmt(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.Assign:
		if err := c.expr(n.Expr); err != nil {
			return err
		}
		c.emit(Store{Name: n.Name})

	case *ast.CompoundAssign:
		mk, ok := compoundOpcode[n.Op]
		if !ok {
			return &CompileError{Msg: fmt.Sprintf("unsupported compound operator %q", n.Op)}
		}
		c.emit(Load{Name: n.Name})
		if err := c.expr(n.Expr); err != nil {
			return err
		}
		c.emit(mk())
		c.emit(Store{Name: n.Name})

	case *ast.Print:
		if err := c.expr(n.Expr); err != nil {
			return err
		}
		c.emit(Print{})

	case *ast.If:
		return c.ifStmt(n)

	case *ast.While:
		return c.whileStmt(n)

	default:
		return &CompileError{Msg: fmt.Sprintf("unknown statement node %T", s)}
	}
	return nil
}

func (c *compiler) whileStmt(n *ast.While) error {
	loopStart := c.here()
	if err := c.expr(n.Cond); err != nil {
		return err
	}
	jf := &JumpIfFalse{}
	c.emit(jf)
	for _, s := range n.Body {
		if err := c.stmt(s); err != nil {
			return err
		}
	}
	c.emit(&Jump{Target: loopStart})
	jf.Target = c.here()
	return nil
}

func (c *compiler) ifStmt(n *ast.If) error {
	if err := c.expr(n.Cond); err != nil {
		return err
	}
	jf := &JumpIfFalse{}
	c.emit(jf)
	for _, s := range n.Then {
		if err := c.stmt(s); err != nil {
			return err
		}
	}
	if n.Else != nil {
		jmp := &Jump{}
		c.emit(jmp)
		jf.Target = c.here()
		for _, s := range n.Else {
			if err := c.stmt(s); err != nil {
				return err
			}
		}
		jmp.Target = c.here()
	} else {
		jf.Target = c.here()
	}
	return nil
}

func (c *compiler) expr(e ast.Expr) error {
	switch n := e.(type) {
	case *ast.Number:
		c.emit(Const{Value: n.Value})
	case *ast.Var:
		c.emit(Load{Name: n.Name})
	case *ast.BinOp:
		if err := c.expr(n.Left); err != nil {
			return err
		}
		if err := c.expr(n.Right); err != nil {
			return err
		}
		mk, ok := binOpcode[n.Op]
		if !ok {
			return &CompileError{Msg: fmt.Sprintf("unknown binary operator %q", n.Op)}
		}
		c.emit(mk())
	case *ast.UnOp:
		if n.Op != "!" {
			return &CompileError{Msg: fmt.Sprintf("unsupported unary operator %q", n.Op)}
		}
		if err := c.expr(n.Expr); err != nil {
			return err
		}
		c.emit(Not{})
	default:
		return &CompileError{Msg: fmt.Sprintf("unknown expression node %T", e)}
	}
	return nil
}
