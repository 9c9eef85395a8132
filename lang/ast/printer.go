package ast

import "github.com/davecgh/go-spew/spew"

// Dump renders a deep, field-by-field dump of a program's AST, used by the
// CLI's -debug flag (internal/maincmd) to inspect what the parser produced
// without hand-writing a pretty-printer for each node kind.
func Dump(prog []Stmt) string {
	return spew.Sdump(prog)
}
