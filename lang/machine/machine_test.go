package machine_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oillang/oil/lang/compiler"
	"github.com/oillang/oil/lang/lexer"
	"github.com/oillang/oil/lang/machine"
	"github.com/oillang/oil/lang/parser"
)

func run(t *testing.T, src string) ([]string, *bytes.Buffer, *machine.Machine) {
	t.Helper()
	toks, err := lexer.Lex(src)
	require.NoError(t, err)
	prog, err := parser.Parse(toks, src)
	require.NoError(t, err)
	compiled, err := compiler.Compile(prog)
	require.NoError(t, err)

	var out bytes.Buffer
	m := machine.New(compiled, machine.Options{Stdout: &out})
	require.NoError(t, m.Run())
	return m.Transcript, &out, m
}

func TestScenarioAssignAndAdd(t *testing.T) {
	transcript, _, _ := run(t, "x = 5; print x + 3;")
	require.Equal(t, []string{"8"}, transcript)
}

func TestScenarioWhileLoop(t *testing.T) {
	transcript, _, _ := run(t, "x = 0; while (x < 3) { print x; x += 1; }")
	require.Equal(t, []string{"0", "1", "2"}, transcript)
}

func TestScenarioIfElse(t *testing.T) {
	transcript, _, _ := run(t, "if (1) { print 1; } else { print 2; }")
	require.Equal(t, []string{"1"}, transcript)

	transcript, _, _ = run(t, "if (0) { print 1; } else { print 2; }")
	require.Equal(t, []string{"2"}, transcript)
}

func TestScenarioPrecedence(t *testing.T) {
	transcript, _, _ := run(t, "print 2 + 3 * 4;")
	require.Equal(t, []string{"14"}, transcript)

	transcript, _, _ = run(t, "print (2 + 3) * 4;")
	require.Equal(t, []string{"20"}, transcript)
}

func TestScenarioDivisionAndNot(t *testing.T) {
	transcript, _, _ := run(t, "print 7 / 2;")
	require.Equal(t, []string{"3"}, transcript)

	transcript, _, _ = run(t, "print !0;")
	require.Equal(t, []string{"1"}, transcript)

	transcript, _, _ = run(t, "print !5;")
	require.Equal(t, []string{"0"}, transcript)
}

func TestScenarioCompoundAssign(t *testing.T) {
	transcript, _, _ := run(t, "a = 10; b = 3; a -= b; print a;")
	require.Equal(t, []string{"7"}, transcript)
}

func TestUnusedVariableReadsZero(t *testing.T) {
	transcript, _, _ := run(t, "print x;")
	require.Equal(t, []string{"0"}, transcript)
}

func TestTranscriptMatchesStdout(t *testing.T) {
	transcript, out, _ := run(t, "print 1; print 2;")
	require.Equal(t, []string{"1", "2"}, transcript)
	require.Equal(t, "1\n2\n", out.String())
}

func TestNonShortCircuitAndEvaluatesBothSides(t *testing.T) {
	// The left operand is 0 (false). A short-circuiting && would never
	// evaluate the right operand and this program would print 0; since
	// OilLang's AND always evaluates both operands, the division by zero in
	// the right operand still fails the run.
	toks, err := lexer.Lex("print 0 && (1 / 0);")
	require.NoError(t, err)
	prog, err := parser.Parse(toks, "print 0 && (1 / 0);")
	require.NoError(t, err)
	compiled, err := compiler.Compile(prog)
	require.NoError(t, err)

	m := machine.New(compiled, machine.Options{})
	err = m.Run()
	require.Error(t, err)
	var rtErr *machine.RuntimeError
	require.ErrorAs(t, err, &rtErr)
	require.Equal(t, compiler.DIV, rtErr.Op)
}

func TestFloorDivisionNegativeOperands(t *testing.T) {
	transcript, _, _ := run(t, "print 0 - 7;")
	require.Equal(t, []string{"-7"}, transcript)

	var out bytes.Buffer
	toks, err := lexer.Lex("print (0 - 7) / 2;")
	require.NoError(t, err)
	prog, err := parser.Parse(toks, "print (0 - 7) / 2;")
	require.NoError(t, err)
	compiled, err := compiler.Compile(prog)
	require.NoError(t, err)
	m := machine.New(compiled, machine.Options{Stdout: &out})
	require.NoError(t, m.Run())
	require.Equal(t, []string{"-4"}, m.Transcript)
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	toks, err := lexer.Lex("x = 1 / 0;")
	require.NoError(t, err)
	prog, err := parser.Parse(toks, "x = 1 / 0;")
	require.NoError(t, err)
	compiled, err := compiler.Compile(prog)
	require.NoError(t, err)

	m := machine.New(compiled, machine.Options{})
	err = m.Run()
	require.Error(t, err)
	var rtErr *machine.RuntimeError
	require.ErrorAs(t, err, &rtErr)
	require.Equal(t, compiler.DIV, rtErr.Op)
}

func TestMaxStepsBoundsInfiniteLoop(t *testing.T) {
	toks, err := lexer.Lex("while (1) { x = 1; }")
	require.NoError(t, err)
	prog, err := parser.Parse(toks, "while (1) { x = 1; }")
	require.NoError(t, err)
	compiled, err := compiler.Compile(prog)
	require.NoError(t, err)

	m := machine.New(compiled, machine.Options{MaxSteps: 1000})
	err = m.Run()
	require.Error(t, err)
}

func TestStackLimitBoundsOperandStack(t *testing.T) {
	src := "print 1 + (1 + (1 + (1 + 1)));"
	toks, err := lexer.Lex(src)
	require.NoError(t, err)
	prog, err := parser.Parse(toks, src)
	require.NoError(t, err)
	compiled, err := compiler.Compile(prog)
	require.NoError(t, err)

	m := machine.New(compiled, machine.Options{StackLimit: 2})
	err = m.Run()
	require.Error(t, err)
	var rtErr *machine.RuntimeError
	require.ErrorAs(t, err, &rtErr)
	require.Contains(t, rtErr.Msg, "stack overflow")
}

func TestEnvironmentSnapshotAndNames(t *testing.T) {
	_, _, m := run(t, "b = 2; a = 1;")
	require.Equal(t, []string{"a", "b"}, m.Env().Names())
	require.Equal(t, map[string]int64{"a": int64(1), "b": int64(2)}, m.Env().Snapshot())
}
