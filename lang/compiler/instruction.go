package compiler

// Instruction is one entry in a compiled program's flat instruction stream.
// Each opcode is its own Go type carrying exactly the field it needs,
// instead of one struct with an "opcode string + optional arg" pair: a
// switch over these concrete types cannot silently mishandle an opcode's
// argument the way an untyped pair could.
type Instruction interface {
	Opcode() Opcode
	// Arg returns the instruction's operand for diagnostic display, and
	// false if the instruction takes no operand.
	Arg() (any, bool)
}

type (
	// Const pushes Value.
	Const struct{ Value int64 }
	// Load pushes env[Name] (0 if unset).
	Load struct{ Name string }
	// Store pops the stack into env[Name].
	Store struct{ Name string }

	Add struct{}
	Sub struct{}
	Mul struct{}
	Div struct{}

	Eq struct{}
	Ne struct{}
	Lt struct{}
	Le struct{}
	Gt struct{}
	Ge struct{}

	And struct{}
	Or  struct{}
	Not struct{}

	// JumpIfFalse pops the stack and, if the value is 0, sets ip to Target.
	// Target is backpatched by the compiler once known (see whileStmt /
	// ifStmt).
	JumpIfFalse struct{ Target int }
	// Jump unconditionally sets ip to Target.
	Jump struct{ Target int }

	Print struct{}
	Halt  struct{}
)

func (Const) Opcode() Opcode       { return CONST }
func (Load) Opcode() Opcode        { return LOAD }
func (Store) Opcode() Opcode       { return STORE }
func (Add) Opcode() Opcode         { return ADD }
func (Sub) Opcode() Opcode         { return SUB }
func (Mul) Opcode() Opcode         { return MUL }
func (Div) Opcode() Opcode         { return DIV }
func (Eq) Opcode() Opcode          { return EQ }
func (Ne) Opcode() Opcode          { return NE }
func (Lt) Opcode() Opcode          { return LT }
func (Le) Opcode() Opcode          { return LE }
func (Gt) Opcode() Opcode          { return GT }
func (Ge) Opcode() Opcode          { return GE }
func (And) Opcode() Opcode         { return AND }
func (Or) Opcode() Opcode          { return OR }
func (Not) Opcode() Opcode         { return NOT }
func (*JumpIfFalse) Opcode() Opcode { return JUMP_IF_FALSE }
func (*Jump) Opcode() Opcode        { return JUMP }
func (Print) Opcode() Opcode       { return PRINT }
func (Halt) Opcode() Opcode        { return HALT }

func (i Const) Arg() (any, bool)        { return i.Value, true }
func (i Load) Arg() (any, bool)         { return i.Name, true }
func (i Store) Arg() (any, bool)        { return i.Name, true }
func (Add) Arg() (any, bool)            { return nil, false }
func (Sub) Arg() (any, bool)            { return nil, false }
func (Mul) Arg() (any, bool)            { return nil, false }
func (Div) Arg() (any, bool)            { return nil, false }
func (Eq) Arg() (any, bool)             { return nil, false }
func (Ne) Arg() (any, bool)             { return nil, false }
func (Lt) Arg() (any, bool)             { return nil, false }
func (Le) Arg() (any, bool)             { return nil, false }
func (Gt) Arg() (any, bool)             { return nil, false }
func (Ge) Arg() (any, bool)             { return nil, false }
func (And) Arg() (any, bool)            { return nil, false }
func (Or) Arg() (any, bool)             { return nil, false }
func (Not) Arg() (any, bool)            { return nil, false }
func (i *JumpIfFalse) Arg() (any, bool) { return i.Target, true }
func (i *Jump) Arg() (any, bool)        { return i.Target, true }
func (Print) Arg() (any, bool)          { return nil, false }
func (Halt) Arg() (any, bool)           { return nil, false }
