package expr

import "github.com/raymyers/ralph-tac/pkg/lexer"

// Operator is one of the fixed set of expression operators.
// Unary forms are distinct from the binary operators spelled the same way.
type Operator int

const (
	OpInvalid Operator = iota
	OpAssign           // =
	OpOr               // ||
	OpAnd              // &&
	OpEq               // ==
	OpNe               // !=
	OpLt               // <
	OpGt               // >
	OpLe               // <=
	OpGe               // >=
	OpAdd              // +
	OpSub              // -
	OpMul              // *
	OpDiv              // /
	OpMod              // %
	OpNot              // ! (prefix)
	OpNeg              // unary -
	OpPos              // unary +
)

// Precedence levels, lowest first.
const (
	PrecAssign = iota
	PrecOr
	PrecAnd
	PrecRelational
	PrecAdditive
	PrecMultiplicative
	PrecUnary
)

type opInfo struct {
	symbol string
	name   string
	prec   int
	arity  int
}

var opTable = map[Operator]opInfo{
	OpAssign: {"=", "=", PrecAssign, 2},
	OpOr:     {"||", "||", PrecOr, 2},
	OpAnd:    {"&&", "&&", PrecAnd, 2},
	OpEq:     {"==", "==", PrecRelational, 2},
	OpNe:     {"!=", "!=", PrecRelational, 2},
	OpLt:     {"<", "<", PrecRelational, 2},
	OpGt:     {">", ">", PrecRelational, 2},
	OpLe:     {"<=", "<=", PrecRelational, 2},
	OpGe:     {">=", ">=", PrecRelational, 2},
	OpAdd:    {"+", "+", PrecAdditive, 2},
	OpSub:    {"-", "-", PrecAdditive, 2},
	OpMul:    {"*", "*", PrecMultiplicative, 2},
	OpDiv:    {"/", "/", PrecMultiplicative, 2},
	OpMod:    {"%", "%", PrecMultiplicative, 2},
	OpNot:    {"!", "!", PrecUnary, 1},
	OpNeg:    {"-", "unary-", PrecUnary, 1},
	OpPos:    {"+", "unary+", PrecUnary, 1},
}

// binaryOps maps operator tokens to their binary reading.
var binaryOps = map[lexer.TokenType]Operator{
	lexer.TokenAssign:  OpAssign,
	lexer.TokenOr:      OpOr,
	lexer.TokenAnd:     OpAnd,
	lexer.TokenEq:      OpEq,
	lexer.TokenNe:      OpNe,
	lexer.TokenLt:      OpLt,
	lexer.TokenGt:      OpGt,
	lexer.TokenLe:      OpLe,
	lexer.TokenGe:      OpGe,
	lexer.TokenPlus:    OpAdd,
	lexer.TokenMinus:   OpSub,
	lexer.TokenStar:    OpMul,
	lexer.TokenSlash:   OpDiv,
	lexer.TokenPercent: OpMod,
	lexer.TokenNot:     OpNot, // only ever prefix
}

// unaryOps maps tokens that may be read as prefix operators.
var unaryOps = map[lexer.TokenType]Operator{
	lexer.TokenPlus:  OpPos,
	lexer.TokenMinus: OpNeg,
	lexer.TokenNot:   OpNot,
}

// Symbol returns the operator as written in emitted code.
func (op Operator) Symbol() string {
	return opTable[op].symbol
}

// String returns the operator name; unary forms are prefixed with "unary".
func (op Operator) String() string {
	if info, ok := opTable[op]; ok {
		return info.name
	}
	return "invalid"
}

// Precedence returns the binding strength; higher binds tighter.
func (op Operator) Precedence() int {
	return opTable[op].prec
}

// Arity returns 1 for prefix operators and 2 for binary ones.
func (op Operator) Arity() int {
	return opTable[op].arity
}

// RightAssoc reports whether op groups right-to-left. Only prefix operators do.
func (op Operator) RightAssoc() bool {
	return op.Arity() == 1
}

// IsUnary reports whether op is a prefix operator.
func (op Operator) IsUnary() bool {
	return op.Arity() == 1
}

// Valid reports whether op is in the operator table.
func (op Operator) Valid() bool {
	_, ok := opTable[op]
	return ok
}

// LookupOperator returns the operator for tok. When unary is set, + - and !
// resolve to their prefix forms.
func LookupOperator(tok lexer.TokenType, unary bool) (Operator, bool) {
	if unary {
		op, ok := unaryOps[tok]
		return op, ok
	}
	op, ok := binaryOps[tok]
	return op, ok
}
