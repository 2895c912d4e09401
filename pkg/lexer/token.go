package lexer

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenIllegal

	// Operands
	TokenIdent  // x, total_1
	TokenNumber // 42, 3.14, .5

	// Operators
	TokenPlus      // +
	TokenMinus     // -
	TokenStar      // *
	TokenSlash     // /
	TokenPercent   // %
	TokenAssign    // =
	TokenEq        // ==
	TokenNe        // !=
	TokenLt        // <
	TokenLe        // <=
	TokenGt        // >
	TokenGe        // >=
	TokenAnd       // &&
	TokenOr        // ||
	TokenNot       // !
	TokenAmpersand // &
	TokenPipe      // |

	// Delimiters
	TokenLParen // (
	TokenRParen // )
)

var tokenNames = map[TokenType]string{
	TokenEOF:       "EOF",
	TokenIllegal:   "ILLEGAL",
	TokenIdent:     "IDENT",
	TokenNumber:    "NUMBER",
	TokenPlus:      "+",
	TokenMinus:     "-",
	TokenStar:      "*",
	TokenSlash:     "/",
	TokenPercent:   "%",
	TokenAssign:    "=",
	TokenEq:        "==",
	TokenNe:        "!=",
	TokenLt:        "<",
	TokenLe:        "<=",
	TokenGt:        ">",
	TokenGe:        ">=",
	TokenAnd:       "&&",
	TokenOr:        "||",
	TokenNot:       "!",
	TokenAmpersand: "&",
	TokenPipe:      "|",
	TokenLParen:    "(",
	TokenRParen:    ")",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsOperator reports whether t is one of the operator symbols.
func (t TokenType) IsOperator() bool {
	return t >= TokenPlus && t <= TokenPipe
}

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Column  int // 1-based column of the first character
}

// IsOperand reports whether the token is an identifier or a number.
func (t Token) IsOperand() bool {
	return t.Type == TokenIdent || t.Type == TokenNumber
}

// twoCharOps lists the operators matched before their one-character prefixes.
var twoCharOps = map[string]TokenType{
	"==": TokenEq,
	"!=": TokenNe,
	"<=": TokenLe,
	">=": TokenGe,
	"&&": TokenAnd,
	"||": TokenOr,
}

var oneCharOps = map[byte]TokenType{
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenStar,
	'/': TokenSlash,
	'%': TokenPercent,
	'=': TokenAssign,
	'<': TokenLt,
	'>': TokenGt,
	'!': TokenNot,
	'&': TokenAmpersand,
	'|': TokenPipe,
	'(': TokenLParen,
	')': TokenRParen,
}
