package lexer

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNextToken(t *testing.T) {
	input := `z = x + y * 2`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{TokenIdent, "z"},
		{TokenAssign, "="},
		{TokenIdent, "x"},
		{TokenPlus, "+"},
		{TokenIdent, "y"},
		{TokenStar, "*"},
		{TokenNumber, "2"},
		{TokenEOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestOperators(t *testing.T) {
	input := `+ - * / % = == != < <= > >= && || ! & | ( )`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{TokenPlus, "+"},
		{TokenMinus, "-"},
		{TokenStar, "*"},
		{TokenSlash, "/"},
		{TokenPercent, "%"},
		{TokenAssign, "="},
		{TokenEq, "=="},
		{TokenNe, "!="},
		{TokenLt, "<"},
		{TokenLe, "<="},
		{TokenGt, ">"},
		{TokenGe, ">="},
		{TokenAnd, "&&"},
		{TokenOr, "||"},
		{TokenNot, "!"},
		{TokenAmpersand, "&"},
		{TokenPipe, "|"},
		{TokenLParen, "("},
		{TokenRParen, ")"},
		{TokenEOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestTwoCharOperatorsAreGreedy(t *testing.T) {
	// No whitespace: "<=" must not split into "<" "=".
	toks, err := Tokenize("a<=b==c!=d>=e&&f||g", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []TokenType{
		TokenIdent, TokenLe, TokenIdent, TokenEq, TokenIdent, TokenNe,
		TokenIdent, TokenGe, TokenIdent, TokenAnd, TokenIdent, TokenOr, TokenIdent,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, typ := range want {
		if toks[i].Type != typ {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, typ)
		}
	}
}

func TestOperandRuns(t *testing.T) {
	tests := []struct {
		input   string
		typ     TokenType
		literal string
	}{
		{"x", TokenIdent, "x"},
		{"_tmp1", TokenIdent, "_tmp1"},
		{"42", TokenNumber, "42"},
		{"3.14", TokenNumber, "3.14"},
		{".5", TokenNumber, ".5"},
		{"a.b", TokenIdent, "a.b"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks, err := Tokenize(tt.input, Options{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(toks) != 1 {
				t.Fatalf("got %d tokens, want 1", len(toks))
			}
			if toks[0].Type != tt.typ || toks[0].Literal != tt.literal {
				t.Errorf("got %s %q, want %s %q", toks[0].Type, toks[0].Literal, tt.typ, tt.literal)
			}
		})
	}
}

func TestTokenizeWhitespaceInsignificant(t *testing.T) {
	a, err := Tokenize("x+y*2", Options{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Tokenize("  x +\ty *  2 ", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != len(b) {
		t.Fatalf("token counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Type != b[i].Type || a[i].Literal != b[i].Literal {
			t.Errorf("token %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestTokenizeEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		toks, err := Tokenize(input, Options{})
		if err != nil {
			t.Errorf("Tokenize(%q) error: %v", input, err)
		}
		if len(toks) != 0 {
			t.Errorf("Tokenize(%q) = %v, want empty", input, toks)
		}
	}
}

func TestTokenizeIllegalStrict(t *testing.T) {
	_, err := Tokenize("x = y # 2", Options{})
	if err == nil {
		t.Fatal("expected error for '#'")
	}
	if !errors.Is(err, ErrLex) {
		t.Errorf("expected ErrLex, got %v", err)
	}
	var lexErr *Error
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if lexErr.Column != 7 || lexErr.Char != '#' {
		t.Errorf("got col %d char %q, want col 7 char '#'", lexErr.Column, lexErr.Char)
	}
}

func TestTokenizeIllegalLenient(t *testing.T) {
	toks, err := Tokenize("x = y # 2", Options{Lenient: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 4 {
		t.Fatalf("got %d tokens, want 4: %v", len(toks), toks)
	}
	if toks[3].Literal != "2" {
		t.Errorf("last token = %q, want 2", toks[3].Literal)
	}
}

func TestTokenizeNonASCII(t *testing.T) {
	_, err := Tokenize("x = café + 1", Options{})
	var lexErr *Error
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if lexErr.Column != 8 || lexErr.Char != 'é' {
		t.Errorf("got col %d char %q, want col 8 char 'é'", lexErr.Column, lexErr.Char)
	}

	toks, err := Tokenize("x = café + 1", Options{Lenient: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var lits []string
	for _, tok := range toks {
		if !utf8.ValidString(tok.Literal) {
			t.Errorf("token %q is not valid UTF-8", tok.Literal)
		}
		lits = append(lits, tok.Literal)
	}
	if got := strings.Join(lits, " "); got != "x = caf + 1" {
		t.Errorf("lenient tokens = %q, want %q", got, "x = caf + 1")
	}
	if toks[3].Column != 10 {
		t.Errorf("'+' at col %d, want 10", toks[3].Column)
	}
}

func TestTokenColumns(t *testing.T) {
	toks, err := Tokenize("ab + (c)", Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := []int{1, 4, 6, 7, 8}
	for i, col := range want {
		if toks[i].Column != col {
			t.Errorf("token %d (%q): column %d, want %d", i, toks[i].Literal, toks[i].Column, col)
		}
	}
}

func TestTokenTypeString(t *testing.T) {
	if TokenAnd.String() != "&&" {
		t.Errorf("TokenAnd.String() = %q", TokenAnd.String())
	}
	if TokenType(999).String() != "UNKNOWN" {
		t.Errorf("unknown token type should print UNKNOWN")
	}
	if !TokenPipe.IsOperator() || TokenLParen.IsOperator() || TokenIdent.IsOperator() {
		t.Error("IsOperator classification wrong")
	}
}
