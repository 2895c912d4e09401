// Package lexer turns expression text into a token stream.
package lexer

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrLex is returned (wrapped in *Error) when a character cannot begin any token.
var ErrLex = errors.New("lex error")

// Error reports an unrecognized character and where it was found.
type Error struct {
	Column int
	Char   rune
}

func (e *Error) Error() string {
	return fmt.Sprintf("col %d: unexpected character %q", e.Column, e.Char)
}

func (e *Error) Unwrap() error {
	return ErrLex
}

// Options controls how Tokenize treats unrecognized input.
type Options struct {
	// Lenient skips characters that cannot start a token instead of failing.
	Lenient bool
}

// Lexer tokenizes an expression
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // next reading position
	ch      byte // current character
	column  int
}

// New creates a new Lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.column++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// NextToken returns the next token from the input.
// Characters that cannot start a token come back as TokenIllegal.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	tok := Token{Column: l.column}

	if l.ch == 0 && l.pos >= len(l.input) {
		tok.Type = TokenEOF
		return tok
	}

	if isOperandChar(l.ch) {
		tok.Literal = l.readOperand()
		if isDigit(tok.Literal[0]) || tok.Literal[0] == '.' {
			tok.Type = TokenNumber
		} else {
			tok.Type = TokenIdent
		}
		return tok
	}

	if typ, ok := twoCharOps[string([]byte{l.ch, l.peekChar()})]; ok {
		tok.Type = typ
		tok.Literal = l.input[l.pos : l.pos+2]
		l.readChar()
		l.readChar()
		return tok
	}

	if l.ch >= utf8.RuneSelf {
		// A multi-byte character is one illegal token occupying one column.
		_, width := utf8.DecodeRuneInString(l.input[l.pos:])
		tok.Type = TokenIllegal
		tok.Literal = l.input[l.pos : l.pos+width]
		for i := 0; i < width; i++ {
			l.readChar()
		}
		l.column -= width - 1
		return tok
	}

	if typ, ok := oneCharOps[l.ch]; ok {
		tok.Type = typ
	} else {
		tok.Type = TokenIllegal
	}
	tok.Literal = string(l.ch)
	l.readChar()
	return tok
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) readOperand() string {
	pos := l.pos
	for isOperandChar(l.ch) {
		l.readChar()
	}
	return l.input[pos:l.pos]
}

// Tokenize splits input into tokens, without the trailing EOF.
// Empty input yields an empty slice.
func Tokenize(input string, opts Options) ([]Token, error) {
	l := New(input)
	tokens := []Token{}
	for {
		tok := l.NextToken()
		switch tok.Type {
		case TokenEOF:
			return tokens, nil
		case TokenIllegal:
			if opts.Lenient {
				continue
			}
			r, _ := utf8.DecodeRuneInString(tok.Literal)
			return nil, &Error{Column: tok.Column, Char: r}
		}
		tokens = append(tokens, tok)
	}
}

func isOperandChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '.'
}

// isLetter accepts ASCII letters only, matching the statement splitter.
func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
