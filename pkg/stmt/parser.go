package stmt

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownStatement   = errors.New("unknown statement")
	ErrMalformedStatement = errors.New("malformed statement")
)

// Parser classifies statements by their structure.
type Parser struct {
	// CommentMarker is stripped from nested block bodies.
	CommentMarker string
}

// Parse classifies src with the default comment marker.
func Parse(src string) (Stmt, error) {
	return Parser{CommentMarker: DefaultCommentMarker}.Parse(src)
}

// Parse classifies one statement. Keyword statements are recognized by a
// leading `if`, `while` or `for` followed by '('; assignments by a leading
// identifier followed by a lone '='.
func (p Parser) Parse(src string) (Stmt, error) {
	text := strings.TrimSpace(src)
	text = strings.TrimSpace(strings.TrimSuffix(text, ";"))
	if text == "" {
		return Empty{}, nil
	}
	if p.CommentMarker != "" && strings.HasPrefix(text, p.CommentMarker) {
		return Empty{}, nil
	}

	switch keyword(text) {
	case "if":
		return p.parseIf(text)
	case "while":
		return p.parseWhile(text)
	case "for":
		return p.parseFor(text)
	}

	if target, rhs, ok := splitAssignment(text); ok {
		return Assignment{Target: target, Expr: rhs}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStatement, text)
}

// ParseAll classifies every statement of a block body.
func (p Parser) ParseAll(body string) ([]Stmt, error) {
	var stmts []Stmt
	for _, src := range Split(body, p.CommentMarker) {
		s, err := p.Parse(src.Text)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

// keyword returns the control keyword text starts with, or "".
func keyword(text string) string {
	for _, kw := range []string{"if", "while", "for"} {
		if !hasWord(text, kw) {
			continue
		}
		rest := strings.TrimLeft(text[len(kw):], " \t\r\n")
		if strings.HasPrefix(rest, "(") {
			return kw
		}
	}
	return ""
}

// splitAssignment matches `ident = expr` where '=' is not part of '=='.
func splitAssignment(text string) (string, string, bool) {
	i := 0
	for i < len(text) && isIdentChar(text[i]) {
		i++
	}
	if i == 0 || isDigit(text[0]) || text[0] == '.' {
		return "", "", false
	}
	target := text[:i]
	rest := strings.TrimLeft(text[i:], " \t")
	if !strings.HasPrefix(rest, "=") || strings.HasPrefix(rest, "==") {
		return "", "", false
	}
	return target, strings.TrimSpace(rest[1:]), true
}

// header splits `kw (inner) rest` and returns inner and rest.
func header(text, kw string) (string, string, error) {
	rest := strings.TrimSpace(text[len(kw):])
	end, err := matching(rest, 0, '(', ')')
	if err != nil {
		return "", "", fmt.Errorf("%w: %s header: %v", ErrMalformedStatement, kw, err)
	}
	return strings.TrimSpace(rest[1:end]), strings.TrimSpace(rest[end+1:]), nil
}

// matching returns the index of the delimiter closing the one at s[start].
func matching(s string, start int, open, close byte) (int, error) {
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("missing %q", close)
}

// body parses a block `{ ... }` or a single braceless statement at the start
// of text. stopAtElse ends a braceless body before a top-level `else`.
// It returns the parsed statements and whatever text follows the body.
func (p Parser) body(text string, stopAtElse bool) ([]Stmt, string, error) {
	if strings.HasPrefix(text, "{") {
		end, err := matching(text, 0, '{', '}')
		if err != nil {
			return nil, "", fmt.Errorf("%w: block: %v", ErrMalformedStatement, err)
		}
		stmts, err := p.ParseAll(text[1:end])
		if err != nil {
			return nil, "", err
		}
		return stmts, strings.TrimSpace(text[end+1:]), nil
	}

	single, rest := text, ""
	if stopAtElse {
		if idx := topLevelElse(text); idx >= 0 {
			single, rest = text[:idx], text[idx:]
		}
	}
	s, err := p.Parse(single)
	if err != nil {
		return nil, "", err
	}
	return []Stmt{s}, strings.TrimSpace(rest), nil
}

// topLevelElse finds an `else` keyword outside braces and parentheses.
func topLevelElse(text string) int {
	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(', '{':
			depth++
		case ')', '}':
			depth--
		default:
			if depth == 0 && hasWord(text[i:], "else") && (i == 0 || !isIdentChar(text[i-1])) {
				return i
			}
		}
	}
	return -1
}

func (p Parser) parseIf(text string) (Stmt, error) {
	cond, rest, err := header(text, "if")
	if err != nil {
		return nil, err
	}
	if rest == "" {
		return nil, fmt.Errorf("%w: missing if body", ErrMalformedStatement)
	}
	then, rest, err := p.body(rest, true)
	if err != nil {
		return nil, err
	}
	s := If{Cond: cond, Then: then}
	if rest == "" {
		return s, nil
	}
	if !hasWord(rest, "else") {
		return nil, fmt.Errorf("%w: unexpected %q after if", ErrMalformedStatement, rest)
	}
	rest = strings.TrimSpace(rest[len("else"):])
	if rest == "" {
		return nil, fmt.Errorf("%w: missing else body", ErrMalformedStatement)
	}
	s.HasElse = true
	s.Else, rest, err = p.body(rest, false)
	if err != nil {
		return nil, err
	}
	if rest != "" {
		return nil, fmt.Errorf("%w: unexpected %q after else", ErrMalformedStatement, rest)
	}
	return s, nil
}

func (p Parser) parseWhile(text string) (Stmt, error) {
	cond, rest, err := header(text, "while")
	if err != nil {
		return nil, err
	}
	if rest == "" {
		return nil, fmt.Errorf("%w: missing while body", ErrMalformedStatement)
	}
	body, rest, err := p.body(rest, false)
	if err != nil {
		return nil, err
	}
	if rest != "" {
		return nil, fmt.Errorf("%w: unexpected %q after while", ErrMalformedStatement, rest)
	}
	return While{Cond: cond, Body: body}, nil
}

func (p Parser) parseFor(text string) (Stmt, error) {
	inner, rest, err := header(text, "for")
	if err != nil {
		return nil, err
	}
	parts := strings.Split(inner, ";")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: for header needs init; cond; update, got %q", ErrMalformedStatement, inner)
	}
	init, err := p.Parse(parts[0])
	if err != nil {
		return nil, err
	}
	update, err := p.Parse(parts[2])
	if err != nil {
		return nil, err
	}
	if rest == "" {
		return nil, fmt.Errorf("%w: missing for body", ErrMalformedStatement)
	}
	body, rest, err := p.body(rest, false)
	if err != nil {
		return nil, err
	}
	if rest != "" {
		return nil, fmt.Errorf("%w: unexpected %q after for", ErrMalformedStatement, rest)
	}
	return For{Init: init, Cond: strings.TrimSpace(parts[1]), Update: update, Body: body}, nil
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
