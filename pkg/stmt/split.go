package stmt

import "strings"

// DefaultCommentMarker starts a comment that runs to the end of the line.
const DefaultCommentMarker = "//"

// Split breaks program text into statements.
//
// A statement ends at ';' or a newline outside any braces or parentheses, or
// after a '}' that closes the outermost block unless the next word is "else".
// A line ending in a control header or "else" continues on the next line.
// Blank lines and text from the comment marker to the end of a line are dropped.
func Split(src, commentMarker string) []Source {
	s := &splitter{}
	for i, line := range strings.Split(src, "\n") {
		if commentMarker != "" {
			if idx := strings.Index(line, commentMarker); idx >= 0 {
				line = line[:idx]
			}
		}
		s.scanLine(line, i+1)
	}
	s.flush()
	return s.out
}

// splitter holds state while scanning program text
type splitter struct {
	out       []Source
	buf       strings.Builder
	startLine int
	depth     int  // open braces and parentheses
	closed    bool // a top-level block just closed; waiting to see "else"
}

func (s *splitter) scanLine(line string, lineNo int) {
	for j := 0; j < len(line); j++ {
		c := line[j]
		if s.closed && !isSpace(c) {
			s.closed = false
			if !hasWord(line[j:], "else") {
				s.flush()
			}
		}
		if s.buf.Len() == 0 {
			if isSpace(c) {
				continue
			}
			s.startLine = lineNo
		}

		switch c {
		case ';':
			if s.depth == 0 {
				s.flush()
				continue
			}
		case '{', '(':
			s.depth++
		case '}', ')':
			if s.depth > 0 {
				s.depth--
			}
			if c == '}' && s.depth == 0 {
				s.closed = true
			}
		}
		s.buf.WriteByte(c)
	}

	if s.depth == 0 && !s.closed && !needsBody(s.buf.String()) {
		s.flush()
	} else if s.buf.Len() > 0 {
		s.buf.WriteByte('\n')
	}
}

func (s *splitter) flush() {
	text := strings.TrimSpace(s.buf.String())
	if text != "" {
		s.out = append(s.out, Source{Text: text, Line: s.startLine})
	}
	s.buf.Reset()
	s.closed = false
}

// needsBody reports whether text ends in an if, while or for header, or an
// else, that has no body yet.
func needsBody(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if strings.HasSuffix(text, "else") {
		i := len(text) - len("else")
		if i == 0 || !isIdentChar(text[i-1]) {
			return true
		}
	}
	kw := keyword(text)
	if kw == "" {
		return false
	}
	rest := strings.TrimSpace(text[len(kw):])
	end, err := matching(rest, 0, '(', ')')
	if err != nil {
		return false
	}
	rest = strings.TrimSpace(rest[end+1:])
	if rest == "" {
		return true
	}
	if strings.HasPrefix(rest, "{") {
		return false
	}
	return needsBody(rest)
}

// hasWord reports whether s starts with word followed by a non-identifier byte.
func hasWord(s, word string) bool {
	if !strings.HasPrefix(s, word) {
		return false
	}
	return len(s) == len(word) || !isIdentChar(s[len(word)])
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '.' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
