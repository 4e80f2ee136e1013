package scanner

import "github.com/arzelion/wisp/lang/token"

// stringLiteral scans a double-quoted string literal. The opening quote has
// already been consumed. Escape sequences are not interpreted here: the
// scanner's only job is to find the closing, unescaped quote and to keep the
// line counter accurate for embedded newlines. Escape processing (\\ \' \"
// \n \t and backslash-newline elision) happens in lang/compiler when the
// literal is turned into a runtime string, so that scanner errors stay
// limited to "where does this token end".
func (s *Scanner) stringLiteral() token.Token {
	for s.peek() != '"' && !s.atEnd() {
		c := s.peek()
		if c == '\n' {
			s.line++
		}
		if c == '\\' && s.current+1 < len(s.src) {
			// skip the escaped character too, so a `\"` doesn't end the string.
			s.advance()
			if s.peek() == '\n' {
				s.line++
			}
		}
		s.advance()
	}

	if s.atEnd() {
		return s.errorToken("Unterminated string.")
	}

	// lexeme excludes the surrounding quotes
	content := s.src[s.start+1 : s.current]
	s.advance() // closing quote
	return token.Token{Kind: token.STRING, Lexeme: content, Line: s.line}
}
