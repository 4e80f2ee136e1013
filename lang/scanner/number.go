package scanner

import "github.com/arzelion/wisp/lang/token"

// number scans a numeric literal: one or more digits, optionally followed by
// a single '.' and one or more digits. The '.' is only consumed as part of
// the number if it is followed by a digit, so that "3.len()" tokenizes as
// NUMBER DOT IDENT rather than swallowing the dot.
func (s *Scanner) number() token.Token {
	for isDigit(s.peek()) {
		s.advance()
	}

	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance() // consume the '.'
		for isDigit(s.peek()) {
			s.advance()
		}
	}

	return s.make(token.NUMBER)
}
