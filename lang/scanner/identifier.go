package scanner

import "github.com/arzelion/wisp/lang/token"

func (s *Scanner) identifier() token.Token {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	return s.make(s.identifierKind())
}

// identifierKind classifies the just-scanned identifier lexeme as a keyword
// or a plain IDENT. It is a hand-rolled trie over the lexeme's characters,
// branching on the first letter (and, for the few keywords that share a
// first letter, the second) then confirming the remainder in one shot — the
// same trie shape clox's scanner.c uses, rather than a generic map lookup on
// the hot path.
func (s *Scanner) identifierKind() token.Kind {
	lexeme := s.src[s.start:s.current]
	if len(lexeme) == 0 {
		return token.IDENT
	}

	switch lexeme[0] {
	case 'a':
		return checkKeyword(lexeme, "and", token.AND)
	case 'c':
		return checkKeyword(lexeme, "class", token.CLASS)
	case 'e':
		return checkKeyword(lexeme, "else", token.ELSE)
	case 'f':
		if len(lexeme) > 1 {
			switch lexeme[1] {
			case 'a':
				return checkKeyword(lexeme, "false", token.FALSE)
			case 'o':
				return checkKeyword(lexeme, "for", token.FOR)
			case 'u':
				return checkKeyword(lexeme, "fun", token.FUN)
			}
		}
	case 'i':
		return checkKeyword(lexeme, "if", token.IF)
	case 'n':
		return checkKeyword(lexeme, "nil", token.NIL)
	case 'o':
		return checkKeyword(lexeme, "or", token.OR)
	case 'p':
		return checkKeyword(lexeme, "print", token.PRINT)
	case 'r':
		return checkKeyword(lexeme, "return", token.RETURN)
	case 's':
		return checkKeyword(lexeme, "super", token.SUPER)
	case 't':
		if len(lexeme) > 1 {
			switch lexeme[1] {
			case 'h':
				return checkKeyword(lexeme, "this", token.THIS)
			case 'r':
				return checkKeyword(lexeme, "true", token.TRUE)
			}
		}
	case 'v':
		return checkKeyword(lexeme, "var", token.VAR)
	case 'w':
		return checkKeyword(lexeme, "while", token.WHILE)
	}
	return token.IDENT
}

func checkKeyword(lexeme, word string, kind token.Kind) token.Kind {
	if lexeme == word {
		return kind
	}
	return token.IDENT
}
