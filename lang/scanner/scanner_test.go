package scanner_test

import (
	"testing"

	"github.com/arzelion/wisp/lang/scanner"
	"github.com/arzelion/wisp/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tk := range toks {
		out[i] = tk.Kind
	}
	return out
}

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	s := scanner.New(src)
	var out []token.Token
	for {
		tk := s.Next()
		out = append(out, tk)
		if tk.Kind == token.EOF {
			return out
		}
	}
}

func TestScanPunctuationAndOperators(t *testing.T) {
	toks := scanAll(t, "() {} [] , . - + ; / * % ! != = == < <= > >=")
	got := kinds(toks)
	want := []token.Kind{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
		token.LBRACK, token.RBRACK, token.COMMA, token.DOT, token.MINUS,
		token.PLUS, token.SEMI, token.SLASH, token.STAR, token.PERCENT,
		token.BANG, token.BANGEQ, token.EQ, token.EQEQ, token.LT, token.LE,
		token.GT, token.GE, token.EOF,
	}
	assert.Equal(t, want, got)
}

func TestScanKeywordsAndIdents(t *testing.T) {
	toks := scanAll(t, "var foo = fun bar")
	require.Len(t, toks, 6)
	assert.Equal(t, token.VAR, toks[0].Kind)
	assert.Equal(t, token.IDENT, toks[1].Kind)
	assert.Equal(t, "foo", toks[1].Lexeme)
	assert.Equal(t, token.EQ, toks[2].Kind)
	assert.Equal(t, token.FUN, toks[3].Kind)
	assert.Equal(t, token.IDENT, toks[4].Kind)
	assert.Equal(t, "bar", toks[4].Lexeme)
}

func TestScanNumbers(t *testing.T) {
	toks := scanAll(t, "123 1.5 3.len")
	require.Len(t, toks, 6)
	assert.Equal(t, token.NUMBER, toks[0].Kind)
	assert.Equal(t, "123", toks[0].Lexeme)
	assert.Equal(t, token.NUMBER, toks[1].Kind)
	assert.Equal(t, "1.5", toks[1].Lexeme)
	// "3.len" must NOT be consumed as one number: the dot is only part
	// of the literal when followed by a digit.
	assert.Equal(t, token.NUMBER, toks[2].Kind)
	assert.Equal(t, "3", toks[2].Lexeme)
	assert.Equal(t, token.DOT, toks[3].Kind)
	assert.Equal(t, token.IDENT, toks[4].Kind)
}

func TestScanStrings(t *testing.T) {
	toks := scanAll(t, `"hello" "line\nwith \"escape\""`)
	require.Len(t, toks, 3)
	assert.Equal(t, token.STRING, toks[0].Kind)
	assert.Equal(t, "hello", toks[0].Lexeme)
	assert.Equal(t, token.STRING, toks[1].Kind)
}

func TestScanUnterminatedString(t *testing.T) {
	toks := scanAll(t, `"oops`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.ILLEGAL, toks[0].Kind)
	assert.Equal(t, "Unterminated string.", toks[0].Lexeme)
}

func TestScanUnexpectedCharacter(t *testing.T) {
	toks := scanAll(t, `@`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.ILLEGAL, toks[0].Kind)
	assert.Equal(t, "Unexpected character.", toks[0].Lexeme)
}

func TestScanCommentsAndLines(t *testing.T) {
	toks := scanAll(t, "var a = 1; // a comment\nvar b = 2;")
	require.True(t, len(toks) > 5)
	assert.Equal(t, 1, toks[0].Line)
	// find "b"
	var found bool
	for _, tk := range toks {
		if tk.Kind == token.IDENT && tk.Lexeme == "b" {
			assert.Equal(t, 2, tk.Line)
			found = true
		}
	}
	assert.True(t, found)
}

func TestScannerIsRestartable(t *testing.T) {
	s := scanner.New("var a = 1;")
	first := s.Next()
	assert.Equal(t, token.VAR, first.Kind)

	s.Init("print 1;")
	again := s.Next()
	assert.Equal(t, token.PRINT, again.Kind)
}
