// Package grammar holds no executable code of its own; it exists so that
// grammar.ebnf, the authoritative EBNF description of wisp's concrete
// syntax, is checked for internal consistency (every production defined,
// every reference resolved) by golang.org/x/exp/ebnf in grammar_test.go.
// grammar_lua.ebnf is kept alongside it as the Lua-flavored precursor
// grammar an early iteration explored before settling on the brace-block,
// semicolon-terminated syntax the scanner and compiler actually implement.
package grammar
