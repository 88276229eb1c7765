// Package lexer defines the tokenizer contract consumed by the recognizer and two
// implementations of it.
//
// The primary interfaces are Definition and Lexer. A Token asserts that a piece of
// source text is an occurrence of a named terminal symbol. Rules is a regexp driven
// tokenizer mapping verbatim texts and value patterns to terminals; TextScanner wraps
// text/scanner for Go-like input.
package lexer
