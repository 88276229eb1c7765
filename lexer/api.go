package lexer

import (
	"fmt"
	"io"
)

// EOF is the terminal name carried by the end-of-input token.
const EOF = "<EOF>"

// EOFToken creates a new EOF token at the given position.
func EOFToken(pos Position) Token {
	return Token{Terminal: EOF, Pos: pos}
}

// Definition is the main entry point for lexing.
type Definition interface {
	// Terminals returns the names of the terminal symbols this definition can produce.
	Terminals() []string
	// Lex an io.Reader.
	Lex(filename string, r io.Reader) (Lexer, error)
}

// A Lexer returns tokens from a source.
//
// Once the input is exhausted Next keeps returning an EOF token.
type Lexer interface {
	// Next consumes and returns the next token.
	Next() (Token, error)
}

// NameOfReader attempts to retrieve the filename of a reader.
func NameOfReader(r interface{}) string {
	if nr, ok := r.(interface{ Name() string }); ok {
		return nr.Name()
	}
	return ""
}

// Must takes the result of a Definition constructor call and returns the definition, but panics if
// it errors
//
// eg.
//
//	lex = lexer.Must(lexer.New(lexer.Verbatim(map[string]string{"+": "PLUS"})))
func Must(def Definition, err error) Definition {
	if err != nil {
		panic(err)
	}
	return def
}

// ConsumeAll reads all tokens from a Lexer, up to and including the EOF token.
func ConsumeAll(lexer Lexer) ([]Token, error) {
	tokens := make([]Token, 0, 64)
	for {
		token, err := lexer.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
		if token.EOF() {
			return tokens, nil
		}
	}
}

// Position of a token.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) GoString() string {
	return fmt.Sprintf("Position{Filename: %q, Offset: %d, Line: %d, Column: %d}",
		p.Filename, p.Offset, p.Line, p.Column)
}

func (p Position) String() string {
	filename := p.Filename
	if filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", filename, p.Line, p.Column)
}

// A Token returned by a Lexer.
//
// A token asserts that a piece of the input text is an occurrence of a terminal symbol.
type Token struct {
	// Terminal is the name of the terminal symbol matched by the text.
	Terminal string
	// Value is the matched source text.
	Value string
	Pos   Position
	// Literal holds the decoded value of literal tokens (numbers, strings...) and is nil
	// for verbatim tokens.
	Literal interface{}
}

// EOF returns true if this Token is an EOF token.
func (t Token) EOF() bool {
	return t.Terminal == EOF
}

func (t Token) String() string {
	if t.EOF() {
		return "<EOF>"
	}
	return t.Value
}

func (t Token) GoString() string {
	if t.Pos == (Position{}) {
		return fmt.Sprintf("Token{%s, %q}", t.Terminal, t.Value)
	}
	return fmt.Sprintf("Token@%s{%s, %q}", t.Pos.String(), t.Terminal, t.Value)
}
