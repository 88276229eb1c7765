package lexer

import (
	"bytes"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/scanner"
)

// Terminal names produced by the text/scanner based lexer.
const (
	Ident  = "Ident"
	Int    = "Int"
	Float  = "Float"
	String = "String"
	Char   = "Char"
)

var scannerTerminals = map[rune]string{
	scanner.Ident:     Ident,
	scanner.Int:       Int,
	scanner.Float:     Float,
	scanner.String:    String,
	scanner.RawString: String,
	scanner.Char:      Char,
}

// TextScannerDefinition is a lexer Definition backed by text/scanner.
//
// Identifiers, numbers, strings and chars become tokens of the terminals Ident, Int,
// Float, String and Char. Any other text (punctuation, and identifiers listed as
// literals) becomes a token whose terminal name is the text itself, so "+" is a token of
// the terminal "+" and a keyword "if" passed as literal is a token of the terminal "if".
//
// String and char tokens carry their unquoted value as Literal, numbers their parsed
// value. Identifiers have none.
type TextScannerDefinition struct {
	literals map[string]bool
}

// TextScanner creates a text/scanner based lexer Definition. Literals are the keywords
// and punctuation the grammar uses as terminals.
func TextScanner(literals ...string) *TextScannerDefinition {
	d := &TextScannerDefinition{literals: map[string]bool{}}
	for _, literal := range literals {
		d.literals[literal] = true
	}
	return d
}

// Terminals returns the scanner classes followed by the declared literals.
func (d *TextScannerDefinition) Terminals() []string {
	out := []string{Ident, Int, Float, String, Char}
	literals := make([]string, 0, len(d.literals))
	for literal := range d.literals {
		literals = append(literals, literal)
	}
	sort.Strings(literals)
	return append(out, literals...)
}

// Lex an io.Reader with text/scanner.Scanner.
func (d *TextScannerDefinition) Lex(filename string, r io.Reader) (Lexer, error) {
	if filename == "" {
		filename = NameOfReader(r)
	}
	s := &scanner.Scanner{}
	s.Init(r)
	s.Mode = scanner.GoTokens
	l := &textScannerLexer{def: d, scanner: s, filename: filename}
	s.Error = func(s *scanner.Scanner, msg string) {
		pos := Position(s.Pos())
		pos.Filename = filename
		l.err = Errorf(pos, "%s", msg)
	}
	return l, nil
}

// LexString returns a new lexer over a string.
func (d *TextScannerDefinition) LexString(filename, s string) Lexer {
	l, _ := d.Lex(filename, strings.NewReader(s))
	return l
}

// LexBytes returns a new lexer over bytes.
func (d *TextScannerDefinition) LexBytes(filename string, b []byte) Lexer {
	l, _ := d.Lex(filename, bytes.NewReader(b))
	return l
}

type textScannerLexer struct {
	def      *TextScannerDefinition
	scanner  *scanner.Scanner
	filename string
	err      error
}

func (t *textScannerLexer) Next() (Token, error) {
	typ := t.scanner.Scan()
	text := t.scanner.TokenText()
	pos := Position(t.scanner.Position)
	pos.Filename = t.filename
	if t.err != nil {
		return Token{}, t.err
	}
	if typ == scanner.EOF {
		return EOFToken(pos), nil
	}
	token := Token{Value: text, Pos: pos}
	terminal, ok := scannerTerminals[typ]
	switch {
	case ok && t.def.literals[text]:
		token.Terminal = text
	case ok:
		token.Terminal = terminal
		literal, err := decode(typ, text)
		if err != nil {
			return Token{}, Errorf(pos, "invalid %s %s: %s", terminal, text, err)
		}
		token.Literal = literal
	default:
		token.Terminal = text
	}
	return token, nil
}

func decode(typ rune, text string) (interface{}, error) {
	switch typ {
	case scanner.Int:
		return strconv.ParseInt(text, 0, 64)
	case scanner.Float:
		return strconv.ParseFloat(text, 64)
	case scanner.String, scanner.RawString:
		return strconv.Unquote(text)
	case scanner.Char:
		r, _, _, err := strconv.UnquoteChar(text[1:len(text)-1], '\'')
		return r, err
	}
	return nil, nil
}
