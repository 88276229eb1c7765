package lexer

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"unicode/utf8"
)

var (
	newlineRe    = regexp.MustCompile(`^(?:\r\n|\r|\n)`)
	whitespaceRe = regexp.MustCompile(`^[ \t\f]+`)
)

// Converter turns the text of a literal token into its value.
type Converter func(text string) (interface{}, error)

// Atoi converts the token text to an int.
func Atoi(text string) (interface{}, error) { return strconv.Atoi(text) }

// ParseFloat converts the token text to a float64.
func ParseFloat(text string) (interface{}, error) { return strconv.ParseFloat(text, 64) }

// Unquote converts a quoted string token to its unquoted value.
func Unquote(text string) (interface{}, error) { return strconv.Unquote(text) }

type valueRule struct {
	re       *regexp.Regexp
	terminal string
	convert  Converter
}

// Rules is a tokenizer definition made of verbatim texts mapped to terminals and of
// patterns whose matching text is converted into a literal value.
//
// Newlines and blanks are skipped. At each position the longest match wins; on a tie
// verbatim texts take precedence over value patterns, and earlier patterns over later
// ones.
type Rules struct {
	verbatim   map[string]string
	verbatimRe *regexp.Regexp
	values     []valueRule
	skip       []*regexp.Regexp
}

// A RulesOption configures a Rules definition.
type RulesOption func(r *Rules) error

// Verbatim maps literal texts to the terminal they denote, eg. {"+": "PLUS"}.
func Verbatim(mapping map[string]string) RulesOption {
	return func(r *Rules) error {
		for text, terminal := range mapping {
			if text == "" {
				return fmt.Errorf("verbatim text for terminal %q is empty", terminal)
			}
			r.verbatim[text] = terminal
		}
		return nil
	}
}

// Value adds a pattern whose matching text is a token of the given terminal. The
// optional conversion computes the token's Literal value.
func Value(pattern, terminal string, convert Converter) RulesOption {
	return func(r *Rules) error {
		re, err := regexp.Compile(`^(?:` + pattern + `)`)
		if err != nil {
			return fmt.Errorf("pattern for terminal %q: %w", terminal, err)
		}
		r.values = append(r.values, valueRule{re: re, terminal: terminal, convert: convert})
		return nil
	}
}

// Skip adds a pattern whose matching text is discarded, eg. comments.
func Skip(pattern string) RulesOption {
	return func(r *Rules) error {
		re, err := regexp.Compile(`^(?:` + pattern + `)`)
		if err != nil {
			return fmt.Errorf("skip pattern: %w", err)
		}
		r.skip = append(r.skip, re)
		return nil
	}
}

// New creates a rule based lexer Definition.
func New(options ...RulesOption) (*Rules, error) {
	r := &Rules{verbatim: map[string]string{}}
	for _, option := range options {
		if err := option(r); err != nil {
			return nil, err
		}
	}
	if len(r.verbatim) > 0 {
		texts := make([]string, 0, len(r.verbatim))
		for text := range r.verbatim {
			texts = append(texts, text)
		}
		// Longest first so that "**" is preferred to "*".
		sort.Slice(texts, func(i, j int) bool {
			if len(texts[i]) != len(texts[j]) {
				return len(texts[i]) > len(texts[j])
			}
			return texts[i] < texts[j]
		})
		pattern := ""
		for i, text := range texts {
			if i > 0 {
				pattern += "|"
			}
			pattern += regexp.QuoteMeta(text)
		}
		r.verbatimRe = regexp.MustCompile(`^(?:` + pattern + `)`)
	}
	return r, nil
}

// MustNew is like New but panics on error.
func MustNew(options ...RulesOption) *Rules {
	r, err := New(options...)
	if err != nil {
		panic(err)
	}
	return r
}

// Terminals returns the terminals produced by the verbatim mapping and the value patterns.
func (r *Rules) Terminals() []string {
	seen := map[string]bool{}
	out := []string{}
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, terminal := range r.verbatim {
		add(terminal)
	}
	for _, value := range r.values {
		add(value.terminal)
	}
	sort.Strings(out)
	return out
}

// Lex an io.Reader.
func (r *Rules) Lex(filename string, reader io.Reader) (Lexer, error) {
	b, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if filename == "" {
		filename = NameOfReader(reader)
	}
	return r.LexBytes(filename, b), nil
}

// LexString is a fast path for lexing strings.
func (r *Rules) LexString(filename string, input string) Lexer {
	return r.LexBytes(filename, []byte(input))
}

// LexBytes is a fast path for lexing byte slices.
func (r *Rules) LexBytes(filename string, input []byte) Lexer {
	return &rulesLexer{
		def: r,
		b:   input,
		pos: Position{Filename: filename, Line: 1, Column: 1},
	}
}

type rulesLexer struct {
	def *Rules
	b   []byte
	pos Position
}

func (l *rulesLexer) advance(n int) []byte {
	text := l.b[:n]
	l.b = l.b[n:]
	l.pos.Offset += n
	l.pos.Column += utf8.RuneCount(text)
	return text
}

func (l *rulesLexer) Next() (Token, error) {
next:
	for len(l.b) > 0 {
		if loc := newlineRe.FindIndex(l.b); loc != nil {
			l.advance(loc[1])
			l.pos.Line++
			l.pos.Column = 1
			continue
		}
		if loc := whitespaceRe.FindIndex(l.b); loc != nil {
			l.advance(loc[1])
			continue
		}
		for _, re := range l.def.skip {
			if loc := re.FindIndex(l.b); loc != nil && loc[1] > 0 {
				l.skipText(loc[1])
				continue next
			}
		}

		best, terminal := 0, ""
		var convert Converter
		if l.def.verbatimRe != nil {
			if loc := l.def.verbatimRe.FindIndex(l.b); loc != nil {
				best = loc[1]
				terminal = l.def.verbatim[string(l.b[:loc[1]])]
			}
		}
		literal := false
		for _, value := range l.def.values {
			if loc := value.re.FindIndex(l.b); loc != nil && loc[1] > best {
				best, terminal, convert, literal = loc[1], value.terminal, value.convert, true
			}
		}
		if best == 0 {
			r, _ := utf8.DecodeRune(l.b)
			return Token{}, Errorf(l.pos, "unexpected character %q", r)
		}

		pos := l.pos
		text := string(l.advance(best))
		token := Token{Terminal: terminal, Value: text, Pos: pos}
		if literal && convert != nil {
			v, err := convert(text)
			if err != nil {
				return Token{}, Errorf(pos, "invalid %s %q: %s", terminal, text, err)
			}
			token.Literal = v
		} else if literal {
			token.Literal = text
		}
		return token, nil
	}
	return EOFToken(l.pos), nil
}

// skipText consumes n bytes of skipped text, keeping line and column in sync.
func (l *rulesLexer) skipText(n int) {
	text := l.b[:n]
	l.b = l.b[n:]
	l.pos.Offset += n
	for len(text) > 0 {
		r, size := utf8.DecodeRune(text)
		text = text[size:]
		if r == '\n' {
			l.pos.Line++
			l.pos.Column = 1
		} else {
			l.pos.Column++
		}
	}
}
