package dendroid

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/sppf/dendroid/forest"
	"github.com/sppf/dendroid/grammar"
	"github.com/sppf/dendroid/lexer"
	"github.com/sppf/dendroid/recognizer"
)

// A Parser for a grammar.
//
// A Parser keeps no state between parses and is safe for concurrent use.
type Parser struct {
	grammar    *grammar.Grammar
	lex        lexer.Definition
	trace      io.Writer
	logger     commonlog.Logger
	maxThreads int
	mappers    []mapperByTerminal

	recognizer *recognizer.Recognizer
	builder    *forest.Builder
}

// MustBuild calls Build(g, options...) and panics if an error occurs.
func MustBuild(g *grammar.Grammar, options ...Option) *Parser {
	parser, err := Build(g, options...)
	if err != nil {
		panic(err)
	}
	return parser
}

// Build constructs a parser for the given grammar, completing it if needed.
//
// Every terminal of the grammar must be one the lexer, or a mapper given to MapTo, can produce.
func Build(g *grammar.Grammar, options ...Option) (*Parser, error) {
	if err := g.Complete(); err != nil {
		return nil, err
	}
	p := &Parser{grammar: g}
	for _, option := range options {
		if err := option(p); err != nil {
			return nil, err
		}
	}
	if p.lex == nil {
		p.lex = defaultLexer(g)
	}
	if len(p.mappers) > 0 {
		p.lex = &mappingLexerDef{Definition: p.lex, mappers: p.mappers}
	}
	if err := p.validateLexer(); err != nil {
		return nil, err
	}

	var err error
	recognizerOptions := []recognizer.Option{recognizer.WithLogger(p.logger)}
	builderOptions := []forest.Option{forest.WithLogger(p.logger)}
	if p.trace != nil {
		recognizerOptions = append(recognizerOptions, recognizer.WithTrace(p.trace))
		builderOptions = append(builderOptions, forest.WithTrace(p.trace))
	}
	if p.maxThreads != 0 {
		builderOptions = append(builderOptions, forest.WithMaxThreads(p.maxThreads))
	}
	if p.recognizer, err = recognizer.New(g, recognizerOptions...); err != nil {
		return nil, err
	}
	if p.builder, err = forest.New(builderOptions...); err != nil {
		return nil, err
	}
	return p, nil
}

// defaultLexer scans Go-like tokens, the terminals of the grammar being its literals.
func defaultLexer(g *grammar.Grammar) lexer.Definition {
	classes := map[string]bool{}
	for _, class := range lexer.TextScanner().Terminals() {
		classes[class] = true
	}
	literals := []string{}
	for _, terminal := range g.Terminals() {
		if !classes[terminal.Name] {
			literals = append(literals, terminal.Name)
		}
	}
	return lexer.TextScanner(literals...)
}

func (p *Parser) validateLexer() error {
	produced := map[string]bool{}
	for _, terminal := range p.lex.Terminals() {
		produced[terminal] = true
	}
	missing := []string{}
	for _, terminal := range p.grammar.Terminals() {
		if !produced[terminal.Name] {
			missing = append(missing, terminal.Name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("the lexer never produces the terminals %s", strings.Join(missing, ", "))
	}
	return nil
}

// Grammar the parser was built for.
func (p *Parser) Grammar() *grammar.Grammar { return p.grammar }

// Lexer definition used by the parser.
func (p *Parser) Lexer() lexer.Definition { return p.lex }

func (p *Parser) String() string {
	rules := make([]string, len(p.grammar.Rules()))
	for i, rule := range p.grammar.Rules() {
		rules[i] = rule.String()
	}
	return strings.Join(rules, "\n")
}

// Lex the input into tokens, the EOF token included.
func (p *Parser) Lex(filename string, r io.Reader) ([]lexer.Token, error) {
	lex, err := p.lex.Lex(filename, r)
	if err != nil {
		return nil, err
	}
	return lexer.ConsumeAll(lex)
}

// Recognize the input, returning its chart.
//
// The chart of a rejected input is returned along with an Error describing the failure.
func (p *Parser) Recognize(filename string, r io.Reader) (*recognizer.Chart, error) {
	lex, err := p.lex.Lex(filename, r)
	if err != nil {
		return nil, err
	}
	chart, err := p.recognizer.Run(lex)
	if err != nil {
		return nil, err
	}
	if !chart.Successful() {
		return chart, failureError(chart.Failure())
	}
	return chart, nil
}

// RecognizeString recognizes a string.
func (p *Parser) RecognizeString(filename string, s string) (*recognizer.Chart, error) {
	return p.Recognize(filename, strings.NewReader(s))
}

// Parse the input into a parse forest and return its root.
func (p *Parser) Parse(filename string, r io.Reader) (forest.ParseNode, error) {
	chart, err := p.Recognize(filename, r)
	if err != nil {
		return nil, err
	}
	return p.builder.Run(chart)
}

// ParseString parses a string.
func (p *Parser) ParseString(filename string, s string) (forest.ParseNode, error) {
	return p.Parse(filename, strings.NewReader(s))
}

// ParseBytes parses bytes.
func (p *Parser) ParseBytes(filename string, b []byte) (forest.ParseNode, error) {
	return p.Parse(filename, bytes.NewReader(b))
}
