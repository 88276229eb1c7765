package main

import (
	"io"
	"os"

	"github.com/tliron/commonlog"

	"github.com/sppf/dendroid"
	"github.com/sppf/dendroid/ebnf"
	"github.com/sppf/dendroid/lexer"
)

type GrammarFlags struct {
	Grammar string `arg:"" type:"existingfile" help:"EBNF grammar."`
	Start   string `help:"Start production (the first production if omitted)."`
}

func (f *GrammarFlags) load() (*ebnf.Grammar, error) {
	r, err := os.Open(f.Grammar)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ebnf.Parse(f.Grammar, r, f.Start)
}

type InputFlags struct {
	GrammarFlags
	Input string `arg:"" default:"-" help:"Input to parse (read from stdin if omitted)."`
	Trace bool   `help:"Trace every recognizer and forest walk step to stderr."`
}

// build a parser lexing with text/scanner, the quoted tokens of the grammar being its
// literals.
func (f *InputFlags) build(options ...dendroid.Option) (*dendroid.Parser, error) {
	g, err := f.load()
	if err != nil {
		return nil, err
	}
	options = append(options,
		dendroid.Lexer(lexer.TextScanner(g.Literals...)),
		dendroid.Logger(commonlog.GetLogger("dendroid")))
	if f.Trace {
		options = append(options, dendroid.Trace(os.Stderr))
	}
	return dendroid.Build(g.Grammar, options...)
}

func (f *InputFlags) open() (string, io.ReadCloser, error) {
	if f.Input == "-" {
		return "<stdin>", io.NopCloser(os.Stdin), nil
	}
	r, err := os.Open(f.Input)
	return f.Input, r, err
}
