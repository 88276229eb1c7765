// Command dendroid recognizes and parses inputs of grammars written in EBNF.
package main

import (
	"github.com/alecthomas/kong"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var (
	version string = "dev"
	cli     struct {
		Version kong.VersionFlag
		Verbose int    `short:"v" type:"counter" help:"Increase log verbosity."`
		Log     string `type:"path" help:"Write the log to a file instead of stderr."`

		Check   checkCmd   `cmd:"" help:"Recognize an input."`
		Parse   parseCmd   `cmd:"" help:"Parse an input and print its parse forest."`
		Analyze analyzeCmd `cmd:"" help:"Print the nullable symbols, FIRST and FOLLOW sets of a grammar."`
	}
)

func main() {
	kctx := kong.Parse(&cli,
		kong.Description(`A command-line tool building shared packed parse forests of EBNF grammars.`),
		kong.Vars{"version": version},
	)
	var path *string
	if cli.Log != "" {
		path = &cli.Log
	}
	commonlog.Configure(cli.Verbose, path)
	err := kctx.Run()
	kctx.FatalIfErrorf(err)
}
