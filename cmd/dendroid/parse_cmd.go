package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/repr"

	"github.com/sppf/dendroid"
	"github.com/sppf/dendroid/forest"
)

type parseCmd struct {
	InputFlags
	MaxThreads int  `help:"Maximum number of forest walk threads (no limit if 0)."`
	Repr       bool `help:"Dump the tokens of the input instead of its forest."`
	Stats      bool `help:"Print the number of nodes of the forest."`
}

func (c *parseCmd) Run() error {
	options := []dendroid.Option{}
	if c.MaxThreads > 0 {
		options = append(options, dendroid.MaxThreads(c.MaxThreads))
	}
	parser, err := c.build(options...)
	if err != nil {
		return err
	}
	filename, r, err := c.open()
	if err != nil {
		return err
	}
	defer r.Close()

	if c.Repr {
		tokens, err := parser.Lex(filename, r)
		if err != nil {
			return err
		}
		repr.Println(tokens, repr.Indent("  "), repr.OmitEmpty(true))
		return nil
	}
	root, err := parser.Parse(filename, r)
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, forest.Dump(root))
	if c.Stats {
		fmt.Println(forest.Stats(root))
	}
	return nil
}
