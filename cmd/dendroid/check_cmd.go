package main

import (
	"fmt"
	"os"
)

type checkCmd struct {
	InputFlags
	Chart bool `help:"Print the Earley chart."`
}

func (c *checkCmd) Help() string {
	return `
Recognizes the input with the grammar and reports the first syntax error, if any.
`
}

func (c *checkCmd) Run() error {
	parser, err := c.build()
	if err != nil {
		return err
	}
	filename, r, err := c.open()
	if err != nil {
		return err
	}
	defer r.Close()
	chart, err := parser.Recognize(filename, r)
	if chart != nil && c.Chart {
		fmt.Fprint(os.Stdout, chart)
	}
	if err != nil {
		return err
	}
	fmt.Printf("%s: ok, %d tokens\n", filename, len(chart.Tokens()))
	return nil
}
