package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/sppf/dendroid/grammar"
)

type analyzeCmd struct {
	GrammarFlags
}

func (c *analyzeCmd) Run() error {
	g, err := c.load()
	if err != nil {
		return err
	}
	fmt.Printf("start: %s\n", g.StartSymbol())
	fmt.Printf("cyclic: %v\n\n", g.Cyclic())
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tNULLABLE\tFIRST\tFOLLOW")
	for _, symbol := range g.NonTerminals() {
		fmt.Fprintf(w, "%s\t%v\t%s\t%s\n", symbol, symbol.Nullable(),
			join(g.First(symbol)), join(g.Follow(symbol)))
	}
	return w.Flush()
}

func join(symbols []*grammar.Symbol) string {
	names := make([]string, len(symbols))
	for i, symbol := range symbols {
		names[i] = symbol.Name
	}
	return strings.Join(names, " ")
}
