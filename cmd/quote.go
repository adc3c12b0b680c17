package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/papertrade/renderer"
	"github.com/google/subcommands"
)

type quoteCmd struct{}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "display current quotes for one or more symbols" }
func (*quoteCmd) Usage() string {
	return `ptc quote <symbol> [<symbol>...]

  Displays the current price, change and day range for each symbol.

Usage Examples:
$ ptc quote AAPL
$ ptc quote AAPL GOOG BTC-USD
`
}

func (*quoteCmd) SetFlags(_ *flag.FlagSet) {}

func (c *quoteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one symbol is required.")
		return subcommands.ExitUsageError
	}

	market := newMarket()
	status := subcommands.ExitSuccess
	for _, symbol := range f.Args() {
		q, err := market.GetQuote(symbol)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching %q: %v\n", symbol, err)
			status = subcommands.ExitFailure
			continue
		}
		printMarkdown(renderer.QuoteMarkdown(q))
	}
	return status
}
