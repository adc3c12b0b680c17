package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/papertrade/renderer"
	"github.com/google/subcommands"
)

type indicatorsCmd struct{}

func (*indicatorsCmd) Name() string     { return "indicators" }
func (*indicatorsCmd) Synopsis() string { return "compute SMA 20 and RSI 14 for a symbol" }
func (*indicatorsCmd) Usage() string {
	return `ptc indicators <symbol>

  Computes the 20-day simple moving average and the 14-day relative
  strength index from the symbol's daily closing prices, with the derived
  OVERBOUGHT/OVERSOLD/NEUTRAL signal.
`
}

func (*indicatorsCmd) SetFlags(_ *flag.FlagSet) {}

func (c *indicatorsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one symbol is required.")
		return subcommands.ExitUsageError
	}
	symbol := strings.ToUpper(f.Arg(0))

	ind, err := newMarket().GetIndicators(symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing indicators for %q: %v\n", symbol, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.IndicatorsMarkdown(symbol, ind))
	return subcommands.ExitSuccess
}
