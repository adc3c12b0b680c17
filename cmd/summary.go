package cmd

import (
	"context"
	"flag"
	"fmt"
	"time"

	papertrade "github.com/etnz/papertrade"
	"github.com/etnz/papertrade/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	plain bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the global market summary" }
func (*summaryCmd) Usage() string {
	return `ptc summary [-plain]

  Displays current quotes for the global index basket (S&P 500, Nasdaq,
  Dow Jones, FTSE 100, Nifty 50, Nikkei 225, DAX, Bitcoin).
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "Print a plain colored table instead of markdown.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	quotes := newMarket().MarketSummary()
	if len(quotes) == 0 {
		fmt.Println("No data received. Check internet connection or API status.")
		return subcommands.ExitFailure
	}

	if c.plain {
		printPlainSummary(quotes)
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.SummaryMarkdown(quotes))
	return subcommands.ExitSuccess
}

// ANSI colors for the plain table.
const (
	ansiGreen = "\033[92m"
	ansiRed   = "\033[91m"
	ansiReset = "\033[0m"
)

// printPlainSummary prints the fixed-width colored table of the basket.
func printPlainSummary(quotes []papertrade.Quote) {
	fmt.Printf(" GLOBAL MARKET SUMMARY - %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Printf("%-15s %-12s %-10s %-10s\n", "INDEX", "PRICE", "CHANGE", "% CHANGE")
	for _, q := range quotes {
		color := ansiGreen
		if q.Color() == "red" {
			color = ansiRed
		}
		fmt.Printf("%-15s %-12s %s%-10s %-10s%s\n",
			q.Name,
			q.Price.Round().Decimal().StringFixed(2),
			color,
			q.Change.Round().Decimal().StringFixed(2),
			q.ChangePercent.String(),
			ansiReset,
		)
	}
}
