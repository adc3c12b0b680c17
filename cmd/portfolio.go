package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/papertrade/renderer"
	"github.com/google/subcommands"
)

type portfolioCmd struct{}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "display the portfolio valued at market prices" }
func (*portfolioCmd) Usage() string {
	return `ptc portfolio

  Displays the wallet balance, the open positions valued at current market
  prices with their profit and loss, and the total account value.
`
}

func (*portfolioCmd) SetFlags(_ *flag.FlagSet) {}

func (c *portfolioCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	trader, err := newTrader()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	view, err := trader.PortfolioView(*user)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.PortfolioMarkdown(view))
	return subcommands.ExitSuccess
}

type logCmd struct{}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "display the transaction log" }
func (*logCmd) Usage() string {
	return `ptc log

  Displays every executed trade of the portfolio, oldest first.
`
}

func (*logCmd) SetFlags(_ *flag.FlagSet) {}

func (c *logCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	trader, err := newTrader()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	p, err := trader.Portfolio(*user)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.TransactionsMarkdown(p.Transactions))
	return subcommands.ExitSuccess
}
