package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	papertrade "github.com/etnz/papertrade"
	"github.com/google/subcommands"
)

// executeTrade parses the shared "<symbol> <quantity>" arguments and runs
// one trade for the current user.
func executeTrade(f *flag.FlagSet, side papertrade.TradeType) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected <symbol> <quantity>.")
		return subcommands.ExitUsageError
	}
	symbol := f.Arg(0)
	quantity, err := strconv.ParseInt(f.Arg(1), 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: quantity %q is not a whole number.\n", f.Arg(1))
		return subcommands.ExitUsageError
	}

	trader, err := newTrader()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	res, err := trader.ExecuteTrade(*user, symbol, quantity, side)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	tx := res.Transaction
	fmt.Printf("%s %d %s at %s for a total of %s. New balance: %s\n",
		tx.Type, tx.Quantity, tx.Symbol, tx.Price.Round(), tx.Total.Round(), res.NewBalance.Round())
	return subcommands.ExitSuccess
}

type buyCmd struct{}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy shares at the current market price" }
func (*buyCmd) Usage() string {
	return `ptc buy <symbol> <quantity>

  Buys whole shares at the current market price, debiting the wallet.

Usage Examples:
$ ptc buy AAPL 10
`
}
func (*buyCmd) SetFlags(_ *flag.FlagSet) {}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return executeTrade(f, papertrade.BuyTrade)
}

type sellCmd struct{}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares at the current market price" }
func (*sellCmd) Usage() string {
	return `ptc sell <symbol> <quantity>

  Sells whole shares at the current market price, crediting the wallet.

Usage Examples:
$ ptc sell AAPL 5
`
}
func (*sellCmd) SetFlags(_ *flag.FlagSet) {}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return executeTrade(f, papertrade.SellTrade)
}
