// Package cmd implements the CLI application for the paper-trading account.
package cmd

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	papertrade "github.com/etnz/papertrade"
	"github.com/etnz/papertrade/store"
	"github.com/etnz/papertrade/yahoo"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&summaryCmd{}, "market")
	c.Register(&quoteCmd{}, "market")
	c.Register(&indicatorsCmd{}, "market")
	c.Register(&insightsCmd{}, "market")

	c.Register(&buyCmd{}, "trading")
	c.Register(&sellCmd{}, "trading")
	c.Register(&portfolioCmd{}, "trading")
	c.Register(&logCmd{}, "trading")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var storePath = flag.String("store", defaultStorePath(), "Path to the portfolio store: a directory of JSON files, or a .db file for SQLite")
var user = flag.String("u", defaultUser(), "User id owning the portfolio")

func defaultStorePath() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".papertrade")
	}
	return ".papertrade"
}

func defaultUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "default"
}

// openStore opens the persistence backend selected by the -store flag.
func openStore() (papertrade.Store, error) {
	if strings.HasSuffix(*storePath, ".db") {
		return store.NewSQLite(*storePath)
	}
	return store.NewDir(*storePath)
}

// newMarket builds the quote layer over the Yahoo provider.
func newMarket() *papertrade.MarketService {
	return papertrade.NewMarketService(yahoo.New())
}

// newTrader builds the trade executor for the current store and user flags.
func newTrader() (*papertrade.Trader, error) {
	s, err := openStore()
	if err != nil {
		return nil, err
	}
	return papertrade.NewTrader(newMarket(), s), nil
}
