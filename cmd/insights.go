package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/papertrade/advisor"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// insightsCmd asks the analyst for market or portfolio commentary.
type insightsCmd struct {
	portfolio bool
}

func (*insightsCmd) Name() string     { return "insights" }
func (*insightsCmd) Synopsis() string { return "AI commentary on the market or the portfolio" }
func (*insightsCmd) Usage() string {
	return `ptc insights [-portfolio]

  Asks the Gemini analyst for a short commentary. By default it comments on
  the global market summary; with -portfolio it reviews the open positions.
  Without a GEMINI_API_KEY the command answers in mock mode.
`
}

func (c *insightsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.portfolio, "portfolio", false, "Comment on the portfolio positions instead of the market.")
}

func (c *insightsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	analyst := advisor.NewAnalyst()
	if advisor.Enabled() {
		client, err := genai.NewClient(ctx, nil)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
			return subcommands.ExitFailure
		}
		if err := analyst.Start(ctx, client); err != nil {
			fmt.Fprintln(os.Stderr, "Error starting analyst chat:", err)
			return subcommands.ExitFailure
		}
	}

	var text string
	var err error
	if c.portfolio {
		trader, terr := newTrader()
		if terr != nil {
			fmt.Fprintf(os.Stderr, "Error opening store: %v\n", terr)
			return subcommands.ExitFailure
		}
		view, verr := trader.PortfolioView(*user)
		if verr != nil {
			fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", verr)
			return subcommands.ExitFailure
		}
		text, err = analyst.PortfolioAdvice(ctx, view)
	} else {
		text, err = analyst.MarketInsights(ctx, newMarket().MarketSummary())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error asking the analyst: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(text)
	return subcommands.ExitSuccess
}
