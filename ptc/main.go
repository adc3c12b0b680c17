package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/papertrade/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the CLI for shell completion. It returns immediately
// when the process is not running as a completer.
func completion() {
	symbols := predict.Something
	ptc := &complete.Command{
		Flags: map[string]complete.Predictor{
			"store": predict.Files("*"),
			"u":     predict.Something,
		},
		Sub: map[string]*complete.Command{
			"summary":    {Flags: map[string]complete.Predictor{"plain": predict.Nothing}},
			"quote":      {Args: symbols},
			"indicators": {Args: symbols},
			"insights":   {Flags: map[string]complete.Predictor{"portfolio": predict.Nothing}},
			"buy":        {Args: symbols},
			"sell":       {Args: symbols},
			"portfolio":  {},
			"log":        {},
			"topic":      {Args: predict.Set{"readme", "trading", "market", "indicators", "storage"}},
		},
	}
	ptc.Complete("ptc")
}

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
