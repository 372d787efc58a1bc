package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"skullking/config"
	"skullking/experiments"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Config     string `short:"c" default:"skullking.hcl" help:"Path to HCL configuration file"`
	Games      int    `short:"n" help:"Number of games (overrides config)"`
	Seed       int64  `short:"s" help:"Random seed (overrides config)"`
	LogLevel   string `short:"l" help:"Log level: debug, info, warning, error (overrides config)"`
	LogFile    string `help:"Write JSON logs to this file instead of the console"`
	CSV        string `help:"Store game and search records in this CSV file (overrides config)"`
	Throughput []int  `sep:"," help:"Benchmark search throughput for these goroutine counts"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("skullking"),
		kong.Description("Skull King games between random, human and Monte Carlo players."))

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		ctx.Exit(1)
	}

	// Apply command line overrides
	if CLI.Games > 0 {
		cfg.NbGames = CLI.Games
	}
	if CLI.Seed != 0 {
		cfg.Seed = CLI.Seed
	}
	if CLI.LogLevel != "" {
		cfg.LogLevel = CLI.LogLevel
	}
	if CLI.CSV != "" {
		cfg.CSVName = CLI.CSV
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		ctx.Exit(1)
	}

	level, _ := cfg.Level()
	zerolog.SetGlobalLevel(level)
	if CLI.LogFile != "" {
		f, err := os.OpenFile(CLI.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			ctx.Exit(1)
		}
		defer f.Close()
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(CLI.Throughput) > 0 {
		results, err := experiments.RunThroughput(runCtx, cfg, CLI.Throughput)
		if err != nil {
			log.Error().Err(err).Msg("throughput run failed")
			os.Exit(1)
		}
		for _, r := range results {
			fmt.Printf("goroutines %d: %d decisions, %d trials in %s (%.0f trials/s)\n",
				r.Goroutines, r.Decisions, r.Trials, r.Duration, r.TrialsPerSecond)
		}
		return
	}

	options := []experiments.Option{}
	if CLI.CSV != "" {
		options = append(options, experiments.WithCSV())
	}
	summary, err := experiments.NewRunner(cfg, options...).Run(runCtx)
	if err != nil {
		log.Error().Err(err).Msg("games failed")
		os.Exit(1)
	}

	for p, ratio := range summary.Ratio {
		fmt.Printf("victory ratio player %d (%s): %.3f (%d/%d)\n",
			p, cfg.Sorted()[p].Type, ratio, summary.Victories[p], summary.Games)
	}
}
