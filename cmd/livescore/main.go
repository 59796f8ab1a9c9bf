// Command livescore runs one refresh of a round and prints the live table.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/fantasy-livescore/internal/app"
	"github.com/riskibarqy/fantasy-livescore/internal/config"
	"github.com/riskibarqy/fantasy-livescore/internal/platform/logging"
	"github.com/riskibarqy/fantasy-livescore/internal/usecase"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "livescore:", err)
		os.Exit(1)
	}
}

type options struct {
	leagueID   int64
	round      int
	skipIngest bool
}

func parseFlags(args []string, defaults config.Config) (options, error) {
	fs := flag.NewFlagSet("livescore", flag.ContinueOnError)
	opts := options{}
	fs.Int64Var(&opts.leagueID, "league", defaults.FPLLeagueID, "classic league id to ingest")
	fs.IntVar(&opts.round, "round", defaults.LiveRefreshRound, "round to score; 0 resolves the current round")
	fs.BoolVar(&opts.skipIngest, "skip-ingest", false, "score stored data without calling the provider")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.round < 0 {
		return options{}, fmt.Errorf("round must be >= 0")
	}
	if !opts.skipIngest && opts.leagueID <= 0 {
		return options{}, fmt.Errorf("-league is required unless -skip-ingest is set")
	}
	return opts, nil
}

func run(args []string, out io.Writer) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	opts, err := parseFlags(args, cfg)
	if err != nil {
		return err
	}

	logger := logging.NewJSON(cfg.LogLevel).Named("livescore")
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = application.Close(closeCtx)
	}()

	round, err := application.ResolveRound(ctx, opts.round)
	if err != nil {
		return err
	}

	result, err := application.LiveScores().RefreshRound(ctx, usecase.RefreshInput{
		LeagueID:   opts.leagueID,
		Round:      round,
		SkipIngest: opts.skipIngest,
	})
	if err != nil {
		return err
	}
	for _, failure := range result.Score.Failures {
		logger.Warn("participant not scored", "participant_id", failure.ParticipantID, "stage", failure.Stage, "error", failure.Error())
	}

	table, err := application.LiveScores().ListLiveTable(ctx, round)
	if err != nil {
		return err
	}
	return printTable(out, round, result.Score, table)
}

func printTable(out io.Writer, round int, score usecase.RoundResult, table []usecase.LiveTableEntry) error {
	status := "in progress"
	if score.AllFixturesFinished {
		status = "final"
	}
	if _, err := fmt.Fprintf(out, "round %d (%s): %d scored, %d failed, %d auto-subs\n",
		round, status, score.Scored, len(score.Failures), score.Substitutions); err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tENTRY\tMANAGER\tPOINTS")
	for _, entry := range table {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", entry.Rank, entry.EntryName, entry.PlayerName, entry.EventTotal)
	}
	return w.Flush()
}
