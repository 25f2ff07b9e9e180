package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tatianab/event-engine/internal/config"
	"github.com/tatianab/event-engine/internal/game"
	"github.com/tatianab/event-engine/internal/locale"
	"github.com/tatianab/event-engine/internal/models"
)

func main() {
	var (
		event    string
		seed     uint64
		runs     int
		maxTicks int
		verbose  bool
	)
	cmd := &cobra.Command{
		Use:   "simulate_game",
		Short: "Play an event headlessly with random choices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if event == "" {
				event = cfg.StartEvent
			}
			return simulate(cmd.Context(), cfg, event, seed, runs, maxTicks, verbose)
		},
	}
	cmd.Flags().StringVar(&event, "event", "", "event to start (default from EVENTPLAY_START_EVENT)")
	cmd.Flags().Uint64Var(&seed, "seed", uint64(time.Now().UnixNano()), "seed for the first run")
	cmd.Flags().IntVar(&runs, "runs", 1, "number of runs, each with the next seed")
	cmd.Flags().IntVar(&maxTicks, "max-ticks", 10000, "give up after this many ticks")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print every dispatched step and log line")
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func simulate(ctx context.Context, cfg *config.Config, event string, seed uint64, runs, maxTicks int, verbose bool) error {
	logger := log.New(io.Discard, "", 0)
	if verbose {
		logger = log.New(os.Stdout, "    log: ", 0)
	}

	script, err := models.LoadDir(cfg.ScriptsDir, models.NewParser(logger))
	if err != nil {
		return err
	}
	for _, d := range script.Diagnostics {
		fmt.Printf("warning: %s\n", d)
	}

	opts := game.Options{Session: cfg.Session(), RevealRate: cfg.RevealRate, Logger: logger}
	if cat, err := locale.LoadDir(cfg.LocalesDir, cfg.Locale, logger); err == nil {
		opts.Locale = cat
	} else {
		fmt.Printf("warning: locales not loaded: %v\n", err)
	}
	if verbose {
		opts.Trace = func(event string, index int, step models.Step) {
			fmt.Printf("  %s[%d] %s %+v\n", event, index, step.Kind(), step)
		}
	}

	failed := 0
	for i := range runs {
		s := seed + uint64(i)
		fmt.Printf("--- Run %d (seed %d) ---\n", i+1, s)

		g := game.New(script, opts)
		p := game.NewAutoPlayer(s, cfg.PlayerName)
		err := g.Play(ctx, event, p, maxTicks)

		fmt.Printf("Ticks: %d\n", g.Ticks())
		fmt.Printf("Choices: %v\n", p.Picks)
		for _, line := range g.Handler.Variables().Dump() {
			fmt.Printf("Variable: %s\n", line)
		}
		if team, err := g.Team.YAML(); err == nil {
			fmt.Printf("Team:\n%s", team)
		}
		if err != nil {
			fmt.Printf("Run failed: %v\n\n", err)
			failed++
			continue
		}
		fmt.Println("Run completed.")
		fmt.Println()
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d runs failed", failed, runs)
	}
	return nil
}
