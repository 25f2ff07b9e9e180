package main

import (
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gopxl/beep/speaker"
	"github.com/spf13/cobra"

	"github.com/tatianab/event-engine/internal/audio"
	"github.com/tatianab/event-engine/internal/config"
	"github.com/tatianab/event-engine/internal/engine"
	"github.com/tatianab/event-engine/internal/game"
	"github.com/tatianab/event-engine/internal/tui"
)

func playCmd() *cobra.Command {
	var mute bool
	cmd := &cobra.Command{
		Use:   "play [event]",
		Short: "Play scripted events in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(args, mute)
		},
	}
	cmd.Flags().BoolVar(&mute, "mute", false, "disable audio output")
	return cmd
}

func runPlay(args []string, mute bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// The terminal belongs to the TUI, so everything else logs to a file.
	f, err := tea.LogToFile(cfg.LogFile, "eventplay ")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	logger := log.Default()

	script, err := loadScripts(cfg, logger)
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(cfg, logger)
	if err != nil {
		return err
	}

	opts := game.Options{
		Session:    cfg.Session(),
		RevealRate: cfg.RevealRate,
		Logger:     logger,
	}
	if catalog != nil {
		opts.Locale = catalog
	}
	if cfg.Audio && !mute {
		if m, err := startAudio(logger); err != nil {
			logger.Printf("audio disabled: %v", err)
		} else {
			opts.Audio = m
		}
	}

	trace := &tui.TraceLog{}
	opts.Trace = trace.Record
	g := game.New(script, opts)

	// Without an argument the configured start event runs, or the menu
	// opens if the scripts do not define it.
	start := cfg.StartEvent
	if len(args) == 1 {
		start = args[0]
	} else if _, ok := script.Events[start]; !ok {
		start = ""
	}
	return tui.Run(g, trace, tui.Options{Start: start, FPS: cfg.FPS})
}

func startAudio(logger *log.Logger) (engine.Audio, error) {
	m := audio.NewMixer(audio.SampleRate, logger)
	if err := speaker.Init(audio.SampleRate, audio.SampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	speaker.Play(m)
	return m, nil
}
