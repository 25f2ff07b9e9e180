package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tatianab/event-engine/internal/authoring"
	"github.com/tatianab/event-engine/internal/config"
	"github.com/tatianab/event-engine/internal/models"
)

func generateCmd() *cobra.Command {
	var out, start, model string
	cmd := &cobra.Command{
		Use:   "generate <hint>...",
		Short: "Draft a new event script with Gemini",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if err := cfg.RequireAPIKey(); err != nil {
				return err
			}
			if start == "" {
				start = cfg.StartEvent
			}

			logger := log.New(os.Stderr, "", 0)
			gen, err := authoring.NewGenerator(cmd.Context(), cfg.GeminiAPIKey, model, models.NewParser(logger))
			if err != nil {
				return fmt.Errorf("create generator: %w", err)
			}
			defer gen.Close()

			script, raw, err := gen.GenerateScript(cmd.Context(), strings.Join(args, " "), start)
			if err != nil {
				if raw != nil {
					fmt.Fprintf(os.Stderr, "--- model output ---\n%s", raw)
				}
				return err
			}

			if out == "-" {
				_, err = os.Stdout.Write(raw)
				return err
			}
			if err := os.WriteFile(out, raw, 0o644); err != nil {
				return fmt.Errorf("write script: %w", err)
			}
			fmt.Fprintf(os.Stdout, "Wrote %d events to %s (%d diagnostics).\n",
				len(script.Events), out, len(script.Diagnostics))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "-", "file to write, or - for stdout")
	cmd.Flags().StringVar(&start, "start", "", "id of the first event (default from EVENTPLAY_START_EVENT)")
	cmd.Flags().StringVar(&model, "model", authoring.DefaultModel, "Gemini model name")
	return cmd
}
