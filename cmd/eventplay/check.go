package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/tatianab/event-engine/internal/config"
	"github.com/tatianab/event-engine/internal/game"
)

func checkCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report script problems without playing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(strict)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")
	return cmd
}

func runCheck(strict bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	quiet := log.New(io.Discard, "", 0)

	script, err := loadScripts(cfg, quiet)
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(cfg, quiet)
	if err != nil {
		return err
	}

	var messages game.MessageSet
	if catalog != nil {
		messages = catalog
	}

	var errorIssues, warnIssues []game.Issue
	for _, issue := range game.Check(script, messages) {
		switch issue.Severity {
		case game.SeverityError:
			errorIssues = append(errorIssues, issue)
		case game.SeverityWarn:
			warnIssues = append(warnIssues, issue)
		}
	}

	if len(errorIssues) == 0 && len(warnIssues) == 0 {
		fmt.Fprintf(os.Stdout, "No issues found in %d events.\n", len(script.Events))
		return nil
	}

	if len(errorIssues) > 0 {
		fmt.Fprintf(os.Stdout, "Errors (%d):\n", len(errorIssues))
		printIssues(os.Stdout, errorIssues)
	}
	if len(warnIssues) > 0 {
		if len(errorIssues) > 0 {
			fmt.Fprintln(os.Stdout, "")
		}
		fmt.Fprintf(os.Stdout, "Warnings (%d):\n", len(warnIssues))
		printIssues(os.Stdout, warnIssues)
	}

	if len(errorIssues) > 0 || (strict && len(warnIssues) > 0) {
		return fmt.Errorf("check found problems")
	}
	return nil
}

func printIssues(out io.Writer, issues []game.Issue) {
	for _, issue := range issues {
		fmt.Fprintf(out, "  - %s\n", issue)
	}
}
