// package main is the entry point for the backport tool
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/alan/backport/internal/backport"
	"github.com/alan/backport/internal/config"
	"github.com/alan/backport/internal/event"
	"github.com/alan/backport/internal/git"
	"github.com/alan/backport/internal/github"
	"github.com/spf13/cobra"
)

func main() {
	var configFile string
	var logLevel string
	var logFormat string

	rootCmd := &cobra.Command{
		Use:   "backport <target-branch> <pr-title-template> <pr-body-template> <github-token>",
		Short: "Backport a merged pull request onto a release branch",
		Long: `backport cherry-picks the commits of a merged pull request onto a new
branch cut from a target branch and opens a pull request for it.

The pull request metadata is read from the pull_request event payload at
GITHUB_EVENT_PATH. Title and body templates may reference {pr_number},
{original_title}, {base_branch} and {pr_branch}.`,
		Args:         cobra.ExactArgs(4),
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			setupLogger(logLevel, logFormat)
		},
		RunE: func(_ *cobra.Command, args []string) error {
			return run(args[0], args[1], args[2], args[3], configFile)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".backport.yml", "Optional configuration file path")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&logFormat, "log-format", "f", "text", "Log format (text, json)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// run executes one backport end-to-end. It is the sole boundary that catches
// errors: a failure after the event was readable is also reported as an issue
// on the repository before the non-zero exit.
func run(targetBranch, titleTemplate, bodyTemplate, token, configFile string) error {
	ctx := context.Background()

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	ev, err := event.Load(cfg.EventPath)
	if err != nil {
		return err
	}

	client, err := github.NewClient(ctx, token, cfg.APIURL, cfg.Owner(), cfg.Repo())
	if err != nil {
		return err
	}

	runner := git.CLI{}
	if err := git.Setup(runner, cfg.Repository, cfg.Actor, token); err != nil {
		return err
	}

	translator := &backport.Translator{
		GitHub: client,
		Driver: backport.NewDriver(runner),
	}

	if err := translator.Run(ctx, ev, targetBranch, titleTemplate, bodyTemplate); err != nil {
		reportFailure(ctx, client, ev, targetBranch, err)
		return err
	}

	return nil
}

// reportFailure opens an issue describing a failed backport so maintainers
// see the miss. A failure to open the issue is logged and never masks the
// original error.
func reportFailure(ctx context.Context, client *github.Client, ev *event.Event, targetBranch string, runErr error) {
	prNumber, err := ev.PRNumber()
	if err != nil {
		// The event itself is unusable, there is nothing to reference.
		return
	}

	title := fmt.Sprintf("Backport of #%d to %s failed", prNumber, targetBranch)
	body := fmt.Sprintf("The automated backport of #%d to `%s` failed:\n\n```\n%v\n```\n", prNumber, targetBranch, runErr)

	var failure *backport.Failure
	if errors.As(runErr, &failure) {
		body += fmt.Sprintf("\nCommit `%s` could not be cherry-picked cleanly; the remaining commits were not attempted.\n", failure.SHA)
	}

	number, err := client.CreateIssue(ctx, title, body)
	if err != nil {
		slog.Error("Failed to open issue for failed backport", "pr", prNumber, "error", err)
		return
	}
	slog.Info("Opened issue for failed backport", "pr", prNumber, "issue", number)
}

func setupLogger(level, format string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	}

	slog.SetDefault(slog.New(handler))
}
