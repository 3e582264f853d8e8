package backport

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alan/backport/internal/event"
)

// GitHub is the API surface the translator needs.
type GitHub interface {
	PRCommits(ctx context.Context, number int) ([]string, error)
	CreatePR(ctx context.Context, title, body, head, base string) (int, error)
}

// Translator turns a merged pull_request event into a backport pull request.
type Translator struct {
	GitHub GitHub
	Driver *Driver
}

// Run extracts the PR metadata from the event, backports the PR's commits
// onto targetBranch, and opens a pull request with the rendered title and
// body. Any failure is fatal to the run and propagates unchanged.
func (t *Translator) Run(ctx context.Context, ev *event.Event, targetBranch, titleTemplate, bodyTemplate string) error {
	prNumber, err := ev.PRNumber()
	if err != nil {
		return err
	}
	originalTitle, err := ev.PRTitle()
	if err != nil {
		return err
	}
	baseBranch, err := ev.BaseBranch()
	if err != nil {
		return err
	}
	sourceBranch, err := ev.HeadBranch()
	if err != nil {
		return err
	}

	slog.Info("Backporting pull request", "pr", prNumber, "base", baseBranch, "target", targetBranch)

	commits, err := t.GitHub.PRCommits(ctx, prNumber)
	if err != nil {
		return err
	}
	slog.Info("Found commits to backport", "pr", prNumber, "count", len(commits))

	branch, err := t.Driver.Backport(commits, sourceBranch, targetBranch)
	if err != nil {
		return fmt.Errorf("backport of PR #%d failed: %w", prNumber, err)
	}

	vars := Vars{
		PRNumber:      prNumber,
		OriginalTitle: originalTitle,
		BaseBranch:    baseBranch,
		PRBranch:      targetBranch,
	}

	number, err := t.GitHub.CreatePR(ctx, Render(titleTemplate, vars), Render(bodyTemplate, vars), branch, targetBranch)
	if err != nil {
		return fmt.Errorf("failed to open backport pull request for PR #%d: %w", prNumber, err)
	}

	slog.Info("Opened backport pull request", "pr", number, "head", branch, "base", targetBranch)
	return nil
}
