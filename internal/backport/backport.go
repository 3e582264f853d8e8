// Package backport creates a backport branch from a merged PR's commits and
// opens the follow-up pull request for it.
package backport

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/alan/backport/internal/git"
)

// labelMax bounds the source branch label inside the backport branch name.
// The cut is a hard one, with no word-boundary awareness.
const labelMax = 15

// Failure reports a cherry-pick step that could not be applied cleanly.
type Failure struct {
	// SHA is the commit that failed to replay.
	SHA string
	// Err is the underlying git error.
	Err error
}

func (e *Failure) Error() string {
	return fmt.Sprintf("could not cherry-pick commit %s: %v", e.SHA, e.Err)
}

func (e *Failure) Unwrap() error {
	return e.Err
}

// BranchName computes the backport branch name for a source branch label and
// target branch at the given time. The name is deterministic: two invocations
// in the same UTC minute with the same inputs produce the same name.
func BranchName(sourceLabel, targetBranch string, now time.Time) string {
	if len(sourceLabel) > labelMax {
		sourceLabel = sourceLabel[:labelMax]
	}
	stamp := now.UTC().Format("010206")
	return fmt.Sprintf("backport-%s-%s-%s", sourceLabel, stamp, targetBranch)
}

// Driver replays commits onto a fresh branch cut from the remote tip of a
// target branch.
type Driver struct {
	Git git.Runner
	// Now supplies the clock for branch naming; tests inject a fixed time.
	Now func() time.Time
}

// NewDriver creates a Driver using the wall clock.
func NewDriver(runner git.Runner) *Driver {
	return &Driver{Git: runner, Now: time.Now}
}

// Backport creates a new branch off origin/targetBranch, cherry-picks the
// commits onto it in order, and pushes it with an upstream tracking
// relationship. It returns the new branch name.
//
// The first commit that fails to replay aborts the run with a *Failure; later
// commits are not attempted and nothing is pushed. An empty commit list is
// legal and publishes an exact copy of the target tip.
func (d *Driver) Backport(commits []string, sourceLabel, targetBranch string) (string, error) {
	branch := BranchName(sourceLabel, targetBranch, d.Now())

	slog.Info("Creating backport branch", "branch", branch, "target", targetBranch)
	if _, err := d.Git.Run("switch", "-c", branch, "origin/"+targetBranch); err != nil {
		return "", fmt.Errorf("failed to create branch %s: %w", branch, err)
	}

	for _, sha := range commits {
		slog.Info("Cherry-picking commit", "sha", sha)
		if _, err := d.Git.Run("cherry-pick", sha); err != nil {
			return "", &Failure{SHA: sha, Err: err}
		}
	}

	slog.Info("Pushing backport branch", "branch", branch)
	if _, err := d.Git.Run("push", "-u", "origin", branch); err != nil {
		return "", fmt.Errorf("failed to push branch %s: %w", branch, err)
	}

	return branch, nil
}
