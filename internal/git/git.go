// Package git runs the git binary and reports failures with the command's
// error stream attached.
package git

import (
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"unicode/utf8"
)

// Runner executes a git command and returns its decoded standard output.
type Runner interface {
	Run(args ...string) (string, error)
}

// ToolError reports a git command that exited non-zero.
type ToolError struct {
	// Args is the argument list the command ran with, without the leading "git".
	Args []string
	// Stderr is the command's decoded error stream, or "<could not decode>"
	// when the bytes are not valid UTF-8.
	Stderr string
	// Err is the underlying exec error.
	Err error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("git %s failed: %s", strings.Join(e.Args, " "), e.Stderr)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// CLI runs git commands in the current working directory.
type CLI struct{}

// Run executes git with the given arguments, capturing both streams.
func (CLI) Run(args ...string) (string, error) {
	slog.Debug("Running git command", "args", strings.Join(args, " "))

	cmd := exec.Command("git", args...)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &ToolError{
			Args:   args,
			Stderr: decode(stderr.String()),
			Err:    err,
		}
	}

	return stdout.String(), nil
}

// decode substitutes a marker for error streams that are not valid UTF-8, so
// the diagnostic is always printable.
func decode(s string) string {
	if !utf8.ValidString(s) {
		return "<could not decode>"
	}
	return s
}

// Setup configures the checkout for the action run: marks the workspace safe,
// points the push remote at an authenticated URL, and sets the committer
// identity used for the replayed commits.
func Setup(runner Runner, repository, actor, token string) error {
	steps := [][]string{
		{"config", "--global", "--add", "safe.directory", "/github/workspace"},
		{"remote", "set-url", "--push", "origin",
			fmt.Sprintf("https://%s:%s@github.com/%s.git", actor, token, repository)},
		{"config", "user.email", "action@github.com"},
		{"config", "user.name", "github action"},
	}

	for _, args := range steps {
		if _, err := runner.Run(args...); err != nil {
			return fmt.Errorf("git setup failed: %w", err)
		}
	}

	return nil
}
