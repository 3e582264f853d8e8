// Package event decodes the pull_request webhook payload a backport run is
// triggered with.
package event

import (
	"encoding/json"
	"fmt"
	"os"
)

// Event is the subset of a pull_request webhook payload the tool reads.
// Fields are pointers so a missing field is distinguishable from a zero value.
type Event struct {
	PullRequest *PullRequest `json:"pull_request"`
}

// PullRequest carries the merged PR's metadata.
type PullRequest struct {
	Number *int    `json:"number"`
	Title  *string `json:"title"`
	Base   *Ref    `json:"base"`
	Head   *Ref    `json:"head"`
}

// Ref is a branch reference inside the payload.
type Ref struct {
	Ref *string `json:"ref"`
}

// MissingFieldError reports a required event field that is absent from the
// payload. Path is the dotted JSON path, e.g. "pull_request.base.ref".
type MissingFieldError struct {
	Path string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s not found in event", e.Path)
}

// Load reads and decodes the event payload file.
func Load(path string) (*Event, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path comes from GITHUB_EVENT_PATH
	if err != nil {
		return nil, fmt.Errorf("failed to read event file: %w", err)
	}

	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("failed to parse event file: %w", err)
	}

	return &ev, nil
}

// PRNumber returns pull_request.number.
func (e *Event) PRNumber() (int, error) {
	if e.PullRequest == nil || e.PullRequest.Number == nil {
		return 0, &MissingFieldError{Path: "pull_request.number"}
	}
	return *e.PullRequest.Number, nil
}

// PRTitle returns pull_request.title.
func (e *Event) PRTitle() (string, error) {
	if e.PullRequest == nil || e.PullRequest.Title == nil {
		return "", &MissingFieldError{Path: "pull_request.title"}
	}
	return *e.PullRequest.Title, nil
}

// BaseBranch returns pull_request.base.ref, the branch the PR merged into.
func (e *Event) BaseBranch() (string, error) {
	if e.PullRequest == nil || e.PullRequest.Base == nil || e.PullRequest.Base.Ref == nil {
		return "", &MissingFieldError{Path: "pull_request.base.ref"}
	}
	return *e.PullRequest.Base.Ref, nil
}

// HeadBranch returns pull_request.head.ref, the branch the PR merged from.
func (e *Event) HeadBranch() (string, error) {
	if e.PullRequest == nil || e.PullRequest.Head == nil || e.PullRequest.Head.Ref == nil {
		return "", &MissingFieldError{Path: "pull_request.head.ref"}
	}
	return *e.PullRequest.Head.Ref, nil
}
