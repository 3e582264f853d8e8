// Package github wraps the GitHub API calls the backport tool makes.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// Client wraps the GitHub API client for a single repository.
type Client struct {
	client *github.Client
	owner  string
	repo   string
}

// NewClient creates a GitHub client with token authentication. apiURL is the
// API base URL (GITHUB_API_URL), so the tool also works against GitHub
// Enterprise hosts.
func NewClient(ctx context.Context, token, apiURL, owner, repo string) (*Client, error) {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	client := github.NewClient(tc)
	if apiURL != "" {
		base, err := url.Parse(strings.TrimSuffix(apiURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid API URL %q: %w", apiURL, err)
		}
		client.BaseURL = base
	}

	return &Client{
		client: client,
		owner:  owner,
		repo:   repo,
	}, nil
}

// PRCommits returns the SHAs of the PR's commits in API order, with merge
// commits (more than one parent) excluded.
func (c *Client) PRCommits(ctx context.Context, number int) ([]string, error) {
	opts := &github.ListOptions{
		PerPage: 100,
	}

	var shas []string

	for {
		slog.Debug("GitHub API: Listing PR commits", "owner", c.owner, "repo", c.repo, "pr", number, "page", opts.Page)
		commits, resp, err := c.client.PullRequests.ListCommits(ctx, c.owner, c.repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list commits for PR #%d: %w", number, err)
		}

		for _, commit := range commits {
			if len(commit.Parents) > 1 {
				// Merge commit, its content is reachable via its parents.
				continue
			}
			shas = append(shas, commit.GetSHA())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return shas, nil
}

// CreatePR creates a new pull request and returns its number.
func (c *Client) CreatePR(ctx context.Context, title, body, head, base string) (int, error) {
	newPR := &github.NewPullRequest{
		Title: &title,
		Body:  &body,
		Head:  &head,
		Base:  &base,
	}

	slog.Debug("GitHub API: Creating pull request", "owner", c.owner, "repo", c.repo, "head", head, "base", base)
	pr, _, err := c.client.PullRequests.Create(ctx, c.owner, c.repo, newPR)
	if err != nil {
		return 0, fmt.Errorf("failed to create pull request: %w", err)
	}

	return pr.GetNumber(), nil
}

// CreateIssue opens an issue on the repository and returns its number.
func (c *Client) CreateIssue(ctx context.Context, title, body string) (int, error) {
	req := &github.IssueRequest{
		Title: &title,
		Body:  &body,
	}

	slog.Debug("GitHub API: Creating issue", "owner", c.owner, "repo", c.repo, "title", title)
	issue, _, err := c.client.Issues.Create(ctx, c.owner, c.repo, req)
	if err != nil {
		return 0, fmt.Errorf("failed to create issue: %w", err)
	}

	return issue.GetNumber(), nil
}
