package github

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// Client wraps the go-github SDK with the few repository calls the relay needs.
type Client struct {
	api        *gh.Client
	configured bool
}

// NewClient builds a token-authenticated client. An empty token yields an unconfigured
// client whose calls return ErrTokenNotConfigured.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	httpClient := oauth2.NewClient(ctx, ts)
	httpClient.Timeout = cfg.Timeout

	api := gh.NewClient(httpClient)
	if base := strings.TrimRight(cfg.BaseURL, "/"); base != "" && base != "https://api.github.com" {
		var err error
		api, err = api.WithEnterpriseURLs(base, base)
		if err != nil {
			return nil, fmt.Errorf("github enterprise url: %w", err)
		}
	}

	return &Client{api: api, configured: cfg.Token != ""}, nil
}

// SetBaseURL points the client at a different API root for testing purposes.
func (c *Client) SetBaseURL(raw string) error {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	c.api.BaseURL = u
	return nil
}

// Configured reports whether a token is present.
func (c *Client) Configured() bool {
	return c.configured
}

// GetPullRequest fetches the current state of a PR.
func (c *Client) GetPullRequest(ctx context.Context, fullName string, number int) (PullRequest, error) {
	owner, repo, err := c.prepare(fullName)
	if err != nil {
		return PullRequest{}, err
	}

	pr, _, err := c.api.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return PullRequest{}, fmt.Errorf("get pull request: %w", err)
	}
	return toPullRequest(pr), nil
}

// MergePullRequest merges with the repository's default merge method.
func (c *Client) MergePullRequest(ctx context.Context, fullName string, number int) (MergeResult, error) {
	owner, repo, err := c.prepare(fullName)
	if err != nil {
		return MergeResult{}, err
	}

	res, _, err := c.api.PullRequests.Merge(ctx, owner, repo, number, "", nil)
	if err != nil {
		return MergeResult{}, fmt.Errorf("merge pull request: %w", err)
	}

	out := MergeResult{SHA: res.GetSHA(), Merged: res.GetMerged(), Message: res.GetMessage()}
	if !out.Merged {
		return out, fmt.Errorf("%w: %s", ErrNotMerged, out.Message)
	}
	return out, nil
}

// ClosePullRequest sets the PR state to closed without merging.
func (c *Client) ClosePullRequest(ctx context.Context, fullName string, number int) (PullRequest, error) {
	owner, repo, err := c.prepare(fullName)
	if err != nil {
		return PullRequest{}, err
	}

	pr, _, err := c.api.PullRequests.Edit(ctx, owner, repo, number, &gh.PullRequest{State: gh.String("closed")})
	if err != nil {
		return PullRequest{}, fmt.Errorf("close pull request: %w", err)
	}
	return toPullRequest(pr), nil
}

// LatestWorkflowRun returns the newest run whose workflow name matches name (case-insensitive).
func (c *Client) LatestWorkflowRun(ctx context.Context, fullName, name string) (WorkflowRun, bool, error) {
	owner, repo, err := c.prepare(fullName)
	if err != nil {
		return WorkflowRun{}, false, err
	}

	runs, _, err := c.api.Actions.ListRepositoryWorkflowRuns(ctx, owner, repo, &gh.ListWorkflowRunsOptions{
		ListOptions: gh.ListOptions{PerPage: 50},
	})
	if err != nil {
		return WorkflowRun{}, false, fmt.Errorf("list workflow runs: %w", err)
	}

	// The API returns newest first.
	for _, run := range runs.WorkflowRuns {
		if strings.EqualFold(run.GetName(), name) {
			return WorkflowRun{
				Name:       run.GetName(),
				Status:     run.GetStatus(),
				Conclusion: run.GetConclusion(),
				HeadBranch: run.GetHeadBranch(),
				HTMLURL:    run.GetHTMLURL(),
				UpdatedAt:  run.GetUpdatedAt().Time,
			}, true, nil
		}
	}
	return WorkflowRun{}, false, nil
}

func (c *Client) prepare(fullName string) (string, string, error) {
	if !c.configured {
		return "", "", ErrTokenNotConfigured
	}
	return SplitRepo(fullName)
}

// SplitRepo splits "owner/name".
func SplitRepo(fullName string) (string, string, error) {
	owner, repo, ok := strings.Cut(strings.TrimSpace(fullName), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepo, fullName)
	}
	return owner, repo, nil
}

// Reason extracts GitHub's human-readable message from an API error.
func Reason(err error) string {
	var er *gh.ErrorResponse
	if errors.As(err, &er) && er.Message != "" {
		return er.Message
	}
	return err.Error()
}

func toPullRequest(pr *gh.PullRequest) PullRequest {
	return PullRequest{
		Number:  pr.GetNumber(),
		Title:   pr.GetTitle(),
		State:   pr.GetState(),
		Merged:  pr.GetMerged(),
		Author:  pr.GetUser().GetLogin(),
		HTMLURL: pr.GetHTMLURL(),
	}
}
