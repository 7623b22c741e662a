package tools

import (
	"context"
	"errors"
	"fmt"

	"repo-event-relay/internal/agent"
	"repo-event-relay/pkg/github"
	pkgLog "repo-event-relay/pkg/log"
)

// PullRequestDetails is the result of get_pull_request_details.
type PullRequestDetails struct {
	Repo   string `json:"repo"`
	Number int    `json:"pr_number"`
	Title  string `json:"title"`
	State  string `json:"state"`
	Merged bool   `json:"merged"`
	Author string `json:"author,omitempty"`
}

func (d PullRequestDetails) String() string {
	return fmt.Sprintf(MsgPullRequestDetails, d.Number, d.Repo, d.Title, d.State, d.Merged)
}

// GetPullRequestDetailsTool reads the live state of a pull request.
type GetPullRequestDetailsTool struct {
	gh GitHubClient
	l  pkgLog.Logger
}

func NewGetPullRequestDetailsTool(gh GitHubClient, l pkgLog.Logger) *GetPullRequestDetailsTool {
	return &GetPullRequestDetailsTool{gh: gh, l: l}
}

func (t *GetPullRequestDetailsTool) Name() string     { return NameGetPullRequestDetails }
func (t *GetPullRequestDetailsTool) Kind() agent.Kind { return agent.KindRepoQuery }

func (t *GetPullRequestDetailsTool) Description() string {
	return "Get the current title, state and merge status of a pull request."
}

func (t *GetPullRequestDetailsTool) Parameters() map[string]interface{} {
	return repoAndPRSchema()
}

// Execute returns PullRequestDetails on success. Lookup failures return an error so callers
// never mistake them for an unmerged PR.
func (t *GetPullRequestDetailsTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	repo, number, err := prParams(params)
	if err != nil {
		return nil, err
	}

	pr, err := t.gh.GetPullRequest(ctx, repo, number)
	if err != nil {
		if errors.Is(err, github.ErrTokenNotConfigured) {
			return nil, errors.New(MsgGitHubTokenMissing)
		}
		t.l.Errorf(ctx, "%s: %s#%d: %v", LogPrefixPRDetails, repo, number, err)
		return nil, fmt.Errorf(MsgDetailsLookupFailed, number, repo, github.Reason(err))
	}

	return PullRequestDetails{
		Repo:   repo,
		Number: number,
		Title:  pr.Title,
		State:  pr.State,
		Merged: pr.Merged,
		Author: pr.Author,
	}, nil
}

// MergePullRequestTool merges a pull request with the repository's default method.
type MergePullRequestTool struct {
	gh GitHubClient
	l  pkgLog.Logger
}

func NewMergePullRequestTool(gh GitHubClient, l pkgLog.Logger) *MergePullRequestTool {
	return &MergePullRequestTool{gh: gh, l: l}
}

func (t *MergePullRequestTool) Name() string     { return NameMergePullRequest }
func (t *MergePullRequestTool) Kind() agent.Kind { return agent.KindRepoAction }

func (t *MergePullRequestTool) Description() string {
	return "Merge a pull request using the GitHub API."
}

func (t *MergePullRequestTool) Parameters() map[string]interface{} {
	return repoAndPRSchema()
}

func (t *MergePullRequestTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	repo, number, err := prParams(params)
	if err != nil {
		return nil, err
	}
	if !t.gh.Configured() {
		return MsgGitHubTokenMissing, nil
	}

	t.l.Infof(ctx, "%s: merging %s#%d", LogPrefixMerge, repo, number)
	res, err := t.gh.MergePullRequest(ctx, repo, number)
	if err != nil {
		t.l.Warnf(ctx, "%s: %s#%d: %v", LogPrefixMerge, repo, number, err)
		reason := github.Reason(err)
		if errors.Is(err, github.ErrNotMerged) && res.Message != "" {
			reason = res.Message
		}
		return fmt.Sprintf(MsgMergeFailed, number, repo, reason), nil
	}

	t.l.Infof(ctx, "%s: merged %s#%d sha=%s", LogPrefixMerge, repo, number, res.SHA)
	return fmt.Sprintf(MsgMergeSuccess, number, repo), nil
}

// ClosePullRequestTool closes a pull request without merging.
type ClosePullRequestTool struct {
	gh GitHubClient
	l  pkgLog.Logger
}

func NewClosePullRequestTool(gh GitHubClient, l pkgLog.Logger) *ClosePullRequestTool {
	return &ClosePullRequestTool{gh: gh, l: l}
}

func (t *ClosePullRequestTool) Name() string     { return NameClosePullRequest }
func (t *ClosePullRequestTool) Kind() agent.Kind { return agent.KindRepoAction }

func (t *ClosePullRequestTool) Description() string {
	return "Close a pull request without merging using the GitHub API."
}

func (t *ClosePullRequestTool) Parameters() map[string]interface{} {
	return repoAndPRSchema()
}

func (t *ClosePullRequestTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	repo, number, err := prParams(params)
	if err != nil {
		return nil, err
	}
	if !t.gh.Configured() {
		return MsgGitHubTokenMissing, nil
	}

	t.l.Infof(ctx, "%s: closing %s#%d", LogPrefixClose, repo, number)
	if _, err := t.gh.ClosePullRequest(ctx, repo, number); err != nil {
		t.l.Warnf(ctx, "%s: %s#%d: %v", LogPrefixClose, repo, number, err)
		return fmt.Sprintf(MsgCloseFailed, github.Reason(err)), nil
	}
	return fmt.Sprintf(MsgCloseSuccess, number, repo), nil
}

var (
	_ agent.Tool = (*GetPullRequestDetailsTool)(nil)
	_ agent.Tool = (*MergePullRequestTool)(nil)
	_ agent.Tool = (*ClosePullRequestTool)(nil)
)
