package github

import (
	"errors"
	"time"
)

const DefaultTimeout = 10 * time.Second

var (
	ErrTokenNotConfigured = errors.New("github token not configured")
	ErrInvalidRepo        = errors.New("repository must be in owner/name form")
	ErrNotMerged          = errors.New("pull request was not merged")
)

// Config holds GitHub API client settings.
type Config struct {
	Token   string
	BaseURL string // GitHub Enterprise base URL (optional)
	Timeout time.Duration
}

// PullRequest is the slice of PR state the relay acts on.
type PullRequest struct {
	Number  int
	Title   string
	State   string
	Merged  bool
	Author  string
	HTMLURL string
}

// MergeResult mirrors the merge endpoint response.
type MergeResult struct {
	SHA     string
	Merged  bool
	Message string
}

// WorkflowRun is the latest run of a named Actions workflow.
type WorkflowRun struct {
	Name       string
	Status     string
	Conclusion string
	HeadBranch string
	HTMLURL    string
	UpdatedAt  time.Time
}
