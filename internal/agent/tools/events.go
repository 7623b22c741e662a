package tools

import (
	"context"
	"fmt"
	"strings"

	"repo-event-relay/internal/agent"
	eventRepo "repo-event-relay/internal/event/repository"
	"repo-event-relay/internal/model"
	"repo-event-relay/pkg/datemath"
	pkgLog "repo-event-relay/pkg/log"
)

// GetRecentEventsTool lists the newest stored webhook events.
type GetRecentEventsTool struct {
	repo  eventRepo.Repository
	clock *datemath.Converter
	l     pkgLog.Logger
}

func NewGetRecentEventsTool(repo eventRepo.Repository, clock *datemath.Converter, l pkgLog.Logger) *GetRecentEventsTool {
	return &GetRecentEventsTool{repo: repo, clock: clock, l: l}
}

func (t *GetRecentEventsTool) Name() string     { return NameGetRecentEvents }
func (t *GetRecentEventsTool) Kind() agent.Kind { return agent.KindRepoQuery }

func (t *GetRecentEventsTool) Description() string {
	return "Return recent GitHub webhook events (pull requests, pushes, releases, workflow runs), newest first."
}

func (t *GetRecentEventsTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"limit": map[string]interface{}{
				"type":        "integer",
				"description": "Maximum number of events (default 5)",
			},
		},
	}
}

func (t *GetRecentEventsTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	limit := DefaultRecentEventsLimit
	if n, ok := positiveInt(params["limit"]); ok {
		limit = n
	}

	events, err := t.repo.List(ctx)
	if err != nil {
		t.l.Errorf(ctx, "%s: list events: %v", LogPrefixRecentEvents, err)
		return nil, fmt.Errorf("read event store: %w", err)
	}
	if len(events) == 0 {
		return MsgNoEvents, nil
	}

	var b strings.Builder
	for i, n := len(events)-1, 0; i >= 0 && n < limit; i, n = i-1, n+1 {
		if n > 0 {
			b.WriteString("\n")
		}
		b.WriteString(t.describe(events[i]))
	}
	return b.String(), nil
}

func (t *GetRecentEventsTool) describe(e model.Event) string {
	kind := e.DisplayType()
	if e.Action != "" {
		kind += "/" + e.Action
	}
	subject := e.Title
	if e.PRNumber != nil {
		subject = fmt.Sprintf("#%d %s", *e.PRNumber, e.Title)
	}
	if e.Workflow != nil {
		subject = fmt.Sprintf("%s (%s)", e.Workflow.Name, workflowState(e.Workflow))
	}
	return fmt.Sprintf("[%s] %s on %s: %s by %s", t.clock.Format(e.Timestamp), kind, e.RepositoryFullName, subject, e.Sender)
}

// GetRepositoryDetailTool summarizes what the store knows about a repository.
type GetRepositoryDetailTool struct {
	repo eventRepo.Repository
	l    pkgLog.Logger
}

func NewGetRepositoryDetailTool(repo eventRepo.Repository, l pkgLog.Logger) *GetRepositoryDetailTool {
	return &GetRepositoryDetailTool{repo: repo, l: l}
}

func (t *GetRepositoryDetailTool) Name() string     { return NameGetRepositoryDetail }
func (t *GetRepositoryDetailTool) Kind() agent.Kind { return agent.KindRepoQuery }

func (t *GetRepositoryDetailTool) Description() string {
	return "Return basic repository info and a summary of recent events. Defaults to the repository of the latest event."
}

func (t *GetRepositoryDetailTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"repo": map[string]interface{}{
				"type":        "string",
				"description": "Repository full name (optional)",
			},
		},
	}
}

func (t *GetRepositoryDetailTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	events, err := t.repo.List(ctx)
	if err != nil {
		t.l.Errorf(ctx, "%s: list events: %v", LogPrefixRepositoryDetail, err)
		return nil, fmt.Errorf("read event store: %w", err)
	}

	if repo := stringParam(params, "repo"); repo != "" {
		filtered := events[:0:0]
		for _, e := range events {
			if strings.EqualFold(e.RepositoryFullName, repo) {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}
	if len(events) == 0 {
		return MsgNoEvents, nil
	}

	latest := events[len(events)-1]
	fullName := latest.RepositoryFullName
	if fullName == "" {
		fullName = "Unknown"
	}
	owner := "Unknown"
	if o, _, ok := strings.Cut(fullName, "/"); ok && o != "" {
		owner = o
	}

	// Counts keep first-seen order.
	var order []string
	counts := map[string]int{}
	for _, e := range events {
		k := e.DisplayType()
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}
	parts := make([]string, 0, len(order))
	for _, k := range order {
		parts = append(parts, fmt.Sprintf("%s: %d", k, counts[k]))
	}

	return fmt.Sprintf("Repository: %s (owner: %s)\nTotal events: %d (%s)\nMost recent event: %s by %s",
		fullName, owner, len(events), strings.Join(parts, ", "), latest.DisplayType(), latest.Sender), nil
}

// SummarizeLatestEventTool renders the newest stored event.
type SummarizeLatestEventTool struct {
	repo  eventRepo.Repository
	clock *datemath.Converter
	l     pkgLog.Logger
}

func NewSummarizeLatestEventTool(repo eventRepo.Repository, clock *datemath.Converter, l pkgLog.Logger) *SummarizeLatestEventTool {
	return &SummarizeLatestEventTool{repo: repo, clock: clock, l: l}
}

func (t *SummarizeLatestEventTool) Name() string     { return NameSummarizeLatestEvent }
func (t *SummarizeLatestEventTool) Kind() agent.Kind { return agent.KindRepoQuery }

func (t *SummarizeLatestEventTool) Description() string {
	return "Summarize the latest GitHub event (PR, push, release, etc)."
}

func (t *SummarizeLatestEventTool) Parameters() map[string]interface{} {
	return map[string]interface{}{"type": "object", "properties": map[string]interface{}{}}
}

func (t *SummarizeLatestEventTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	events, err := t.repo.List(ctx)
	if err != nil {
		t.l.Errorf(ctx, "%s: list events: %v", LogPrefixSummarize, err)
		return nil, fmt.Errorf("read event store: %w", err)
	}
	if len(events) == 0 {
		return MsgNoEventsStored, nil
	}

	e := events[len(events)-1]
	ts := ""
	if !e.Timestamp.IsZero() {
		ts = t.clock.Format(e.Timestamp)
	}
	return fmt.Sprintf("# Event: %s\nRepository: %s\nTitle: %s\nDescription: %s\nTimestamp: %s\nSource: %s",
		e.DisplayType(), e.RepositoryFullName, e.Title, e.Description, ts, e.Sender), nil
}

var (
	_ agent.Tool = (*GetRecentEventsTool)(nil)
	_ agent.Tool = (*GetRepositoryDetailTool)(nil)
	_ agent.Tool = (*SummarizeLatestEventTool)(nil)
)
