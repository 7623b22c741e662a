package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"repo-event-relay/internal/agent"
	eventRepo "repo-event-relay/internal/event/repository"
	"repo-event-relay/internal/model"
	"repo-event-relay/pkg/github"
	pkgLog "repo-event-relay/pkg/log"
)

// GetWorkflowStatusTool reports the latest state of a GitHub Actions workflow.
// Stored workflow events are checked first, then the Actions API when a repo is given.
type GetWorkflowStatusTool struct {
	repo eventRepo.Repository
	gh   GitHubClient
	l    pkgLog.Logger
}

func NewGetWorkflowStatusTool(repo eventRepo.Repository, gh GitHubClient, l pkgLog.Logger) *GetWorkflowStatusTool {
	return &GetWorkflowStatusTool{repo: repo, gh: gh, l: l}
}

func (t *GetWorkflowStatusTool) Name() string     { return NameGetWorkflowStatus }
func (t *GetWorkflowStatusTool) Kind() agent.Kind { return agent.KindRepoQuery }

func (t *GetWorkflowStatusTool) Description() string {
	return "Return the latest status of a GitHub Actions workflow by name."
}

func (t *GetWorkflowStatusTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"workflow_name": map[string]interface{}{
				"type":        "string",
				"description": "Workflow name or part of it, case-insensitive",
			},
			"repo": map[string]interface{}{
				"type":        "string",
				"description": "Repository full name, enables a live lookup through the Actions API",
			},
		},
		"required": []string{"workflow_name"},
	}
}

func (t *GetWorkflowStatusTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	name, err := requiredString(params, "workflow_name")
	if err != nil {
		return nil, err
	}
	repo := stringParam(params, "repo")

	events, err := t.repo.List(ctx)
	if err != nil {
		t.l.Errorf(ctx, "%s: list events: %v", LogPrefixWorkflowStatus, err)
		return nil, fmt.Errorf("read event store: %w", err)
	}
	if wf, ok := latestWorkflow(events, name, repo); ok {
		return fmt.Sprintf(MsgWorkflowStatus, wf.Name, workflowState(wf)), nil
	}

	if repo == "" || t.gh == nil || !t.gh.Configured() {
		return fmt.Sprintf(MsgWorkflowNotFound, name), nil
	}

	run, found, err := t.gh.LatestWorkflowRun(ctx, repo, name)
	if err != nil {
		if errors.Is(err, github.ErrTokenNotConfigured) {
			return MsgGitHubTokenMissing, nil
		}
		t.l.Warnf(ctx, "%s: actions lookup for %s: %v", LogPrefixWorkflowStatus, repo, err)
		return nil, fmt.Errorf("workflow lookup: %s", github.Reason(err))
	}
	if !found {
		return fmt.Sprintf(MsgWorkflowNotFound, name), nil
	}
	return fmt.Sprintf(MsgWorkflowStatus, run.Name, firstNonEmpty(run.Conclusion, run.Status)), nil
}

func latestWorkflow(events []model.Event, name, repo string) (*model.WorkflowInfo, bool) {
	needle := strings.ToLower(name)
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		if e.Workflow == nil {
			continue
		}
		if repo != "" && !strings.EqualFold(e.RepositoryFullName, repo) {
			continue
		}
		if strings.Contains(strings.ToLower(e.Workflow.Name), needle) {
			return e.Workflow, true
		}
	}
	return nil, false
}

func workflowState(wf *model.WorkflowInfo) string {
	return firstNonEmpty(wf.Conclusion, wf.Status)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

var _ agent.Tool = (*GetWorkflowStatusTool)(nil)
