package webhook

import (
	"encoding/json"
	"fmt"
	"strings"

	gh "github.com/google/go-github/v57/github"

	"repo-event-relay/internal/model"
	"repo-event-relay/pkg/datemath"
)

// draft is the type-specific projection a shape matcher contributes to an Event.
type draft struct {
	Title       string
	Description string
	PRNumber    *int
	Workflow    *model.WorkflowInfo
}

// shapeMatcher projects a decoded payload. typed is the go-github event, or nil when
// the header is unknown to go-github or the payload did not decode into it.
type shapeMatcher func(typed interface{}, raw map[string]interface{}) (draft, bool)

// matchers are evaluated top to bottom; the last one always matches.
var matchers = []shapeMatcher{
	matchPullRequest,
	matchIssues,
	matchPush,
	matchRelease,
	matchCreate,
	matchDelete,
	matchWorkflowRun,
	matchWorkflowJob,
	matchGeneric,
}

// Normalizer converts raw GitHub deliveries into canonical events.
type Normalizer struct {
	clock *datemath.Converter
}

// NewNormalizer stamps events with the clock's current time in its zone.
func NewNormalizer(clock *datemath.Converter) *Normalizer {
	if clock == nil {
		clock = datemath.MustUTC()
	}
	return &Normalizer{clock: clock}
}

// Normalize builds an Event from payload and the X-GitHub-Event header value.
// Only a payload that is not a JSON object is an error; missing fields default to empty.
func (n *Normalizer) Normalize(payload []byte, eventType string) (model.Event, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return model.Event{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if raw == nil {
		return model.Event{}, ErrInvalidPayload
	}

	typed, err := gh.ParseWebHook(eventType, payload)
	if err != nil {
		typed = nil
	}

	var d draft
	for _, match := range matchers {
		if got, ok := match(typed, raw); ok {
			d = got
			break
		}
	}

	ev := model.Event{
		Timestamp:          n.clock.Now(),
		EventType:          model.ParseEventType(eventType),
		RawEventType:       eventType,
		Action:             stringAt(raw, "action"),
		RepositoryFullName: stringAt(raw, "repository", "full_name"),
		Title:              d.Title,
		Description:        d.Description,
		Sender:             stringAt(raw, "sender", "login"),
		Workflow:           d.Workflow,
	}
	if ev.EventType == model.EventTypePullRequest {
		ev.PRNumber = d.PRNumber
	}
	return ev, nil
}

func matchPullRequest(typed interface{}, raw map[string]interface{}) (draft, bool) {
	e, ok := typed.(*gh.PullRequestEvent)
	if !ok {
		return draft{}, false
	}
	pr := e.GetPullRequest()
	d := draft{Title: pr.GetTitle(), Description: pr.GetBody()}
	switch {
	case e.GetNumber() > 0:
		d.PRNumber = model.IntPtr(e.GetNumber())
	case pr.GetNumber() > 0:
		d.PRNumber = model.IntPtr(pr.GetNumber())
	}
	return d, true
}

func matchIssues(typed interface{}, raw map[string]interface{}) (draft, bool) {
	e, ok := typed.(*gh.IssuesEvent)
	if !ok {
		return draft{}, false
	}
	return draft{Title: e.GetIssue().GetTitle(), Description: e.GetIssue().GetBody()}, true
}

func matchPush(typed interface{}, raw map[string]interface{}) (draft, bool) {
	e, ok := typed.(*gh.PushEvent)
	if !ok {
		return draft{}, false
	}
	if len(e.Commits) == 0 {
		return draft{}, true
	}
	messages := make([]string, 0, len(e.Commits))
	for _, c := range e.Commits {
		messages = append(messages, c.GetMessage())
	}
	return draft{
		Title:       fmt.Sprintf(TitleCommitsPushed, len(e.Commits)),
		Description: strings.Join(messages, "\n"),
	}, true
}

func matchRelease(typed interface{}, raw map[string]interface{}) (draft, bool) {
	e, ok := typed.(*gh.ReleaseEvent)
	if !ok {
		return draft{}, false
	}
	rel := e.GetRelease()
	title := rel.GetName()
	if title == "" {
		title = rel.GetTagName()
	}
	return draft{Title: title, Description: rel.GetBody()}, true
}

func matchCreate(typed interface{}, raw map[string]interface{}) (draft, bool) {
	e, ok := typed.(*gh.CreateEvent)
	if !ok {
		return draft{}, false
	}
	return draft{Title: fmt.Sprintf(TitleRefCreated, e.GetRefType(), e.GetRef())}, true
}

func matchDelete(typed interface{}, raw map[string]interface{}) (draft, bool) {
	e, ok := typed.(*gh.DeleteEvent)
	if !ok {
		return draft{}, false
	}
	return draft{Title: fmt.Sprintf(TitleRefDeleted, e.GetRefType(), e.GetRef())}, true
}

func matchWorkflowRun(typed interface{}, raw map[string]interface{}) (draft, bool) {
	e, ok := typed.(*gh.WorkflowRunEvent)
	if !ok {
		return draft{}, false
	}
	run := e.GetWorkflowRun()
	return draft{
		Title:       run.GetName(),
		Description: run.GetDisplayTitle(),
		Workflow: &model.WorkflowInfo{
			Name:       run.GetName(),
			Status:     run.GetStatus(),
			Conclusion: run.GetConclusion(),
			URL:        run.GetHTMLURL(),
		},
	}, true
}

func matchWorkflowJob(typed interface{}, raw map[string]interface{}) (draft, bool) {
	e, ok := typed.(*gh.WorkflowJobEvent)
	if !ok {
		return draft{}, false
	}
	job := e.GetWorkflowJob()
	name := job.GetWorkflowName()
	if name == "" {
		name = job.GetName()
	}
	return draft{
		Title:       name,
		Description: job.GetName(),
		Workflow: &model.WorkflowInfo{
			Name:       name,
			Status:     job.GetStatus(),
			Conclusion: job.GetConclusion(),
			URL:        job.GetHTMLURL(),
		},
	}, true
}

// matchGeneric reads top-level title/body. A pull_request delivery go-github could not
// decode still keeps its number.
func matchGeneric(typed interface{}, raw map[string]interface{}) (draft, bool) {
	d := draft{
		Title:       stringAt(raw, "title"),
		Description: stringAt(raw, "body"),
	}
	if n, ok := model.ParsePRNumber(raw["number"]); ok {
		d.PRNumber = model.IntPtr(n)
	} else if n, ok := model.ParsePRNumber(valueAt(raw, "pull_request", "number")); ok {
		d.PRNumber = model.IntPtr(n)
	}
	if d.Title == "" {
		d.Title = stringAt(raw, "pull_request", "title")
	}
	return d, true
}

func valueAt(m map[string]interface{}, path ...string) interface{} {
	var cur interface{} = m
	for _, key := range path {
		obj, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur = obj[key]
	}
	return cur
}

func stringAt(m map[string]interface{}, path ...string) string {
	s, _ := valueAt(m, path...).(string)
	return s
}
