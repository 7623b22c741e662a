package model

import "time"

// EventType is the canonical classification of a GitHub webhook.
type EventType string

const (
	EventTypePullRequest EventType = "pull_request"
	EventTypeIssues      EventType = "issues"
	EventTypePush        EventType = "push"
	EventTypeRelease     EventType = "release"
	EventTypeCreate      EventType = "create"
	EventTypeDelete      EventType = "delete"
	EventTypeOther       EventType = "other"
)

// ParseEventType maps an X-GitHub-Event header value onto the canonical set.
func ParseEventType(raw string) EventType {
	switch EventType(raw) {
	case EventTypePullRequest, EventTypeIssues, EventTypePush, EventTypeRelease, EventTypeCreate, EventTypeDelete:
		return EventType(raw)
	default:
		return EventTypeOther
	}
}

// Event is the normalized record of one webhook delivery. Never mutated after creation.
type Event struct {
	Timestamp          time.Time     `json:"timestamp"`
	EventType          EventType     `json:"event_type"`
	RawEventType       string        `json:"raw_event_type,omitempty"`
	Action             string        `json:"action,omitempty"`
	RepositoryFullName string        `json:"repository_full_name"`
	PRNumber           *int          `json:"pr_number,omitempty"` // only for pull_request
	Title              string        `json:"title"`
	Description        string        `json:"description"`
	Sender             string        `json:"sender"`
	Workflow           *WorkflowInfo `json:"workflow,omitempty"`
}

// WorkflowInfo carries the run state of workflow_run / workflow_job events.
type WorkflowInfo struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Conclusion string `json:"conclusion,omitempty"`
	URL        string `json:"url,omitempty"`
}

// DisplayType prefers the raw header so "workflow_run" is not shown as "other".
func (e Event) DisplayType() string {
	if e.RawEventType != "" {
		return e.RawEventType
	}
	return string(e.EventType)
}

// NotifyPayload is the JSON body the webhook listener posts to /notify.
type NotifyPayload struct {
	EventType   string           `json:"event_type"`
	Action      string           `json:"action,omitempty"`
	Repository  NotifyRepository `json:"repository"`
	PRNumber    *int             `json:"pr_number,omitempty"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Sender      string           `json:"sender"`
	Timestamp   string           `json:"timestamp"`
}

type NotifyRepository struct {
	FullName string `json:"full_name"`
}

// IntPtr returns a pointer to n.
func IntPtr(n int) *int {
	return &n
}
