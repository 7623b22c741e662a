package webhook

import (
	"errors"
	"testing"
	"time"

	"repo-event-relay/internal/model"
	"repo-event-relay/pkg/datemath"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	clock, err := datemath.NewConverter("Asia/Kolkata")
	if err != nil {
		t.Fatalf("NewConverter error: %v", err)
	}
	clock.SetClock(func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) })
	return NewNormalizer(clock)
}

func TestNormalize(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		name      string
		eventType string
		payload   string
		wantType  model.EventType
		wantTitle string
		wantDesc  string
		wantPR    int
	}{
		{
			name:      "pull request",
			eventType: "pull_request",
			payload:   `{"action":"opened","number":42,"pull_request":{"number":42,"title":"Add feature","body":"Implements it"},"repository":{"full_name":"org/repo"},"sender":{"login":"alice"}}`,
			wantType:  model.EventTypePullRequest,
			wantTitle: "Add feature",
			wantDesc:  "Implements it",
			wantPR:    42,
		},
		{
			name:      "pull request number only on nested object",
			eventType: "pull_request",
			payload:   `{"action":"closed","pull_request":{"number":7,"title":"Fix"},"repository":{"full_name":"org/repo"}}`,
			wantType:  model.EventTypePullRequest,
			wantTitle: "Fix",
			wantPR:    7,
		},
		{
			name:      "pull request with string number",
			eventType: "pull_request",
			payload:   `{"action":"opened","number":"42","pull_request":{"title":"Odd"},"repository":{"full_name":"org/repo"}}`,
			wantType:  model.EventTypePullRequest,
			wantTitle: "Odd",
			wantPR:    42,
		},
		{
			name:      "issues",
			eventType: "issues",
			payload:   `{"action":"opened","issue":{"number":3,"title":"Bug","body":"Broken"},"repository":{"full_name":"org/repo"}}`,
			wantType:  model.EventTypeIssues,
			wantTitle: "Bug",
			wantDesc:  "Broken",
		},
		{
			name:      "push",
			eventType: "push",
			payload:   `{"ref":"refs/heads/main","commits":[{"message":"first"},{"message":"second"}],"repository":{"full_name":"org/repo"}}`,
			wantType:  model.EventTypePush,
			wantTitle: "2 commits pushed",
			wantDesc:  "first\nsecond",
		},
		{
			name:      "push without commits",
			eventType: "push",
			payload:   `{"ref":"refs/heads/main","commits":[]}`,
			wantType:  model.EventTypePush,
		},
		{
			name:      "release falls back to tag",
			eventType: "release",
			payload:   `{"action":"published","release":{"tag_name":"v1.0.0","body":"Notes"}}`,
			wantType:  model.EventTypeRelease,
			wantTitle: "v1.0.0",
			wantDesc:  "Notes",
		},
		{
			name:      "create",
			eventType: "create",
			payload:   `{"ref":"feature","ref_type":"branch"}`,
			wantType:  model.EventTypeCreate,
			wantTitle: "Created branch: feature",
		},
		{
			name:      "delete",
			eventType: "delete",
			payload:   `{"ref":"v0.1","ref_type":"tag"}`,
			wantType:  model.EventTypeDelete,
			wantTitle: "Deleted tag: v0.1",
		},
		{
			name:      "unknown type uses top-level fields",
			eventType: "custom_event",
			payload:   `{"title":"Hello","body":"World","number":5}`,
			wantType:  model.EventTypeOther,
			wantTitle: "Hello",
			wantDesc:  "World",
		},
		{
			name:      "known type without projection",
			eventType: "star",
			payload:   `{"action":"created"}`,
			wantType:  model.EventTypeOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := n.Normalize([]byte(tt.payload), tt.eventType)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ev.EventType != tt.wantType {
				t.Errorf("event type = %q, want %q", ev.EventType, tt.wantType)
			}
			if ev.RawEventType != tt.eventType {
				t.Errorf("raw event type = %q, want %q", ev.RawEventType, tt.eventType)
			}
			if ev.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", ev.Title, tt.wantTitle)
			}
			if ev.Description != tt.wantDesc {
				t.Errorf("description = %q, want %q", ev.Description, tt.wantDesc)
			}
			switch {
			case tt.wantPR == 0 && ev.PRNumber != nil:
				t.Errorf("pr number = %d, want none", *ev.PRNumber)
			case tt.wantPR != 0 && (ev.PRNumber == nil || *ev.PRNumber != tt.wantPR):
				t.Errorf("pr number = %v, want %d", ev.PRNumber, tt.wantPR)
			}
		})
	}
}

func TestNormalize_CommonFields(t *testing.T) {
	n := newTestNormalizer(t)
	ev, err := n.Normalize([]byte(`{"action":"opened","number":1,"pull_request":{"title":"x"},"repository":{"full_name":"org/repo"},"sender":{"login":"alice"}}`), "pull_request")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Action != "opened" || ev.RepositoryFullName != "org/repo" || ev.Sender != "alice" {
		t.Errorf("unexpected common fields: %+v", ev)
	}
	if ev.Timestamp.Location().String() != "Asia/Kolkata" {
		t.Errorf("timestamp location = %s", ev.Timestamp.Location())
	}
	if got := ev.Timestamp.Format("15:04"); got != "05:30" {
		t.Errorf("timestamp = %s, want 05:30 local", got)
	}
}

func TestNormalize_MissingFields(t *testing.T) {
	n := newTestNormalizer(t)
	ev, err := n.Normalize([]byte(`{}`), "pull_request")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.PRNumber != nil || ev.Title != "" || ev.Sender != "" || ev.RepositoryFullName != "" {
		t.Errorf("expected empty defaults, got %+v", ev)
	}
}

func TestNormalize_Workflow(t *testing.T) {
	n := newTestNormalizer(t)

	t.Run("workflow_run", func(t *testing.T) {
		ev, err := n.Normalize([]byte(`{"action":"completed","workflow_run":{"name":"CI","status":"completed","conclusion":"success","html_url":"https://example.com/run/1"}}`), "workflow_run")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ev.EventType != model.EventTypeOther || ev.Workflow == nil {
			t.Fatalf("unexpected event: %+v", ev)
		}
		if ev.Workflow.Name != "CI" || ev.Workflow.Conclusion != "success" {
			t.Errorf("unexpected workflow: %+v", ev.Workflow)
		}
	})

	t.Run("workflow_job", func(t *testing.T) {
		ev, err := n.Normalize([]byte(`{"action":"in_progress","workflow_job":{"name":"build","workflow_name":"CI","status":"in_progress"}}`), "workflow_job")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ev.Workflow == nil || ev.Workflow.Name != "CI" || ev.Workflow.Status != "in_progress" {
			t.Errorf("unexpected workflow: %+v", ev.Workflow)
		}
	})
}

func TestNormalize_InvalidPayload(t *testing.T) {
	n := newTestNormalizer(t)
	for _, payload := range []string{``, `not json`, `[1,2]`, `null`} {
		if _, err := n.Normalize([]byte(payload), "push"); !errors.Is(err, ErrInvalidPayload) {
			t.Errorf("payload %q: expected ErrInvalidPayload, got %v", payload, err)
		}
	}
}
