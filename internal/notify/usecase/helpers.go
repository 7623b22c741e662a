package usecase

import (
	"fmt"
	"strings"

	"repo-event-relay/internal/agent/orchestrator"
	"repo-event-relay/internal/model"
	"repo-event-relay/internal/notify"
)

// detectEventType prefers a pull_request sub-object over the event_type field.
func detectEventType(p notify.EventPayload) string {
	if pr, ok := p["pull_request"].(map[string]interface{}); ok && len(pr) > 0 {
		return notify.EventTypePullRequest
	}
	if s := stringField(p, "event_type"); s != "" {
		return s
	}
	return notify.UnknownValue
}

// repoName accepts {"repository": {"full_name": ...}} or {"repository": "..."}.
func repoName(p notify.EventPayload) string {
	switch v := p["repository"].(type) {
	case map[string]interface{}:
		if s, ok := v["full_name"].(string); ok && s != "" {
			return s
		}
	case string:
		if v != "" {
			return v
		}
	}
	return notify.UnknownValue
}

// prNumber checks pr_number, then pull_request.number, then number.
func prNumber(p notify.EventPayload) (int, bool) {
	if n, ok := model.ParsePRNumber(p["pr_number"]); ok {
		return n, true
	}
	if pr, ok := p["pull_request"].(map[string]interface{}); ok {
		if n, ok := model.ParsePRNumber(pr["number"]); ok {
			return n, true
		}
	}
	return model.ParsePRNumber(p["number"])
}

// senderName accepts a plain login or a {login} object.
func senderName(p notify.EventPayload) string {
	switch v := p["sender"].(type) {
	case string:
		if v != "" {
			return v
		}
	case map[string]interface{}:
		if s, ok := v["login"].(string); ok && s != "" {
			return s
		}
	}
	return notify.UnknownValue
}

func stringField(p notify.EventPayload, key string) string {
	switch v := p[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// failed reports whether a tool result text describes a failure.
func failed(text string) bool {
	return strings.HasPrefix(text, "❌") || strings.HasPrefix(text, "Error")
}

func resultText(res interface{}) string {
	return orchestrator.Stringify(res)
}
