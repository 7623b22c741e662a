package slack

import (
	"errors"
	"time"
)

const (
	DefaultTimeout = 10 * time.Second
	maxReplyBytes  = 4 << 10

	ActionMerge      = "merge_action"
	ActionCancel     = "cancel_action"
	PRActionsBlockID = "pr_actions"
	ButtonMergeText  = "✅ Merge"
	ButtonCancelText = "❌ Cancel"
)

var (
	ErrWebhookNotConfigured = errors.New("slack webhook url not configured")
	ErrInvalidSignature     = errors.New("invalid slack request signature")
)

// ActionValue is the JSON blob stored in a button's value. PRNumber stays loose
// because older messages carried it as a string.
type ActionValue struct {
	Action   string      `json:"action,omitempty"`
	Repo     string      `json:"repo"`
	PRNumber interface{} `json:"pr_number"`
}

// InteractionPayload is the subset of a block_actions callback the relay reads.
type InteractionPayload struct {
	Type        string              `json:"type"`
	Actions     []InteractionAction `json:"actions"`
	User        InteractionUser     `json:"user"`
	ResponseURL string              `json:"response_url,omitempty"`
}

type InteractionAction struct {
	ActionID string `json:"action_id"`
	BlockID  string `json:"block_id,omitempty"`
	Value    string `json:"value"`
}

type InteractionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// DisplayName returns the best available handle for the clicking user.
func (u InteractionUser) DisplayName() string {
	switch {
	case u.Username != "":
		return u.Username
	case u.Name != "":
		return u.Name
	case u.ID != "":
		return u.ID
	default:
		return "unknown"
	}
}
