package notify

// Statuses returned by /notify
const (
	StatusNotified           = "notified and send to slack"
	StatusIgnoredSynchronize = "ignored synchronize event"
	StatusIgnoredAction      = "ignored pull_request action: %s"
	StatusDuplicate          = "ignored duplicate pull request #%d"
	StatusDeliveryFailed     = "delivery failed: %s"
)

// Notification texts
const (
	MessageTemplate   = "🔔 New GitHub event: %s on repository: %s\n- Title: %s\n- Description: %s\n- Timestamp: %s\n- User: %s\n"
	MsgAlreadyMerged  = "PR #%d in %s is already merged. Cancel Skipped."
	MsgClosedFollowUp = "🚫 PR #%d in %s was closed by @%s via Slack."
	PlannerPrompt     = "Send this GitHub event to slack:\n%s"
)

const (
	UnknownValue         = "unknown"
	ActionSynchronize    = "synchronize"
	EventTypePullRequest = "pull_request"
)

var DefaultAllowedPRActions = []string{"opened", "reopened", "closed"}

// Log prefixes
const (
	LogPrefixOnEvent       = "notify.usecase.OnEvent"
	LogPrefixOnInteraction = "notify.usecase.OnInteraction"
	LogPrefixSeed          = "notify.usecase.SeedFromStore"
)
