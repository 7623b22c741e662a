package webhook

import "time"

// Synthesized titles
const (
	TitleCommitsPushed = "%d commits pushed"
	TitleRefCreated    = "Created %s: %s"
	TitleRefDeleted    = "Deleted %s: %s"
)

// Response statuses
const (
	StatusReceived = "received"
)

// Headers
const (
	HeaderEvent     = "X-GitHub-Event"
	HeaderSignature = "X-Hub-Signature-256"
	HeaderDelivery  = "X-GitHub-Delivery"
)

const (
	LogPrefixHandle  = "webhook.HandleGitHubWebhook"
	LogPrefixForward = "webhook.Forwarder.Forward"
)

const (
	defaultLimiterSize    = 1000
	defaultLimiterTTL     = 5 * time.Minute
	defaultForwardTimeout = 10 * time.Second
)
