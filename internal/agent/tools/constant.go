package tools

// Tool names
const (
	NameGetRecentEvents       = "get_recent_events"
	NameGetRepositoryDetail   = "get_repository_detail"
	NameGetWorkflowStatus     = "get_workflow_status"
	NameSummarizeLatestEvent  = "summarize_latest_event"
	NameGetPullRequestDetails = "get_pull_request_details"
	NameMergePullRequest      = "merge_pull_request"
	NameClosePullRequest      = "close_pull_request"
	NameSendSlackNotification = "send_slack_notification"
)

const DefaultRecentEventsLimit = 5

// Result texts
const (
	MsgNoEvents            = "No events recorded yet."
	MsgNoEventsStored      = "No events stored."
	MsgGitHubTokenMissing  = "Error: GITHUB_PAT environment variable not set"
	MsgSlackURLMissing     = "Error: SLACK_WEBHOOK_URL environment variable not set"
	MsgWorkflowStatus      = "workflow '%s' status: %s"
	MsgWorkflowNotFound    = "No recent status found for workflow: %s"
	MsgMergeSuccess        = "✅ Successfully merged PR #%d in %s."
	MsgMergeFailed         = "❌ Failed to merge PR #%d in %s. Reason: %s"
	MsgCloseSuccess        = "✅ Closed pull request #%d in %s"
	MsgCloseFailed         = "❌ Failed to close PR: %s"
	MsgPullRequestDetails  = "PR #%d in %s: %s (state: %s, merged: %t)"
	MsgSlackSent           = "✅ Message sent successfully to slack."
	MsgSlackStatusFailed   = "❌ Failed to send message. Status: %d, Response: %s"
	MsgSlackTimeout        = "❌ Request timed out. Check your internet connection and try again."
	MsgSlackError          = "❌ Error sending message: %v"
	MsgDetailsLookupFailed = "failed to fetch PR #%d in %s: %s"
)

// Log prefixes
const (
	LogPrefixRecentEvents     = "internal.agent.tools.get_recent_events"
	LogPrefixRepositoryDetail = "internal.agent.tools.get_repository_detail"
	LogPrefixWorkflowStatus   = "internal.agent.tools.get_workflow_status"
	LogPrefixSummarize        = "internal.agent.tools.summarize_latest_event"
	LogPrefixPRDetails        = "internal.agent.tools.get_pull_request_details"
	LogPrefixMerge            = "internal.agent.tools.merge_pull_request"
	LogPrefixClose            = "internal.agent.tools.close_pull_request"
	LogPrefixSlack            = "internal.agent.tools.send_slack_notification"
)
